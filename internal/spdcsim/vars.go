package spdcsim

var (
	Debug = false // set to true for verbose debug output
	PNG   = false // set to true to also dump raw maps as 16-bit grayscale PNGs
	RAW   = false // set to true to also dump correlation tensors as raw float64 files
)
