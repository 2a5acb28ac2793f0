package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/joho/godotenv"

	"github.com/lukaszgryglicki/spdcsim/internal/spdcsim"
)

func main() {
	_ = godotenv.Load()

	spdcsim.Debug = os.Getenv("DEBUG") != ""
	spdcsim.PNG = os.Getenv("PNG") != ""
	spdcsim.RAW = os.Getenv("RAW") != ""
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg := "configs/config.json"
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	if err := spdcsim.Run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
