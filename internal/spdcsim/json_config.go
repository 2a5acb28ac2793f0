package spdcsim

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

type CrystalCfg struct {
	DX           Real `json:"dx"`
	DY           Real `json:"dy"`
	DZ           Real `json:"dz"`
	MaxX         Real `json:"maxX"`
	MaxY         Real `json:"maxY"`
	MaxZ         Real `json:"maxZ"`
	D33          Real `json:"d33"`
	TemperatureC Real `json:"temperatureC"`
}

type PumpCfg struct {
	Wavelength Real `json:"wavelength"`
	Waist      Real `json:"waist"`
	Power      Real `json:"power"`
}

type Config struct {
	Crystal           CrystalCfg `json:"crystal"`
	Pump              PumpCfg    `json:"pump"`
	SignalWavelength  Real       `json:"signalWavelength"`
	PolingCorrection  Real       `json:"polingCorrection,omitempty"`
	Trials            int        `json:"trials"`
	SeedSignal        int64      `json:"seedSignal,omitempty"`
	SeedIdler         int64      `json:"seedIdler,omitempty"`
	FarFieldDist      Real       `json:"farFieldDist,omitempty"` // R, distance to the far-field screen [m]
	Tau               Real       `json:"tau,omitempty"`          // coincidence window [s]
	Indistinguishable bool       `json:"indistinguishable,omitempty"`
	Polar             bool       `json:"polar,omitempty"`
	Gamma             Real       `json:"gamma,omitempty"`
	OutDir            string     `json:"outDir,omitempty"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.PolingCorrection == 0 {
		cfg.PolingCorrection = DefaultPolingCorrection
	}
	if cfg.SeedSignal == 0 {
		cfg.SeedSignal = DefaultSeedSignal
	}
	if cfg.SeedIdler == 0 {
		cfg.SeedIdler = DefaultSeedIdler
	}
	if cfg.FarFieldDist == 0 {
		cfg.FarFieldDist = DefaultFarFieldDist
	}
	if cfg.Tau == 0 {
		cfg.Tau = DefaultTau
	}
	if cfg.Gamma == 0 {
		cfg.Gamma = DefaultGamma
	}
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
}

func (cfg *Config) validate() error {
	if cfg.Trials < 1 {
		return errors.Errorf("trials must be positive: %d", cfg.Trials)
	}
	if cfg.Pump.Wavelength <= 0 {
		return errors.Errorf("pump wavelength must be positive: %g", cfg.Pump.Wavelength)
	}
	if cfg.Pump.Waist <= 0 {
		return errors.Errorf("pump waist must be positive: %g", cfg.Pump.Waist)
	}
	if cfg.Pump.Power < 0 {
		return errors.Errorf("pump power must be non-negative: %g", cfg.Pump.Power)
	}
	// energy conservation needs 1/lamPump > 1/lamSignal
	if cfg.SignalWavelength <= cfg.Pump.Wavelength {
		return errors.Errorf("signal wavelength %g must exceed pump wavelength %g",
			cfg.SignalWavelength, cfg.Pump.Wavelength)
	}
	if cfg.FarFieldDist <= 0 {
		return errors.Errorf("far-field distance must be positive: %g", cfg.FarFieldDist)
	}
	if cfg.Tau <= 0 {
		return errors.Errorf("coincidence window must be positive: %g", cfg.Tau)
	}
	if cfg.PolingCorrection <= 0 {
		return errors.Errorf("poling correction must be positive: %g", cfg.PolingCorrection)
	}
	// crystal geometry is validated by NewCrystal
	return nil
}
