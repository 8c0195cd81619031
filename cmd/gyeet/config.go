package main

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/ekg/gyeet/internal/align"
)

// mapConfig mirrors map.go's flags so a `--config` TOML file (go-toml/v2,
// a teacher dependency unused by LexicMap's own CLI but present in its
// go.mod for exactly this purpose — homed here per SPEC_FULL.md §2.3)
// can set them instead of, or alongside, command-line flags. Flags take
// precedence: overrideFromFlags (map.go) overwrites the loaded values
// with every flag set explicitly on the command line.
type mapConfig struct {
	MaxGap          int     `toml:"max-gap-length"`
	MaxMismatchRate float64 `toml:"max-mismatch-rate"`
	ChainOverlapMax float64 `toml:"chain-overlap-max"`
	ChainMinAnchors int     `toml:"chain-min-n-anchors"`
	AlignBestN      int     `toml:"align-best-n"`
	Threads         int     `toml:"threads"`
}

func defaultMapConfig() mapConfig {
	return mapConfig{
		MaxGap:          align.DefaultParams.MaxGap,
		MaxMismatchRate: align.DefaultParams.MaxMismatchRate,
		ChainOverlapMax: align.DefaultParams.ChainOverlapMax,
		ChainMinAnchors: align.DefaultParams.MinAnchors,
		AlignBestN:      align.DefaultParams.BestN,
		Threads:         1,
	}
}

func loadConfigFile(path string) (mapConfig, error) {
	cfg := defaultMapConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config file %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config file %s", path)
	}
	return cfg, nil
}
