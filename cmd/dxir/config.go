package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"dxir/internal/layout"
)

const defaultConfigName = "dxir.toml"

type targetConfig struct {
	Target struct {
		Triple       string `toml:"triple"`
		PointerSize  int    `toml:"pointer_size"`
		PointerAlign int    `toml:"pointer_align"`
	} `toml:"target"`
}

// loadTarget resolves the layout target: an explicit --config path, a
// dxir.toml in the working directory, or the DXIL default.
func loadTarget(configFlag string) (layout.Target, error) {
	path := configFlag
	if path == "" {
		if _, err := os.Stat(defaultConfigName); err != nil {
			return layout.DXIL(), nil
		}
		path = defaultConfigName
	}
	var cfg targetConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return layout.Target{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	t := layout.ForTriple(cfg.Target.Triple)
	if cfg.Target.PointerSize > 0 {
		t.PtrSize = cfg.Target.PointerSize
	}
	if cfg.Target.PointerAlign > 0 {
		t.PtrAlign = cfg.Target.PointerAlign
	}
	return t, nil
}
