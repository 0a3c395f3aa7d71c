package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// projectConfig holds the CLI-level defaults read from vsforge.toml. It
// is distinct from vsir.JobConfig, which travels inside each fixture
// and names the emitted class; this file only sets defaults for flags
// the user would otherwise repeat on every invocation.
type projectConfig struct {
	Generate struct {
		OutDir string `toml:"out_dir"`
		Jobs   int    `toml:"jobs"`
	} `toml:"generate"`
}

func defaultProjectConfig() projectConfig {
	var cfg projectConfig
	cfg.Generate.OutDir = "build"
	cfg.Generate.Jobs = 4
	return cfg
}

// loadProjectConfig reads vsforge.toml from the current directory. A
// missing manifest is not an error: the caller falls back to defaults.
func loadProjectConfig(path string) (projectConfig, bool, error) {
	cfg := defaultProjectConfig()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, false, nil
		}
		return cfg, false, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, false, err
	}
	return cfg, true, nil
}
