package main

import "github.com/BurntSushi/toml"

// config is patchtool's optional TOML config (loaded with --config), the
// same DecodeFile-into-a-struct shape modules/zeta/config uses for its
// own settings files.
type config struct {
	Color        bool `toml:"color"`
	MaxLineWidth int  `toml:"max_line_width"`
}

func defaultConfig() config {
	return config{Color: true, MaxLineWidth: 100}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
