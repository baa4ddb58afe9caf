package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hazyhaar/scoli/pkg/dataset"
	"gopkg.in/yaml.v3"
)

type config struct {
	DataDir     string `yaml:"data_dir"`
	Output      string `yaml:"output"`
	DB          string `yaml:"db"`
	SourcesDB   string `yaml:"sources_db"`
	CountiesURL string `yaml:"counties_url"`

	Addr          string        `yaml:"addr"`
	CheckInterval time.Duration `yaml:"check_interval"`

	SchoolsFormat  dataset.Format `yaml:"schools_format"`
	MetaFormat     dataset.Format `yaml:"meta_format"`
	CountiesFormat dataset.Format `yaml:"counties_format"`
}

func defaultConfig() config {
	return config{
		DataDir:        "data",
		Output:         "output/metadata.sql",
		SourcesDB:      "sources.db",
		Addr:           ":8420",
		SchoolsFormat:  dataset.Semicolon,
		MetaFormat:     dataset.Comma,
		CountiesFormat: dataset.Comma,
	}
}

// loadConfig reads path over the defaults. A missing file means defaults.
func loadConfig(path string, logger *slog.Logger) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("no config file, using defaults", "path", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	for name, f := range map[string]dataset.Format{
		"schools_format":  cfg.SchoolsFormat,
		"meta_format":     cfg.MetaFormat,
		"counties_format": cfg.CountiesFormat,
	} {
		if err := f.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", name, err)
		}
	}
	if cfg.CheckInterval < 0 {
		return cfg, fmt.Errorf("config check_interval: must not be negative")
	}
	return cfg, nil
}
