package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Source is one listing site in processing order. The slice order in the
// config file is the order batches are merged in, which keeps repeated runs
// over identical scraper output deterministic.
type Source struct {
	Name    string `yaml:"name" json:"name"` // linkedin | naukri | googlejobs
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Scrape struct {
		Location        string   `yaml:"location" json:"location"`
		WorkModes       []string `yaml:"work_modes" json:"work_modes"` // remote, hybrid
		AutoRefresh     bool     `yaml:"auto_refresh" json:"auto_refresh"`
		IntervalMinutes int      `yaml:"interval_minutes" json:"interval_minutes"`
	} `yaml:"scrape" json:"scrape"`

	Dedup struct {
		// Threshold is the title similarity cutoff, 0.7..1.0.
		Threshold float64 `yaml:"threshold" json:"threshold"`
	} `yaml:"dedup" json:"dedup"`

	Filters struct {
		// KeywordsAny drops records whose title+company match none of the
		// terms. Empty list keeps everything.
		KeywordsAny []string `yaml:"keywords_any" json:"keywords_any"`
	} `yaml:"filters" json:"filters"`

	Sources []Source `yaml:"sources" json:"sources"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
