package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Source struct {
	Enabled bool `yaml:"enabled"`
}

type AdzunaSource struct {
	Enabled bool   `yaml:"enabled"`
	Country string `yaml:"country"` // optional fixed country code
}

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Scraper struct {
		TimeoutSeconds   int  `yaml:"timeout_seconds"`
		MaxJobs          int  `yaml:"max_jobs"`
		DescriptionLimit int  `yaml:"description_max_length"`
		MaxSkills        int  `yaml:"max_skills"`
		AdapterDelayMS   int  `yaml:"adapter_delay_ms"`
		Concurrent       bool `yaml:"concurrent"`
	} `yaml:"scraper"`

	Sources struct {
		RemoteOK  Source       `yaml:"remoteok"`
		Remotive  Source       `yaml:"remotive"`
		Arbeitnow Source       `yaml:"arbeitnow"`
		TheMuse   Source       `yaml:"themuse"`
		Jobicy    Source       `yaml:"jobicy"`
		Adzuna    AdzunaSource `yaml:"adzuna"`
		Wuzzuf    Source       `yaml:"wuzzuf"`
	} `yaml:"sources"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}
