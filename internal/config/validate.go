package config

import "fmt"

const (
	defaultTimeoutSeconds = 15
	defaultMaxJobs        = 20
	defaultDescLimit      = 1000
	defaultMaxSkills      = 15
	defaultAdapterDelayMS = 500
)

func (c *Config) applyDefaults() {
	s := &c.Scraper
	if s.TimeoutSeconds == 0 {
		s.TimeoutSeconds = defaultTimeoutSeconds
	}
	if s.MaxJobs == 0 {
		s.MaxJobs = defaultMaxJobs
	}
	if s.DescriptionLimit == 0 {
		s.DescriptionLimit = defaultDescLimit
	}
	if s.MaxSkills == 0 {
		s.MaxSkills = defaultMaxSkills
	}
	if s.AdapterDelayMS == 0 {
		s.AdapterDelayMS = defaultAdapterDelayMS
	}
}

// Validate rejects out-of-range scraper settings.
func (c *Config) Validate() error {
	s := c.Scraper
	if s.TimeoutSeconds < 1 || s.TimeoutSeconds > 120 {
		return fmt.Errorf("config: timeout_seconds %d out of range [1,120]", s.TimeoutSeconds)
	}
	if s.MaxJobs < 0 {
		return fmt.Errorf("config: max_jobs must not be negative")
	}
	if s.DescriptionLimit < 100 {
		return fmt.Errorf("config: description_max_length %d too small (min 100)", s.DescriptionLimit)
	}
	if s.MaxSkills < 1 || s.MaxSkills > 50 {
		return fmt.Errorf("config: max_skills %d out of range [1,50]", s.MaxSkills)
	}
	if s.AdapterDelayMS < 0 {
		return fmt.Errorf("config: adapter_delay_ms must not be negative")
	}
	return nil
}
