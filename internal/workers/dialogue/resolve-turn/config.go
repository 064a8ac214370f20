package resolveturn

import "time"

type Config struct {
	Timeout time.Duration
	// SeedNameFromHistory fills a missing name from "my name is" turns in
	// the dialog history before the handler runs.
	SeedNameFromHistory bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:             5 * time.Second,
		SeedNameFromHistory: true,
	}
}
