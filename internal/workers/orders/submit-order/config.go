package submitorder

import "time"

type Config struct {
	Timeout time.Duration
	// StoreName labels the orders_committed_total metric.
	StoreName string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:   10 * time.Second,
		StoreName: "file",
	}
}
