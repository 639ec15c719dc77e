// internal/workers/assessment/generate-recommendations/config.go
package generaterecommendations

import (
	"time"

	"maturity-assessment/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// MaxItems caps the returned list; zero keeps every item.
	MaxItems int
}

func LoadConfig(wcfg config.WorkerConfig) *Config {
	timeout := config.GetDuration(wcfg.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Config{Timeout: timeout}
}
