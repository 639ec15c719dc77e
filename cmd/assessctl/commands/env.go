package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"maturity-assessment/internal/common/config"
)

// Env is the environment assessctl reads on every invocation.
type Env struct {
	ConfigFile string `env:"ASSESSCTL_CONFIG"`
	Storage    string `env:"ASSESSCTL_STORAGE"`
	StateDir   string `env:"ASSESSCTL_STATE_DIR"`
	Flow       string `env:"ASSESSCTL_FLOW"`
	RedisAddr  string `env:"ASSESSCTL_REDIS_ADDR"`
	LogLevel   string `env:"ASSESSCTL_LOG_LEVEL" envDefault:"warn"`
}

func parseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// resolveConfig starts from the config file when one is named and from
// defaults otherwise, then applies the non-empty environment overrides. Without
// a config file state is kept on disk.
func resolveConfig(e Env) (*config.Config, error) {
	var cfg *config.Config
	if e.ConfigFile != "" {
		loaded, err := config.LoadFromFile(e.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Defaults()
		cfg.Storage.Backend = config.StorageFile
		cfg.Storage.FileDir = ""
	}

	if e.Storage != "" {
		cfg.Storage.Backend = e.Storage
	}
	if e.StateDir != "" {
		cfg.Storage.FileDir = e.StateDir
	}
	if e.Flow != "" {
		cfg.Assessment.Flow = e.Flow
	}
	if e.RedisAddr != "" {
		cfg.Database.Redis.Address = e.RedisAddr
	}

	if cfg.Storage.FileDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve state dir: %w", err)
		}
		cfg.Storage.FileDir = filepath.Join(home, ".assessment")
	}
	return cfg, nil
}
