package config

import (
	"os"

	"garitoblackjack-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for Garito Blackjack
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	LeaderboardLimit int `yaml:"leaderboardLimit" envconfig:"leaderboard_limit"`
	Log              struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
func Load() error {
	configFile := util.Getenv("GBJ_CONFIG_FILE", "config.yaml")

	config = Config{}

	file, err := os.Open(configFile)
	if err != nil {
		// the config file is optional; environment variables may provide
		// everything
		if !os.IsNotExist(err) {
			return err
		}
	} else {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	}

	if err := envconfig.Process("gbj", &config); err != nil {
		return err
	}

	if config.LeaderboardLimit <= 0 {
		config.LeaderboardLimit = 20
	}

	config.loaded = true
	return nil
}
