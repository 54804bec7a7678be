package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config interface {
	EnvConfig
	APIConfig
	GoogleConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetDataFolder() string
	GetLogLevel() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	API
	Google
	Storage
}

var loadDotEnv sync.Once

// New loads an optional .env file once and returns the environment backed config.
func New() Config {
	loadDotEnv.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	})
	return mainConfig{}
}
