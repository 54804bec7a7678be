package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	appNameVar   = "PORTAL_APP_NAME"
	folderEnvVar = "PORTAL_DATA_FOLDER"
	logLevelVar  = "PORTAL_LOG_LEVEL"
	envVar       = "PORTAL_ENV"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "NillTech Portal")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetLogLevel() string {
	return strings.ToLower(GetEnv(logLevelVar, "info"))
}

func (EnvVars) GetEnv() string {
	return strings.ToUpper(GetEnv(envVar, "DEV"))
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetFirstEnv returns the first non-empty variable in envVars.
func GetFirstEnv(defaultValue string, envVars ...string) string {
	for _, name := range envVars {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return defaultValue
}

func parseDurationOrDefault(envVar string, def time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseBoolOrDefault(envVar string, def bool) bool {
	value := os.Getenv(envVar)
	if value == "" {
		return def
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return b
}

func parseIntOrDefault(envVar string, def int) int {
	value := os.Getenv(envVar)
	if value == "" {
		return def
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return i
}
