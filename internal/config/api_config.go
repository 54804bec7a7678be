package config

import "time"

type APIConfig interface {
	GetAPIBaseURL() string
	GetMediaBaseURL() string
	GetRequestTimeout() time.Duration
	GetReplayAfterRefresh() bool
}

type API struct{}

var _ APIConfig = API{}

// GetAPIBaseURL falls back to the NUXT_PUBLIC_* names so an existing frontend .env can be reused.
func (API) GetAPIBaseURL() string {
	return GetFirstEnv("http://localhost:8000/api", "PORTAL_API_BASE_URL", "NUXT_PUBLIC_API_BASE_URL")
}

func (API) GetMediaBaseURL() string {
	return GetFirstEnv("", "PORTAL_MEDIA_BASE_URL", "NUXT_PUBLIC_MEDIA_BASE_URL")
}

func (API) GetRequestTimeout() time.Duration {
	return parseDurationOrDefault("PORTAL_REQUEST_TIMEOUT", 30*time.Second)
}

func (API) GetReplayAfterRefresh() bool {
	return parseBoolOrDefault("PORTAL_REPLAY_AFTER_REFRESH", true)
}
