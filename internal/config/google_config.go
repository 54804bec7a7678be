package config

type GoogleConfig interface {
	GetGoogleClientID() string
	GetGoogleIssuer() string
	GetVerifyGoogleIDToken() bool
}

type Google struct{}

var _ GoogleConfig = Google{}

func (Google) GetGoogleClientID() string {
	return GetFirstEnv("", "PORTAL_GOOGLE_CLIENT_ID", "NUXT_PUBLIC_GOOGLE_CLIENT_ID")
}

func (Google) GetGoogleIssuer() string {
	return GetEnv("PORTAL_GOOGLE_ISSUER", "https://accounts.google.com")
}

// GetVerifyGoogleIDToken reports whether ID tokens are checked locally before
// being handed to the backend. The backend verifies them either way.
func (Google) GetVerifyGoogleIDToken() bool {
	return parseBoolOrDefault("PORTAL_GOOGLE_VERIFY_ID_TOKEN", false)
}
