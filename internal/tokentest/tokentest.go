// Package tokentest mints JWTs for tests: backend access tokens whose expiry
// the session reads, and RS256 ID tokens from a fake OpenID issuer.
package tokentest

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// RS256 is the only algorithm the fake issuer signs with.
const RS256 = "RS256"

// KeyPair is an RSA signing key with its key id.
type KeyPair struct {
	KeyID      string
	PrivateKey *rsa.PrivateKey
}

// JWKS is a JSON Web Key Set.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWK is the public half of an RSA key.
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Kid string `json:"kid,omitempty"`
	Alg string `json:"alg,omitempty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func GenerateKeyPair(t *testing.T, keyID string) *KeyPair {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return &KeyPair{KeyID: keyID, PrivateKey: key}
}

func (kp *KeyPair) JWK() JWK {
	pub := kp.PrivateKey.PublicKey
	return JWK{
		Kty: "RSA",
		Use: "sig",
		Kid: kp.KeyID,
		Alg: RS256,
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}

// Sign signs claims with the key and sets the kid header.
func (kp *KeyPair) Sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kp.KeyID
	signed, err := tok.SignedString(kp.PrivateKey)
	require.NoError(t, err)
	return signed
}

// AccessToken mints an HS256 token that expires at exp. The backend signs
// with its own secret; the client only ever reads the claims.
func AccessToken(t *testing.T, subject string, exp time.Time) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"token_type": "access",
		"user_id":    subject,
		"iat":        exp.Add(-5 * time.Minute).Unix(),
		"exp":        exp.Unix(),
		"jti":        uuid.NewString(),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return signed
}

// Issuer is a fake OpenID provider serving discovery and keys.
type Issuer struct {
	Server *httptest.Server
	Keys   *KeyPair
}

func NewIssuer(t *testing.T) *Issuer {
	t.Helper()
	iss := &Issuer{Keys: GenerateKeyPair(t, "test-key-1")}

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{
			"issuer":                                iss.URL(),
			"authorization_endpoint":                iss.URL() + "/auth",
			"token_endpoint":                        iss.URL() + "/token",
			"jwks_uri":                              iss.URL() + "/certs",
			"id_token_signing_alg_values_supported": []string{RS256},
		})
	})
	mux.HandleFunc("/certs", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, JWKS{Keys: []JWK{iss.Keys.JWK()}})
	})
	iss.Server = httptest.NewServer(mux)
	t.Cleanup(iss.Server.Close)
	return iss
}

func (i *Issuer) URL() string {
	return i.Server.URL
}

// IDToken mints an ID token for audience, valid for an hour from now.
func (i *Issuer) IDToken(t *testing.T, audience, email string) string {
	t.Helper()
	now := time.Now()
	return i.Keys.Sign(t, jwt.MapClaims{
		"iss":            i.URL(),
		"aud":            audience,
		"sub":            "1099",
		"email":          email,
		"email_verified": true,
		"iat":            now.Unix(),
		"exp":            now.Add(time.Hour).Unix(),
		"jti":            uuid.NewString(),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
