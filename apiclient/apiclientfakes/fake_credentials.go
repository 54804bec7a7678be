package apiclientfakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
)

// FakeCredentials is an in-memory apiclient.Credentials.
type FakeCredentials struct {
	mu           sync.Mutex
	accessToken  string
	refreshToken string

	// RefreshFunc runs on RefreshAuthToken. It returns the new access token.
	// Nil keeps the current token.
	RefreshFunc func(ctx context.Context) (string, error)

	RefreshCalls    int
	EndSessionCalls int
}

var _ apiclient.Credentials = (*FakeCredentials)(nil)

func NewFakeCredentials(accessToken, refreshToken string) *FakeCredentials {
	return &FakeCredentials{accessToken: accessToken, refreshToken: refreshToken}
}

func (f *FakeCredentials) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accessToken
}

func (f *FakeCredentials) RefreshToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshToken
}

func (f *FakeCredentials) SetAccessToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accessToken = token
}

func (f *FakeCredentials) RefreshAuthToken(ctx context.Context) error {
	f.mu.Lock()
	f.RefreshCalls++
	fn := f.RefreshFunc
	f.mu.Unlock()

	if fn == nil {
		return nil
	}
	token, err := fn(ctx)
	if err != nil {
		return err
	}
	f.SetAccessToken(token)
	return nil
}

func (f *FakeCredentials) EndSession(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.EndSessionCalls++
	f.accessToken = ""
	f.refreshToken = ""
	return nil
}

func (f *FakeCredentials) Calls() (refresh, endSession int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.RefreshCalls, f.EndSessionCalls
}
