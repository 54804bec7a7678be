package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/apiclient/apiclientfakes"
	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
	"github.com/jrsteele09/go-marketplace-client/notify"
)

type testFixture struct {
	server   *httptest.Server
	creds    *apiclientfakes.FakeCredentials
	recorder *notify.Recorder
	gateway  *apiclient.Gateway
	hits     atomic.Int32
}

func setupTestFixture(t *testing.T, handler http.HandlerFunc, opts ...apiclient.GatewayOption) *testFixture {
	t.Helper()

	f := &testFixture{
		creds:    apiclientfakes.NewFakeCredentials("abc123", "r1"),
		recorder: notify.NewRecorder(),
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(f.server.Close)

	transport := apiclient.NewTransport(f.server.URL+"/api", apiclient.WithHTTPClient(f.server.Client()))
	f.gateway = apiclient.NewGateway(transport, f.creds, f.recorder, opts...)
	return f
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// only accepts the token "fresh"
func requireFreshToken(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer fresh" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": 1, "results": []map[string]any{{"id": 1}}})
}

func TestGatewayAttachesBearerToken(t *testing.T) {
	var got http.Header
	var path string
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		path = r.URL.Path
		writeJSON(w, http.StatusOK, []any{})
	})

	req := apiclient.Request{Method: http.MethodGet, Path: "/jobs/list/", Header: http.Header{"X-Trace": {"t-1"}}}
	require.NoError(t, f.gateway.Do(context.Background(), req, nil))

	require.Equal(t, "/api/jobs/list/", path)
	require.Equal(t, "Bearer abc123", got.Get("Authorization"))
	require.Equal(t, "t-1", got.Get("X-Trace"))
	require.NotEmpty(t, got.Get(apiclient.HeaderRequestID))
	// caller headers are untouched
	require.Empty(t, req.Header.Get("Authorization"))
	require.Empty(t, f.recorder.All())
}

func TestGatewayWithoutAccessTokenSendsNoAuthorization(t *testing.T) {
	var auth string
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	})
	f.creds.SetAccessToken("")

	require.NoError(t, f.gateway.Do(context.Background(), apiclient.Request{Path: "skills/"}, nil))
	require.Empty(t, auth)
}

func TestGatewayClientAndServerErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		message string
		kind    apiclient.Kind
	}{
		{"validation detail", http.StatusBadRequest, map[string]string{"detail": "Title is required"}, "Error: Title is required", apiclient.KindClientRequest},
		{"message key", http.StatusNotFound, map[string]string{"message": "No such job"}, "Error: No such job", apiclient.KindClientRequest},
		{"unknown shape", http.StatusConflict, map[string]int{"code": 3}, "Error: " + apiclient.DefaultErrorMessage, apiclient.KindClientRequest},
		{"server", http.StatusBadGateway, map[string]string{"detail": "upstream"}, apiclient.MsgServerError, apiclient.KindServer},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, tc.body)
			})

			err := f.gateway.Do(context.Background(), apiclient.Request{Path: "/jobs/"}, nil)
			apiErr, ok := apiclient.AsAPIError(err)
			require.True(t, ok)
			require.Equal(t, tc.kind, apiErr.Kind)
			require.Equal(t, tc.status, apiErr.Status)
			require.Equal(t, []string{tc.message}, f.recorder.Messages())

			refresh, end := f.creds.Calls()
			require.Zero(t, refresh)
			require.Zero(t, end)
		})
	}
}

func TestGatewayNetworkError(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	f.server.Close()

	err := f.gateway.Do(context.Background(), apiclient.Request{Path: "/jobs/"}, nil)
	apiErr, ok := apiclient.AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, apiclient.KindNetwork, apiErr.Kind)
	require.Equal(t, []string{apiclient.MsgNetworkError}, f.recorder.Messages())
}

func TestGateway401WithoutRefreshToken(t *testing.T) {
	f := setupTestFixture(t, requireFreshToken)
	f.creds = apiclientfakes.NewFakeCredentials("stale", "")
	f.gateway = apiclient.NewGateway(apiclient.NewTransport(f.server.URL+"/api"), f.creds, f.recorder)

	err := f.gateway.Do(context.Background(), apiclient.Request{Path: "/jobs/"}, nil)
	require.True(t, apiclient.IsUnauthorized(err))
	require.Equal(t, []string{apiclient.MsgPleaseLogIn}, f.recorder.Messages())

	refresh, end := f.creds.Calls()
	require.Zero(t, refresh)
	require.Equal(t, 1, end)
}

func TestGateway401RefreshesOnceAndReplays(t *testing.T) {
	f := setupTestFixture(t, requireFreshToken)
	f.creds.RefreshFunc = func(context.Context) (string, error) {
		// no notification may precede the refresh
		require.Empty(t, f.recorder.All())
		return "fresh", nil
	}

	var page apiclient.Page[map[string]any]
	require.NoError(t, f.gateway.Do(context.Background(), apiclient.Request{Path: "/jobs/"}, &page))

	require.Equal(t, 1, page.Count)
	require.Equal(t, int32(2), f.hits.Load())
	refresh, end := f.creds.Calls()
	require.Equal(t, 1, refresh)
	require.Zero(t, end)
	require.Empty(t, f.recorder.All())
}

func TestGateway401WithoutReplay(t *testing.T) {
	f := setupTestFixture(t, requireFreshToken, apiclient.WithReplayAfterRefresh(false))
	f.creds.RefreshFunc = func(context.Context) (string, error) { return "fresh", nil }

	err := f.gateway.Do(context.Background(), apiclient.Request{Path: "/jobs/"}, nil)
	require.True(t, apiclient.IsUnauthorized(err))
	require.Equal(t, int32(1), f.hits.Load())
	require.Equal(t, "fresh", f.creds.AccessToken())
	require.Empty(t, f.recorder.All())
}

func TestGateway401ReplayRejectedAgain(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "nope"})
	})
	f.creds.RefreshFunc = func(context.Context) (string, error) { return "fresh", nil }

	err := f.gateway.Do(context.Background(), apiclient.Request{Path: "/jobs/"}, nil)
	require.True(t, apiclient.IsUnauthorized(err))
	require.Equal(t, int32(2), f.hits.Load())
	require.Equal(t, []string{apiclient.MsgSessionExpired}, f.recorder.Messages())

	refresh, end := f.creds.Calls()
	require.Equal(t, 1, refresh)
	require.Equal(t, 1, end)
}

func TestGatewayRefreshFailureHandledBySession(t *testing.T) {
	f := setupTestFixture(t, requireFreshToken)
	f.creds.RefreshFunc = func(context.Context) (string, error) {
		return "", perrors.Wrapf(perrors.ErrRefreshFailed, "backend said no")
	}

	err := f.gateway.Do(context.Background(), apiclient.Request{Path: "/jobs/"}, nil)
	require.True(t, apiclient.IsUnauthorized(err))
	// the session already notified and logged out
	require.Empty(t, f.recorder.All())
	_, end := f.creds.Calls()
	require.Zero(t, end)
}

func TestGatewayRefreshFailureUnhandled(t *testing.T) {
	f := setupTestFixture(t, requireFreshToken)
	f.creds.RefreshFunc = func(context.Context) (string, error) {
		return "", errors.New("boom")
	}

	err := f.gateway.Do(context.Background(), apiclient.Request{Path: "/jobs/"}, nil)
	require.True(t, apiclient.IsUnauthorized(err))
	require.Equal(t, []string{apiclient.MsgSessionExpired}, f.recorder.Messages())
	_, end := f.creds.Calls()
	require.Equal(t, 1, end)
}

func TestGatewaySkipsRefreshWhenTokenAlreadyRotated(t *testing.T) {
	var f *testFixture
	f = setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer abc123" {
			// another caller refreshed while this request was in flight
			f.creds.SetAccessToken("fresh")
		}
		requireFreshToken(w, r)
	})

	require.NoError(t, f.gateway.Do(context.Background(), apiclient.Request{Path: "/jobs/"}, nil))
	refresh, _ := f.creds.Calls()
	require.Zero(t, refresh)
	require.Equal(t, int32(2), f.hits.Load())
}

func TestGatewayCancelledContextIsNotNotified(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, nil)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.gateway.Do(ctx, apiclient.Request{Path: "/jobs/"}, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, f.recorder.All())
}

func TestGatewayRefreshWaitAbandonedKeepsSession(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"canceled", context.Canceled},
		{"deadline", context.DeadlineExceeded},
		{"session already ended", perrors.Wrapf(perrors.ErrNotLoggedIn, "session ended during refresh")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := setupTestFixture(t, requireFreshToken)
			f.creds.RefreshFunc = func(context.Context) (string, error) {
				return "", tc.err
			}

			err := f.gateway.Do(context.Background(), apiclient.Request{Path: "/jobs/"}, nil)
			require.True(t, apiclient.IsUnauthorized(err))
			require.Empty(t, f.recorder.All())
			_, end := f.creds.Calls()
			require.Zero(t, end)
			require.Equal(t, int32(1), f.hits.Load())
		})
	}
}

func TestGatewayCancelledDuringRefreshDoesNotReplay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := setupTestFixture(t, requireFreshToken)
	f.creds.RefreshFunc = func(context.Context) (string, error) {
		cancel()
		return "fresh", nil
	}

	err := f.gateway.Do(ctx, apiclient.Request{Path: "/jobs/"}, nil)
	require.True(t, apiclient.IsUnauthorized(err))
	require.Equal(t, int32(1), f.hits.Load())
	require.Empty(t, f.recorder.All())
}
