package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/internal/service"
	"github.com/jrsteele09/go-marketplace-client/internal/service/servicetest"
)

func TestPathfEscapesStrings(t *testing.T) {
	require.Equal(t, "/jobs/a%2Fb/7/", service.Pathf("/jobs/%s/%d/", "a/b", 7))
	require.Equal(t, "/jobs/logo-design/", service.Pathf("/jobs/%s/", "logo-design"))
}

func TestRunDefaultsToGet(t *testing.T) {
	b := servicetest.NewBackend(t)
	b.Handle(http.MethodGet, "/ping/", http.StatusOK, `{"ok": true}`)
	base := service.NewBase("Ping", b.Gateway, b.Recorder)

	out, err := service.Run[map[string]bool](context.Background(), &base, service.Call{Op: "Ping", Path: "/ping/", Success: "pong"})
	require.NoError(t, err)
	require.True(t, out["ok"])
	require.Equal(t, []string{"pong"}, b.Recorder.Messages())
}

func TestExecWrapsAndNotifies(t *testing.T) {
	b := servicetest.NewBackend(t)
	base := service.NewBase("Ping", b.Gateway, b.Recorder)

	err := service.Exec(context.Background(), &base, service.Call{Op: "Gone", Method: http.MethodDelete, Path: "/gone/", Failure: "Could not remove."})
	require.Error(t, err)
	require.Contains(t, err.Error(), "[Ping.Gone]")
	apiErr, ok := apiclient.AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, []string{"Error: Not found.", "Could not remove."}, b.Recorder.Messages())
}

func TestNilNotifierIsDiscarded(t *testing.T) {
	b := servicetest.NewBackend(t)
	base := service.NewBase("Ping", b.Gateway, nil)

	err := service.Exec(context.Background(), &base, service.Call{Op: "Gone", Path: "/gone/", Failure: "Could not load."})
	require.Error(t, err)
	require.Equal(t, []string{"Error: Not found."}, b.Recorder.Messages())
}

func TestExecCancelledCallerIsNotNotified(t *testing.T) {
	b := servicetest.NewBackend(t)
	b.Handle(http.MethodGet, "/ping/", http.StatusOK, `{}`)
	base := service.NewBase("Ping", b.Gateway, b.Recorder)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := service.Exec(ctx, &base, service.Call{Op: "Ping", Path: "/ping/", Failure: "Could not ping."})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, b.Recorder.Messages())
}
