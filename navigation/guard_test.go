package navigation_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-marketplace-client/navigation"
	"github.com/jrsteele09/go-marketplace-client/users"
)

type staticUser struct {
	user *users.User
}

func (s staticUser) User() *users.User {
	return s.user
}

func TestGuardDecide(t *testing.T) {
	client := &users.User{UserType: users.UserTypeClient}
	admin := &users.User{UserType: users.UserTypeAdmin}
	unknown := &users.User{UserType: "owner"}

	tests := []struct {
		name     string
		user     *users.User
		path     string
		redirect string
	}{
		{"anonymous public", nil, "/about-us", ""},
		{"anonymous home", nil, "/", ""},
		{"anonymous auth-only", nil, "/auth/login", ""},
		{"anonymous auth-only child", nil, "/auth/password-reset-confirm/uid/token", ""},
		{"anonymous protected", nil, "/client/jobs", navigation.RouteLogin},
		{"anonymous public is exact", nil, "/about-us/team", navigation.RouteLogin},
		{"prefix needs a slash", nil, "/auth/registered", navigation.RouteLogin},
		{"client on login", client, "/auth/login", navigation.RouteClientDashboard},
		{"admin on register", admin, "/auth/register", navigation.RouteAdminDashboard},
		{"unknown role on login", unknown, "/auth/login", navigation.RouteHome},
		{"client protected", client, "/client/jobs", ""},
		{"client public", client, "/", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := navigation.NewGuard(staticUser{tc.user}).Decide(tc.path)
			require.Equal(t, tc.redirect == "", d.Allow)
			require.Equal(t, tc.redirect, d.Redirect)
		})
	}
}

func TestDashboardFor(t *testing.T) {
	require.Equal(t, "/freelancer/dashboard", navigation.DashboardFor(users.UserTypeFreelancer))
	require.Equal(t, "/", navigation.DashboardFor(""))
}

func TestGuardMiddleware(t *testing.T) {
	guard := navigation.NewGuard(staticUser{})
	var reached []string
	h := navigation.ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		reached = append(reached, r.URL.Path)
	}, guard.Middleware)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/freelancer/dashboard", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, navigation.RouteLogin, rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/contact-us", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"/contact-us"}, reached)
}

func TestRecorder(t *testing.T) {
	r := navigation.NewRecorder()
	require.Empty(t, r.Last())
	r.NavigateTo("/a")
	r.NavigateTo("/b")
	require.Equal(t, []string{"/a", "/b"}, r.Paths())
	require.Equal(t, "/b", r.Last())
}
