package navigation

import (
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-marketplace-client/users"
)

// UserSource exposes the signed in user, nil when logged out.
type UserSource interface {
	User() *users.User
}

// Decision is the outcome for one navigation. Redirect is empty when allowed.
type Decision struct {
	Allow    bool
	Redirect string
}

type Guard struct {
	users  UserSource
	logger zerolog.Logger
}

func NewGuard(source UserSource) *Guard {
	return &Guard{users: source, logger: log.Logger}
}

func (g *Guard) WithLogger(l zerolog.Logger) *Guard {
	g.logger = l
	return g
}

// Decide applies the rule table to a target path.
func (g *Guard) Decide(path string) Decision {
	user := g.users.User()
	authOnly := IsAuthOnly(path)

	if user != nil && authOnly {
		target := DashboardFor(user.UserType)
		g.logger.Debug().Str("path", path).Str("redirect", target).Msg("logged in, leaving auth-only route")
		return Decision{Redirect: target}
	}
	if user == nil && !authOnly && !IsPublic(path) {
		g.logger.Debug().Str("path", path).Msg("not logged in, redirecting to login")
		return Decision{Redirect: RouteLogin}
	}
	return Decision{Allow: true}
}

// DashboardFor is the landing route of a role.
func DashboardFor(t users.UserType) string {
	switch t {
	case users.UserTypeAdmin:
		return RouteAdminDashboard
	case users.UserTypeFreelancer:
		return RouteFreelancerDashboard
	case users.UserTypeClient:
		return RouteClientDashboard
	default:
		return RouteHome
	}
}

func IsPublic(path string) bool {
	return slices.Contains(PublicRoutes, path)
}

func IsAuthOnly(path string) bool {
	for _, route := range AuthOnlyRoutes {
		if path == route || strings.HasPrefix(path, route+"/") {
			return true
		}
	}
	return false
}
