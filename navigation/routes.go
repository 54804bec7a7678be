package navigation

// Route path constants
const (
	RouteHome     = "/"
	RouteContact  = "/contact-us"
	RouteAbout    = "/about-us"
	RouteFAQ      = "/frequently-asked-questions"
	RouteDevtools = "/.well-known/appspecific/com.chrome.devtools.json"

	// Auth routes
	RouteLogin                = "/auth/login"
	RouteRegister             = "/auth/register"
	RouteForgotPassword       = "/auth/forgot-password"
	RouteResetLinkSuccess     = "/auth/reset-link-success"
	RouteResetPassword        = "/auth/reset-password"
	RoutePasswordResetSuccess = "/auth/password-reset-success"
	RoutePasswordResetConfirm = "/auth/password-reset-confirm"

	// Dashboards
	RouteAdminDashboard      = "/admin/dashboard"
	RouteFreelancerDashboard = "/freelancer/dashboard"
	RouteClientDashboard     = "/client/dashboard"
)

// PublicRoutes are reachable by anyone. Matched exactly.
var PublicRoutes = []string{
	RouteHome,
	RouteContact,
	RouteAbout,
	RouteFAQ,
	RouteDevtools,
}

// AuthOnlyRoutes only make sense while logged out. Matched on the route
// itself and anything below it.
var AuthOnlyRoutes = []string{
	RouteLogin,
	RouteRegister,
	RouteForgotPassword,
	RouteResetLinkSuccess,
	RouteResetPassword,
	RoutePasswordResetSuccess,
	RoutePasswordResetConfirm,
}
