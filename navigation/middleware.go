package navigation

import "net/http"

// ChainMiddleware wraps routeFunction so the first middleware runs first.
func ChainMiddleware(routeFunction http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chained := routeFunction
	for i := len(mw) - 1; i >= 0; i-- {
		chained = mw[i](chained)
	}
	return chained
}

// Middleware enforces the guard for server rendered pages.
func (g *Guard) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := g.Decide(r.URL.Path)
		if !d.Allow {
			http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
