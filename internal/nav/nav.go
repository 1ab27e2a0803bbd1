// Package nav defines the navigation commands controllers hand back to the
// view layer. Session logic never performs a redirect itself; it reports the
// route and the view moves there.
package nav

import (
	"errors"

	"github.com/docchat/docchat-cli/internal/errs"
)

// Route is a client-visible navigable path.
type Route string

const (
	RouteLanding   Route = "/"
	RouteLogin     Route = "/login"
	RouteSignup    Route = "/signup"
	RouteDashboard Route = "/dashboard"
	RouteChat      Route = "/chatpage"
)

// Resolve maps a controller error to the route the view must move to.
// Session expiry forces the login screen; any other failure keeps the
// current view (reported via banner or chat message instead).
func Resolve(err error) (Route, bool) {
	if errors.Is(err, errs.ErrSessionExpired) {
		return RouteLogin, true
	}
	return "", false
}
