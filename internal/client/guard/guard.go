// Package guard decides whether a client view may be entered given the
// current session.
package guard

// Requirement is the access rule a route declares.
type Requirement int

const (
	// Open routes are reachable in any session state.
	Open Requirement = iota
	// RequiresAuth routes need a logged-in session.
	RequiresAuth
	// GuestOnly routes are for logged-out sessions.
	GuestOnly
)

// Route names.
const (
	RouteRoot         = "root"
	RouteRegister     = "register"
	RouteLogin        = "login"
	RouteTransactions = "transactions"
	RouteNewTx        = "transactions-new"
	RouteMe           = "me"
	RouteLogout       = "logout"

	// LandingRoute is where logged-in users are sent from guest-only views.
	LandingRoute = RouteTransactions
)

// Route describes a navigation target.
type Route struct {
	Name        string
	Path        string
	Requirement Requirement
}

// Decision is the outcome of Decide. When Allowed is false, Redirect names
// the route to go to instead.
type Decision struct {
	Allowed  bool
	Redirect string
	// ReturnTo is the path to resume after logging in.
	ReturnTo string
}

// LoginState reports whether a session is authenticated.
type LoginState interface {
	IsLoggedIn() bool
}

// Decide applies the route's requirement to the session. It has no side
// effects.
func Decide(route Route, session LoginState) Decision {
	loggedIn := session.IsLoggedIn()

	switch {
	case route.Requirement == RequiresAuth && !loggedIn:
		return Decision{Redirect: RouteLogin, ReturnTo: route.Path}
	case route.Requirement == GuestOnly && loggedIn:
		return Decision{Redirect: LandingRoute}
	default:
		return Decision{Allowed: true}
	}
}

// Routes is the client's route table.
var Routes = []Route{
	{Name: RouteRoot, Path: "/", Requirement: GuestOnly},
	{Name: RouteRegister, Path: "/register", Requirement: GuestOnly},
	{Name: RouteLogin, Path: "/login", Requirement: GuestOnly},
	{Name: RouteTransactions, Path: "/transactions", Requirement: RequiresAuth},
	{Name: RouteNewTx, Path: "/transactions/new", Requirement: RequiresAuth},
	{Name: RouteMe, Path: "/me", Requirement: RequiresAuth},
	{Name: RouteLogout, Path: "/logout", Requirement: RequiresAuth},
}

// Lookup finds a route by name.
func Lookup(name string) (Route, bool) {
	for _, r := range Routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// LookupPath finds a route by path.
func LookupPath(path string) (Route, bool) {
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}
