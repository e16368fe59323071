package session

import "timesheet-web/internal/auth"

// State is the session as seen by one request: the bearer token held by the
// browser and the user derived from it. The zero value is an anonymous session.
type State struct {
	Token string
	User  *auth.User
}

func (s State) Authenticated() bool { return s.Token != "" }

func (s State) Roles() auth.RoleSet { return auth.ResolveRoles(s.Token) }

// Restricted reports whether the session only holds the employee role.
func (s State) Restricted() bool { return auth.IsRestrictedRole(s.Token) }

// Landing is the route this session would land on after signing in.
func (s State) Landing() string { return auth.LandingPath(s.Token) }
