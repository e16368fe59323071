package auth

// Route identifiers the session core redirects to.
const (
	PathLogin      = "/login"
	PathDashboard  = "/dashboard"
	PathTimesheets = "/timesheets"
	PathOnboarding = "/onboarding/create-organization"
)

// User is the identity shown in the UI.
type User struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// ResolveUser derives the user from the token claims.
// It returns nil when the token is empty, undecodable or has no subject.
func ResolveUser(token string) *User {
	claims := Decode(token)
	if claims == nil {
		return nil
	}

	userID := stringClaim(claims, ClaimSubject, ClaimSubjectLegacy)
	if userID == "" {
		return nil
	}

	return &User{
		UserID: userID,
		Email:  stringClaim(claims, ClaimEmail, ClaimEmailLegacy),
	}
}

// ResolveRoles returns the normalized roles carried by the token.
func ResolveRoles(token string) RoleSet {
	claims := Decode(token)
	if claims == nil {
		return RoleSet{}
	}
	return NormalizeRoles(claims[ClaimRoleLegacy], claims[ClaimRole], claims[ClaimRoles])
}

func IsRestrictedRole(token string) bool {
	return ResolveRoles(token).Restricted()
}

// LandingPath is where a freshly authenticated user is sent.
func LandingPath(token string) string {
	if IsRestrictedRole(token) {
		return PathTimesheets
	}
	return PathDashboard
}
