package auth

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names the backend may put in the token payload.
// The long URI forms are emitted by older identity stacks; both are accepted.
const (
	ClaimSubject       = "sub"
	ClaimSubjectLegacy = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"

	ClaimEmail       = "email"
	ClaimEmailLegacy = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"

	ClaimRole       = "role"
	ClaimRoleLegacy = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
	ClaimRoles      = "roles"
)

// segmentDecoder only decodes base64url segments; it is never used to parse or verify a token.
var segmentDecoder = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode returns the payload claims of a compact token without verifying it.
//
// The result is for display and navigation only. The backend re-authorizes
// every privileged call, so nothing derived here is a security boundary.
// Any malformed input yields nil.
func Decode(token string) jwt.MapClaims {
	parts := strings.Split(token, ".")
	if len(parts) < 2 || parts[1] == "" {
		return nil
	}

	// Accept both base64 alphabets, the way browsers' atob does after translation.
	seg := strings.NewReplacer("+", "-", "/", "_").Replace(parts[1])

	raw, err := segmentDecoder.DecodeSegment(seg)
	if err != nil {
		slog.Debug("token payload is not base64url", "err", err)
		return nil
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		slog.Debug("token payload is not a JSON object", "err", err)
		return nil
	}
	if claims == nil {
		return nil
	}
	return claims
}

// stringClaim returns the value of the first key holding a string, even an
// empty one. Later keys are only consulted when earlier ones are absent or
// not strings.
func stringClaim(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s, ok := claims[k].(string); ok {
			return s
		}
	}
	return ""
}
