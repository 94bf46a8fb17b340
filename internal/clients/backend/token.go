package backend

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reports the expiry of a backend auth token when the token
// is a JWT carrying an exp claim. Opaque or malformed tokens report no
// expiry rather than an error; the signature is deliberately not
// verified; the client only schedules a re-login prompt with this.
func TokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenExpired reports whether a JWT token is past its exp claim.
// Opaque tokens are never considered expired.
func TokenExpired(token string) bool {
	exp, ok := TokenExpiry(token)
	return ok && time.Now().After(exp)
}
