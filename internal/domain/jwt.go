package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the claims liftlog reads from an access token. Tokens are
// issued by the account service; only the user id is needed here.
type AccessClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// ResolvedUserID returns the user id, falling back to the standard sub claim.
func (c *AccessClaims) ResolvedUserID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.RegisteredClaims.Subject
}
