package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims mirrors the access token payload issued by the dashboard backend.
// The import service never trusts these claims; they only attribute log lines.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Actor returns the most specific identity present in the claims.
func (c *JWTClaims) Actor() string {
	if c == nil {
		return ""
	}
	switch {
	case c.UserID != "":
		return c.UserID
	case c.Username != "":
		return c.Username
	case c.Subject != "":
		return c.Subject
	default:
		return c.Email
	}
}
