package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims represents the claims of the signed profile cookie
type SessionClaims struct {
	jwt.RegisteredClaims
	ProfileID string `json:"profile_id"`
}

// GetAudience implements jwt.Claims
func (c *SessionClaims) GetAudience() (jwt.ClaimStrings, error) {
	return c.RegisteredClaims.GetAudience()
}

// GetExpirationTime implements jwt.Claims
func (c *SessionClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return c.RegisteredClaims.GetExpirationTime()
}

// GetNotBefore implements jwt.Claims
func (c *SessionClaims) GetNotBefore() (*jwt.NumericDate, error) {
	return c.RegisteredClaims.GetNotBefore()
}

// GetIssuedAt implements jwt.Claims
func (c *SessionClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return c.RegisteredClaims.GetIssuedAt()
}

// GetIssuer implements jwt.Claims
func (c *SessionClaims) GetIssuer() (string, error) {
	return c.RegisteredClaims.GetIssuer()
}

// GetSubject implements jwt.Claims
func (c *SessionClaims) GetSubject() (string, error) {
	return c.RegisteredClaims.GetSubject()
}
