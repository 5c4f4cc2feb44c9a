package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pageza/recipebrowser/internal/types"
)

const (
	// ProfileCookie holds the signed browser profile id
	ProfileCookie = "recipe_profile"
	// ProfileKey is the gin context key of the current profile id
	ProfileKey = "profile_id"

	sessionTTL    = 365 * 24 * time.Hour
	sessionIssuer = "recipebrowser"
)

// Sessions issues and verifies the profile cookie. A profile is an anonymous
// id scoping the stored API key and rate limits to one browser.
type Sessions struct {
	secret []byte
	secure bool
	now    func() time.Time
}

// NewSessions creates a new Sessions instance. secure marks the cookie
// Secure, which browsers only send back over HTTPS.
func NewSessions(secret string, secure bool) *Sessions {
	return &Sessions{secret: []byte(secret), secure: secure, now: time.Now}
}

// Issue signs a token for profileID
func (s *Sessions) Issue(profileID string) (string, error) {
	now := s.now()
	claims := &types.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
		ProfileID: profileID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns its profile id
func (s *Sessions) Parse(tokenString string) (string, error) {
	claims := &types.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("invalid session: %w", err)
	}
	if !token.Valid || claims.ProfileID == "" {
		return "", errors.New("invalid session: missing profile")
	}
	return claims.ProfileID, nil
}

// Middleware resolves the profile of every request. A missing or invalid
// cookie starts a new profile.
func (s *Sessions) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(ProfileCookie); err == nil {
			if profileID, err := s.Parse(raw); err == nil {
				c.Set(ProfileKey, profileID)
				c.Next()
				return
			}
		}

		profileID := uuid.New().String()
		token, err := s.Issue(profileID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to start session"})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(ProfileCookie, token, int(sessionTTL.Seconds()), "/", "", s.secure, true)
		c.Set(ProfileKey, profileID)
		c.Next()
	}
}

// ProfileID returns the profile resolved by Sessions.Middleware, or ""
func ProfileID(c *gin.Context) string {
	return c.GetString(ProfileKey)
}
