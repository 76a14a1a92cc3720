package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long a VK sign-in stays valid.
const SessionTTL = 7 * 24 * time.Hour

const sessionIssuer = "presentation-backend"

// ErrInvalidSession is returned when a session token fails verification.
var ErrInvalidSession = errors.New("invalid session token")

// SessionUser is the profile carried inside a session token.
type SessionUser struct {
	VKID       int64  `json:"vk_id"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
	ScreenName string `json:"screen_name,omitempty"`
	Email      string `json:"email,omitempty"`
}

// SessionClaims are the JWT claims of a session token.
type SessionClaims struct {
	SessionUser
	jwt.RegisteredClaims
}

// IssueSession signs an HS256 session token for user valid for SessionTTL.
func IssueSession(user SessionUser, now time.Time, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("session secret is required")
	}
	claims := SessionClaims{
		SessionUser: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatInt(user.VKID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// ParseSession verifies a session token and returns its user.
func ParseSession(tokenString string, now time.Time, secret string) (SessionUser, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return SessionUser{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return claims.SessionUser, nil
}
