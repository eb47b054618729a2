package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// SessionClaims bind a session token to the app session (subject) and the
// device it was issued to.
type SessionClaims struct {
	Device string `json:"device"`
	jwt.StandardClaims
}

// SessionTokens issues and verifies HS256 session tokens.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionTokens uses secret to sign tokens valid for ttl. An empty
// secret gets a random one, which invalidates tokens on restart.
func NewSessionTokens(secret string, ttl time.Duration) (*SessionTokens, error) {
	key := []byte(secret)
	if len(key) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		key = []byte(hex.EncodeToString(buf))
	}
	return &SessionTokens{secret: key, ttl: ttl}, nil
}

// Issue signs a token for sessionID on deviceID.
func (t *SessionTokens) Issue(sessionID, deviceID string) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(t.ttl)
	claims := SessionClaims{
		Device: deviceID,
		StandardClaims: jwt.StandardClaims{
			Subject:   sessionID,
			IssuedAt:  now.Unix(),
			ExpiresAt: expires.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	return signed, expires, err
}

// Parse validates a token string and returns its claims.
func (t *SessionTokens) Parse(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" || claims.Device == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
