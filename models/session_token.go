package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rohanthewiz/serr"
)

const (
	// SessionTokenIssuer identifies tokens minted by this server.
	SessionTokenIssuer = "cinematch"

	// MinSecretLength is the minimum acceptable length for the signing secret.
	MinSecretLength = 32
)

// SessionClaims carries the browser session id inside a signed cookie.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// SessionSigner issues and verifies HS256 session tokens.
type SessionSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionSigner returns a signer whose tokens live for ttl.
func NewSessionSigner(secret string, ttl time.Duration) (*SessionSigner, error) {
	if len(secret) < MinSecretLength {
		return nil, serr.New("session secret must be at least 32 characters")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionSigner{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token for sessionID.
func (s *SessionSigner) Issue(sessionID string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    SessionTokenIssuer,
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", serr.Wrap(err, "failed to sign session token")
	}
	return signed, nil
}

// Parse verifies tokenString and returns its claims.
// Expired, malformed or foreign tokens are rejected.
func (s *SessionSigner) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, serr.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithIssuer(SessionTokenIssuer))
	if err != nil {
		return nil, serr.Wrap(err, "failed to parse session token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, serr.New("invalid session claims")
	}
	return claims, nil
}
