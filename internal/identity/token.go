// Package identity implements the credential side of the API: user
// registration, login, and bearer-token issuance and validation.
// Tours and steps know users only by ID; everything credential-shaped
// stays in this package.
package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	// ErrInvalidToken covers malformed, tampered, and incomplete tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned for structurally valid tokens past exp.
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the payload carried inside a signed token. Subject is the
// user ID, which the rest of the system trusts for exactly one request.
type Claims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Exp     int64  `json:"exp"`
}

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// TokenManager signs and verifies HS256 JWTs. Now is swappable so tests
// can control the clock.
type TokenManager struct {
	Secret []byte
	Now    func() time.Time
	TTL    time.Duration
}

// NewTokenManager constructs a TokenManager with a real clock.
func NewTokenManager(secret string, ttl time.Duration) TokenManager {
	return TokenManager{
		Secret: []byte(secret),
		Now:    func() time.Time { return time.Now().UTC() },
		TTL:    ttl,
	}
}

// Sign issues a token for the given user that expires after the
// manager's TTL.
func (m TokenManager) Sign(userID, email string) (string, error) {
	h := header{Alg: "HS256", Typ: "JWT"}
	payload := Claims{
		Subject: userID,
		Email:   email,
		Exp:     m.Now().Add(m.TTL).Unix(),
	}

	hb, err := json.Marshal(h)
	if err != nil {
		return "", err
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	hEnc := base64.RawURLEncoding.EncodeToString(hb)
	pEnc := base64.RawURLEncoding.EncodeToString(pb)
	signed := hEnc + "." + pEnc
	sig := signHS256([]byte(signed), m.Secret)
	return signed + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Parse verifies a token's signature and expiry and returns its claims.
func (m TokenManager) Parse(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrInvalidToken
	}

	signed := parts[0] + "." + parts[1]
	expected := signHS256([]byte(signed), m.Secret)
	gotSig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	if !hmac.Equal(expected, gotSig) {
		return Claims{}, ErrInvalidToken
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if claims.Subject == "" || claims.Exp == 0 {
		return Claims{}, ErrInvalidToken
	}
	if m.Now().Unix() >= claims.Exp {
		return Claims{}, ErrExpiredToken
	}
	return claims, nil
}

func signHS256(data, secret []byte) []byte {
	h := hmac.New(sha256.New, secret)
	h.Write(data)
	return h.Sum(nil)
}

// BearerToken extracts the token from an Authorization header value.
// Returns "" if the header is missing or not a Bearer scheme.
func BearerToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
