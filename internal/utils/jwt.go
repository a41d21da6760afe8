package utils // package utils provides helpers for token creation and senha hashing

import (
	"errors"
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned by ParseAccessToken for any token that cannot
// be accepted: bad signature, malformed payload or past expiry.  Callers do
// not need to distinguish the cases; every one of them means "log in again".
var ErrInvalidToken = errors.New("invalid or expired token")

// AccessToken represents a signed JWT access token along with its expiry.
// Access tokens are short-lived (one hour by default) and carried in the
// Authorization header when calling protected endpoints.  There is no
// refresh flow: an expired token is replaced by logging in again.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Claims is the decoded identity carried by a valid access token.
type Claims struct {
	UserID  uint64 // subject: the users.id of the authenticated account
	EhAdmin bool   // whether the account has admin rights
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID, the admin flag and a TTL in minutes, and
// returns the signed token together with its expiration time.  The JWT
// carries the subject (sub), the ehAdmin flag, expiration (exp) and issued
// at (iat).
func NewAccessToken(secret string, userID uint64, ehAdmin bool, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":     userID,
		"ehAdmin": ehAdmin,
		"exp":     exp.Unix(),
		"iat":     now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies signature and expiry of a serialized token and
// extracts its identity claims.  Only HMAC-signed tokens are accepted; a
// token signed with any other method is rejected even when its payload looks
// plausible.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	// Numeric JSON claims decode as float64.
	sub, ok := mc["sub"].(float64)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	ehAdmin, _ := mc["ehAdmin"].(bool)
	return Claims{UserID: uint64(sub), EhAdmin: ehAdmin}, nil
}
