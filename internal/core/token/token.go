// Package token mints and verifies the two JWT kinds used by the API: a
// short-lived access token carried as a bearer credential and a longer-lived
// refresh token carried in an HTTP-only cookie. The two kinds are signed with
// distinct secrets so one can never stand in for the other.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Status is the tagged outcome of a verification.
type Status int

const (
	StatusValid Status = iota
	StatusExpired
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusExpired:
		return "expired"
	default:
		return "invalid"
	}
}

// AccessClaims is the payload of an access token. Roles are a snapshot taken
// at issuance; they refresh when a new access token is minted.
type AccessClaims struct {
	UserID   string   `json:"uid"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// RefreshClaims carries only the user identity. Roles are deliberately
// excluded so the refresh path re-reads them from the store.
type RefreshClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies both token kinds.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// RefreshTTL is exposed so the cookie Max-Age can match the token expiry exactly.
func (i *Issuer) RefreshTTL() time.Duration { return i.refreshTTL }

func (i *Issuer) MintAccess(userID, username string, roles []string) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		UserID:   userID,
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.accessSecret)
}

func (i *Issuer) MintRefresh(userID string) (string, error) {
	now := time.Now().UTC()
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.refreshSecret)
}

// VerifyAccess checks signature and expiry against the access secret.
// Claims are only non-nil when the status is StatusValid.
func (i *Issuer) VerifyAccess(tokenString string) (*AccessClaims, Status) {
	claims := &AccessClaims{}
	status := verify(tokenString, claims, i.accessSecret)
	if status != StatusValid {
		return nil, status
	}
	return claims, StatusValid
}

// VerifyRefresh checks signature and expiry against the refresh secret.
func (i *Issuer) VerifyRefresh(tokenString string) (*RefreshClaims, Status) {
	claims := &RefreshClaims{}
	status := verify(tokenString, claims, i.refreshSecret)
	if status != StatusValid {
		return nil, status
	}
	return claims, StatusValid
}

func verify(tokenString string, claims jwt.Claims, secret []byte) Status {
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return StatusExpired
	case err != nil, !tkn.Valid:
		return StatusInvalid
	}
	return StatusValid
}
