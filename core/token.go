package core

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid is returned when a token fails signature or claims checks.
var ErrTokenInvalid = errors.New("token invalid")

// ProfileClaims is the public claim set embedded in an authorization token.
// No password material or internal-only fields are ever included.
type ProfileClaims struct {
	ProfileID         string    `json:"profileId"`
	ProfileCreateDate time.Time `json:"profileCreateDate"`
	ProfileEmail      string    `json:"profileEmail"`
	ProfileHandle     string    `json:"profileHandle"`
	jwt.RegisteredClaims
}

// NewProfileClaims projects the public fields of a profile into a claim set.
func NewProfileClaims(p ProfileRecord) ProfileClaims {
	return ProfileClaims{
		ProfileID:         p.ID,
		ProfileCreateDate: p.CreatedAt,
		ProfileEmail:      p.Email,
		ProfileHandle:     p.Handle,
	}
}

// IssueToken signs the claim set with the session signature using HS256.
// Issuance is deterministic for identical claims and signature; the only
// randomness in the scheme is the signature itself. Token lifetime is bound
// to the session holding the signature, so no expiry claim is set.
func IssueToken(claims ProfileClaims, signature string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(signature))
}

// VerifyToken parses tokenString and validates its HMAC against signature.
// A token only verifies with the signature held by the session that minted
// it; once that session is destroyed the token is permanently unverifiable.
func VerifyToken(tokenString, signature string) (*ProfileClaims, error) {
	claims := &ProfileClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(signature), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
