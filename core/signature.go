package core

import "github.com/google/uuid"

// SignatureSource yields the per-session secret used to sign authorization
// tokens. It is an injectable capability so tests can substitute a fixed
// source; production draws from a cryptographically secure generator.
type SignatureSource interface {
	NewSignature() (string, error)
}

// RandomSignatureSource issues a fresh uuid v4 per call. A new signature is
// drawn once per successful sign-in and never derived from profile data, so
// destroying the session that holds it revokes every token it signed.
type RandomSignatureSource struct{}

func (RandomSignatureSource) NewSignature() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
