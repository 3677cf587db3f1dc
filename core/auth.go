package core

import (
	"context"
	"net/http"
)

// SignInRequest is the transport-level credential pair. It lives only for
// the duration of one sign-in attempt and is never persisted.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInOutcome tags the terminal state of one sign-in attempt.
type SignInOutcome int

const (
	// SignInSuccess means credentials verified and a session was bound.
	SignInSuccess SignInOutcome = iota
	// SignInFailed means unknown email or wrong password.
	SignInFailed
	// SignInError means a dependency failed unexpectedly.
	SignInError
)

// SignInResult carries exactly the fields the transport needs per outcome.
// Token is set only on success and travels out-of-band (response header),
// never in the JSON body.
type SignInResult struct {
	Outcome SignInOutcome
	Status  int
	Message string
	Token   string
}

const (
	msgSignInSuccess = "Sign in successful"
	msgSignInFailed  = "Email or password is incorrect, please try again."
)

// SignInService composes credential lookup, password verification, token
// issuance, and session binding into the end-to-end sign-in flow.
type SignInService struct {
	profiles   ProfileRepository
	sessions   SessionStore
	signatures SignatureSource
}

func NewSignInService(profiles ProfileRepository, sessions SessionStore, signatures SignatureSource) *SignInService {
	return &SignInService{profiles: profiles, sessions: sessions, signatures: signatures}
}

// SignIn runs one sign-in attempt for the given session id.
//
// Unknown email and wrong password produce the same Failed result, so the
// response never discloses whether an account exists. Session state is
// touched only on the success path: a fresh signature is drawn, a token is
// signed with it, and the (profile, token, signature) triple replaces
// whatever the session held before. All error paths are single-pass with no
// retry and leave no partial record behind.
func (s *SignInService) SignIn(ctx context.Context, sessionID string, req SignInRequest) SignInResult {
	profile, err := s.profiles.FindByEmail(ctx, req.Email)
	if err != nil {
		return SignInResult{Outcome: SignInError, Status: http.StatusInternalServerError, Message: err.Error()}
	}
	if profile == nil || !VerifyPassword(profile.PasswordHash, req.Password) {
		return SignInResult{Outcome: SignInFailed, Status: http.StatusBadRequest, Message: msgSignInFailed}
	}

	signature, err := s.signatures.NewSignature()
	if err != nil {
		return SignInResult{Outcome: SignInError, Status: http.StatusInternalServerError, Message: err.Error()}
	}
	token, err := IssueToken(NewProfileClaims(*profile), signature)
	if err != nil {
		return SignInResult{Outcome: SignInError, Status: http.StatusInternalServerError, Message: err.Error()}
	}

	rec := SessionRecord{Profile: *profile, Token: token, Signature: signature}
	if err := s.sessions.Put(ctx, sessionID, rec); err != nil {
		return SignInResult{Outcome: SignInError, Status: http.StatusInternalServerError, Message: err.Error()}
	}

	return SignInResult{Outcome: SignInSuccess, Status: http.StatusOK, Message: msgSignInSuccess, Token: token}
}

// SignOut destroys the session record, discarding the held signature and
// making any token it signed permanently unverifiable.
func (s *SignInService) SignOut(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
