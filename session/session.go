package session

import (
	"sync"

	"github.com/jrsteele09/go-kin-bridge/claims"
	"github.com/jrsteele09/go-kin-bridge/kinerrors"
)

const notStartedMessage = "Kin not started, use kin.start(...) first"

// Session holds the credentials and onboarding state for the one active user of a bridge
// instance. It lives for the life of the bridge and is never reset implicitly.
type Session struct {
	lock           sync.RWMutex
	credentials    Credentials
	hasCredentials bool
	onboarded      bool
	identity       claims.Identity
}

func New() *Session {
	return &Session{}
}

// SetCredentials validates creds and, only if they are valid, replaces the stored credentials.
// A failed call leaves the previous credentials untouched.
func (s *Session) SetCredentials(creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	if creds.SigningServiceOAuth2 != nil {
		o := *creds.SigningServiceOAuth2
		o.Scopes = append([]string(nil), o.Scopes...)
		creds.SigningServiceOAuth2 = &o
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.credentials = creds
	s.hasCredentials = true
	return nil
}

// Credentials returns a snapshot of the stored credentials.
func (s *Session) Credentials() (Credentials, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.credentials, s.hasCredentials
}

// RequireCredentials fails when SetCredentials has never succeeded.
func (s *Session) RequireCredentials() (Credentials, error) {
	creds, ok := s.Credentials()
	if !ok {
		return Credentials{}, kinerrors.New(kinerrors.Configuration, "credentials not set, use kin.setCredentials(...) first")
	}
	return creds, nil
}

// MarkOnboarded records a completed start sequence for userID.
func (s *Session) MarkOnboarded(userID, username string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.onboarded = true
	s.identity = claims.Identity{UserID: userID, Username: username}
}

func (s *Session) IsOnboarded() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.onboarded
}

// Identity returns the logged-in user, empty before onboarding.
func (s *Session) Identity() claims.Identity {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.identity
}

// RequireOnboarded guards every operation that needs a started ledger.
func (s *Session) RequireOnboarded() error {
	if !s.IsOnboarded() {
		return kinerrors.New(kinerrors.Precondition, notStartedMessage)
	}
	return nil
}

// Reset ends the logged-in session; credentials are kept.
func (s *Session) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.onboarded = false
	s.identity = claims.Identity{}
}
