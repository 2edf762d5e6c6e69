package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
)

// Session holds the current authenticated identity, or none. Every other
// component reads it; only sign-in and sign-out write it.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *models.User
	store *TokenStore

	listeners []func(signedIn bool)
}

func New(store *TokenStore) *Session {

	s := &Session{store: store}

	if store == nil {
		return s
	}

	state, err := store.Load()
	if err != nil {
		slog.Warn("Failed to load persisted session", slog.String("error", err.Error()))
		return s
	}

	if state == nil || state.Token == "" {
		return s
	}

	if expired(state.Token) {
		slog.Info("Persisted token expired, discarding")

		if err := store.Clear(); err != nil {
			slog.Warn("Failed to clear stale session", slog.String("error", err.Error()))
		}

		return s
	}

	s.token = state.Token
	s.user = state.User

	return s
}

// Token implements api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token != ""
}

// OnAuthChange registers a listener for signed-in/signed-out transitions.
// The cart session uses this to fetch on sign-in and drop its snapshot on
// sign-out.
func (s *Session) OnAuthChange(fn func(signedIn bool)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Session) SignIn(token string, user *models.User) {

	s.mu.Lock()
	s.token = token
	s.user = user
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Save(&persistedState{Token: token, User: user}); err != nil {
			slog.Warn("Failed to persist session", slog.String("error", err.Error()))
		}
	}

	for _, fn := range listeners {
		fn(true)
	}
}

func (s *Session) SignOut() {
	s.clear(true)
}

// Expire is the unauthorized hook: any API call answered with a 401 clears
// the stored credential, forcing a fresh sign-in.
func (s *Session) Expire() {
	s.clear(true)
}

func (s *Session) clear(notify bool) {

	s.mu.Lock()
	wasSignedIn := s.token != ""
	s.token = ""
	s.user = nil
	listeners := append([]func(bool){}, s.listeners...)
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			slog.Warn("Failed to clear persisted session", slog.String("error", err.Error()))
		}
	}

	if notify && wasSignedIn {
		for _, fn := range listeners {
			fn(false)
		}
	}
}

// expired reads the expiry claim without verifying the signature; the client
// has no signing key, and the backend re-checks every request anyway.
func expired(token string) bool {

	claims := &models.Claims{}

	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}

	if claims.ExpiresAt == nil {
		return false
	}

	return claims.ExpiresAt.Time.Before(time.Now())
}
