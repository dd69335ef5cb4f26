// Package session owns the authentication token and the user profile
// snapshot of the person using the client.
//
// The Store is the single owner of that state: it persists it in the local
// key/value table, restores it at start-up and hands it out through a narrow
// read/update/clear API. Every other component reads the session through the
// Store and never mutates it directly.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/onboarder/internal/client/client"
	"github.com/dmitrijs2005/onboarder/internal/client/models"
	"github.com/dmitrijs2005/onboarder/internal/client/repositories/kv"
	"github.com/dmitrijs2005/onboarder/internal/dbx"
	"github.com/dmitrijs2005/onboarder/internal/logging"
)

// Keys of the persisted session in the kv table.
const (
	TokenKey = "authToken"
	UserKey  = "user"
)

// Session is an immutable snapshot of the active session.
type Session struct {
	AuthToken string
	User      models.UserProfile
}

// UserFetcher returns the authoritative profile for a token.
type UserFetcher interface {
	GetUser(ctx context.Context, token string) (*models.UserStatus, error)
}

type Store struct {
	db     *sql.DB
	api    UserFetcher
	logger logging.Logger
	now    func() time.Time

	mu      sync.RWMutex
	current Session

	restoreMu sync.Mutex
	restored  bool
}

func NewStore(db *sql.DB, api UserFetcher, logger logging.Logger) *Store {
	return &Store{
		db:     db,
		api:    api,
		logger: logger.With("component", "session"),
		now:    time.Now,
	}
}

func (s *Store) repo() kv.Repository {
	return kv.NewSQLiteRepository(s.db)
}

// Restore re-establishes a previously persisted session and tells the caller
// where the user belongs: the onboarding flow or the home view.
//
// It is a no-op on the operator surfaces (admin, data) so those screens are
// never redirected away from, and such a skip does not count as a restore.
// Any other call runs at most once per Store; later calls return ViewNone.
// No stored token also yields ViewNone.
//
// When the profile fetch fails the user is sent home with the last cached
// profile, except for an unauthorized token which is cleared and sends the
// user to the welcome view. The error is returned in both cases.
func (s *Store) Restore(ctx context.Context, current models.View) (models.View, error) {
	if current.IsOperatorSurface() {
		return models.ViewNone, nil
	}

	s.restoreMu.Lock()
	if s.restored {
		s.restoreMu.Unlock()
		return models.ViewNone, nil
	}
	s.restored = true
	s.restoreMu.Unlock()

	repo := s.repo()

	token, err := repo.Get(ctx, TokenKey)
	if err != nil {
		return models.ViewNone, fmt.Errorf("read stored token: %w", err)
	}
	if len(token) == 0 {
		return models.ViewNone, nil
	}

	s.mu.Lock()
	s.current = Session{AuthToken: string(token)}
	s.mu.Unlock()

	if exp, ok := TokenExpiry(string(token)); ok && exp.Before(s.now()) {
		s.logger.Warn(ctx, "stored token looks expired, asking server anyway", "expired_at", exp)
	}

	status, err := s.api.GetUser(ctx, string(token))
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			s.logger.Warn(ctx, "stored token rejected by server")
			if cerr := s.ClearAuth(ctx); cerr != nil {
				s.logger.Error(ctx, "clearing rejected session failed", "error", cerr)
			}
			return models.ViewWelcome, fmt.Errorf("restore session: %w", err)
		}

		s.logger.Error(ctx, "error fetching onboarding status", "error", err)
		if cached, cerr := s.cachedUser(ctx); cerr == nil && cached != nil {
			s.mu.Lock()
			s.current.User = *cached
			s.mu.Unlock()
		}
		return models.ViewHome, fmt.Errorf("restore session: %w", err)
	}

	if err := s.UpdateUser(ctx, status.User); err != nil {
		return models.ViewNone, err
	}

	s.logger.Info(ctx, "session restored", "onboarding_complete", status.HasCompletedOnboarding)
	if status.HasCompletedOnboarding {
		return models.ViewHome, nil
	}
	return models.ViewOnboarding, nil
}

// SetAuth persists token and user in one transaction and activates them.
func (s *Store) SetAuth(ctx context.Context, token string, user models.UserProfile) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, TokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, UserKey, userJSON)
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.current = Session{AuthToken: token, User: user}
	s.mu.Unlock()
	return nil
}

// UpdateUser persists and activates a new profile snapshot; the token is
// left alone.
func (s *Store) UpdateUser(ctx context.Context, user models.UserProfile) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.repo().Set(ctx, UserKey, userJSON); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}

	s.mu.Lock()
	s.current.User = user
	s.mu.Unlock()
	return nil
}

// ClearAuth forgets the persisted token and empties the active session.
// The cached profile stays in storage; without a token it is never used to
// establish a session.
func (s *Store) ClearAuth(ctx context.Context) error {
	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()

	if err := s.repo().Delete(ctx, TokenKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Token() string {
	return s.Snapshot().AuthToken
}

func (s *Store) User() models.UserProfile {
	return s.Snapshot().User
}

func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// TokenExpiry reports the expiry of the active token, if it carries one.
func (s *Store) TokenExpiry() (time.Time, bool) {
	return TokenExpiry(s.Token())
}

func (s *Store) cachedUser(ctx context.Context) (*models.UserProfile, error) {
	b, err := s.repo().Get(ctx, UserKey)
	if err != nil || len(b) == 0 {
		return nil, err
	}
	var u models.UserProfile
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("decode cached user: %w", err)
	}
	return &u, nil
}
