// Package directory backs the operator data surface: a background poll of
// the user list and the formatting used to print it.
package directory

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/onboarder/internal/client/client"
	"github.com/dmitrijs2005/onboarder/internal/client/models"
	"github.com/dmitrijs2005/onboarder/internal/logging"
)

const DefaultInterval = 5 * time.Second

type Lister interface {
	ListUsers(ctx context.Context) ([]models.UserProfile, error)
}

// Snapshot is the latest state of the directory. Users holds the last list
// that was fetched successfully; Err the message of the last failure.
type Snapshot struct {
	Users     []models.UserProfile
	Err       string
	UpdatedAt time.Time
}

// Watcher polls the user list. Every tick starts its own request, so slow
// responses may overlap; whichever response arrives last is kept.
type Watcher struct {
	api      Lister
	logger   logging.Logger
	interval time.Duration
	now      func() time.Time

	mu   sync.RWMutex
	snap Snapshot

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewWatcher(api Lister, interval time.Duration, logger logging.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		api:      api,
		logger:   logger.With("component", "directory"),
		interval: interval,
		now:      time.Now,
	}
}

// Start polls once immediately and then on every interval until ctx is
// done or Stop is called. Calling Start on a running watcher restarts it.
func (w *Watcher) Start(ctx context.Context) {
	w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.spawn(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.spawn(ctx)
			}
		}
	}()
}

// Stop cancels polling and waits for in-flight requests to return.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

// Refresh runs a single poll synchronously.
func (w *Watcher) Refresh(ctx context.Context) Snapshot {
	w.poll(ctx)
	return w.Snapshot()
}

func (w *Watcher) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s := w.snap
	s.Users = append([]models.UserProfile(nil), w.snap.Users...)
	return s
}

func (w *Watcher) spawn(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.poll(ctx)
	}()
}

func (w *Watcher) poll(ctx context.Context) {
	users, err := w.api.ListUsers(ctx)
	if ctx.Err() != nil {
		return
	}

	w.mu.Lock()
	if err != nil {
		w.snap.Err = client.Message(err)
	} else {
		w.snap.Users = users
		w.snap.Err = ""
	}
	w.snap.UpdatedAt = w.now()
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn(ctx, "listing users failed", "error", err)
	} else {
		w.logger.Debug(ctx, "user list refreshed", "count", len(users))
	}
}
