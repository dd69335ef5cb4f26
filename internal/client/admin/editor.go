// Package admin implements the onboarding configuration editor used by the
// operator surface. It keeps a draft of the component declarations, lets the
// operator move a component to another step or switch it off, and replaces
// the server configuration with the whole draft on save.
package admin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/onboarder/internal/client/client"
	"github.com/dmitrijs2005/onboarder/internal/client/models"
	"github.com/dmitrijs2005/onboarder/internal/logging"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	MsgSaved            = "Configuration saved successfully"
	MsgStepCountUpdated = "Step count updated successfully"

	msgLoadFailed      = "Error loading configuration"
	msgSaveFailed      = "Error saving configuration"
	msgStepCountFailed = "Error updating step count"
)

var (
	ErrNotLoaded         = errors.New("configuration is not loaded")
	ErrInvalidStep       = errors.New("step must be between 1 and the total step count")
	ErrInvalidStepCount  = errors.New("step count must be at least 1")
	ErrStepCountInFlight = errors.New("a step count update is already in progress")
)

type API interface {
	GetAdminConfig(ctx context.Context) (*models.OnboardingConfig, error)
	PutAdminConfig(ctx context.Context, components []models.OnboardingComponent) error
	SetStepCount(ctx context.Context, stepCount int) error
}

// Banner is the outcome message of the last editor action. At most one of
// the two is set.
type Banner struct {
	Error   string
	Success string
}

type Editor struct {
	api    API
	logger logging.Logger

	mu            sync.Mutex
	loaded        bool
	components    []models.OnboardingComponent
	known         []string
	total         int
	banner        Banner
	updatingSteps bool
}

func NewEditor(api API, logger logging.Logger) *Editor {
	return &Editor{
		api:    api,
		logger: logger.With("component", "admin"),
	}
}

// Load fetches the configuration and derives the known component names.
// The known names stay fixed until the next Load, so a component that is
// unchecked everywhere can still be checked again.
func (e *Editor) Load(ctx context.Context) error {
	cfg, err := e.api.GetAdminConfig(ctx)
	if err != nil {
		e.setBanner(Banner{Error: bannerMessage(err, msgLoadFailed)})
		e.logger.Error(ctx, "loading configuration failed", "error", err)
		return fmt.Errorf("load admin config: %w", err)
	}

	seen := make(map[string]struct{}, len(cfg.Components))
	known := make([]string, 0, len(cfg.Components))
	for _, c := range cfg.Components {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		known = append(known, c.Name)
	}
	sort.Strings(known)

	e.mu.Lock()
	e.components = append([]models.OnboardingComponent(nil), cfg.Components...)
	e.known = known
	e.total = cfg.TotalStepCount
	e.banner = Banner{}
	e.loaded = true
	e.mu.Unlock()

	e.logger.Debug(ctx, "configuration loaded", "components", len(cfg.Components), "total", cfg.TotalStepCount)
	return nil
}

// Toggle removes every declaration of name and, when checked, appends an
// active declaration at step. A name therefore has at most one active
// declaration after any toggle.
func (e *Editor) Toggle(step int, name string, checked bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		return ErrNotLoaded
	}
	if step < 1 || step > e.total {
		return ErrInvalidStep
	}

	e.banner = Banner{}
	next := make([]models.OnboardingComponent, 0, len(e.components)+1)
	for _, c := range e.components {
		if c.Name != name {
			next = append(next, c)
		}
	}
	if checked {
		next = append(next, models.OnboardingComponent{Name: name, StepIndex: step, IsActive: true})
	}
	e.components = next
	return nil
}

// IsChecked reports whether name is active at step in the draft.
func (e *Editor) IsChecked(step int, name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.components {
		if c.Name == name && c.StepIndex == step && c.IsActive {
			return true
		}
	}
	return false
}

// Save replaces the server configuration with the draft.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	if !e.loaded {
		e.mu.Unlock()
		return ErrNotLoaded
	}
	e.banner = Banner{}
	draft := append([]models.OnboardingComponent(nil), e.components...)
	e.mu.Unlock()

	if err := e.api.PutAdminConfig(ctx, draft); err != nil {
		e.setBanner(Banner{Error: bannerMessage(err, msgSaveFailed)})
		e.logger.Error(ctx, "saving configuration failed", "error", err)
		return fmt.Errorf("save admin config: %w", err)
	}

	e.setBanner(Banner{Success: MsgSaved})
	e.logger.Info(ctx, "configuration saved", "components", len(draft))
	return nil
}

// SetStepCount changes the number of onboarding steps. Declarations are
// left as they are, including ones now beyond the last step.
func (e *Editor) SetStepCount(ctx context.Context, n int) error {
	if n < 1 {
		return ErrInvalidStepCount
	}

	e.mu.Lock()
	if e.updatingSteps {
		e.mu.Unlock()
		return ErrStepCountInFlight
	}
	e.updatingSteps = true
	e.banner = Banner{}
	e.mu.Unlock()

	err := e.api.SetStepCount(ctx, n)

	e.mu.Lock()
	e.updatingSteps = false
	if err != nil {
		e.banner = Banner{Error: bannerMessage(err, msgStepCountFailed)}
		e.mu.Unlock()
		e.logger.Error(ctx, "updating step count failed", "count", n, "error", err)
		return fmt.Errorf("set step count: %w", err)
	}
	e.total = n
	e.banner = Banner{Success: MsgStepCountUpdated}
	e.mu.Unlock()

	e.logger.Info(ctx, "step count updated", "count", n)
	return nil
}

func (e *Editor) Components() []models.OnboardingComponent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.OnboardingComponent(nil), e.components...)
}

func (e *Editor) KnownNames() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.known...)
}

func (e *Editor) TotalStepCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.total
}

func (e *Editor) Banner() Banner {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.banner
}

func (e *Editor) UpdatingSteps() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.updatingSteps
}

// Label is the display form of a component name: "aboutMe" becomes "AboutMe".
func Label(name string) string {
	return cases.Title(language.Und, cases.NoLower).String(name)
}

func (e *Editor) setBanner(b Banner) {
	e.mu.Lock()
	e.banner = b
	e.mu.Unlock()
}

// bannerMessage prefers the server's own message and falls back to the
// action's generic text.
func bannerMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
