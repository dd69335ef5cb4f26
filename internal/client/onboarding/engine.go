// Package onboarding implements the onboarding step engine: it loads the
// server-declared components for the user's current step, collects edits
// into a draft profile, validates required fields and submits the step.
//
// The server alone decides step progression. After a successful partial
// submission the engine re-reads the onboarding state instead of moving to
// the next step on its own.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/onboarder/internal/client/client"
	"github.com/dmitrijs2005/onboarder/internal/client/models"
	"github.com/dmitrijs2005/onboarder/internal/logging"
)

var (
	ErrNoSession      = errors.New("not signed in")
	ErrNotReady       = errors.New("onboarding is not awaiting input")
	ErrSubmitInFlight = errors.New("a submission is already in progress")
)

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseAwaitingInput
	PhaseSubmitting
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseAwaitingInput:
		return "awaiting input"
	case PhaseSubmitting:
		return "submitting"
	case PhaseComplete:
		return "complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

type API interface {
	GetOnboarding(ctx context.Context, token string) (*models.OnboardingState, error)
	SubmitOnboarding(ctx context.Context, token string, sub models.OnboardingSubmission) (*models.UserStatus, error)
}

// SessionStore is the part of the session the engine depends on.
type SessionStore interface {
	Token() string
	UpdateUser(ctx context.Context, user models.UserProfile) error
}

// State is a read-only copy of the engine state for rendering.
type State struct {
	Phase    Phase
	Progress Progress
	Active   []Component
	Draft    models.UserProfile
	Errors   ValidationErrors
}

type Engine struct {
	api     API
	session SessionStore
	logger  logging.Logger
	now     func() time.Time

	mu          sync.Mutex
	phase       Phase
	declared    []models.OnboardingComponent
	profile     models.UserProfile
	draft       models.UserProfile
	currentStep int
	totalSteps  int
	errs        ValidationErrors
}

func NewEngine(api API, session SessionStore, logger logging.Logger) *Engine {
	return &Engine{
		api:     api,
		session: session,
		logger:  logger.With("component", "onboarding"),
		now:     time.Now,
		phase:   PhaseLoading,
	}
}

// Load fetches the onboarding state for the signed-in user and moves the
// engine to AwaitingInput. On failure the error is recorded under
// FieldMessage and the phase is left as it was.
func (e *Engine) Load(ctx context.Context) error {
	token := e.session.Token()
	if token == "" {
		return ErrNoSession
	}

	state, err := e.api.GetOnboarding(ctx, token)
	if err != nil {
		e.mu.Lock()
		e.errs = ValidationErrors{FieldMessage: client.Message(err)}
		if e.phase == PhaseSubmitting {
			e.phase = PhaseAwaitingInput
		}
		e.mu.Unlock()
		e.logger.Error(ctx, "loading onboarding state failed", "error", err)
		return fmt.Errorf("load onboarding: %w", err)
	}

	e.mu.Lock()
	e.declared = append([]models.OnboardingComponent(nil), state.Components...)
	e.profile = state.User
	e.draft = state.User
	e.currentStep = state.CurrentStep
	e.totalSteps = state.TotalStepCount
	e.errs = nil
	e.phase = PhaseAwaitingInput
	e.mu.Unlock()

	e.logger.Debug(ctx, "onboarding state loaded", "step", state.CurrentStep, "total", state.TotalStepCount, "components", len(state.Components))
	return nil
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	var errs ValidationErrors
	if len(e.errs) > 0 {
		errs = make(ValidationErrors, len(e.errs))
		for k, v := range e.errs {
			errs[k] = v
		}
	}
	return State{
		Phase:    e.phase,
		Progress: Progress{Current: e.currentStep, Total: e.totalSteps},
		Active:   Resolve(e.declared, e.currentStep),
		Draft:    e.draft,
		Errors:   errs,
	}
}

func (e *Engine) Progress() Progress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Progress{Current: e.currentStep, Total: e.totalSteps}
}

// Active returns the components rendered at the current step.
func (e *Engine) Active() []Component {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Resolve(e.declared, e.currentStep)
}

// Edit merges patch into the draft; keys the patch leaves nil are kept.
func (e *Engine) Edit(patch models.ProfilePatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseAwaitingInput {
		return ErrNotReady
	}
	e.draft = e.draft.Apply(patch)
	return nil
}

func (e *Engine) EditAboutMe(text string) error {
	return e.Edit(models.ProfilePatch{AboutMe: &text})
}

// EditBirthDate runs value through the birth date input before storing it.
func (e *Engine) EditBirthDate(value string) error {
	date, err := ParseBirthDate(value, e.now())
	if err != nil {
		return err
	}
	return e.Edit(models.ProfilePatch{BirthDate: &date})
}

// EditAddress writes the address sub-fields present in patch.
func (e *Engine) EditAddress(patch models.ProfilePatch) error {
	return e.Edit(models.ProfilePatch{
		Address: patch.Address,
		City:    patch.City,
		State:   patch.State,
		Zip:     patch.Zip,
	})
}

// Validate checks the draft against the components of the current step and
// records the result.
func (e *Engine) Validate() ValidationErrors {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errs = Validate(Resolve(e.declared, e.currentStep), e.draft)
	return e.errs
}

// Submit validates and sends the current step. It returns the view the user
// belongs on afterwards: ViewHome once the server reports onboarding
// complete, ViewOnboarding while steps remain.
//
// Validation failures are returned as ValidationErrors and nothing is sent.
// Transport and server failures leave the engine at the same step with the
// draft intact.
func (e *Engine) Submit(ctx context.Context) (models.View, error) {
	e.mu.Lock()
	switch e.phase {
	case PhaseSubmitting:
		e.mu.Unlock()
		return models.ViewNone, ErrSubmitInFlight
	case PhaseAwaitingInput:
	default:
		e.mu.Unlock()
		return models.ViewNone, ErrNotReady
	}

	token := e.session.Token()
	if token == "" {
		e.mu.Unlock()
		return models.ViewNone, ErrNoSession
	}

	if errs := Validate(Resolve(e.declared, e.currentStep), e.draft); errs != nil {
		e.errs = errs
		e.mu.Unlock()
		return models.ViewNone, errs
	}

	step := e.currentStep
	sub := models.OnboardingSubmission{
		User:       e.draft,
		Components: append([]models.OnboardingComponent(nil), e.declared...),
	}
	e.errs = nil
	e.phase = PhaseSubmitting
	e.mu.Unlock()

	status, err := e.api.SubmitOnboarding(ctx, token, sub)
	if err != nil {
		e.mu.Lock()
		e.errs = ValidationErrors{FieldMessage: client.Message(err)}
		e.phase = PhaseAwaitingInput
		e.mu.Unlock()
		e.logger.Error(ctx, "onboarding step submission failed", "step", step, "error", err)
		return models.ViewNone, fmt.Errorf("submit onboarding step %d: %w", step, err)
	}

	if err := e.session.UpdateUser(ctx, status.User); err != nil {
		e.logger.Error(ctx, "saving profile locally failed", "error", err)
	}

	e.mu.Lock()
	e.profile = status.User
	e.draft = status.User
	if status.HasCompletedOnboarding {
		e.phase = PhaseComplete
		e.mu.Unlock()
		e.logger.Info(ctx, "onboarding complete", "step", step)
		return models.ViewHome, nil
	}
	e.mu.Unlock()

	e.logger.Info(ctx, "onboarding step submitted", "step", step)
	if err := e.Load(ctx); err != nil {
		return models.ViewOnboarding, err
	}
	return models.ViewOnboarding, nil
}
