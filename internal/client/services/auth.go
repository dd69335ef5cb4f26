// Package services contains application services for the onboarding client.
// This file defines the authentication service: sign-in, sign-up, sign-out
// and the public onboarding info shown before an account exists.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/onboarder/internal/client/client"
	"github.com/dmitrijs2005/onboarder/internal/client/models"
	"github.com/dmitrijs2005/onboarder/internal/logging"
)

// DefaultStepCount is shown on the sign-up progress bar when the server
// cannot be asked.
const DefaultStepCount = 3

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - SignIn: authenticate, store the session and return onboarding or home.
//   - SignUp: create the account, store the session and return onboarding.
//   - SignOut: forget the token and return welcome.
//   - StepCount: total onboarding steps for the sign-up progress bar.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (models.View, error)
	SignUp(ctx context.Context, email, password string) (models.View, error)
	SignOut(ctx context.Context) (models.View, error)
	StepCount(ctx context.Context) int
}

// SessionWriter is the part of the session store the service mutates.
type SessionWriter interface {
	SetAuth(ctx context.Context, token string, user models.UserProfile) error
	ClearAuth(ctx context.Context) error
}

// authService is the concrete AuthService backed by the REST client and the
// session store.
type authService struct {
	client  client.Client
	session SessionWriter
	logger  logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(client client.Client, session SessionWriter, logger logging.Logger) AuthService {
	return &authService{client: client, session: session, logger: logger.With("component", "auth")}
}

func checkCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// SignIn authenticates against the server. Any rejected attempt, or an
// answer without a token, is reported as ErrInvalidCredentials. Transport
// failures are returned wrapped.
func (a *authService) SignIn(ctx context.Context, email, password string) (models.View, error) {
	if err := checkCredentials(email, password); err != nil {
		return models.ViewNone, err
	}

	res, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			a.logger.Info(ctx, "sign in rejected", "email", email, "status", apiErr.StatusCode)
			return models.ViewNone, ErrInvalidCredentials
		}
		return models.ViewNone, fmt.Errorf("sign in error: %w", err)
	}
	if res.Token == "" {
		return models.ViewNone, ErrInvalidCredentials
	}

	if err := a.session.SetAuth(ctx, res.Token, res.User); err != nil {
		return models.ViewNone, fmt.Errorf("session saving error: %w", err)
	}

	a.logger.Info(ctx, "signed in", "email", email, "onboarded", res.HasCompletedOnboarding)
	if res.HasCompletedOnboarding {
		return models.ViewHome, nil
	}
	return models.ViewOnboarding, nil
}

// SignUp creates an account. A new account always starts onboarding.
func (a *authService) SignUp(ctx context.Context, email, password string) (models.View, error) {
	if err := checkCredentials(email, password); err != nil {
		return models.ViewNone, err
	}

	res, err := a.client.SignUp(ctx, email, password)
	if err != nil {
		return models.ViewNone, fmt.Errorf("sign up error: %w", err)
	}
	if res.Token == "" {
		return models.ViewNone, fmt.Errorf("sign up error: %w", &client.APIError{Message: client.DefaultErrorMessage})
	}

	if err := a.session.SetAuth(ctx, res.Token, res.User); err != nil {
		return models.ViewNone, fmt.Errorf("session saving error: %w", err)
	}

	a.logger.Info(ctx, "signed up", "email", email)
	return models.ViewOnboarding, nil
}

// SignOut clears the stored token.
func (a *authService) SignOut(ctx context.Context) (models.View, error) {
	if err := a.session.ClearAuth(ctx); err != nil {
		return models.ViewNone, fmt.Errorf("sign out error: %w", err)
	}
	a.logger.Info(ctx, "signed out")
	return models.ViewWelcome, nil
}

// StepCount asks the server for the number of onboarding steps and falls
// back to DefaultStepCount.
func (a *authService) StepCount(ctx context.Context) int {
	n, err := a.client.GetOnboardingInfo(ctx)
	if err != nil || n < 1 {
		if err != nil {
			a.logger.Warn(ctx, "fetching onboarding info failed", "error", err)
		}
		return DefaultStepCount
	}
	return n
}
