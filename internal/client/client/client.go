package client

import (
	"context"

	"github.com/dmitrijs2005/onboarder/internal/client/models"
)

// Client is the contract of the onboarding REST API. Methods that act on
// behalf of a user take the bearer token explicitly; the session store owns it.
type Client interface {
	SignIn(ctx context.Context, email, password string) (*models.AuthResult, error)
	SignUp(ctx context.Context, email, password string) (*models.AuthResult, error)
	GetUser(ctx context.Context, token string) (*models.UserStatus, error)

	GetOnboarding(ctx context.Context, token string) (*models.OnboardingState, error)
	SubmitOnboarding(ctx context.Context, token string, sub models.OnboardingSubmission) (*models.UserStatus, error)
	GetOnboardingInfo(ctx context.Context) (int, error)
	SetStepCount(ctx context.Context, stepCount int) error

	GetAdminConfig(ctx context.Context) (*models.OnboardingConfig, error)
	PutAdminConfig(ctx context.Context, components []models.OnboardingComponent) error

	ListUsers(ctx context.Context) ([]models.UserProfile, error)
}
