package client

import "github.com/dmitrijs2005/onboarder/internal/client/models"

type errorResponse struct {
	Message string `json:"message"`
}

type stepCountRequest struct {
	StepCount int `json:"stepCount"`
}

type onboardingInfoResponse struct {
	TotalStepCount int `json:"totalStepCount"`
}

// componentDTO tolerates servers that answer /onboarding with bare
// {"name": ...} entries scoped to the current step.
type componentDTO struct {
	Name      string `json:"name"`
	StepIndex *int   `json:"stepIndex,omitempty"`
	IsActive  *bool  `json:"isActive,omitempty"`
}

type onboardingResponse struct {
	OnboardingComponents []componentDTO      `json:"onboardingComponents"`
	User                 *models.UserProfile `json:"user"`
	CurrentStep          int                 `json:"currentStep"`
	TotalStepCount       int                 `json:"totalStepCount"`
}

func (r onboardingResponse) toModel() *models.OnboardingState {
	state := &models.OnboardingState{
		Components:     make([]models.OnboardingComponent, 0, len(r.OnboardingComponents)),
		CurrentStep:    r.CurrentStep,
		TotalStepCount: r.TotalStepCount,
	}
	if r.User != nil {
		state.User = *r.User
	}
	for _, c := range r.OnboardingComponents {
		comp := models.OnboardingComponent{Name: c.Name, StepIndex: r.CurrentStep, IsActive: true}
		if c.StepIndex != nil {
			comp.StepIndex = *c.StepIndex
		}
		if c.IsActive != nil {
			comp.IsActive = *c.IsActive
		}
		state.Components = append(state.Components, comp)
	}
	return state
}
