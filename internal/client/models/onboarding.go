package models

// Names of the onboarding components the client knows how to collect.
const (
	ComponentAboutMe   = "aboutMe"
	ComponentAddress   = "address"
	ComponentBirthDate = "birthDate"
)

// OnboardingComponent declares that component Name is shown at StepIndex
// when IsActive is set.
type OnboardingComponent struct {
	Name      string `json:"name"`
	StepIndex int    `json:"stepIndex"`
	IsActive  bool   `json:"isActive"`
}

// OnboardingState is the per-user view of onboarding returned by the server.
type OnboardingState struct {
	Components     []OnboardingComponent
	User           UserProfile
	CurrentStep    int
	TotalStepCount int
}

// OnboardingConfig is the global onboarding configuration edited by admins.
type OnboardingConfig struct {
	Components     []OnboardingComponent `json:"onboardingComponents"`
	TotalStepCount int                   `json:"totalStepCount"`
}

// OnboardingSubmission is the body of an onboarding step submission.
type OnboardingSubmission struct {
	User       UserProfile           `json:"user"`
	Components []OnboardingComponent `json:"onboardingComponents"`
}
