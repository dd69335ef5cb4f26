// Package models defines the client-side data shapes exchanged with the
// onboarding API and shared between the session store, the onboarding
// engine and the admin editor.
package models

// UserProfile is the user's profile snapshot. Every field is optional until
// the onboarding component that collects it has been completed.
type UserProfile struct {
	Email     string `json:"email,omitempty"`
	AboutMe   string `json:"aboutMe,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ProfilePatch carries a partial profile edit. Nil fields are left untouched
// when the patch is applied.
type ProfilePatch struct {
	AboutMe   *string
	BirthDate *string
	Address   *string
	City      *string
	State     *string
	Zip       *string
}

// Apply returns a copy of p with the non-nil fields of patch written over it.
func (p UserProfile) Apply(patch ProfilePatch) UserProfile {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.AboutMe, patch.AboutMe)
	set(&p.BirthDate, patch.BirthDate)
	set(&p.Address, patch.Address)
	set(&p.City, patch.City)
	set(&p.State, patch.State)
	set(&p.Zip, patch.Zip)
	return p
}

// Credentials is the body of the sign-in and sign-up requests.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by sign-in and sign-up. Sign-up never reports
// onboarding as complete.
type AuthResult struct {
	Token                  string      `json:"token"`
	HasCompletedOnboarding bool        `json:"hasCompletedOnboarding"`
	User                   UserProfile `json:"user"`
}

// UserStatus is the authoritative profile plus the onboarding flag.
type UserStatus struct {
	HasCompletedOnboarding bool        `json:"hasCompletedOnboarding"`
	User                   UserProfile `json:"user"`
}
