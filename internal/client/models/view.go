package models

import "fmt"

// View names a screen of the client. Operations that navigate return the
// View the user should land on.
type View string

const (
	ViewNone       View = ""
	ViewWelcome    View = "welcome"
	ViewSignIn     View = "signin"
	ViewSignUp     View = "signup"
	ViewOnboarding View = "onboarding"
	ViewHome       View = "home"
	ViewAdmin      View = "admin"
	ViewData       View = "data"
)

// ParseView accepts a view name as typed on the command line.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewWelcome, ViewSignIn, ViewSignUp, ViewOnboarding, ViewHome, ViewAdmin, ViewData:
		return v, nil
	default:
		return ViewNone, fmt.Errorf("unknown view %q", s)
	}
}

// RequiresSession reports whether the view is only reachable while signed in.
func (v View) RequiresSession() bool {
	return v == ViewOnboarding || v == ViewHome
}

// IsOperatorSurface reports whether the view is one of the unauthenticated
// operator screens that must never trigger a session redirect.
func (v View) IsOperatorSurface() bool {
	return v == ViewAdmin || v == ViewData
}
