package cli

import (
	"errors"

	"github.com/dmitrijs2005/onboarder/internal/client/client"
	"github.com/dmitrijs2005/onboarder/internal/client/onboarding"
	"github.com/dmitrijs2005/onboarder/internal/client/services"
)

var errSignedOut = errors.New("you need to sign in first")

// errorText turns a command error into the line shown to the user.
func errorText(err error) string {
	var ve onboarding.ValidationErrors
	switch {
	case errors.As(err, &ve):
		return "Please fix the following: " + ve.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, services.ErrEmailRequired):
		return "Email is required"
	case errors.Is(err, services.ErrPasswordRequired):
		return "Password is required"
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) || errors.Is(err, client.ErrUnavailable) {
		return "Error: " + client.Message(err)
	}
	return "Error: " + err.Error()
}
