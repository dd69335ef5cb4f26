package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/onboarder/internal/client/models"
	"github.com/dmitrijs2005/onboarder/internal/client/onboarding"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

func (a *App) readCredentials() (string, string, error) {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return "", "", err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return "", "", err
	}
	return email, string(password), nil
}

// SignUp shows the sign-up progress bar, prompts for credentials and
// creates the account. On success onboarding starts.
func (a *App) SignUp(ctx context.Context) error {
	a.view = models.ViewSignUp
	total := a.authService.StepCount(ctx)
	printlnFn("Create Account")
	renderProgress(a.out, onboarding.Progress{Current: 1, Total: total})

	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}

	dest, err := a.authService.SignUp(ctx, email, password)
	if err != nil {
		return err
	}
	printlnFn("Account created.")
	a.navigate(ctx, dest)
	return nil
}

// SignIn prompts for credentials and sends the user to onboarding or home,
// whichever the server says.
func (a *App) SignIn(ctx context.Context) error {
	a.view = models.ViewSignIn
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}

	dest, err := a.authService.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	printlnFn("Signed in.")
	a.navigate(ctx, dest)
	return nil
}

// SignOut clears the session and returns to the welcome view.
func (a *App) SignOut(ctx context.Context) error {
	dest, err := a.authService.SignOut(ctx)
	if err != nil {
		return err
	}
	printlnFn("Signed out.")
	a.navigate(ctx, dest)
	return nil
}
