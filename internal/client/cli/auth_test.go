package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/onboarder/internal/client/models"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	// SignIn / SignUp
	lastEmail    string
	lastPassword string
	signInView   models.View
	signInErr    error
	signUpErr    error

	// SignOut
	signOutCalled bool
	signOutErr    error

	stepCount int
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) (models.View, error) {
	f.lastEmail, f.lastPassword = email, password
	return f.signInView, f.signInErr
}
func (f *fakeAuth) SignUp(_ context.Context, email, password string) (models.View, error) {
	f.lastEmail, f.lastPassword = email, password
	return models.ViewOnboarding, f.signUpErr
}
func (f *fakeAuth) SignOut(context.Context) (models.View, error) {
	f.signOutCalled = true
	return models.ViewWelcome, f.signOutErr
}
func (f *fakeAuth) StepCount(context.Context) int { return f.stepCount }

func stubInputs(t *testing.T, email, password string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return email, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func TestSignUp_PassesCredentials(t *testing.T) {
	captureOutput(t)
	app, _, out := newTestApp(t, models.OnboardingConfig{TotalStepCount: 3})
	f := &fakeAuth{stepCount: 3, signUpErr: errors.New("dup")}
	app.authService = f

	stubInputs(t, "alice@example.org", "secret")

	err := app.SignUp(context.Background())
	require.Error(t, err)
	require.Equal(t, "alice@example.org", f.lastEmail)
	require.Equal(t, "secret", f.lastPassword)
	require.Contains(t, out.String(), "[1]  2   3 ")
	require.Equal(t, models.ViewSignUp, app.view)
}

func TestSignIn_InputError(t *testing.T) {
	captureOutput(t)
	app, _, _ := newTestApp(t, models.OnboardingConfig{})
	f := &fakeAuth{}
	app.authService = f

	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return nil, errors.New("no tty") }
	t.Cleanup(func() { getPassword = orig })
	stubAnswers(t, "a@b.com")

	require.Error(t, app.SignIn(context.Background()))
	require.Empty(t, f.lastEmail)
}

func TestSignOut_ErrorPropagates(t *testing.T) {
	captureOutput(t)
	app, _, _ := newTestApp(t, models.OnboardingConfig{})
	f := &fakeAuth{signOutErr: errors.New("disk")}
	app.authService = f
	app.view = models.ViewHome

	require.Error(t, app.SignOut(context.Background()))
	require.True(t, f.signOutCalled)
	require.Equal(t, models.ViewHome, app.view)
}
