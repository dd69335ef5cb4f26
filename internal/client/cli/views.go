package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/onboarder/internal/client/models"
)

// navigate switches to view v and renders it. Views that need a session
// fall back to welcome when there is none.
func (a *App) navigate(ctx context.Context, v models.View) {
	if v.RequiresSession() && !a.isLoggedIn() {
		v = models.ViewWelcome
	}
	if a.view == models.ViewData && v != models.ViewData {
		a.watcher.Stop()
	}
	a.view = v
	a.logger.Debug(ctx, "view changed", "view", v)

	switch v {
	case models.ViewWelcome:
		printlnFn("Welcome! Type 'signup' to create an account or 'signin' if you already have one.")

	case models.ViewSignIn:
		printlnFn("Type 'signin' to sign in.")

	case models.ViewSignUp:
		printlnFn("Type 'signup' to create an account.")

	case models.ViewOnboarding:
		if err := a.engine.Load(ctx); err != nil {
			printlnFn(errorText(err))
			return
		}
		renderStep(a.out, a.engine.State())
		printlnFn("Type 'onboarding' to fill in this step.")

	case models.ViewHome:
		renderProfile(a.out, a.session.User())
		if exp, ok := a.session.TokenExpiry(); ok {
			renderSessionExpiry(a.out, exp, time.Now())
		}

	case models.ViewAdmin:
		if err := a.editor.Load(ctx); err != nil {
			printlnFn(errorText(err))
			return
		}
		renderAdmin(a.out, a.editor)

	case models.ViewData:
		a.watcher.Start(ctx)
		renderUsers(a.out, a.watcher.Refresh(ctx))
	}
}

// Profile opens the home view.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errSignedOut
	}
	a.navigate(ctx, models.ViewHome)
	return nil
}

// Back leaves the operator views the way the back button did: home when
// signed in, welcome otherwise.
func (a *App) Back(ctx context.Context) error {
	if a.isLoggedIn() {
		a.navigate(ctx, models.ViewHome)
	} else {
		a.navigate(ctx, models.ViewWelcome)
	}
	return nil
}

func (a *App) requireView(v models.View) error {
	if a.view != v {
		return fmt.Errorf("this command is only available in the %s view", v)
	}
	return nil
}
