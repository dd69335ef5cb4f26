package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/onboarder/internal/client/models"
	"github.com/dmitrijs2005/onboarder/internal/client/onboarding"
)

// maxBirthDateAttempts bounds re-prompting after invalid birth dates.
const maxBirthDateAttempts = 3

// Onboarding walks through the components of the current step, collecting
// each field, and submits the step.
func (a *App) Onboarding(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errSignedOut
	}
	if a.view != models.ViewOnboarding || a.engine.State().Phase != onboarding.PhaseAwaitingInput {
		a.navigate(ctx, models.ViewOnboarding)
		if a.view != models.ViewOnboarding || a.engine.State().Phase != onboarding.PhaseAwaitingInput {
			return nil
		}
	}

	st := a.engine.State()
	for _, c := range st.Active {
		if err := a.collect(c, st.Draft); err != nil {
			return err
		}
	}

	dest, err := a.engine.Submit(ctx)
	if err != nil {
		var ve onboarding.ValidationErrors
		if errors.As(err, &ve) {
			renderErrors(a.out, ve)
			printlnFn("Type 'onboarding' to try again.")
			return nil
		}
		return err
	}

	if dest == models.ViewHome {
		printlnFn("Onboarding complete!")
		a.navigate(ctx, dest)
		return nil
	}
	// the engine has already reloaded the next step
	renderStep(a.out, a.engine.State())
	printlnFn("Type 'onboarding' to fill in this step.")
	return nil
}

func (a *App) collect(c onboarding.Component, draft models.UserProfile) error {
	switch c.Kind {
	case onboarding.KindAboutMe:
		text, err := getMultiline(a.reader, prompt("About Me", draft.AboutMe), os.Stdout)
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}
		return a.engine.EditAboutMe(text)

	case onboarding.KindAddress:
		var patch models.ProfilePatch
		for _, field := range c.Kind.Fields() {
			label, current, dst := addressField(field, draft, &patch)
			v, err := getSimpleText(a.reader, prompt(label, current), os.Stdout)
			if err != nil {
				return err
			}
			if v != "" {
				*dst = &v
			}
		}
		return a.engine.EditAddress(patch)

	case onboarding.KindBirthDate:
		latest := onboarding.MaxBirthDate(time.Now()).Format(onboarding.DateLayout)
		label := fmt.Sprintf("Birth date (YYYY-MM-DD, no later than %s)", latest)
		for i := 0; i < maxBirthDateAttempts; i++ {
			v, err := getSimpleText(a.reader, prompt(label, draft.BirthDate), os.Stdout)
			if err != nil {
				return err
			}
			if v == "" {
				return nil
			}
			err = a.engine.EditBirthDate(v)
			if errors.Is(err, onboarding.ErrInvalidBirthDate) || errors.Is(err, onboarding.ErrTooYoung) {
				printlnFn(err.Error())
				continue
			}
			return err
		}
		return nil

	default:
		printlnFn(fmt.Sprintf("Skipping %q: not supported by this client.", c.Name))
		return nil
	}
}

// addressField maps an address key to its prompt label, the draft value and
// the patch slot the answer goes to.
func addressField(field string, draft models.UserProfile, patch *models.ProfilePatch) (string, string, **string) {
	switch field {
	case onboarding.FieldCity:
		return "City", draft.City, &patch.City
	case onboarding.FieldState:
		return "State", draft.State, &patch.State
	case onboarding.FieldZip:
		return "ZIP code", draft.Zip, &patch.Zip
	default:
		return "Street address", draft.Address, &patch.Address
	}
}

// prompt appends the current value so an empty answer visibly keeps it.
func prompt(label, current string) string {
	if current == "" {
		return label
	}
	return fmt.Sprintf("%s [%s]", label, current)
}
