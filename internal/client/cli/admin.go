package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/onboarder/internal/client/admin"
	"github.com/dmitrijs2005/onboarder/internal/client/models"
)

// maxStepCount is the largest step count offered by the admin view.
const maxStepCount = 3

var errToggleUsage = errors.New("usage: toggle <step> <component> on|off")

// Admin opens the configuration editor. It needs no session.
func (a *App) Admin(ctx context.Context) error {
	a.navigate(ctx, models.ViewAdmin)
	return nil
}

func (a *App) Toggle(ctx context.Context, args []string) error {
	if err := a.requireView(models.ViewAdmin); err != nil {
		return err
	}
	if len(args) != 3 {
		return errToggleUsage
	}
	step, err := strconv.Atoi(args[0])
	if err != nil {
		return errToggleUsage
	}

	var checked bool
	switch args[2] {
	case "on":
		checked = true
	case "off":
	default:
		return errToggleUsage
	}

	name := args[1]
	known := false
	for _, n := range a.editor.KnownNames() {
		if n == name {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown component %q", name)
	}

	if err := a.editor.Toggle(step, name, checked); err != nil {
		return err
	}
	renderAdmin(a.out, a.editor)
	return nil
}

func (a *App) Steps(ctx context.Context, args []string) error {
	if err := a.requireView(models.ViewAdmin); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: steps <1-%d>", maxStepCount)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > maxStepCount {
		return fmt.Errorf("usage: steps <1-%d>", maxStepCount)
	}

	if err := a.editor.SetStepCount(ctx, n); isEditorGuard(err) {
		return err
	}
	renderAdmin(a.out, a.editor)
	return nil
}

func (a *App) Save(ctx context.Context) error {
	if err := a.requireView(models.ViewAdmin); err != nil {
		return err
	}
	if err := a.editor.Save(ctx); isEditorGuard(err) {
		return err
	}
	renderAdmin(a.out, a.editor)
	return nil
}

// isEditorGuard reports errors the editor returns without touching the
// banner. API failures land in the banner and are shown by renderAdmin.
func isEditorGuard(err error) bool {
	return errors.Is(err, admin.ErrNotLoaded) ||
		errors.Is(err, admin.ErrStepCountInFlight) ||
		errors.Is(err, admin.ErrInvalidStepCount)
}
