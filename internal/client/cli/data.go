package cli

import (
	"context"

	"github.com/dmitrijs2005/onboarder/internal/client/models"
)

// Data opens the user list. The list keeps refreshing in the background
// while the data view is open; running the command again prints the latest
// snapshot.
func (a *App) Data(ctx context.Context) error {
	if a.view == models.ViewData {
		renderUsers(a.out, a.watcher.Snapshot())
		return nil
	}
	a.navigate(ctx, models.ViewData)
	return nil
}
