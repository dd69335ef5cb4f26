package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/onboarder/internal/client/admin"
	"github.com/dmitrijs2005/onboarder/internal/client/client"
	"github.com/dmitrijs2005/onboarder/internal/client/config"
	"github.com/dmitrijs2005/onboarder/internal/client/directory"
	"github.com/dmitrijs2005/onboarder/internal/client/models"
	"github.com/dmitrijs2005/onboarder/internal/client/onboarding"
	"github.com/dmitrijs2005/onboarder/internal/client/services"
	"github.com/dmitrijs2005/onboarder/internal/client/session"
	"github.com/dmitrijs2005/onboarder/internal/logging"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	session     *session.Store
	authService services.AuthService
	engine      *onboarding.Engine
	editor      *admin.Editor
	watcher     *directory.Watcher
	view        models.View
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.New(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := session.NewStore(db, apiClient, logger)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		session:     store,
		authService: services.NewAuthService(apiClient, store, logger),
		engine:      onboarding.NewEngine(apiClient, store, logger),
		editor:      admin.NewEditor(apiClient, logger),
		watcher:     directory.NewWatcher(apiClient, c.PollInterval, logger),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run restores the stored session, opens the configured start view and
// blocks in the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	start, err := models.ParseView(a.config.StartView)
	if err != nil {
		return err
	}
	a.view = start

	dest, err := a.session.Restore(ctx, start)
	if err != nil {
		printlnFn("Could not restore your session:", client.Message(err))
	}
	if dest == models.ViewNone {
		dest = start
	}

	printlnFn("Welcome to the onboarding CLI (type 'help' for commands)")
	a.navigate(ctx, dest)

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) close() {
	a.watcher.Stop()
	if err := a.db.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing database failed", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != nil && a.session.IsAuthenticated()
}

func (a *App) currentView() models.View {
	return a.view
}

func (a *App) getStatus() string {
	s := string(a.view)
	if a.isLoggedIn() {
		if email := a.session.User().Email; email != "" {
			s = email + " " + s
		}
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
