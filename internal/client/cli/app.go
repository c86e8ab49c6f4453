package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/postboard/internal/client/client"
	"github.com/dmitrijs2005/postboard/internal/client/config"
	"github.com/dmitrijs2005/postboard/internal/client/services"
	"github.com/dmitrijs2005/postboard/internal/filex"
	"github.com/dmitrijs2005/postboard/internal/logging"
)

const (
	appDirName    = "postboard"
	sessionDBName = "session.db"
)

type App struct {
	config      *config.Config
	db          *sql.DB
	authService services.AuthService
	feedService services.FeedService
	reader      *bufio.Reader
	out         io.Writer
	logger      logging.Logger
}

// NewApp opens the session database and builds the API client around a
// fresh Session. The session's Token method is the client's only token
// source.
func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {
	path, err := sessionDBPath(c)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("error initializing database %s: %w", path, err)
	}

	session := services.NewSession()
	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, session.Token)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	authService := services.NewAuthService(apiClient, db, session)
	return &App{
		config:      c,
		db:          db,
		authService: authService,
		feedService: services.NewFeedService(apiClient, authService, nil),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		logger:      l.With("module", "cli"),
	}, nil
}

func sessionDBPath(c *config.Config) (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	dir, err := filex.EnsureDataDir(appDirName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionDBName), nil
}

// Run restores the previous session and blocks in the REPL until the user
// exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.db == nil {
			return
		}
		if err := a.db.Close(); err != nil {
			a.logger.Warn(ctx, "closing session database", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Welcome to postboard (type 'help' for commands)")
	a.restore(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) restore(ctx context.Context) {
	p, err := a.authService.Restore(ctx)
	switch {
	case errors.Is(err, services.ErrSessionDiscarded):
		a.logger.Debug(ctx, "stored session rejected", "error", err)
		fmt.Fprintf(a.out, "%v. Please log in.\n", err)
	case err != nil:
		a.logger.Warn(ctx, "loading stored session", "error", err)
		fmt.Fprintf(a.out, "Could not load saved session: %v\n", err)
	case p != nil:
		fmt.Fprintf(a.out, "Logged in as %s <%s>\n", p.Name, p.Email)
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.authService.CurrentUser()
	return ok
}

func (a *App) getStatus() string {
	if p, ok := a.authService.CurrentUser(); ok {
		return p.Name
	}
	return "guest"
}
