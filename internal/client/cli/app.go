package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"github.com/dmitrijs2005/newscheck/internal/client/api"
	"github.com/dmitrijs2005/newscheck/internal/client/cache"
	"github.com/dmitrijs2005/newscheck/internal/client/config"
	"github.com/dmitrijs2005/newscheck/internal/client/models"
	"github.com/dmitrijs2005/newscheck/internal/client/notify"
	"github.com/dmitrijs2005/newscheck/internal/client/services"
	"github.com/dmitrijs2005/newscheck/internal/client/session"
	"github.com/dmitrijs2005/newscheck/internal/client/storage"
	"github.com/dmitrijs2005/newscheck/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionAPI is the slice of the session manager the command handlers use.
type sessionAPI interface {
	Restore(ctx context.Context) session.State
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, upd api.ProfileUpdate) (*models.User, error)
	User() *models.User
	IsAuthenticated() bool
	IsAdmin() bool
	Expire()
}

type App struct {
	config   *config.Config
	session  sessionAPI
	news     services.NewsService
	feedback services.FeedbackService
	admin    services.AdminService
	listener *notify.Listener
	log      logging.Logger
	reader   *bufio.Reader
	db       *sql.DB
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {

	ctx := context.Background()

	repos, db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := cache.New()

	app := &App{config: c, log: log, reader: bufio.NewReader(os.Stdin), db: db}

	gateway := api.New(c.APIBaseURL, repos.Tokens, log,
		api.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		api.WithSessionExpiredHandler(func() {
			store.Reset()
			app.session.Expire()
			printlnFn("Session expired, please log in again.")
		}),
	)

	app.session = session.NewManager(gateway, repos.Tokens, log)
	app.news = services.NewNewsService(gateway, store, repos.Records, log)
	app.feedback = services.NewFeedbackService(gateway, store, log)
	app.admin = services.NewAdminService(gateway, store, log)
	app.listener = notify.NewListener(c.WSEndpoint, repos.Tokens, store, log)

	return app, nil
}

// Run restores the persisted session, starts the notification listener in
// the background, and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("NewsCheck CLI (type 'help' for commands)")

	if a.session.Restore(ctx) == session.StateAuthenticated {
		if u := a.session.User(); u != nil {
			printlnFn("Welcome back,", u.Username)
		}
	}

	go a.listener.Run(ctx)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) getStatus() string {
	u := a.session.User()
	if u == nil {
		return ""
	}
	s := u.Username
	if u.IsAdmin {
		s += " admin"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.session.IsAdmin()
}
