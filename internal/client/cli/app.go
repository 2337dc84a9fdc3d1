package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/glidepath/internal/client/api"
	"github.com/dmitrijs2005/glidepath/internal/client/browser"
	"github.com/dmitrijs2005/glidepath/internal/client/config"
	"github.com/dmitrijs2005/glidepath/internal/client/entitlement"
	"github.com/dmitrijs2005/glidepath/internal/client/identity"
	"github.com/dmitrijs2005/glidepath/internal/client/models"
	"github.com/dmitrijs2005/glidepath/internal/client/repositories/runcount"
	"github.com/dmitrijs2005/glidepath/internal/client/services"
	"github.com/dmitrijs2005/glidepath/internal/client/session"
	"github.com/dmitrijs2005/glidepath/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the GlidePath client together and carries the interactive
// state of the REPL: the session, the current parameter set, and the
// services commands dispatch to.
type App struct {
	config     *config.Config
	log        logging.Logger
	db         *sql.DB
	apiClient  api.Client
	provider   identity.Provider
	account    identity.Account
	sess       *session.Session
	engine     *entitlement.Engine
	runs       *services.RunService
	profiles   *services.ProfileService
	membership *services.MembershipService
	checkout   *services.CheckoutService
	receiver   *browser.Receiver
	reader     *bufio.Reader
	params     models.ParameterSet
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)
	provider := identity.NewHTTPProvider(c.IdentityBaseURL, c.RequestTimeout)

	sess := session.New()
	counter := runcount.NewSQLiteRepository(db)
	engine := entitlement.NewEngine(sess.Entitlements, counter, apiClient)

	bus := browser.NewBus()
	receiver := browser.NewReceiver(c.CallbackAddr, bus)
	if err := receiver.Start(); err != nil {
		return nil, err
	}
	launcher := browser.ExecLauncher{}

	return &App{
		config:     c,
		log:        log,
		db:         db,
		apiClient:  apiClient,
		provider:   provider,
		sess:       sess,
		engine:     engine,
		runs:       services.NewRunService(apiClient, sess, engine, log),
		profiles:   services.NewProfileService(apiClient, sess, log),
		membership: services.NewMembershipService(apiClient, sess, engine, launcher, bus, receiver.Origin(), c.MembershipTimeout, log),
		checkout:   services.NewCheckoutService(apiClient, sess, engine, launcher, log),
		receiver:   receiver,
		reader:     bufio.NewReader(os.Stdin),
		params:     models.DefaultParameters(),
	}, nil
}

// Run pings the backend, then hands control to the REPL until the user
// exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	if err := a.apiClient.Ping(ctx); err != nil {
		a.log.Warn(ctx, "computation service unreachable", "error", err)
	}

	fmt.Println("GlidePath CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// Close releases everything the app owns.
func (a *App) Close(ctx context.Context) {
	if err := a.receiver.Shutdown(ctx); err != nil {
		a.log.Warn(ctx, "callback receiver shutdown failed", "error", err)
	}
	if err := a.apiClient.Close(); err != nil {
		a.log.Warn(ctx, "api client close failed", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(ctx, "database close failed", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return !a.sess.Identity().IsGuest()
}

// status renders the prompt segment: guest run usage or the signed-in
// user's entitlement badge.
func (a *App) status() string {
	ident := a.sess.Identity()
	if ident.IsGuest() {
		runs, _, err := a.engine.GuestRuns(context.Background())
		if err != nil {
			return "guest"
		}
		return fmt.Sprintf("guest %d/%d free runs used", runs, entitlement.FreeRunLimit)
	}
	return fmt.Sprintf("%s [%s]", ident.Email, a.sess.Entitlements.Current().Badge())
}
