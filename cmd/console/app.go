package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fleetory/console/internal/api"
	"github.com/fleetory/console/internal/apperrors"
	"github.com/fleetory/console/internal/gateway"
	"github.com/fleetory/console/internal/guard"
	"github.com/fleetory/console/internal/logger"
	"github.com/fleetory/console/internal/models"
	"github.com/fleetory/console/internal/notify"
	"github.com/fleetory/console/internal/session"
)

// ConsoleApp is the terminal shell of the distributor dashboard: every
// subcommand is a view with a path and a role set, gated by the guard
// before it runs, exactly like the browser routes it replaces.
type ConsoleApp struct {
	config *Config
	logger logger.Logger
	store  session.Store
	api    *api.API
	guard  *guard.Guard

	out io.Writer
	in  *bufio.Reader

	views    map[string]*view
	commands map[string]string // subcommand -> view path
}

type view struct {
	path         string
	public       bool // no guard at all (login, logout)
	allowedRoles []models.Role
	run          func(ctx context.Context, args []string) error
}

func NewConsoleApp(c *Config) (*ConsoleApp, error) {
	log, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	sessionFile := c.SessionFile
	if sessionFile == "" {
		sessionFile, err = session.DefaultFilePath()
		if err != nil {
			return nil, err
		}
	}
	store, err := session.NewFileStore(sessionFile)
	if err != nil {
		return nil, err
	}

	app := &ConsoleApp{
		config: c,
		logger: log,
		store:  store,
		out:    os.Stdout,
		in:     bufio.NewReader(os.Stdin),
	}

	// The notifier owns user facing messages and the login redirect hint;
	// the gateway only publishes events
	notifier := notify.New(os.Stderr, func(path string) {
		fmt.Fprintf(os.Stderr, "Redirected to %s. Run 'login <email>' to sign in again.\n", path)
	}, log)

	gw, err := gateway.NewClient(gateway.Config{
		BaseURL: c.BaseURL,
		Timeout: c.Timeout,
	}, store, notifier, log)
	if err != nil {
		return nil, fmt.Errorf("error while creating gateway client: %w", err)
	}

	app.api = api.New(gw, store)
	app.guard = guard.New(store)
	app.registerViews()

	return app, nil
}

func (a *ConsoleApp) registerViews() {
	distributorOnly := []models.Role{models.RoleDistributor}
	superAdminOnly := []models.Role{models.RoleSuperAdmin}

	a.views = map[string]*view{}
	add := func(v *view) { a.views[v.path] = v }

	add(&view{path: guard.LoginPath, public: true, run: a.runLogin})
	add(&view{path: "/logout", public: true, run: a.runLogout})
	add(&view{path: "/whoami", run: a.runWhoami}) // any authenticated role

	add(&view{path: guard.DashboardPath, allowedRoles: distributorOnly, run: a.runDashboard})
	add(&view{path: guard.DashboardPath + "/distributors", allowedRoles: distributorOnly, run: a.runDistributors})
	add(&view{path: guard.DashboardPath + "/drivers", allowedRoles: distributorOnly, run: a.runDrivers})
	add(&view{path: guard.DashboardPath + "/products", allowedRoles: distributorOnly, run: a.runProducts})
	add(&view{path: guard.DashboardPath + "/orders", allowedRoles: distributorOnly, run: a.runOrders})
	add(&view{path: guard.DashboardPath + "/connection-requests", allowedRoles: distributorOnly, run: a.runRequests})

	add(&view{path: guard.AdminPath, allowedRoles: superAdminOnly, run: a.runAdmin})

	a.commands = map[string]string{
		"login":        guard.LoginPath,
		"logout":       "/logout",
		"whoami":       "/whoami",
		"dashboard":    guard.DashboardPath,
		"distributors": guard.DashboardPath + "/distributors",
		"drivers":      guard.DashboardPath + "/drivers",
		"products":     guard.DashboardPath + "/products",
		"orders":       guard.DashboardPath + "/orders",
		"requests":     guard.DashboardPath + "/connection-requests",
		"admin":        guard.AdminPath,
	}
}

// Run dispatches one subcommand as a navigation
func (a *ConsoleApp) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return nil
	}

	path, ok := a.commands[args[0]]
	if !ok {
		a.printUsage()
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownView, args[0])
	}

	return a.navigateTo(ctx, path, args[1:], 0)
}

// navigateTo consults the guard before mounting a view and follows its
// redirect decision. The guard re-evaluates on every hop.
func (a *ConsoleApp) navigateTo(ctx context.Context, path string, args []string, depth int) error {
	if depth > 2 {
		return fmt.Errorf("redirect loop at %s", path)
	}

	v, ok := a.views[path]
	if !ok {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownView, path)
	}

	if !v.public {
		decision := a.guard.Resolve(v.allowedRoles)
		if !decision.Allowed {
			a.logger.Debug("Navigation redirected", "from", path, "to", decision.RedirectTo)
			fmt.Fprintf(a.out, "Redirecting to %s\n", decision.RedirectTo)
			return a.navigateTo(ctx, decision.RedirectTo, nil, depth+1)
		}
	}

	return v.run(ctx, args)
}

func (a *ConsoleApp) printUsage() {
	fmt.Fprintln(a.out, "Usage: fleetory-console [flags] <command>")
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, "Commands:")
	fmt.Fprintln(a.out, "  login <email> [password]   Sign in and land on your dashboard")
	fmt.Fprintln(a.out, "  logout                     Discard the stored session")
	fmt.Fprintln(a.out, "  whoami                     Show the signed in account")
	fmt.Fprintln(a.out, "  dashboard                  Dashboard summary")
	fmt.Fprintln(a.out, "  distributors               List distributors")
	fmt.Fprintln(a.out, "  drivers [list|add|rm]      Manage drivers")
	fmt.Fprintln(a.out, "  products [list|add|rm]     Manage products")
	fmt.Fprintln(a.out, "  orders [list|show|status]  Manage orders")
	fmt.Fprintln(a.out, "  requests [list|accept|reject]  Connection requests")
	fmt.Fprintln(a.out, "  admin [list|onboard]       Platform administration")
}
