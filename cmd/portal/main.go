package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-marketplace-client/apiclient"
	"github.com/jrsteele09/go-marketplace-client/authmodel"
	"github.com/jrsteele09/go-marketplace-client/internal/config"
	"github.com/jrsteele09/go-marketplace-client/jobs"
	"github.com/jrsteele09/go-marketplace-client/navigation"
	"github.com/jrsteele09/go-marketplace-client/notify"
	"github.com/jrsteele09/go-marketplace-client/session"
	"github.com/jrsteele09/go-marketplace-client/storage"
)

const usage = `usage: portal <command> [flags]

commands:
  login -u <username> [-p <password>]   sign in (password also read from PORTAL_PASSWORD)
  logout                                 end the session
  whoami                                 print the signed in user
  refresh                                exchange the refresh token
  jobs [-page n] [-search s]             list the client's jobs
  guard <path>                           show where the route guard sends a path
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("portal failed")
		os.Exit(1)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("Recovered from panic: %v", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("no command given")
	}

	c := config.New()
	setupLogging(c.GetLogLevel())
	displayAppname(c.GetAppName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := newPortal(c)
	if err != nil {
		return err
	}
	defer p.close()

	cmd, rest := args[0], args[1:]
	if restoresSession(cmd) {
		if err := p.store.CheckAuth(ctx); err != nil {
			log.Debug().Err(err).Msg("no stored session restored")
		}
	}

	switch cmd {
	case "login":
		return p.login(ctx, rest)
	case "logout":
		return p.store.Logout(ctx)
	case "whoami":
		return p.whoami()
	case "refresh":
		return p.store.RefreshAuthToken(ctx)
	case "jobs":
		return p.listJobs(ctx, rest)
	case "guard":
		return p.decide(rest)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// restoresSession reports whether cmd runs against the stored session. login
// starts a new one, so restoring (and logging out an empty store) is skipped.
func restoresSession(cmd string) bool {
	return cmd != "login"
}

// portal is the wiring of one CLI invocation.
type portal struct {
	repo       storage.Repo
	store      *session.Store
	gateway    *apiclient.Gateway
	guard      *navigation.Guard
	clientJobs *jobs.ClientService
}

func newPortal(c config.Config) (*portal, error) {
	repo, err := storage.New(storage.ConfigFrom(c), storage.Dependencies{})
	if err != nil {
		return nil, fmt.Errorf("storage.New: %w", err)
	}

	notifier := notify.Multi(notify.NewLogNotifier(log.Logger), notify.Func(printNotification))
	navigator := navigation.NavigatorFunc(func(path string) {
		fmt.Printf("-> %s\n", path)
	})

	transport := apiclient.NewTransport(c.GetAPIBaseURL(), apiclient.WithTimeout(c.GetRequestTimeout()))
	store, err := session.NewStore(session.Dependencies{
		Transport:    transport,
		Repo:         repo,
		Notifier:     notifier,
		Navigator:    navigator,
		MediaBaseURL: c.GetMediaBaseURL(),
	})
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	gateway := apiclient.NewGateway(transport, store, notifier, apiclient.WithReplayAfterRefresh(c.GetReplayAfterRefresh()))

	return &portal{
		repo:       repo,
		store:      store,
		gateway:    gateway,
		guard:      navigation.NewGuard(store),
		clientJobs: jobs.NewClientService(gateway, notifier),
	}, nil
}

func (p *portal) close() {
	if err := p.repo.Close(); err != nil {
		log.Warn().Err(err).Msg("closing storage")
	}
}

func (p *portal) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", os.Getenv("PORTAL_PASSWORD"), "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	_, err := p.store.Login(ctx, authmodel.LoginPayload{Username: *username, Password: *password})
	return err
}

func (p *portal) whoami() error {
	snap := p.store.Snapshot()
	if snap.User == nil {
		fmt.Println("not signed in")
		return nil
	}
	u := snap.User
	fmt.Printf("%s <%s> (%s)\n", u.FullName, u.Email, u.UserType)
	fmt.Printf("state: %s, token expires %s\n", snap.State, snap.Expiry.Format("2006-01-02 15:04:05"))
	return nil
}

func (p *portal) listJobs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("jobs", flag.ContinueOnError)
	page := fs.Int("page", 1, "page number")
	search := fs.String("search", "", "search text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	list, err := p.clientJobs.List(ctx, apiclient.ListParams{Page: *page, Search: *search})
	if err != nil {
		return err
	}
	fmt.Printf("%d jobs\n", list.Total)
	for _, j := range list.Jobs {
		fmt.Printf("  %-30s %-12s %s\n", j.Slug, j.Status, j.Title)
	}
	return nil
}

func (p *portal) decide(args []string) error {
	if len(args) != 1 {
		return errors.New("guard needs exactly one path")
	}
	d := p.guard.Decide(args[0])
	if d.Allow {
		fmt.Printf("%s: allowed\n", args[0])
		return nil
	}
	fmt.Printf("%s: redirect to %s\n", args[0], d.Redirect)
	return nil
}

func printNotification(n notify.Notification) {
	fmt.Printf("[%s] %s\n", n.Severity, n.Message)
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
