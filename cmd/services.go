package cmd

import (
	"fmt"
	"os"

	"github.com/gestloc/gestloc/config"
	"github.com/gestloc/gestloc/internal/apiclient"
	"github.com/gestloc/gestloc/internal/browser"
	"github.com/gestloc/gestloc/internal/datacache"
	"github.com/gestloc/gestloc/internal/log"
	"github.com/gestloc/gestloc/internal/notify"
	"github.com/gestloc/gestloc/internal/output"
	"github.com/gestloc/gestloc/internal/readstate"
)

// services bundles the wired application core. This is the composition
// root: everything below it takes its collaborators explicitly.
type services struct {
	cfg    *config.Config
	client *apiclient.Client
	cache  *datacache.Service
	engine *notify.Engine
}

// setupServices loads config, initializes logging and constructs the data
// cache and notification engine over one shared backend client.
func setupServices(opts *Options) (*services, error) {
	log.Initialize(opts.Verbosity, os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	client := apiclient.New(cfg.BackendURL, cfg.GetToken())
	cache := datacache.New(client, cfg.BackendURL)

	reads, err := readstate.NewStore()
	if err != nil {
		log.Warn("could not open read-state store", "error", err)
	}

	engine := notify.NewEngine(notify.Config{
		Fetcher:             client,
		Token:               cfg.GetToken,
		Reads:               reads,
		Actions:             &cliActions{baseURL: cfg.BackendURL},
		SimulateMaintenance: cfg.MaintenanceEnabled(),
	})

	return &services{
		cfg:    cfg,
		client: client,
		cache:  cache,
		engine: engine,
	}, nil
}

// requireToken fails early for commands that cannot degrade without auth.
func (s *services) requireToken() error {
	if s.cfg.GetToken() == "" {
		return fmt.Errorf("backend token not configured. Set the GESTLOC_TOKEN environment variable")
	}
	return nil
}

// formatter resolves the output format from the flag, then the config.
func (s *services) formatter(opts *Options) output.Formatter {
	format := output.Format(opts.Format)
	if format == "" {
		format = output.Format(s.cfg.DefaultFormat)
	}
	return output.NewFormatter(format)
}

// cliActions handles notification actions outside the TUI. Navigation has
// no in-process target here, so it prints the destination; receipts open in
// the browser.
type cliActions struct {
	baseURL string
}

func (a *cliActions) Navigate(section string, entityID int64) error {
	if entityID != 0 {
		fmt.Printf("→ %s #%d\n", section, entityID)
	} else {
		fmt.Printf("→ %s\n", section)
	}
	return nil
}

func (a *cliActions) OpenReceipt(billID int64) error {
	url := fmt.Sprintf("%s/api/bills/%d/receipt", a.baseURL, billID)
	log.Debug("opening receipt", "url", url)
	return browser.Open(url)
}
