// Package cli wires configuration, logging, the API client and the search
// session into the lookforjob commands.
//
//	lookforjob                 interactive job search (default)
//	lookforjob list            print one page of postings
//	lookforjob show <id>       print a single posting
//	lookforjob config path     print the config file location
//	lookforjob config init     write a default config file
package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lookforjob/internal/api"
	"lookforjob/internal/config"
	"lookforjob/internal/domain"
	"lookforjob/internal/eventbus"
	"lookforjob/internal/listing"
	"lookforjob/internal/logging"
	"lookforjob/internal/metrics"
	"lookforjob/internal/ui"
	"lookforjob/internal/ui/views"
)

// Version is set at build time
var Version = "0.1.0"

type options struct {
	configPath  string
	apiURL      string
	token       string
	keyword     string
	location    string
	company     string
	debounce    time.Duration
	metricsAddr string
}

// BuildCLI builds the root command and its subcommands
func BuildCLI() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "lookforjob",
		Short:         "Search LookForJob postings from the terminal",
		Long:          "Search LookForJob postings by keyword, location and company. Results refresh as you type.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.apiURL, "api-url", "", "API base URL")
	flags.StringVar(&opts.token, "token", "", "API bearer token")
	flags.StringVarP(&opts.keyword, "keyword", "k", "", "initial keyword filter")
	flags.StringVarP(&opts.location, "location", "l", "", "initial location filter")
	flags.StringVar(&opts.company, "company", "", "initial company filter")

	root.Flags().DurationVar(&opts.debounce, "debounce", 0, "pause after typing before searching (e.g. 300ms)")
	root.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	root.AddCommand(buildListCommand(opts))
	root.AddCommand(buildShowCommand(opts))
	root.AddCommand(buildConfigCommand(opts))

	return root
}

func buildListCommand(opts *options) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of job postings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger, closer := openLog(cmd.ErrOrStderr(), cfg)
			defer closer.Close()

			client, err := newClient(cfg, logger)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			q := domain.Query{Filter: initialFilter(cmd, opts, cfg), Page: page}
			env, err := client.ListJobs(ctx, q)
			if err != nil {
				return errors.Wrap(err, listing.ErrorMessage)
			}
			return printPage(cmd.OutOrStdout(), env)
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	return cmd
}

func buildShowCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a single job posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return errors.Errorf("invalid job id %q", args[0])
			}

			cfg, _, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger, closer := openLog(cmd.ErrOrStderr(), cfg)
			defer closer.Close()

			client, err := newClient(cfg, logger)
			if err != nil {
				return err
			}
			defer client.Close()

			job, err := client.GetJob(cmd.Context(), id)
			if err != nil {
				if api.IsNotFound(err) {
					return errors.Errorf("job %d not found", id)
				}
				return errors.Wrapf(err, "failed to load job %d", id)
			}

			fmt.Fprintln(cmd.OutOrStdout(), views.NewJobRenderer(views.NewStyles()).DetailContent(job))
			return nil
		},
	}
}

func buildConfigCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), configService(opts).Path())
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := configService(opts)
			if _, err := os.Stat(svc.Path()); err == nil && !force {
				return errors.Errorf("%s already exists (use --force to overwrite)", svc.Path())
			}
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", svc.Path())
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}

// runTUI runs the interactive search until the user quits
func runTUI(cmd *cobra.Command, opts *options) error {
	cfg, svc, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, closer := openLog(cmd.ErrOrStderr(), cfg)
	defer closer.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New(logger)
	defer bus.Close()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	collector := metrics.NewCollector()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := collector.Serve(ctx, cfg.Metrics.Addr, logger); err != nil {
				logger.Error().Err(err).Msg("metrics endpoint stopped")
			}
		}()
	}

	subscribe(bus, cfg, svc, logger)

	session := listing.NewSession(listing.Options{
		Fetcher:  client,
		Recorder: collector,
		Bus:      bus,
		Logger:   logger,
		Debounce: cfg.Debounce(),
		Timeout:  cfg.Timeout(),
		Initial:  initialFilter(cmd, opts, cfg),
	})
	defer session.Close()

	model := ui.NewModel(ui.Options{
		Session: session,
		Details: client,
		Bus:     bus,
		Logger:  logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	})

	logger.Info().Str("api", cfg.API.BaseURL).Msg("starting UI")
	_, runErr := p.Run()
	session.Close()

	// Flush pending events (the last search is saved by a subscriber)
	bus.Close()

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		logger.Error().Err(runErr).Msg("UI exited with error")
		return errors.Wrap(runErr, "error running program")
	}
	logger.Info().Msg("UI exited normally")
	return nil
}

// subscribe attaches the logging and persistence handlers to the bus
func subscribe(bus eventbus.EventBus, cfg *config.Config, svc config.ConfigService, logger zerolog.Logger) {
	bus.Subscribe(eventbus.EventSearchApplied, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchAppliedEvent); ok {
			logger.Info().
				Str("keyword", event.Filter.Keyword).
				Str("location", event.Filter.Location).
				Str("company", event.Filter.Company).
				Int("page", event.Page).
				Int("total", event.Total).
				Msg("search applied")
		}
	})

	bus.Subscribe(eventbus.EventListingFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ListingFailedEvent); ok {
			logger.Warn().Err(event.Err).Int("page", event.Page).Msg("search failed")
		}
	})

	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.ConfigChangedEvent)
		if !ok || !cfg.Search.RememberLast {
			return
		}
		cfg.Search.Last = event.LastSearch
		if err := svc.Save(cfg); err != nil {
			logger.Error().Err(err).Msg("failed to save config")
			return
		}
		logger.Info().Str("path", svc.Path()).Msg("config saved")
	})
}

func configService(opts *options) config.ConfigService {
	if opts.configPath != "" {
		return config.NewConfigServiceAt(opts.configPath)
	}
	return config.NewConfigService()
}

// loadConfig reads the config file, then .env and LOOKFORJOB_* variables,
// then command line flags, each overriding the previous
func loadConfig(opts *options) (*config.Config, config.ConfigService, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, nil, err
	}

	svc := configService(opts)
	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, nil, err
	}

	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	if opts.token != "" {
		cfg.API.Token = opts.token
	}
	if opts.debounce > 0 {
		cfg.Search.DebounceMS = int(opts.debounce / time.Millisecond)
	}
	if opts.metricsAddr != "" {
		cfg.Metrics.Addr = opts.metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, svc, nil
}

// initialFilter starts from the remembered search and applies filter flags
func initialFilter(cmd *cobra.Command, opts *options, cfg *config.Config) domain.Filter {
	var f domain.Filter
	if cfg.Search.RememberLast {
		f = cfg.Search.Last
	}

	flags := cmd.Flags()
	if flags.Changed("keyword") {
		f.Keyword = opts.keyword
	}
	if flags.Changed("location") {
		f.Location = opts.location
	}
	if flags.Changed("company") {
		f.Company = opts.company
	}
	return f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openLog opens the log file; logging is disabled when it cannot be opened
func openLog(stderr io.Writer, cfg *config.Config) (zerolog.Logger, io.Closer) {
	logger, closer, err := logging.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(stderr, "Could not open log file: %v\n", err)
		return zerolog.Nop(), nopCloser{}
	}
	return logger, closer
}

func newClient(cfg *config.Config, logger zerolog.Logger) (*api.Client, error) {
	return api.NewClient(api.Options{
		BaseURL:   cfg.API.BaseURL,
		Token:     cfg.API.Token,
		Timeout:   cfg.Timeout(),
		DetailTTL: cfg.DetailTTL(),
		Logger:    logger,
	})
}

// printPage writes a page of postings as a table
func printPage(w io.Writer, env domain.PageEnvelope) error {
	if len(env.Data) == 0 {
		_, err := fmt.Fprintln(w, views.EmptyMessage)
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "POSITION", "COMPANY", "LOCATION", "SALARY", "POSTED")
	for _, job := range env.Data {
		t.Row(strconv.FormatInt(job.ID, 10), job.Position, job.Company, job.Location, job.Salary, job.AgoTime)
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}

	footer := humanize.Comma(int64(env.Total)) + " jobs"
	if env.LastPage > 1 {
		footer = views.PageLabel(env.CurrentPage, env.LastPage) + " · " + footer
	}
	_, err := fmt.Fprintln(w, footer)
	return err
}
