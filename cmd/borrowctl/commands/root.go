package commands

import (
	"fmt"
	"os"
	"time"

	appborrowing "github.com/borrowtrack/backend/internal/application/borrowing"
	"github.com/borrowtrack/backend/internal/infrastructure/config"
	"github.com/borrowtrack/backend/internal/infrastructure/directoryclient"
	"github.com/borrowtrack/backend/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli holds the state shared by every subcommand
type cli struct {
	configPath string
	baseURL    string
	timeout    time.Duration
	verbose    bool

	log      *zap.Logger
	service  *appborrowing.BorrowingService
	ledger   *appborrowing.Ledger
	now      func() time.Time
	services func(cfg *config.Config, log *zap.Logger) (*appborrowing.BorrowingService, error)
}

func Execute() error {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	c := &cli{
		ledger:   appborrowing.NewLedger(),
		now:      time.Now,
		services: newBorrowingService,
	}

	root := &cobra.Command{
		Use:           "borrowctl",
		Short:         "Record and review borrowed items",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./config.toml)")
	root.PersistentFlags().StringVar(&c.baseURL, "base-url", "", "directory API base URL (e.g. http://localhost:8000/api)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 0, "per-request timeout")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(c.addCmd(), c.importCmd(), c.listCmd(), c.dashboardCmd(), c.clearCmd())
	return root
}

func (c *cli) setup() error {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFile(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if c.baseURL != "" {
		cfg.Directory.BaseURL = c.baseURL
	}
	if c.timeout > 0 {
		cfg.Directory.Timeout = c.timeout
	}

	level := "warn"
	if c.verbose {
		level = "debug"
	}
	c.log, err = logger.New(&logger.Config{Level: level, Format: "console", Output: "stderr"})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	c.service, err = c.services(cfg, c.log)
	return err
}

func newBorrowingService(cfg *config.Config, log *zap.Logger) (*appborrowing.BorrowingService, error) {
	client, err := directoryclient.New(cfg.Directory, directoryclient.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return appborrowing.NewBorrowingService(client, log,
		appborrowing.WithEnrichConcurrency(cfg.Directory.EnrichConcurrency)), nil
}

// load replaces the local ledger with the enriched list from the directory
func (c *cli) load(cmd *cobra.Command) error {
	list, err := c.service.ListBorrowings(cmd.Context())
	if err != nil {
		return err
	}
	c.ledger.Replace(list)
	return nil
}
