// Package cli implements the scholarai command line: catalog browsing, a
// one-shot deadline scan and the assistant, all running in-process against
// a freshly built application state.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/ScholarAI/internal/app"
	"github.com/turtacn/ScholarAI/internal/config"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output formats accepted by --output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputText  = "text"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	NoColor      bool
	Timeout      time.Duration
}

// StateBuilder constructs the application state for a command.  Tests
// replace it to inject fakes.
type StateBuilder func(ctx context.Context, cfg *config.Config, logger logging.Logger) (*app.State, error)

// CLIContext carries initialised dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	OutputFormat string

	build  StateBuilder
	state  *app.State
	cancel context.CancelFunc
}

type cliContextKey struct{}

// State builds the application state on first use.  The CLI never starts
// the scheduler or seeds demo reminders, so scans report exactly what they
// create.
func (c *CLIContext) State(ctx context.Context) (*app.State, error) {
	if c.state != nil {
		return c.state, nil
	}
	cfg := *c.Config
	cfg.Notifier.Enabled = false
	cfg.Notifier.SeedNotifications = false
	st, err := c.build(ctx, &cfg, c.Logger)
	if err != nil {
		return nil, err
	}
	c.state = st
	return st, nil
}

func (c *CLIContext) close() {
	if c.state != nil {
		_ = c.state.Close()
		c.state = nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	_ = c.Logger.Sync()
}

func defaultStateBuilder(ctx context.Context, cfg *config.Config, logger logging.Logger) (*app.State, error) {
	return app.New(ctx, cfg, app.Deps{Logger: logger})
}

// NewRootCommand creates the root command with its persistent flags and
// every subcommand.  A nil build uses app.New.
func NewRootCommand(build StateBuilder) *cobra.Command {
	cmd, _ := newRootCommand(build)
	return cmd
}

// newRootCommand also returns a cleanup that releases the state when a
// command fails, since cobra skips post-run hooks after an error.
func newRootCommand(build StateBuilder) (*cobra.Command, func()) {
	if build == nil {
		build = defaultStateBuilder
	}
	opts := &RootOptions{}
	var cliCtx *CLIContext

	cmd := &cobra.Command{
		Use:     "scholarai",
		Short:   "ScholarAI: scholarship discovery, deadline reminders and an eligibility assistant",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newCLIContext(cmd, opts, build)
			if err != nil {
				return err
			}
			cliCtx = c
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, cliContextKey{}, c))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if cliCtx != nil {
				cliCtx.close()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: environment and built-in defaults)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", OutputTable, "output format (table, json, text)")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	pf.DurationVar(&opts.Timeout, "timeout", 60*time.Second, "overall command timeout")

	cmd.AddCommand(
		newSchemesCmd(),
		newNotificationsCmd(),
		newAskCmd(),
		newVersionCmd(),
	)
	cleanup := func() {
		if cliCtx != nil {
			cliCtx.close()
		}
	}
	return cmd, cleanup
}

func newCLIContext(cmd *cobra.Command, opts *RootOptions, build StateBuilder) (*CLIContext, error) {
	switch opts.OutputFormat {
	case OutputTable, OutputJSON, OutputText:
	default:
		return nil, errors.Validation("unsupported output format").WithDetail(opts.OutputFormat)
	}
	if opts.NoColor {
		color.NoColor = true
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:            opts.LogLevel,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, fmt.Errorf("logger initialization failed: %w", err)
	}

	c := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		OutputFormat: opts.OutputFormat,
		build:        build,
	}
	if opts.Timeout > 0 {
		ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
		c.cancel = cancel
		cmd.SetContext(ctx)
	}
	return c, nil
}

// GetCLIContext extracts the CLIContext stored by the root command.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.Internal("command context is nil")
	}
	c, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || c == nil {
		return nil, errors.Internal("CLI context not initialised")
	}
	return c, nil
}

// Execute runs the command line and prints any error to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root, cleanup := newRootCommand(nil)
	defer cleanup()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		PrintError(root, err)
		return err
	}
	return nil
}

// Main is the process entry point for cmd/scholarai.
func Main() int {
	if err := Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		return 1
	}
	return 0
}

//Personal.AI order the ending
