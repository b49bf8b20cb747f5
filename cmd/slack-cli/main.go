package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/chrisedwards/slack-cli/internal/action"
	"github.com/chrisedwards/slack-cli/internal/config"
	"github.com/chrisedwards/slack-cli/internal/logging"
	"github.com/chrisedwards/slack-cli/internal/slack"
)

// Version information, injected at build time via ldflags.
var (
	Version   = "dev"
	Build     = "unknown"
	BuildTime = "unknown"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	configPath string
	token      string
	logFormat  string
	debug      bool

	cfg    *config.Config
	logger *slog.Logger

	// confirmer and sleeper are replaced in tests.
	confirmer func(cmd *cobra.Command) action.Confirmer
	sleeper   action.Sleeper
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&app{})
}

func newRootCmdWith(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "slack-cli",
		Short: "Manage Slack channels from the command line",
		Long: `slack-cli lists, filters, archives and deletes Slack channels through the Web API.

The API token is read from --token, SLACK_API_TOKEN, or the config file
(~/.config/slack-cli/slack-cli.yaml). Archive and delete runs ask for
confirmation and pause between channels to stay within Slack's rate limits.`,
		Version:           fmt.Sprintf("%s (build %s, %s)", Version, Build, BuildTime),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ~/.config/slack-cli/slack-cli.yaml)")
	root.PersistentFlags().StringVarP(&a.token, "token", "a", "", "Slack API token (env SLACK_API_TOKEN)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(newAuthTestCmd(a), newChannelsCmd(a), newConfigCmd(a))
	return root
}

// setup resolves configuration and logging before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.load(cmd, args); err != nil {
		return err
	}
	return a.cfg.Validate()
}

// load resolves configuration without validating it.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	// Load .env file if present (for SLACK_API_TOKEN)
	_ = godotenv.Load()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.token != "" {
		cfg.Token = a.token
	}
	if a.debug {
		cfg.LogLevel = "debug"
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}

	a.cfg = cfg
	a.logger = logging.NewLoggerWithWriter(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	a.logger.Debug("configuration loaded", "file", cfg.ConfigFile(), "api_url", cfg.APIURL)
	return nil
}

func (a *app) client() *slack.Client {
	return slack.NewClient(a.cfg.Token).
		WithBaseURL(a.cfg.APIURL).
		WithHTTPClient(&http.Client{Timeout: a.cfg.Timeout()}).
		WithLogger(a.logger)
}

// colorEnabled reports whether w is a terminal that should get ANSI styling.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return !color.NoColor && isatty.IsTerminal(f.Fd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, action.ErrDeclined):
		fmt.Fprintln(os.Stderr, "Aborted!")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(exitCode(err))
}
