package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrisedwards/slack-cli/internal/action"
	"github.com/chrisedwards/slack-cli/internal/channels"
	"github.com/chrisedwards/slack-cli/internal/report"
)

type channelsFlags struct {
	id              string
	name            string
	startsWith      string
	contains        string
	match           string
	excludeArchived bool
	onlyArchived    bool
	isArchived      string
	deleteChannels  bool
	archiveChannels bool
	dryRun          bool
	sleepMS         int
	yes             bool
	failOnError     bool
}

func newChannelsCmd(a *app) *cobra.Command {
	var f channelsFlags

	cmd := &cobra.Command{
		Use:   "channels",
		Short: "List, archive or delete channels matching the given filters",
		Long: `List channels, or archive or delete every channel that passes all filters.

Filters combine with AND. --archive and --delete ask for confirmation first
(skip with --yes) and pause --sleep milliseconds between API calls.`,
		Example: `  slack-cli channels --exclude-archived
  slack-cli channels --starts-with test- --is-archived=false --archive --dry-run
  slack-cli channels --match 'tmp-*' --delete --sleep 0 --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runChannels(cmd, &f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.id, "id", "", "only the channel with this ID")
	flags.StringVarP(&f.name, "name", "n", "", "only the channel with this exact name")
	flags.StringVarP(&f.startsWith, "starts-with", "s", "", "only channels whose name starts with this prefix")
	flags.StringVar(&f.contains, "contains", "", "only channels whose name contains this text")
	flags.StringVar(&f.match, "match", "", "only channels whose name matches this glob (case-insensitive)")
	flags.BoolVarP(&f.excludeArchived, "exclude-archived", "r", false, "ask Slack to leave out archived channels")
	flags.BoolVar(&f.onlyArchived, "only-archived", false, "only archived channels")
	flags.StringVar(&f.isArchived, "is-archived", "", "only channels whose archived flag equals this (true|false)")
	flags.BoolVar(&f.deleteChannels, "delete", false, "delete the selected channels")
	flags.BoolVar(&f.archiveChannels, "archive", false, "archive the selected channels")
	flags.BoolVar(&f.dryRun, "dry-run", false, "print what would be done without calling the API")
	flags.IntVar(&f.sleepMS, "sleep", 0, "pause between API calls in milliseconds (default from config, 10000)")
	flags.BoolVarP(&f.yes, "yes", "y", false, "skip the confirmation prompt")
	flags.BoolVar(&f.failOnError, "fail-on-error", false, "exit with status 4 when any channel action fails")

	return cmd
}

// options builds the filter and query parameter set from the flags. Unset
// values are dropped; exclude_members is always sent.
func (f *channelsFlags) options(cmd *cobra.Command) (channels.Options, error) {
	opts := channels.Compact(channels.Options{
		"id":               f.id,
		"name":             f.name,
		"starts_with":      f.startsWith,
		"contains":         f.contains,
		"matches":          f.match,
		"only_archived":    f.onlyArchived,
		"exclude_archived": f.excludeArchived,
	})
	opts["exclude_members"] = true

	if cmd.Flags().Changed("is-archived") {
		v, err := strconv.ParseBool(f.isArchived)
		if err != nil {
			return nil, fmt.Errorf("%w: --is-archived %q: want true or false", errInvalidFlag, f.isArchived)
		}
		opts["is_archived"] = v
	}
	return opts, nil
}

func (a *app) delay(cmd *cobra.Command, f *channelsFlags) (time.Duration, error) {
	if !cmd.Flags().Changed("sleep") {
		return a.cfg.Delay(), nil
	}
	if f.sleepMS < 0 {
		return 0, fmt.Errorf("%w: --sleep %d: must not be negative", errInvalidFlag, f.sleepMS)
	}
	return time.Duration(f.sleepMS) * time.Millisecond, nil
}

func (a *app) confirmerFor(cmd *cobra.Command, yes bool) action.Confirmer {
	switch {
	case yes:
		return action.AlwaysConfirm
	case a.confirmer != nil:
		return a.confirmer(cmd)
	}
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return action.NewLineConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return action.NewPromptConfirmer(in, cmd.OutOrStdout())
}

func (a *app) runChannels(cmd *cobra.Command, f *channelsFlags) error {
	mode, err := action.ModeFromFlags(f.deleteChannels, f.archiveChannels)
	if err != nil {
		return err
	}
	opts, err := f.options(cmd)
	if err != nil {
		return err
	}
	delay, err := a.delay(cmd, f)
	if err != nil {
		return err
	}

	// Nothing touches the API before the user agrees.
	if err := action.Guard(mode, a.confirmerFor(cmd, f.yes)); err != nil {
		return err
	}

	client := a.client()
	seq, err := channels.NewSource(client).WithExclude(a.cfg.Exclude).Fetch(cmd.Context(), opts)
	if err != nil {
		return err
	}
	a.logger.Debug("channels fetched", "mode", mode, "filters", fmt.Sprint(seq.Filters()))

	out := cmd.OutOrStdout()
	execOpts := []action.Option{
		action.WithDryRun(f.dryRun),
		action.WithDelay(delay),
		action.WithLogger(a.logger),
	}
	if a.sleeper != nil {
		execOpts = append(execOpts, action.WithSleeper(a.sleeper))
	}
	executor := action.NewExecutor(client, report.NewPrinter(out, colorEnabled(out)), execOpts...)

	rep, err := executor.Execute(cmd.Context(), mode, seq.All())
	if err != nil {
		return err
	}
	a.logger.Info("run complete", "mode", mode, "total", rep.Total,
		"succeeded", len(rep.Succeeded), "failed", len(rep.Failed))

	if f.failOnError && rep.HasFailures() {
		return fmt.Errorf("%w: %d of %d", errPartialFailure, len(rep.Failed), rep.Total)
	}
	return nil
}
