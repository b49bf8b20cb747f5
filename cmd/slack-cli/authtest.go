package main

import (
	"github.com/spf13/cobra"

	"github.com/chrisedwards/slack-cli/internal/report"
)

func newAuthTestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "auth-test",
		Short: "Check the API token and show the team and user it belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := a.client().AuthTest(cmd.Context(), false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			report.NewPrinter(out, colorEnabled(out)).AuthInfo(info)
			return nil
		},
	}
}
