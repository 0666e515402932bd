package cli

import (
	"github.com/spf13/cobra"
)

func insightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "insights",
		Aliases: []string{"admin"},
		Short:   "Print the analytics report",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx.Insights.Print(appCtx.Report())
			return nil
		},
	}
}
