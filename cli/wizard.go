package cli

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"inquiry-desk/services"
	"inquiry-desk/tui"
)

func wizardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Fill in an inquiry in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			appCtx.EnsureCountries(ctx)
			return tui.Run(appCtx.Session, appCtx.Directory.All(), func() error {
				return appCtx.Save(ctx)
			})
		},
	}
}

// seed: add mock inquiries, one of each type per round.
func seedCmd() *cobra.Command {
	var rounds int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add mock inquiries for demos and testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			appCtx.EnsureCountries(ctx)

			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			if err := services.AddMockInquiries(appCtx.Inquiries, appCtx.Directory, rng, rounds); err != nil {
				return err
			}
			if err := appCtx.Save(ctx); err != nil {
				return err
			}
			logger.Info("Added %d mock inquiries (%d total)", rounds*3, appCtx.Inquiries.Len())
			return nil
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", 1, "number of BUY/RENT/SELL triples to add")
	return cmd
}
