package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"inquiry-desk/models"
)

func archiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Copy the collection to or from the SQL archive",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "push",
			Short: "Replace the archived collection with the local one",
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := appCtx.PushArchive(cmd.Context())
				if err != nil {
					return err
				}
				logger.Info("Pushed %d inquiries to the %s archive", n, cfg.ArchiveDriver)
				return nil
			},
		},
		&cobra.Command{
			Use:   "pull",
			Short: "Replace the local collection with the archived one",
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := appCtx.PullArchive(cmd.Context())
				if err != nil {
					return err
				}
				logger.Info("Pulled %d inquiries from the %s archive", n, cfg.ArchiveDriver)
				return nil
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Count archived inquiries per type without loading them",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				archive, err := appCtx.OpenArchive(ctx)
				if err != nil {
					return err
				}
				defer archive.Close()

				counts, err := archive.CountByType(ctx)
				if err != nil {
					return err
				}
				for _, t := range models.InquiryTypes {
					fmt.Printf("%-5s %d\n", t, counts[t])
				}
				return nil
			},
		},
	)
	return cmd
}
