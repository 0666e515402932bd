package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"inquiry-desk/models"
	"inquiry-desk/services"
)

func countriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "Manage the country directory",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "refresh",
			Short: "Download the country list",
			RunE: func(cmd *cobra.Command, args []string) error {
				return appCtx.RefreshCountries(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List known countries",
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, c := range appCtx.Directory.All() {
					fmt.Printf("%-40s %-4s %s\n", c.Name, c.CurrencyName, c.CurrencySymbol)
				}
				return nil
			},
		},
	)
	return cmd
}

func inquiriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inquiries",
		Short: "Inspect and edit the inquiry collection",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List inquiries with their index",
			RunE: func(cmd *cobra.Command, args []string) error {
				for i, inq := range appCtx.Inquiries.All() {
					fmt.Println(formatInquiry(i, inq))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <index>",
			Short: "Delete the inquiry at index",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				index, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("index must be an integer: %w", err)
				}
				if err := appCtx.Inquiries.Delete(index); err != nil {
					return err
				}
				return appCtx.Save(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every inquiry",
			RunE: func(cmd *cobra.Command, args []string) error {
				return appCtx.ClearInquiries(cmd.Context())
			},
		},
	)
	return cmd
}

func formatInquiry(i int, inq models.Inquiry) string {
	base := inq.Common()
	amount := "-"
	if p, ok := models.Price(inq); ok {
		amount = services.FormatAmount(p)
		if base.Country != nil {
			amount = base.Country.CurrencySymbol + amount
		}
	}
	return fmt.Sprintf("%3d  %-4s  %-20s  %-14s  %-20s  %s",
		i, base.Type, base.CountryName(), amount, base.Name, base.Email)
}
