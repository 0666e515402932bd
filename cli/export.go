package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"inquiry-desk/models"
	"inquiry-desk/report"
	"inquiry-desk/storage"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export inquiries or the analytics report",
	}
	cmd.AddCommand(exportCSVCmd(), exportPDFCmd())
	return cmd
}

func exportCSVCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Write every inquiry to a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = cfg.CSVOutputPath
			}
			w, err := storage.NewCSVWriter(out)
			if err != nil {
				return err
			}
			list := appCtx.Inquiries.All()
			if err := writeAll(w, list); err != nil {
				return err
			}
			logger.Info("Wrote %d inquiries to %s", len(list), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default $CSV_OUTPUT_PATH)")
	return cmd
}

func writeAll(w storage.InquiryWriter, list []models.Inquiry) error {
	if err := w.Write(list); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func exportPDFCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Render the analytics report to PDF with headless Chrome",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = cfg.PDFOutputPath
			}
			page, err := report.HTML(appCtx.Report(), time.Now())
			if err != nil {
				return err
			}
			pdf, err := report.NewPDFRenderer(cfg.ChromeBin, logger).Render(cmd.Context(), page)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("pdf: create output dir: %w", err)
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return fmt.Errorf("pdf: write %q: %w", out, err)
			}
			logger.Info("Report saved to %s (%d bytes)", out, len(pdf))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default $PDF_OUTPUT_PATH)")
	return cmd
}
