package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/ternak-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/ternak-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type ExportCmd struct {
	out     string
	bucket  string
	key     string
	backend *Backend
}

func NewReportsCmd(backend *Backend, reporter *export.Reporter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Quarterly report tools",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "next <participant-id>",
		Short: "Show the next quarter a participant may report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			svc, closer, err := backend.open(ctx)
			if err != nil {
				return err
			}
			defer closer()

			p, err := svc.Participants.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			nq, err := svc.Reports.GetNextAllowedQuarter(ctx, p.ID)
			if err != nil {
				return err
			}
			prefill := svc.Reports.CalculatePrefillData(report.LastReport(nq.ExistingReports), p)
			return reporter.HandleNextQuarter(nq, prefill)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Summarize program progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			svc, closer, err := backend.open(ctx)
			if err != nil {
				return err
			}
			defer closer()

			summary, err := svc.Reports.Summary(ctx)
			if err != nil {
				return fmt.Errorf("failed to build summary: %w", err)
			}
			return reporter.HandleSummary(summary)
		},
	})

	cmd.AddCommand(newExportCmd(backend))
	return cmd
}

func newExportCmd(backend *Backend) *cobra.Command {
	ec := &ExportCmd{backend: backend}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all reports as CSV",
		Args:  cobra.NoArgs,
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.out, "out", "", "Write the CSV to this file")
	cmd.Flags().StringVar(&ec.bucket, "bucket", "", "Upload the CSV to this S3 bucket")
	cmd.Flags().StringVar(&ec.key, "key", "", "Object key for the upload")
	cmd.MarkFlagsOneRequired("out", "bucket")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	svc, closer, err := ec.backend.open(ctx)
	if err != nil {
		return err
	}
	defer closer()

	if ec.out != "" {
		f, err := os.Create(ec.out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", ec.out, err)
		}
		n, err := svc.Exporter.Write(ctx, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to export reports: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d laporan ditulis ke %s\n", n, ec.out)
	}

	if ec.bucket != "" {
		n, err := svc.Exporter.Upload(ctx, ec.bucket, ec.key)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d laporan diunggah ke s3://%s\n", n, ec.bucket)
	}
	return nil
}
