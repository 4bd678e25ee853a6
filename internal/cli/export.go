package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lvonguyen/cspm-advisor/internal/recommendation"
	"github.com/lvonguyen/cspm-advisor/internal/report"
)

// NewExportCmd creates the 'export' command that writes an XLSX workbook.
func NewExportCmd(configPath *string) *cobra.Command {
	var (
		out     string
		sortKey string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recommendations to an XLSX workbook",
		Example: `  cspm-advisor export --out recommendations.xlsx --sort risk`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := recommendation.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			return runExport(cmd.Context(), cmd.OutOrStdout(), *configPath, out, key)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "recommendations.xlsx", "Output file")
	cmd.Flags().StringVar(&sortKey, "sort", "risk", "Sort: default, risk, effort or product")

	return cmd
}

func runExport(ctx context.Context, w io.Writer, configPath, out string, key recommendation.SortKey) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger("warn")
	if err != nil {
		return err
	}
	defer logger.Sync()

	if ctx == nil {
		ctx = context.Background()
	}
	c, err := buildComponents(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.release()

	if err := c.loadNow(ctx, cfg, logger); err != nil {
		return fmt.Errorf("failed to load recommendations: %w", err)
	}

	recs := c.store.All()
	if err := writeWorkbook(out, recs, key); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %d recommendations to %s\n", len(recs), out)
	return nil
}

func writeWorkbook(path string, recs []recommendation.Recommendation, key recommendation.SortKey) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := report.WriteXLSX(f, recs, key); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
