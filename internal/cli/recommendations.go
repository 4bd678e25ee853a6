package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lvonguyen/cspm-advisor/internal/recommendation"
)

var (
	colorRed    = lipgloss.Color("#ef4444")
	colorOrange = lipgloss.Color("#f97316")
	colorYellow = lipgloss.Color("#f59e0b")
	colorGreen  = lipgloss.Color("#10b981")
	colorGray   = lipgloss.Color("#6b7280")
	colorBlue   = lipgloss.Color("#3b82f6")
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	styleDim   = lipgloss.NewStyle().Foreground(colorGray)
)

// riskColor maps a risk level to its badge color.
func riskColor(r recommendation.RiskLevel) lipgloss.Color {
	switch r {
	case recommendation.RiskCritical:
		return colorRed
	case recommendation.RiskHigh:
		return colorOrange
	case recommendation.RiskMedium:
		return colorYellow
	default:
		return colorGreen
	}
}

// NewRecommendationsCmd creates the 'recommendations' listing command.
func NewRecommendationsCmd(configPath *string) *cobra.Command {
	var (
		view       string
		sortKey    string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "recommendations",
		Aliases: []string{"recs", "ls"},
		Short:   "List recommendations with gauges",
		Example: `  cspm-advisor recommendations
  cspm-advisor recs --view pending --sort risk
  cspm-advisor recs --view implemented --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := recommendation.ParseView(view)
			if err != nil {
				return err
			}
			key, err := recommendation.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			return runRecommendations(cmd.Context(), cmd.OutOrStdout(), *configPath, v, key, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&view, "view", "all", "View: all, pending or implemented")
	cmd.Flags().StringVar(&sortKey, "sort", "default", "Sort: default, risk, effort or product")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

func runRecommendations(ctx context.Context, w io.Writer, configPath string, view recommendation.View, key recommendation.SortKey, jsonOutput bool) error {
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
		logger.Warn("Load failed", zap.Error(err))
	}

	recs := recommendation.Select(c.store.All(), view, key)
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}

	_, implemented := recommendation.Partition(c.store.All())
	fmt.Fprintln(w, renderRecommendations(recs, view, key, recommendation.Aggregate(implemented)))
	return nil
}

// renderRecommendations draws the listing as a styled table.
func renderRecommendations(recs []recommendation.Recommendation, view recommendation.View, key recommendation.SortKey, gauges recommendation.Gauges) string {
	header := styleTitle.Render(fmt.Sprintf("Recommendations: %s (sort: %s, %d)", view, key, len(recs)))
	dials := styleDim.Render(fmt.Sprintf("Deployment +%.0f%%   Scale & Optimize +%.0f%%", gauges.Deployment, gauges.ScaleOptimize))

	if len(recs) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, dials, styleDim.Render("  (no recommendations)"))
	}

	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		product := r.ApplicableProduct
		if product == "" {
			product = recommendation.FallbackProduct
		}
		rows = append(rows, []string{
			r.ID,
			truncate(r.Title, 56),
			string(r.RiskLevel),
			string(r.Effort),
			string(r.Status),
			string(recommendation.Prioritize(r).Priority),
			product,
		})
	}

	t := ltable.New().
		Headers("ID", "TITLE", "RISK", "EFFORT", "STATUS", "PRIORITY", "PRODUCT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(colorGray)
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 2 && row >= 0 && row < len(recs) {
				return base.Foreground(riskColor(recs[row].RiskLevel))
			}
			return base
		}).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray))

	return lipgloss.JoinVertical(lipgloss.Left, header, dials, t.Render())
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
