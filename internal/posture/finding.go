// Package posture collects live security findings from cloud providers and
// condenses them into the context handed to recommendation generation.
package posture

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Finding represents a normalized cross-cloud security finding
type Finding struct {
	// Core identification
	FindingID      string `json:"finding_id"`
	FindingIDShort string `json:"finding_id_short"` // Dedupe key (hash)
	CSP            string `json:"csp"`              // aws, azure, gcp
	AccountID      string `json:"account_id"`       // AWS account, Azure subscription, GCP project
	ResourceID     string `json:"resource_id"`
	Region         string `json:"region,omitempty"`

	// Finding details
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"` // CRITICAL, HIGH, MEDIUM, LOW
	Status      string `json:"status"`

	// Control mapping
	ControlID string `json:"control_id"`
	Standard  string `json:"standard"`
}

// SeverityPriority maps severity to numeric priority for sorting
var SeverityPriority = map[string]int{
	"CRITICAL": 1,
	"HIGH":     2,
	"MEDIUM":   3,
	"LOW":      4,
}

// NormalizeSeverity upper-cases provider severities ("High" → "HIGH").
func NormalizeSeverity(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// GenerateShortID creates a dedupe key from finding attributes
func GenerateShortID(csp, accountID, controlID, resourceID string) string {
	data := csp + "|" + accountID + "|" + controlID + "|" + resourceID
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:8])
}

// Source is a cloud provider that can list active findings.
type Source interface {
	Name() string
	GetFindings(ctx context.Context) ([]Finding, error)
}

// Summary contains aggregated posture metrics.
type Summary struct {
	GeneratedAt   time.Time      `json:"generated_at"`
	TotalFindings int            `json:"total_findings"`
	BySeverity    map[string]int `json:"by_severity"`
	ByCSP         map[string]int `json:"by_csp"`
	TopFindings   []Finding      `json:"top_findings"`
	FailedSources []string       `json:"failed_sources,omitempty"`
}

// maxTopFindings bounds how many findings are quoted in the context.
const maxTopFindings = 10

// Summarize builds a summary from deduplicated findings.
func Summarize(findings []Finding, now time.Time) Summary {
	summary := Summary{
		GeneratedAt:   now,
		TotalFindings: len(findings),
		BySeverity:    make(map[string]int),
		ByCSP:         make(map[string]int),
	}

	for _, f := range findings {
		summary.BySeverity[f.Severity]++
		summary.ByCSP[f.CSP]++
	}

	top := make([]Finding, len(findings))
	copy(top, findings)
	sort.SliceStable(top, func(i, j int) bool {
		return severityRank(top[i].Severity) < severityRank(top[j].Severity)
	})
	if len(top) > maxTopFindings {
		top = top[:maxTopFindings]
	}
	summary.TopFindings = top

	return summary
}

func severityRank(s string) int {
	if p, ok := SeverityPriority[s]; ok {
		return p
	}
	return len(SeverityPriority) + 1
}

// Context renders the summary as prompt text.
func (s Summary) Context() string {
	if s.TotalFindings == 0 && len(s.FailedSources) == 0 {
		return "Live posture scan: no active findings reported by connected cloud providers."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Live posture scan (%s): %d active findings.\n", s.GeneratedAt.Format("2006-01-02"), s.TotalFindings)

	b.WriteString("By severity:")
	for _, sev := range []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"} {
		if n := s.BySeverity[sev]; n > 0 {
			fmt.Fprintf(&b, " %s=%d", sev, n)
		}
	}
	b.WriteString("\n")

	csps := make([]string, 0, len(s.ByCSP))
	for csp := range s.ByCSP {
		csps = append(csps, csp)
	}
	sort.Strings(csps)
	b.WriteString("By cloud:")
	for _, csp := range csps {
		fmt.Fprintf(&b, " %s=%d", csp, s.ByCSP[csp])
	}
	b.WriteString("\n")

	if len(s.TopFindings) > 0 {
		b.WriteString("Top findings:\n")
		for _, f := range s.TopFindings {
			fmt.Fprintf(&b, "- [%s] %s (%s %s)\n", f.Severity, f.Title, f.CSP, f.ControlID)
		}
	}
	if len(s.FailedSources) > 0 {
		fmt.Fprintf(&b, "Unavailable sources: %s\n", strings.Join(s.FailedSources, ", "))
	}

	return strings.TrimRight(b.String(), "\n")
}
