// Package recommendation holds the advisor's recommendation records and the
// views derived from them: partitions, sort orders, gauges and priorities.
package recommendation

import (
	"fmt"
	"strings"
)

// RiskLevel is the security risk addressed by a recommendation.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// Effort is the estimated implementation effort.
type Effort string

const (
	EffortLow    Effort = "Low"
	EffortMedium Effort = "Medium"
	EffortHigh   Effort = "High"
)

// Status is the lifecycle state of a recommendation.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// RiskSeverity maps risk level to numeric severity (higher = more severe)
var RiskSeverity = map[RiskLevel]int{
	RiskCritical: 4,
	RiskHigh:     3,
	RiskMedium:   2,
	RiskLow:      1,
}

// EffortSeverity maps effort to numeric severity (higher = more effort)
var EffortSeverity = map[Effort]int{
	EffortHigh:   3,
	EffortMedium: 2,
	EffortLow:    1,
}

// Recommendation is a single actionable security suggestion.
type Recommendation struct {
	ID                         string    `json:"id"`
	Title                      string    `json:"title"`
	Description                string    `json:"description"`
	Rationale                  string    `json:"rationale"`
	ImplementationInstructions string    `json:"implementation_instructions"`
	RiskLevel                  RiskLevel `json:"risk_level"`
	Effort                     Effort    `json:"effort"`
	Status                     Status    `json:"status"`

	// Gauge contributions, counted only once approved
	DeploymentIncrease    *float64 `json:"deployment_increase,omitempty"`
	ScaleOptimizeIncrease *float64 `json:"scale_optimize_increase,omitempty"`

	ImplementedOn     string `json:"implemented_on,omitempty"` // YYYY-MM-DD
	ApplicableProduct string `json:"applicable_product,omitempty"`
}

// ParseRiskLevel accepts a risk level in any letter case.
func ParseRiskLevel(s string) (RiskLevel, error) {
	for level := range RiskSeverity {
		if strings.EqualFold(string(level), strings.TrimSpace(s)) {
			return level, nil
		}
	}
	return "", fmt.Errorf("unknown risk level %q", s)
}

// ParseEffort accepts an effort value in any letter case.
func ParseEffort(s string) (Effort, error) {
	for effort := range EffortSeverity {
		if strings.EqualFold(string(effort), strings.TrimSpace(s)) {
			return effort, nil
		}
	}
	return "", fmt.Errorf("unknown effort %q", s)
}

// ParseStatus accepts a status in any letter case.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "approved":
		return StatusApproved, nil
	case "rejected":
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// Float returns a pointer to v, for the optional gauge fields.
func Float(v float64) *float64 {
	return &v
}
