package recommendation

import (
	"fmt"
	"sort"
	"time"
)

// Priority represents the remediation priority level (P1 = highest).
type Priority string

const (
	P1 Priority = "P1" // Critical risk + Low/Medium effort OR High risk + Low effort → Immediate action
	P2 Priority = "P2" // Critical risk + High effort OR High risk + Medium effort → Next maintenance window
	P3 Priority = "P3" // High risk + High effort OR Medium risk + Low effort → Scheduled
	P4 Priority = "P4" // Medium risk + Medium/High effort OR Low risk + Low effort → Normal queue
	P5 Priority = "P5" // Low risk + Medium/High effort → Backlog
)

// PrioritizedRecommendation pairs a record with its computed priority.
type PrioritizedRecommendation struct {
	Recommendation      Recommendation `json:"recommendation"`
	Priority            Priority       `json:"priority"`
	PriorityRationale   string         `json:"priority_rationale"`
	RecommendedTimeline string         `json:"recommended_timeline"`
	QuickWin            bool           `json:"quick_win"`
}

// Prioritize places a recommendation in the risk × effort matrix.
func Prioritize(rec Recommendation) PrioritizedRecommendation {
	priority, rationale := calculatePriority(rec.RiskLevel, rec.Effort)
	return PrioritizedRecommendation{
		Recommendation:      rec,
		Priority:            priority,
		PriorityRationale:   rationale,
		RecommendedTimeline: timelineFor(priority),
		QuickWin:            (priority == P1 || priority == P2) && rec.Effort == EffortLow,
	}
}

// PrioritizeAll prioritizes recs and orders them by priority, then risk.
func PrioritizeAll(recs []Recommendation) []PrioritizedRecommendation {
	results := make([]PrioritizedRecommendation, 0, len(recs))
	for _, r := range recs {
		results = append(results, Prioritize(r))
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Priority != results[j].Priority {
			return priorityToInt(results[i].Priority) < priorityToInt(results[j].Priority)
		}
		return RiskSeverity[results[i].Recommendation.RiskLevel] > RiskSeverity[results[j].Recommendation.RiskLevel]
	})

	return results
}

// calculatePriority determines priority from risk level and effort.
func calculatePriority(risk RiskLevel, effort Effort) (Priority, string) {
	/*
		Priority Matrix:

		                 | Low effort | Medium effort | High effort |
		-----------------|------------|---------------|-------------|
		Critical         | P1         | P1            | P2          |
		High             | P1         | P2            | P3          |
		Medium           | P3         | P4            | P4          |
		Low              | P4         | P5            | P5          |
	*/

	switch risk {
	case RiskCritical:
		if effort != EffortHigh {
			return P1, fmt.Sprintf("Critical risk with %s effort requires immediate action", effort)
		}
		return P2, "Critical risk but high effort requires coordination"

	case RiskHigh:
		switch effort {
		case EffortLow:
			return P1, "High risk with low effort - quick win for immediate implementation"
		case EffortMedium:
			return P2, "High risk with medium effort - schedule for next maintenance window"
		default:
			return P3, "High risk but high effort requires change management process"
		}

	case RiskMedium:
		if effort == EffortLow {
			return P3, "Medium risk with low effort - good candidate for batch implementation"
		}
		return P4, "Medium risk - address in normal cycle"

	case RiskLow:
		if effort == EffortLow {
			return P4, "Low risk with low effort - automate when convenient"
		}
		return P5, "Low risk with coordination needs - backlog item"
	}

	return P5, "Unclassified risk - address as time permits"
}

func timelineFor(p Priority) string {
	switch p {
	case P1:
		return "24h"
	case P2:
		return "7d"
	case P3:
		return "14d"
	case P4:
		return "30d"
	default:
		return "90d"
	}
}

func priorityToInt(p Priority) int {
	switch p {
	case P1:
		return 1
	case P2:
		return 2
	case P3:
		return 3
	case P4:
		return 4
	default:
		return 5
	}
}

// Summary provides a high-level summary for dashboards.
type Summary struct {
	GeneratedAt time.Time `json:"generated_at"`
	Total       int       `json:"total"`

	// By status
	Pending     int `json:"pending"`
	Implemented int `json:"implemented"`
	Rejected    int `json:"rejected"`

	// Open work by priority, excluding implemented records
	ByPriority map[Priority]int `json:"by_priority"`

	QuickWins int    `json:"quick_wins"`
	Gauges    Gauges `json:"gauges"`
}

// Summarize builds the dashboard summary for a collection.
func Summarize(recs []Recommendation, now time.Time) Summary {
	pending, implemented := Partition(recs)

	summary := Summary{
		GeneratedAt: now,
		Total:       len(recs),
		Pending:     len(pending),
		Implemented: len(implemented),
		ByPriority:  make(map[Priority]int),
		Gauges:      Aggregate(implemented),
	}

	for _, r := range pending {
		if r.Status == StatusRejected {
			summary.Rejected++
			continue
		}
		p := Prioritize(r)
		summary.ByPriority[p.Priority]++
		if p.QuickWin {
			summary.QuickWins++
		}
	}

	return summary
}
