package recommendation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// SortKey selects the ordering applied by Sort.
type SortKey string

const (
	SortDefault SortKey = "default"
	SortRisk    SortKey = "risk"
	SortEffort  SortKey = "effort"
	SortProduct SortKey = "product"
)

// FallbackProduct is used as the sort value for records without a product.
const FallbackProduct = "General"

// ErrInvalidSortKey is returned by ParseSortKey for unknown keys.
var ErrInvalidSortKey = errors.New("invalid sort key")

// ParseSortKey parses a sort key. The empty string means SortDefault.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case "":
		return SortDefault, nil
	case SortDefault, SortRisk, SortEffort, SortProduct:
		return key, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
}

// Partition splits recs into pending and implemented lists. Only Approved
// records count as implemented; Rejected records stay in pending.
// Both lists keep the input order.
func Partition(recs []Recommendation) (pending, implemented []Recommendation) {
	pending = []Recommendation{}
	implemented = []Recommendation{}
	for _, r := range recs {
		if r.Status == StatusApproved {
			implemented = append(implemented, r)
		} else {
			pending = append(pending, r)
		}
	}
	return pending, implemented
}

// Sort returns a reordered copy of recs. The input is never modified.
//
//	risk:    severity descending
//	effort:  effort descending, then risk descending
//	product: product ascending (FallbackProduct when unset), then risk descending
//	default: input order
//
// Remaining ties keep input order.
func Sort(recs []Recommendation, key SortKey) []Recommendation {
	out := make([]Recommendation, len(recs))
	copy(out, recs)

	switch key {
	case SortRisk:
		sort.SliceStable(out, func(i, j int) bool {
			return RiskSeverity[out[i].RiskLevel] > RiskSeverity[out[j].RiskLevel]
		})
	case SortEffort:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if EffortSeverity[a.Effort] != EffortSeverity[b.Effort] {
				return EffortSeverity[a.Effort] > EffortSeverity[b.Effort]
			}
			return RiskSeverity[a.RiskLevel] > RiskSeverity[b.RiskLevel]
		})
	case SortProduct:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := productOf(out[i]), productOf(out[j])
			if a != b {
				return a < b
			}
			return RiskSeverity[out[i].RiskLevel] > RiskSeverity[out[j].RiskLevel]
		})
	}
	return out
}

func productOf(r Recommendation) string {
	if r.ApplicableProduct == "" {
		return FallbackProduct
	}
	return r.ApplicableProduct
}

// Gauges holds the two percentages driving the progress dials.
type Gauges struct {
	Deployment    float64 `json:"deployment"`
	ScaleOptimize float64 `json:"scale_optimize"`
}

// Aggregate sums the gauge contributions of the given records. Absent
// values count as zero. Totals are not clamped to 100.
func Aggregate(implemented []Recommendation) Gauges {
	var g Gauges
	for _, r := range implemented {
		if r.DeploymentIncrease != nil {
			g.Deployment += *r.DeploymentIncrease
		}
		if r.ScaleOptimizeIncrease != nil {
			g.ScaleOptimize += *r.ScaleOptimizeIncrease
		}
	}
	return g
}

// View names one of the partitions exposed to clients.
type View string

const (
	ViewAll         View = "all"
	ViewPending     View = "pending"
	ViewImplemented View = "implemented"
)

// ParseView parses a view name. The empty string means ViewAll.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return ViewAll, nil
	case ViewAll, ViewPending, ViewImplemented:
		return v, nil
	default:
		return "", fmt.Errorf("invalid view %q", s)
	}
}

// Select returns the records of a view, sorted by key.
func Select(recs []Recommendation, view View, key SortKey) []Recommendation {
	pending, implemented := Partition(recs)
	switch view {
	case ViewPending:
		return Sort(pending, key)
	case ViewImplemented:
		return Sort(implemented, key)
	default:
		return Sort(recs, key)
	}
}
