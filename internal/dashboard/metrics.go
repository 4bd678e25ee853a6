// Package dashboard holds the fixed operational figures shown beside the
// recommendations: response-time metrics and the services pipeline.
package dashboard

import (
	"fmt"
	"time"
)

// Metric names.
const (
	MTTD = "MTTD" // mean time to detect
	MTTC = "MTTC" // mean time to contain
	MTTR = "MTTR" // mean time to resolve
)

// Change is a percentage movement over a window.
type Change struct {
	Percentage int  `json:"percentage"`
	Increase   bool `json:"increase"`
}

// MetricSnapshot is one response-time metric with its trend.
type MetricSnapshot struct {
	Name      string        `json:"name"`
	Current   time.Duration `json:"-"`
	Display   string        `json:"current"`
	Change7d  Change        `json:"change_7d"`
	Change30d Change        `json:"change_30d"`
	Prior7d   string        `json:"prior_7d"`
	Prior30d  string        `json:"prior_30d"`
	Trend7d   []int         `json:"trend_7d_minutes"`
	Trend30d  []int         `json:"trend_30d_minutes"`
}

// Session is a past or upcoming service session.
type Session struct {
	Date    string   `json:"date"`
	Summary []string `json:"summary"`
}

// Pipeline is the services pipeline widget.
type Pipeline struct {
	LastSession Session `json:"last_session"`
	NextSession Session `json:"next_session"`
}

// Metrics is the full widget payload.
type Metrics struct {
	ResponseTimes []MetricSnapshot `json:"response_times"`
	Pipeline      Pipeline         `json:"pipeline"`
}

func hms(h, m, s int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}

// FormatHMS renders d as HH:MM:SS, truncating sub-second precision.
func FormatHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

func snapshot(name string, current, prior7d, prior30d time.Duration, c7, c30 Change, t7, t30 []int) MetricSnapshot {
	return MetricSnapshot{
		Name:      name,
		Current:   current,
		Display:   FormatHMS(current),
		Change7d:  c7,
		Change30d: c30,
		Prior7d:   FormatHMS(prior7d),
		Prior30d:  FormatHMS(prior30d),
		Trend7d:   t7,
		Trend30d:  t30,
	}
}

// ResponseTimes returns the MTTD, MTTC and MTTR snapshots in display order.
func ResponseTimes() []MetricSnapshot {
	return []MetricSnapshot{
		snapshot(MTTD, hms(0, 27, 23), hms(0, 31, 5), hms(0, 29, 45),
			Change{Percentage: 12}, Change{Percentage: 8},
			[]int{32, 28, 35, 30, 25, 27, 27},
			[]int{45, 42, 38, 40, 35, 33, 32, 30, 35, 32, 28, 35, 30, 25, 27, 27, 29, 31, 28, 26, 30, 28, 27, 29, 28, 27, 26, 28, 27, 27},
		),
		snapshot(MTTC, hms(0, 7, 12), hms(0, 6, 51), hms(0, 7, 25),
			Change{Percentage: 5, Increase: true}, Change{Percentage: 3},
			[]int{10, 8, 12, 9, 7, 8, 7},
			[]int{15, 14, 13, 12, 11, 12, 10, 11, 10, 12, 10, 8, 12, 9, 7, 8, 7, 9, 8, 7, 8, 9, 8, 7, 8, 7, 8, 7, 7, 7},
		),
		snapshot(MTTR, hms(2, 23, 12), hms(2, 47, 18), hms(3, 3, 28),
			Change{Percentage: 15}, Change{Percentage: 22},
			[]int{150, 145, 160, 140, 135, 143, 143},
			[]int{200, 195, 185, 180, 175, 170, 165, 160, 155, 160, 155, 150, 145, 160, 140, 135, 143, 143, 145, 142, 140, 145, 143, 142, 144, 143, 142, 143, 143, 143},
		),
	}
}

// ServicesPipeline returns the last and next service sessions.
func ServicesPipeline() Pipeline {
	return Pipeline{
		LastSession: Session{
			Date: "2024-07-15",
			Summary: []string{
				"Reviewed initial setup and configured basic policies.",
				"Completed onboarding of primary AWS accounts.",
				"Configured alert notifications for critical severity findings.",
				"Established baseline compliance standards for CIS benchmarks.",
				"Integrated with existing SIEM for log forwarding.",
			},
		},
		NextSession: Session{
			Date: "2024-08-01",
			Summary: []string{
				"Onboard new cloud accounts (Azure production environment).",
				"Fine-tune vulnerability scanning thresholds.",
				"User training session for SOC team.",
				"Review and optimize IAM policies based on usage analysis.",
				"Configure custom compliance policies for internal standards.",
				"Set up automated remediation workflows.",
			},
		},
	}
}

// Snapshot returns all widget data.
func Snapshot() Metrics {
	return Metrics{
		ResponseTimes: ResponseTimes(),
		Pipeline:      ServicesPipeline(),
	}
}
