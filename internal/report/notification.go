package report

import (
	"fmt"
	"strings"

	"github.com/pulsemetrics/adpulse/internal/policy"
)

// Notification is the human-readable digest delivered alongside the
// report.
type Notification struct {
	Text string `json:"text"`
}

// maxDigestRecommendations caps how many recommendations the digest
// lists; the full set lives in the report itself.
const maxDigestRecommendations = 3

// BuildNotification renders a priority-iconed Markdown digest of the
// report. The digest is never empty: a degraded run still announces an
// uncertain decision that needs review.
func BuildNotification(r Report) Notification {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s *%s marketing report — %s*\n",
		statusIcon(r.Status), titleCase(r.Period.Type), r.Period.Date.Format("2006-01-02"))
	fmt.Fprintf(&sb, "Decision: `%s`", r.Decision.Tier)
	if r.Decision.Trigger != "" {
		fmt.Fprintf(&sb, " (trigger: %s)", r.Decision.Trigger)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Spend %.2f | CAC %.2f | ROAS %.2f | %d leads\n",
		r.Metrics.TotalSpend, r.Metrics.BlendedCAC, r.Metrics.BlendedROAS, r.LeadCount)

	if len(r.Bottlenecks) > 0 {
		sb.WriteString("Funnel bottlenecks:\n")
		for _, b := range r.Bottlenecks {
			fmt.Fprintf(&sb, "• [%s] %s (%.0f%% drop-off)\n", b.Severity, b.Transition, b.DropoffRate*100)
		}
	}

	if len(r.Recommendations) > 0 {
		sb.WriteString("Next actions:\n")
		for i, rec := range r.Recommendations {
			if i == maxDigestRecommendations {
				fmt.Fprintf(&sb, "• …and %d more in the full report\n", len(r.Recommendations)-i)
				break
			}
			fmt.Fprintf(&sb, "• [%s] %s\n", rec.Priority, rec.Action)
		}
	}

	if !r.SampleSizeAdequate {
		sb.WriteString("_Small sample: funnel numbers are directional only._\n")
	}
	if r.Decision.Tier == policy.DefaultTier && r.Decision.Trigger == "uncertain" {
		sb.WriteString("_Inputs were insufficient for a confident call — needs review._\n")
	}

	return Notification{Text: sb.String()}
}

func statusIcon(status string) string {
	switch status {
	case policy.PriorityCritical:
		return "🚨"
	case policy.PriorityWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
