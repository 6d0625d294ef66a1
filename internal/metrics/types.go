// Package metrics defines per-channel marketing metrics and spend-weighted
// blending across channels.
package metrics

// Well-known metric keys used by the decision policy and the report.
const (
	KeyTotalSpend   = "total_spend"
	KeyConversions  = "conversions"
	KeyBlendedCAC   = "blended_cac"
	KeyBlendedROAS  = "blended_roas"
	KeyLeadCount    = "lead_count"
	KeyLeadScoreAvg = "lead_score_avg"
)

// ChannelMetrics is an immutable snapshot of one channel's performance
// for a single reporting period.
type ChannelMetrics struct {
	Spend       float64 `json:"spend"`
	Conversions float64 `json:"conversions"`
	CAC         float64 `json:"cac"`
	ROAS        float64 `json:"roas"`
}

// BlendedMetrics is the spend-weighted aggregate across all channels.
// Weights maps channel name to its share of total spend.
type BlendedMetrics struct {
	TotalSpend       float64            `json:"total_spend"`
	TotalConversions float64            `json:"total_conversions"`
	BlendedCAC       float64            `json:"blended_cac"`
	BlendedROAS      float64            `json:"blended_roas"`
	Weights          map[string]float64 `json:"weights,omitempty"`
}

// Values returns the blended metrics as a flat name-to-value map, the
// shape consumed by the condition evaluator.
func (b BlendedMetrics) Values() map[string]float64 {
	return map[string]float64{
		KeyTotalSpend:  b.TotalSpend,
		KeyConversions: b.TotalConversions,
		KeyBlendedCAC:  b.BlendedCAC,
		KeyBlendedROAS: b.BlendedROAS,
	}
}
