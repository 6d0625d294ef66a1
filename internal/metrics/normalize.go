package metrics

import (
	"math"
	"sort"
)

// Normalize merges per-channel metrics into a single spend-weighted blend.
// A nil entry is treated as a zero-spend channel: it contributes nothing
// to the blended sums and a zero weight. When total spend is zero the
// weight map is still defined (equal shares) but every blended value is
// zero, so an all-quiet period produces an all-zero blend rather than an
// error.
func Normalize(channels map[string]*ChannelMetrics) BlendedMetrics {
	blended := BlendedMetrics{Weights: make(map[string]float64, len(channels))}

	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if ch := channels[name]; ch != nil {
			blended.TotalSpend += clamp(ch.Spend)
			blended.TotalConversions += clamp(ch.Conversions)
		}
	}

	if blended.TotalSpend <= 0 {
		if len(names) > 0 {
			share := 1.0 / float64(len(names))
			for _, name := range names {
				blended.Weights[name] = share
			}
		}
		return blended
	}

	for _, name := range names {
		ch := channels[name]
		if ch == nil {
			blended.Weights[name] = 0
			continue
		}
		weight := clamp(ch.Spend) / blended.TotalSpend
		blended.Weights[name] = weight
		blended.BlendedCAC += clamp(ch.CAC) * weight
		blended.BlendedROAS += clamp(ch.ROAS) * weight
	}

	return blended
}

// clamp rejects negative and non-finite inputs, resolving them to zero.
// Upstream providers are expected to pre-validate; this keeps the blend
// defined if they do not.
func clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
