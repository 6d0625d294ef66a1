package funnel

// Analyze computes per-stage counts, percentage of entrants, and
// stage-to-stage conversion rates. Stats are returned in stage order.
// Every ratio with a zero denominator resolves to 0, so sparse or empty
// lead sets still produce a full, defined result.
func Analyze(stages []StageDefinition, leads []LeadRecord) []StageStat {
	stats := make([]StageStat, len(stages))

	for i, stage := range stages {
		count := 0
		for _, lead := range leads {
			if lead.Reached[stage.Event] {
				count++
			}
		}
		stats[i] = StageStat{Stage: stage.Name, Count: count}
	}

	if len(stats) == 0 {
		return stats
	}

	entry := stats[0].Count
	for i := range stats {
		if entry > 0 {
			stats[i].PercentageOfEntry = float64(stats[i].Count) / float64(entry) * 100
		}
		if i+1 < len(stats) {
			rate := 0.0
			if stats[i].Count > 0 {
				rate = float64(stats[i+1].Count) / float64(stats[i].Count)
			}
			stats[i].NextStageConversion = &rate
		}
	}

	return stats
}

// ScoreLead returns the highest stage score the lead has reached. Stage
// scores are non-decreasing along the funnel, so this is the score of
// the deepest reached stage.
func ScoreLead(stages []StageDefinition, lead LeadRecord) float64 {
	score := 0.0
	for _, stage := range stages {
		if lead.Reached[stage.Event] && stage.Score > score {
			score = stage.Score
		}
	}
	return score
}

// AverageLeadScore computes the mean lead score across all leads, 0 when
// there are none.
func AverageLeadScore(stages []StageDefinition, leads []LeadRecord) float64 {
	if len(leads) == 0 {
		return 0
	}
	total := 0.0
	for _, lead := range leads {
		total += ScoreLead(stages, lead)
	}
	return total / float64(len(leads))
}
