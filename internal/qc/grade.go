package qc

// gradeQuality folds the component metrics into one 0-100 score and its
// letter grade. Suspicious-match and error-pattern counts are normalized
// against their caps so pathological documents bottom out instead of
// driving the score negative.
func gradeQuality(validity, confidence float64, suspiciousCount, patternCount int, cfg GradeConfig) (float64, string) {
	suspiciousTerm := 1 - capRatio(suspiciousCount, cfg.SuspiciousCap)
	patternTerm := 1 - capRatio(patternCount, cfg.PatternCap)

	overall := 100 * (cfg.SchemaWeight*validity +
		cfg.ConfidenceWeight*confidence +
		cfg.SuspiciousWeight*suspiciousTerm +
		cfg.PatternWeight*patternTerm)

	return overall, gradeLabel(overall, cfg.Bands)
}

// gradeLabel maps a score to its band. Bands are validated at engine
// construction to be descending and to end at 0, so every score in [0,100]
// gets a label.
func gradeLabel(overall float64, bands []GradeBand) string {
	for _, band := range bands {
		if overall >= band.Min {
			return band.Label
		}
	}
	return bands[len(bands)-1].Label
}

func capRatio(count, limit int) float64 {
	ratio := float64(count) / float64(limit)
	if ratio > 1 {
		return 1
	}
	return ratio
}
