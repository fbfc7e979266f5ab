package qc

// estimateConfidence derives a no-reference trust score for OCR output.
// It starts at 1.0 and applies independent additive deductions: one per
// suspicious match (uncapped), a document-length penalty, and a script-ratio
// penalty when expected script ranges are configured. The result clamps at 0.
func estimateConfidence(text string, suspicious []SuspiciousMatch, cfg ConfidenceConfig, ranges []ScriptRange) float64 {
	confidence := 1.0

	confidence -= cfg.MatchPenalty * float64(len(suspicious))

	length := runeLen(text)
	switch {
	case length < cfg.ShortTextLimit:
		confidence -= cfg.ShortTextPenalty
	case length > cfg.LongTextLimit:
		confidence -= cfg.LongTextPenalty
	}

	// Only meaningful for documents expected to be predominantly in a
	// specific script; skipped entirely when no ranges are configured.
	if len(ranges) > 0 {
		if ratio, ok := scriptRatio(text, ranges); ok && ratio < cfg.MinScriptRatio {
			confidence -= cfg.ScriptRatioPenalty
		}
	}

	if confidence < 0 {
		confidence = 0
	}
	return confidence
}
