package qc

import "fmt"

// recommend turns analysis findings into prioritized, human-actionable
// suggestions. It is a pure threshold-to-text mapping: each rule fires
// independently and emission order is fixed. Image-quality flags, when
// supplied, append medium-priority remediation hints after the core rules.
func recommend(validity float64, suspicious []SuspiciousMatch, patterns []ErrorPattern, confidence float64, image *ImageSignals, cfg RecommendConfig) []Recommendation {
	var recs []Recommendation

	if validity < cfg.MinSchemaValidity {
		recs = append(recs, Recommendation{
			Category: "Schema Structure",
			Priority: PriorityHigh,
			Issue:    fmt.Sprintf("schema validity %.2f is below %.2f; expected keys are missing or malformed", validity, cfg.MinSchemaValidity),
			Solution: "review the recognized keys manually and restore the expected document structure",
			ExpectedImprovement: "schema validity approaching 1.0 once required keys are present",
		})
	}

	if len(suspicious) > cfg.MaxSuspicious {
		recs = append(recs, Recommendation{
			Category: "Recognition Quality",
			Priority: PriorityHigh,
			Issue:    fmt.Sprintf("%d suspicious substrings detected, more than the %d tolerated", len(suspicious), cfg.MaxSuspicious),
			Solution: "re-run OCR after image-level remediation: increase contrast and denoise the scan",
			ExpectedImprovement: "fewer merged tokens and noise artifacts in the recognized text",
		})
	}

	if confidence < cfg.MinConfidence {
		recs = append(recs, Recommendation{
			Category: "Confidence",
			Priority: PriorityHigh,
			Issue:    fmt.Sprintf("estimated OCR confidence %.2f is below %.2f", confidence, cfg.MinConfidence),
			Solution: "rescan at higher resolution, reduce blur, and improve contrast before OCR",
			ExpectedImprovement: "confidence above the threshold on the next pass",
		})
	}

	if len(patterns) > 0 {
		recs = append(recs, Recommendation{
			Category: "Error Patterns",
			Priority: PriorityMedium,
			Issue:    fmt.Sprintf("%d known recognition-error patterns detected", len(patterns)),
			Solution: "extend the confusable-glyph table for this document set and apply auto-correction",
			ExpectedImprovement: "systematic substitutions removed from future output",
		})
	}

	recs = append(recs, imageRecommendations(image)...)
	return recs
}

// imageRecommendations maps raised image-quality flags to remediation
// hints. The flags never alter numeric scores.
func imageRecommendations(image *ImageSignals) []Recommendation {
	if image == nil {
		return nil
	}
	hint := func(issue, solution string) Recommendation {
		return Recommendation{
			Category:            "Image Quality",
			Priority:            PriorityMedium,
			Issue:               issue,
			Solution:            solution,
			ExpectedImprovement: "higher recognition accuracy on a rescanned image",
		}
	}
	var recs []Recommendation
	if image.LowResolution {
		recs = append(recs, hint("source image resolution is low", "rescan at 300 DPI or higher"))
	}
	if image.LowContrast {
		recs = append(recs, hint("source image contrast is low", "apply contrast stretching before OCR"))
	}
	if image.Noisy {
		recs = append(recs, hint("source image is noisy", "apply a denoising filter before OCR"))
	}
	if image.Skewed {
		recs = append(recs, hint("source image is skewed", "deskew the page before OCR"))
	}
	if image.HasShadows {
		recs = append(recs, hint("source image has shadows", "relight or flatten the page and rescan"))
	}
	return recs
}
