package qc

import "strings"

// scoreAccuracy computes reference-based accuracy metrics. Callers must
// only invoke it with a non-empty reference; an empty reference yields a
// character error rate of 0 by convention.
func scoreAccuracy(text, reference string) AccuracyMetrics {
	return AccuracyMetrics{
		CharacterAccuracy:  characterAccuracy(text, reference),
		WordAccuracy:       wordAccuracy(text, reference),
		CharacterErrorRate: characterErrorRate(text, reference),
	}
}

// characterAccuracy is a normalized LCS-based similarity ratio:
// 2 * matching characters / (len(reference) + len(text)). Identical strings
// score 1.0; disjoint strings approach 0.
func characterAccuracy(text, reference string) float64 {
	a := []rune(reference)
	b := []rune(text)
	if len(a)+len(b) == 0 {
		return 1.0
	}
	return 2 * float64(lcsLength(a, b)) / float64(len(a)+len(b))
}

// wordAccuracy compares whitespace-delimited tokens strictly by position:
// matches at index i / max token count. Tokens beyond the shorter sequence
// never match, so mid-stream insertions cascade mismatches — a known,
// accepted simplification of the source behavior.
func wordAccuracy(text, reference string) float64 {
	refTokens := strings.Fields(reference)
	gotTokens := strings.Fields(text)
	longest := max(len(refTokens), len(gotTokens))
	if longest == 0 {
		return 1.0
	}
	matches := 0
	for i := 0; i < len(refTokens) && i < len(gotTokens); i++ {
		if refTokens[i] == gotTokens[i] {
			matches++
		}
	}
	return float64(matches) / float64(longest)
}

// characterErrorRate is the minimum edit distance from reference to text
// normalized by reference length. It may exceed 1 when the OCR output is
// much longer than the reference; that is intentional and not clamped.
func characterErrorRate(text, reference string) float64 {
	ref := []rune(reference)
	if len(ref) == 0 {
		return 0
	}
	return float64(editDistance(ref, []rune(text))) / float64(len(ref))
}

// lcsLength is the longest-common-subsequence length, computed with a
// two-row dynamic program.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// editDistance is the classic Levenshtein distance with unit-cost insert,
// delete and substitute; no transposition operation.
func editDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
