// Package derive computes secondary metrics from a scan document: sentence
// complexity buckets, per-block AI scores, rolling-window timelines, heatmap
// rows and plagiarism breakdowns. All functions are pure and deterministic;
// a missing source section yields nil rather than an error.
package derive

import (
	"fmt"
	"unicode/utf8"

	"github.com/zombar/scanreport/internal/document"
)

// HighAIThreshold is the per-block fake probability above which a block is
// counted as strongly AI-like.
const HighAIThreshold = 0.75

// TimelineWindow is the rolling-average window, in sentences.
const TimelineWindow = 5

// ComplexitySummary aggregates per-sentence complexity flags.
type ComplexitySummary struct {
	Total            int `json:"total_sentences"`
	Hard             int `json:"hard_sentences"`
	VeryHard         int `json:"very_hard_sentences"`
	WithLongWords    int `json:"sentences_with_long_words"`
	WithComplexWords int `json:"sentences_with_complex_words"`
}

// Simple returns the count of sentences that are neither hard nor very
// hard. The flags are independent booleans, so Total-Hard-VeryHard can go
// negative when a sentence carries both; the result is clamped at zero.
func (c *ComplexitySummary) Simple() int {
	simple := c.Total - c.Hard - c.VeryHard
	if simple < 0 {
		return 0
	}
	return simple
}

// Complexity summarises sentence complexity. Returns nil when the document
// has no readability section.
func Complexity(doc document.Document) *ComplexitySummary {
	read, ok := doc.Readability()
	if !ok {
		return nil
	}
	summary := &ComplexitySummary{}
	for _, s := range read.Sentences() {
		summary.Total++
		if s.IsHard {
			summary.Hard++
		}
		if s.IsVeryHard {
			summary.VeryHard++
		}
		if len(s.WordsOver13Chars) > 0 {
			summary.WithLongWords++
		}
		if len(s.WordsOver4Syllables) > 0 {
			summary.WithComplexWords++
		}
	}
	return summary
}

// BlockScore carries the derived percentages for one text block.
type BlockScore struct {
	Text       string  `json:"text"`
	AIScore    float64 `json:"ai_score"`
	HumanScore float64 `json:"human_score"`
}

// BlockScores converts per-block probabilities into 0-100 percentages,
// preserving block order. Returns nil when no blocks are present.
func BlockScores(doc document.Document) []BlockScore {
	ai, ok := doc.AI()
	if !ok {
		return nil
	}
	blocks := ai.Blocks()
	if blocks == nil {
		return nil
	}
	scores := make([]BlockScore, len(blocks))
	for i, b := range blocks {
		scores[i] = BlockScore{
			Text:       b.Text,
			AIScore:    b.Fake * 100,
			HumanScore: b.Real * 100,
		}
	}
	return scores
}

// HighAIBlocks counts blocks whose fake probability exceeds HighAIThreshold.
func HighAIBlocks(doc document.Document) int {
	ai, ok := doc.AI()
	if !ok {
		return 0
	}
	count := 0
	for _, b := range ai.Blocks() {
		if b.Fake > HighAIThreshold {
			count++
		}
	}
	return count
}

// TimelineSeries holds rolling-average series over sentence positions. All
// three slices have one point per sentence.
type TimelineSeries struct {
	Complexity   []float64 `json:"complexity"`
	LongWords    []float64 `json:"long_words"`
	ComplexWords []float64 `json:"complex_words"`
}

// Timeline computes smoothed per-sentence series: complexity scores each
// sentence 0/1/2 from its two flags, the other series count flagged words.
// Returns nil when the document carries no sentence records.
func Timeline(doc document.Document) *TimelineSeries {
	read, ok := doc.Readability()
	if !ok {
		return nil
	}
	sentences := read.Sentences()
	if sentences == nil {
		return nil
	}
	complexity := make([]float64, len(sentences))
	longWords := make([]float64, len(sentences))
	complexWords := make([]float64, len(sentences))
	for i, s := range sentences {
		if s.IsHard {
			complexity[i]++
		}
		if s.IsVeryHard {
			complexity[i]++
		}
		longWords[i] = float64(len(s.WordsOver13Chars))
		complexWords[i] = float64(len(s.WordsOver4Syllables))
	}
	return &TimelineSeries{
		Complexity:   RollingMean(complexity, TimelineWindow),
		LongWords:    RollingMean(longWords, TimelineWindow),
		ComplexWords: RollingMean(complexWords, TimelineWindow),
	}
}

// RollingMean computes a simple moving average with a partial window near
// the start: position i averages over the last min(i+1, window) points, so
// the output always has the same length as the input and never holds NaN.
func RollingMean(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// HeatmapMatrix holds the two parallel rows of the block heatmap, indexed
// by block position: text length in characters and fake probability as a
// percentage.
type HeatmapMatrix struct {
	Lengths []float64 `json:"lengths"`
	AIProb  []float64 `json:"ai_prob"`
}

// Heatmap builds the 2xN heatmap rows. Returns nil when no blocks exist.
func Heatmap(doc document.Document) *HeatmapMatrix {
	ai, ok := doc.AI()
	if !ok {
		return nil
	}
	blocks := ai.Blocks()
	if blocks == nil {
		return nil
	}
	matrix := &HeatmapMatrix{
		Lengths: make([]float64, len(blocks)),
		AIProb:  make([]float64, len(blocks)),
	}
	for i, b := range blocks {
		matrix.Lengths[i] = float64(utf8.RuneCountInString(b.Text))
		matrix.AIProb[i] = b.Fake * 100
	}
	return matrix
}

// PlagiarismMetric is one labelled entry in the plagiarism breakdown.
type PlagiarismMetric struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// PlagiarismMetrics returns the overall score followed by one entry per
// match, labelled "Match 1", "Match 2", ... in source order. Returns nil
// when the plagiarism section is absent.
func PlagiarismMetrics(doc document.Document) []PlagiarismMetric {
	plag, ok := doc.Plagiarism()
	if !ok {
		return nil
	}
	score, _ := plag.Score()
	metrics := []PlagiarismMetric{{Label: "Overall Score", Score: score}}
	for i, m := range plag.Matches() {
		metrics = append(metrics, PlagiarismMetric{
			Label: fmt.Sprintf("Match %d", i+1),
			Score: m.Score,
		})
	}
	return metrics
}
