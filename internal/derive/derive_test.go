package derive

import (
	"math"
	"testing"

	"github.com/zombar/scanreport/internal/document"
)

func sentenceDoc(sentences []any) document.Document {
	return document.FromMap(map[string]any{
		"readability": map[string]any{"sentences": sentences},
	})
}

func TestComplexity(t *testing.T) {
	doc := sentenceDoc([]any{
		map[string]any{"isHard": true},
		map[string]any{"isHard": true},
		map[string]any{"isVeryHard": true},
		map[string]any{"wordsOver13Chars": []any{"incomprehensible"}},
		map[string]any{"wordsOver4Syllables": []any{"unintelligible"}},
		map[string]any{},
	})

	c := Complexity(doc)
	if c == nil {
		t.Fatal("expected a complexity summary")
	}
	if c.Total != 6 || c.Hard != 2 || c.VeryHard != 1 {
		t.Errorf("unexpected counts: %+v", c)
	}
	if c.WithLongWords != 1 || c.WithComplexWords != 1 {
		t.Errorf("unexpected word counts: %+v", c)
	}
	if c.Simple() != 3 {
		t.Errorf("expected 3 simple sentences, got %d", c.Simple())
	}
}

func TestComplexityAbsentSection(t *testing.T) {
	if c := Complexity(document.FromMap(map[string]any{})); c != nil {
		t.Errorf("expected nil for missing readability, got %+v", c)
	}
}

func TestComplexityOverlappingFlags(t *testing.T) {
	// isHard and isVeryHard are independent; a sentence flagged as both
	// would drive Total-Hard-VeryHard negative, which Simple clamps.
	doc := sentenceDoc([]any{
		map[string]any{"isHard": true, "isVeryHard": true},
	})

	c := Complexity(doc)
	if c.Hard != 1 || c.VeryHard != 1 {
		t.Errorf("flags must be counted independently: %+v", c)
	}
	if c.Simple() != 0 {
		t.Errorf("expected clamped simple count 0, got %d", c.Simple())
	}
}

func TestBlockScores(t *testing.T) {
	doc := document.FromMap(map[string]any{
		"ai": map[string]any{
			"blocks": []any{
				map[string]any{"text": "a", "result": map[string]any{"fake": 0.5, "real": 0.5}},
				map[string]any{"text": "b", "result": map[string]any{"fake": 1.0, "real": 0.0}},
				map[string]any{"text": "c", "result": map[string]any{"fake": 0.0, "real": 1.0}},
			},
		},
	})

	scores := BlockScores(doc)
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	if scores[0].AIScore != 50.0 || scores[0].HumanScore != 50.0 {
		t.Errorf("fake=0.5 must map to ai_score=50.0, got %+v", scores[0])
	}
	for _, s := range scores {
		if s.AIScore < 0 || s.AIScore > 100 || s.HumanScore < 0 || s.HumanScore > 100 {
			t.Errorf("scores out of range: %+v", s)
		}
	}
}

func TestBlockScoresAbsent(t *testing.T) {
	if scores := BlockScores(document.FromMap(map[string]any{})); scores != nil {
		t.Errorf("expected nil for missing ai section, got %v", scores)
	}
	if scores := BlockScores(document.FromMap(map[string]any{"ai": map[string]any{}})); scores != nil {
		t.Errorf("expected nil for missing blocks, got %v", scores)
	}
}

func TestHighAIBlocks(t *testing.T) {
	doc := document.FromMap(map[string]any{
		"ai": map[string]any{
			"blocks": []any{
				map[string]any{"result": map[string]any{"fake": 0.76}},
				map[string]any{"result": map[string]any{"fake": 0.75}}, // not strictly above
				map[string]any{"result": map[string]any{"fake": 0.9}},
			},
		},
	})

	if got := HighAIBlocks(doc); got != 2 {
		t.Errorf("expected 2 high-AI blocks, got %d", got)
	}
}

func TestRollingMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		window   int
		expected []float64
	}{
		{"partial windows at start", []float64{0, 1, 2, 3, 4, 5}, 5, []float64{0, 0.5, 1, 1.5, 2, 3}},
		{"window one is identity", []float64{3, 1, 4}, 1, []float64{3, 1, 4}},
		{"window larger than input", []float64{2, 4}, 10, []float64{2, 3}},
		{"empty input", []float64{}, 5, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RollingMean(tt.values, tt.window)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected length %d, got %d", len(tt.expected), len(got))
			}
			for i := range got {
				if math.Abs(got[i]-tt.expected[i]) > 1e-9 {
					t.Errorf("position %d: expected %v, got %v", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestTimelineLengthMatchesSentenceCount(t *testing.T) {
	for _, n := range []int{0, 1, 4, 5, 17} {
		sentences := make([]any, n)
		for i := range sentences {
			sentences[i] = map[string]any{"isHard": i%2 == 0}
		}
		series := Timeline(sentenceDoc(sentences))
		if series == nil {
			t.Fatalf("n=%d: expected a series", n)
		}
		if len(series.Complexity) != n || len(series.LongWords) != n || len(series.ComplexWords) != n {
			t.Errorf("n=%d: series lengths %d/%d/%d", n,
				len(series.Complexity), len(series.LongWords), len(series.ComplexWords))
		}
	}
}

func TestTimelineAbsent(t *testing.T) {
	if series := Timeline(document.FromMap(map[string]any{})); series != nil {
		t.Errorf("expected nil timeline for missing readability")
	}
}

func TestTimelineComplexityScoring(t *testing.T) {
	// Both flags set scores 2, one flag 1, none 0; smoothing over a
	// single sentence leaves the raw value.
	series := Timeline(sentenceDoc([]any{
		map[string]any{"isHard": true, "isVeryHard": true},
	}))
	if series.Complexity[0] != 2 {
		t.Errorf("expected complexity 2, got %v", series.Complexity[0])
	}
}

func TestHeatmap(t *testing.T) {
	doc := document.FromMap(map[string]any{
		"ai": map[string]any{
			"blocks": []any{
				map[string]any{"text": "hello", "result": map[string]any{"fake": 0.25}},
				map[string]any{"text": "héllo", "result": map[string]any{"fake": 0.75}},
			},
		},
	})

	matrix := Heatmap(doc)
	if matrix == nil {
		t.Fatal("expected a heatmap")
	}
	if len(matrix.Lengths) != 2 || len(matrix.AIProb) != 2 {
		t.Fatalf("expected 2 columns, got %d/%d", len(matrix.Lengths), len(matrix.AIProb))
	}
	// Length counts characters, not bytes.
	if matrix.Lengths[1] != 5 {
		t.Errorf("expected length 5 for multibyte text, got %v", matrix.Lengths[1])
	}
	if matrix.AIProb[0] != 25 || matrix.AIProb[1] != 75 {
		t.Errorf("unexpected probabilities: %v", matrix.AIProb)
	}
}

func TestPlagiarismMetrics(t *testing.T) {
	doc := document.FromMap(map[string]any{
		"plagiarism": map[string]any{
			"score": 15.5,
			"matches": []any{
				map[string]any{"url": "https://example.com/a", "score": 40.0},
				map[string]any{"url": "https://example.com/b", "score": 10.0},
			},
		},
	})

	metrics := PlagiarismMetrics(doc)
	if len(metrics) != 3 {
		t.Fatalf("expected 1+len(matches) entries, got %d", len(metrics))
	}
	if metrics[0].Label != "Overall Score" || metrics[0].Score != 15.5 {
		t.Errorf("unexpected first entry: %+v", metrics[0])
	}
	if metrics[1].Label != "Match 1" || metrics[1].Score != 40 {
		t.Errorf("unexpected second entry: %+v", metrics[1])
	}
	if metrics[2].Label != "Match 2" || metrics[2].Score != 10 {
		t.Errorf("unexpected third entry: %+v", metrics[2])
	}
}

func TestPlagiarismMetricsNoMatches(t *testing.T) {
	doc := document.FromMap(map[string]any{
		"plagiarism": map[string]any{"score": 3.0},
	})

	metrics := PlagiarismMetrics(doc)
	if len(metrics) != 1 {
		t.Fatalf("expected only the overall entry, got %d", len(metrics))
	}
	if metrics[0].Label != "Overall Score" {
		t.Errorf("unexpected label %q", metrics[0].Label)
	}
}

func TestPlagiarismMetricsAbsent(t *testing.T) {
	if metrics := PlagiarismMetrics(document.FromMap(map[string]any{})); metrics != nil {
		t.Errorf("expected nil for missing plagiarism section")
	}
}

func TestDerivationsOnErrorDocument(t *testing.T) {
	doc := document.ErrorDocument("rate limited")

	if Complexity(doc) != nil {
		t.Error("complexity must be nil for an error document")
	}
	if BlockScores(doc) != nil {
		t.Error("block scores must be nil for an error document")
	}
	if Timeline(doc) != nil {
		t.Error("timeline must be nil for an error document")
	}
	if Heatmap(doc) != nil {
		t.Error("heatmap must be nil for an error document")
	}
	if PlagiarismMetrics(doc) != nil {
		t.Error("plagiarism metrics must be nil for an error document")
	}
}
