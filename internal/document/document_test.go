package document

import (
	"testing"
)

func TestFromJSON(t *testing.T) {
	doc, err := FromJSON([]byte(`{"ai": {"confidence": {"AI": 0.82, "Original": 0.18}}}`))
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}

	ai, ok := doc.AI()
	if !ok {
		t.Fatal("expected ai section to be present")
	}
	conf, ok := ai.ConfidenceAI()
	if !ok {
		t.Fatal("expected confidence.AI to be present")
	}
	if conf != 0.82 {
		t.Errorf("expected confidence 0.82, got %v", conf)
	}
}

func TestFromJSONInvalid(t *testing.T) {
	if _, err := FromJSON([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestMissingSections(t *testing.T) {
	doc := FromMap(map[string]any{})

	if _, ok := doc.AI(); ok {
		t.Error("ai section should be absent")
	}
	if _, ok := doc.Plagiarism(); ok {
		t.Error("plagiarism section should be absent")
	}
	if _, ok := doc.Readability(); ok {
		t.Error("readability section should be absent")
	}
	if _, ok := doc.Credits(); ok {
		t.Error("credits section should be absent")
	}
	if doc.IsError() {
		t.Error("empty document is not an error document")
	}
}

func TestErrorOverridesAllSections(t *testing.T) {
	// Contradictory sections alongside the error key must be ignored.
	doc := FromMap(map[string]any{
		"error": "rate limited",
		"ai":    map[string]any{"confidence": map[string]any{"AI": 0.99}},
	})

	if got := doc.Err(); got != "rate limited" {
		t.Errorf("expected error 'rate limited', got %q", got)
	}
	if _, ok := doc.AI(); ok {
		t.Error("error document must expose no sections")
	}
}

func TestErrorDocument(t *testing.T) {
	doc := ErrorDocument("connection refused")
	if !doc.IsError() {
		t.Error("expected error document")
	}
	if doc.Err() != "connection refused" {
		t.Errorf("unexpected error message %q", doc.Err())
	}
}

func TestWrongTypedFieldIsAbsent(t *testing.T) {
	doc := FromMap(map[string]any{
		"ai": map[string]any{
			"confidence": map[string]any{"AI": "very"},
		},
		"plagiarism": "lots",
	})

	ai, ok := doc.AI()
	if !ok {
		t.Fatal("ai section should be present")
	}
	if _, ok := ai.ConfidenceAI(); ok {
		t.Error("string-typed confidence should read as absent")
	}
	if !ai.HasConfidence() {
		t.Error("confidence sub-block itself is present")
	}
	if _, ok := doc.Plagiarism(); ok {
		t.Error("string-typed plagiarism section should read as absent")
	}
}

func TestBlocksPreserveOrder(t *testing.T) {
	doc := FromMap(map[string]any{
		"ai": map[string]any{
			"blocks": []any{
				map[string]any{"text": "first", "result": map[string]any{"fake": 0.9, "real": 0.1}},
				"garbage",
				map[string]any{"text": "third", "result": map[string]any{"fake": 0.2, "real": 0.8}},
			},
		},
	})

	ai, _ := doc.AI()
	blocks := ai.Blocks()
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	if blocks[0].Text != "first" || blocks[0].Fake != 0.9 {
		t.Errorf("unexpected first block %+v", blocks[0])
	}
	// A malformed entry keeps its slot so indices stay aligned.
	if blocks[1].Text != "" || blocks[1].Fake != 0 {
		t.Errorf("malformed block should be zero-valued, got %+v", blocks[1])
	}
	if blocks[2].Text != "third" {
		t.Errorf("unexpected third block %+v", blocks[2])
	}
}

func TestSentences(t *testing.T) {
	doc := FromMap(map[string]any{
		"readability": map[string]any{
			"sentences": []any{
				map[string]any{"isHard": true, "wordsOver13Chars": []any{"extraordinarily"}},
				map[string]any{"isVeryHard": true, "wordsOver4Syllables": []any{"incomprehensibility", "unintelligible"}},
				map[string]any{},
			},
		},
	})

	read, _ := doc.Readability()
	sentences := read.Sentences()
	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(sentences))
	}
	if !sentences[0].IsHard || sentences[0].IsVeryHard {
		t.Errorf("unexpected flags on first sentence: %+v", sentences[0])
	}
	if len(sentences[1].WordsOver4Syllables) != 2 {
		t.Errorf("expected 2 complex words, got %d", len(sentences[1].WordsOver4Syllables))
	}
	if sentences[2].IsHard || sentences[2].IsVeryHard {
		t.Errorf("empty sentence record should be zero-valued")
	}
}

func TestPropertiesNumericID(t *testing.T) {
	doc := FromMap(map[string]any{
		"properties": map[string]any{"id": float64(12345), "title": "My Scan"},
	})

	props, ok := doc.Properties()
	if !ok {
		t.Fatal("properties should be present")
	}
	id, ok := props.ID()
	if !ok || id != "12345" {
		t.Errorf("expected id '12345', got %q (ok=%v)", id, ok)
	}
}

func TestMatches(t *testing.T) {
	doc := FromMap(map[string]any{
		"plagiarism": map[string]any{
			"score": 15.5,
			"matches": []any{
				map[string]any{"url": "https://example.com/a", "score": 40.0},
				map[string]any{"url": "https://example.com/b", "score": 10.0},
			},
		},
	})

	plag, _ := doc.Plagiarism()
	score, ok := plag.Score()
	if !ok || score != 15.5 {
		t.Errorf("expected score 15.5, got %v", score)
	}
	matches := plag.Matches()
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].URL != "https://example.com/a" || matches[0].Score != 40 {
		t.Errorf("unexpected first match %+v", matches[0])
	}
}
