package report

import (
	"strings"
	"testing"

	"github.com/zombar/scanreport/internal/document"
	"github.com/zombar/scanreport/internal/insights"
)

func fullDoc() document.Document {
	return document.FromMap(map[string]any{
		"ai": map[string]any{
			"classification": map[string]any{"AI": 0.07, "Original": 0.93},
			"confidence":     map[string]any{"AI": 0.0734, "Original": 0.9266},
			"blocks": []any{
				map[string]any{"text": "First block.", "result": map[string]any{"fake": 0.8, "real": 0.2}},
				map[string]any{"text": "Second block.", "result": map[string]any{"fake": 0.1, "real": 0.9}},
			},
		},
		"plagiarism": map[string]any{
			"score": 12.0,
			"matches": []any{
				map[string]any{"url": "https://example.com/source", "score": 40.0},
			},
		},
		"readability": map[string]any{
			"textStats": map[string]any{
				"uniqueWordCount":     250.0,
				"sentenceCount":       14.0,
				"averageSpeakingTime": 2.1,
				"averageReadingTime":  1.4,
			},
			"readability": map[string]any{
				"fleschReadingEase": 61.2,
				"fleschGradeLevel":  8.4,
			},
			"sentences": []any{
				map[string]any{"isHard": true},
				map[string]any{},
			},
		},
		"grammarSpelling": map[string]any{"error": "not available on this plan"},
		"credits": map[string]any{
			"used":                 1.0,
			"base_credits":         50.0,
			"subscription_credits": 200.0,
		},
		"properties": map[string]any{
			"title":       "Test Scan",
			"id":          "abc-123",
			"public_link": "https://app.example.com/share/abc-123",
		},
	})
}

func TestFormatTextError(t *testing.T) {
	got := FormatText(document.ErrorDocument("rate limited"))
	if got != "Error: rate limited" {
		t.Errorf("expected exact error line, got %q", got)
	}
}

func TestFormatTextErrorSuppressesOtherSections(t *testing.T) {
	doc := document.FromMap(map[string]any{
		"error": "rate limited",
		"ai":    map[string]any{"confidence": map[string]any{"AI": 0.99}},
	})
	got := FormatText(doc)
	if got != "Error: rate limited" {
		t.Errorf("error must suppress all other sections, got %q", got)
	}
}

func TestFormatTextFull(t *testing.T) {
	got := FormatText(fullDoc())

	for _, want := range []string{
		"AI Detection Results:",
		"AI Probability: 0.07",
		"Original Probability: 0.93",
		"Confidence Scores:",
		"AI Confidence: 7.34%",
		"Plagiarism Results:",
		"Plagiarism Score: 12%",
		"- https://example.com/source: 40% match",
		"Readability Metrics:",
		"Word Count: 250",
		"Sentence Count: 14",
		"Flesch Reading Ease: 61.2",
		"Flesch-Kincaid Grade Level: 8.4",
		"Grammar & Spelling: not available on this plan",
		"Credits Information:",
		"Used Credits: 1",
		"Base Credits: 50",
		"Subscription Credits: 200",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in summary:\n%s", want, got)
		}
	}
}

func TestFormatTextMissingScalars(t *testing.T) {
	doc := document.FromMap(map[string]any{
		"credits": map[string]any{"used": 1.0},
	})
	got := FormatText(doc)
	if !strings.Contains(got, "Base Credits: N/A") {
		t.Errorf("missing scalar must render as N/A:\n%s", got)
	}
	if !strings.Contains(got, "Used Credits: 1") {
		t.Errorf("present scalar must render its value:\n%s", got)
	}
}

func TestFormatTextMissingSectionsOmitted(t *testing.T) {
	doc := document.FromMap(map[string]any{
		"plagiarism": map[string]any{"score": 5.0},
	})
	got := FormatText(doc)
	for _, absent := range []string{"AI Detection", "Readability", "Credits"} {
		if strings.Contains(got, absent) {
			t.Errorf("section %q must be omitted, not defaulted:\n%s", absent, got)
		}
	}
}

func TestFormatTextEmpty(t *testing.T) {
	got := FormatText(document.FromMap(map[string]any{}))
	if got != "No results available" {
		t.Errorf("expected placeholder, got %q", got)
	}
}

func TestFiguresFixedOrder(t *testing.T) {
	figures := Figures(fullDoc())
	want := []string{
		"AI Detection",
		"Readability Metrics",
		"Text Statistics",
		"Sentence Complexity",
		"Plagiarism Analysis",
		"Readability Detail",
		"Text Analysis Timeline",
		"Sentence Heatmap",
	}
	if len(figures) != len(want) {
		t.Fatalf("expected %d figures, got %d", len(want), len(figures))
	}
	for i, fig := range figures {
		if fig.Title != want[i] {
			t.Errorf("figure %d: expected %q, got %q", i, want[i], fig.Title)
		}
		if fig.HTML == "" {
			t.Errorf("figure %q has an empty fragment", fig.Title)
		}
	}
}

func TestFiguresSkipAbsentSections(t *testing.T) {
	doc := document.FromMap(map[string]any{
		"plagiarism": map[string]any{"score": 5.0},
	})
	figures := Figures(doc)
	if len(figures) != 1 {
		t.Fatalf("expected only the plagiarism figure, got %d", len(figures))
	}
	if figures[0].Title != "Plagiarism Analysis" {
		t.Errorf("unexpected figure %q", figures[0].Title)
	}
}

func TestFiguresErrorDocument(t *testing.T) {
	if figures := Figures(document.ErrorDocument("boom")); len(figures) != 0 {
		t.Errorf("error document must yield no figures, got %d", len(figures))
	}
}

func TestFormatHTML(t *testing.T) {
	doc := fullDoc()
	figures := Figures(doc)
	lines := insights.Build(doc)

	html := FormatHTML(doc, figures, lines)

	for _, want := range []string{
		"<!DOCTYPE html>",
		PlotlyCDN,
		"Document Properties",
		"Test Scan",
		"Key Insights",
		"Overall AI Probability",
		"Plotly.newPlot",
		"Credits Information",
		"Used Credits: 1",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in HTML artifact", want)
		}
	}

	// One external script reference only; everything else is inline.
	if strings.Count(html, "<script src=") != 1 {
		t.Errorf("expected exactly one external script reference")
	}
}

func TestFormatHTMLError(t *testing.T) {
	html := FormatHTML(document.ErrorDocument("rate limited"), nil, nil)
	if !strings.Contains(html, "Error: rate limited") {
		t.Errorf("missing error line in HTML:\n%s", html)
	}
	for _, absent := range []string{"Plotly", "Key Insights", "Credits"} {
		if strings.Contains(html, absent) {
			t.Errorf("error page must contain only the error, found %q", absent)
		}
	}
}

func TestFormatHTMLEscapesInsights(t *testing.T) {
	doc := document.FromMap(map[string]any{
		"properties": map[string]any{"title": "<script>alert(1)</script>"},
	})
	html := FormatHTML(doc, nil, []string{"<b>not markup</b>"})
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("title must be escaped")
	}
	if strings.Contains(html, "<b>not markup</b>") {
		t.Error("insight lines must be escaped")
	}
}
