// Package report renders a scan document plus its derived metrics into the
// two output artifacts: a plain-text summary and a standalone HTML report.
// The formatters only sequence data; they never fail on missing sections.
package report

import (
	"fmt"
	"strings"

	"github.com/zombar/scanreport/internal/document"
)

// FormatText renders the human-readable multi-line summary of a scan. Each
// sub-block appears only when its section exists in the document; missing
// scalar fields render as "N/A". An error document collapses to a single
// error line.
func FormatText(doc document.Document) string {
	if msg := doc.Err(); msg != "" {
		return fmt.Sprintf("Error: %s", msg)
	}

	var out []string

	if ai, ok := doc.AI(); ok {
		if ai.HasClassification() {
			out = append(out, "\nAI Detection Results:")
			out = append(out, "AI Probability: "+naNumber(ai.ClassificationAI()))
			out = append(out, "Original Probability: "+naNumber(ai.ClassificationOriginal()))
		}
		if ai.HasConfidence() {
			out = append(out, "\nConfidence Scores:")
			out = append(out, "AI Confidence: "+naPercent(ai.ConfidenceAI()))
			out = append(out, "Original Confidence: "+naPercent(ai.ConfidenceOriginal()))
		}
	}

	if plag, ok := doc.Plagiarism(); ok {
		out = append(out, "\nPlagiarism Results:")
		if score, ok := plag.Score(); ok {
			out = append(out, fmt.Sprintf("Plagiarism Score: %g%%", score))
		}
		if matches := plag.Matches(); len(matches) > 0 {
			out = append(out, "\nPlagiarism Matches:")
			for _, m := range matches {
				url := m.URL
				if url == "" {
					url = "N/A"
				}
				out = append(out, fmt.Sprintf("- %s: %g%% match", url, m.Score))
			}
		}
	}

	if read, ok := doc.Readability(); ok {
		out = append(out, "\nReadability Metrics:")
		out = append(out, "Word Count: "+naNumber(read.Stat("uniqueWordCount")))
		out = append(out, "Sentence Count: "+naNumber(read.Stat("sentenceCount")))
		out = append(out, "Average Speaking Time: "+naNumber(read.Stat("averageSpeakingTime"))+" minutes")
		out = append(out, "Average Reading Time: "+naNumber(read.Stat("averageReadingTime"))+" minutes")
		out = append(out, "\nReadability Scores:")
		out = append(out, "Flesch Reading Ease: "+naNumber(read.Score("fleschReadingEase")))
		out = append(out, "Flesch-Kincaid Grade Level: "+naNumber(read.Score("fleschGradeLevel")))
	}

	if grammar, ok := doc.GrammarSpelling(); ok {
		if msg, ok := grammar.Err(); ok {
			out = append(out, fmt.Sprintf("\nGrammar & Spelling: %s", msg))
		}
	}

	if credits, ok := doc.Credits(); ok {
		out = append(out, "\nCredits Information:")
		out = append(out, "Used Credits: "+naNumber(credits.Used()))
		out = append(out, "Base Credits: "+naNumber(credits.Base()))
		out = append(out, "Subscription Credits: "+naNumber(credits.Subscription()))
	}

	if len(out) == 0 {
		return "No results available"
	}
	return strings.Join(out, "\n")
}

// naNumber formats an optional numeric field, substituting "N/A" when the
// field was missing or mistyped.
func naNumber(v float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%g", v)
}

// naPercent formats an optional probability as a percentage to two decimals.
func naPercent(v float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}
