// Package insights turns derived metrics into the ordered, human-readable
// statement list shown at the top of every report. Section order is fixed
// (AI, then readability, then plagiarism) regardless of which sections the
// document carries; an absent section contributes nothing.
package insights

import (
	"fmt"

	"github.com/zombar/scanreport/internal/derive"
	"github.com/zombar/scanreport/internal/document"
)

// builder accumulates insight lines one section at a time.
type builder struct {
	lines []string
}

func (b *builder) addf(format string, args ...any) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

// Build produces the insight list for a document. Error documents produce
// no insights at all; the formatters surface the error line instead.
func Build(doc document.Document) []string {
	if doc.IsError() {
		return nil
	}
	b := &builder{}
	b.aiSection(doc)
	b.readabilitySection(doc)
	b.plagiarismSection(doc)
	return b.lines
}

func (b *builder) aiSection(doc document.Document) {
	ai, ok := doc.AI()
	if !ok {
		return
	}
	confidence, _ := ai.ConfidenceAI()
	b.addf("🤖 AI Detection:")
	b.addf("  - Overall AI Probability: %.1f%%", confidence*100)
	if len(ai.Blocks()) > 0 {
		b.addf("  - %d text blocks show strong AI characteristics", derive.HighAIBlocks(doc))
	}
}

func (b *builder) readabilitySection(doc document.Document) {
	read, ok := doc.Readability()
	if !ok {
		return
	}
	flesch, _ := read.Score("fleschReadingEase")
	readingTime, _ := read.Stat("averageReadingTime")

	b.addf("\n📚 Readability Analysis:")
	b.addf("  - Flesch Reading Ease: %.1f", flesch)
	b.addf("  - Average Reading Time: %.1f minutes", readingTime)

	// The complex-sentence line is omitted entirely for empty documents,
	// never shown as 0%.
	if c := derive.Complexity(doc); c != nil && c.Total > 0 {
		percent := float64(c.Hard+c.VeryHard) / float64(c.Total) * 100
		b.addf("  - %.1f%% of sentences are complex", percent)
	}
}

func (b *builder) plagiarismSection(doc document.Document) {
	plag, ok := doc.Plagiarism()
	if !ok {
		return
	}
	score, _ := plag.Score()
	b.addf("\n🔍 Plagiarism Check:")
	b.addf("  - Overall Score: %g%%", score)
	if matches := plag.Matches(); len(matches) > 0 {
		b.addf("  - Found %d potential matches", len(matches))
	}
}
