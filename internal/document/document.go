// Package document provides a tolerant typed view over a raw scan result
// returned by the Originality API. Every section of the result is optional
// and every accessor degrades to a zero value instead of failing, so a
// partially populated or malformed document can always be rendered.
package document

import (
	"encoding/json"
	"fmt"
)

// Document wraps a raw analysis result. It is immutable after construction;
// all derived views are recomputed from it on demand.
type Document struct {
	raw map[string]any
}

// FromJSON parses a raw scan result. Only the outer mapping shape is
// required; everything inside it is optional.
func FromJSON(data []byte) (Document, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("failed to parse scan document: %w", err)
	}
	return Document{raw: raw}, nil
}

// FromMap wraps an already-decoded scan result.
func FromMap(m map[string]any) Document {
	return Document{raw: m}
}

// ErrorDocument builds a document whose only populated field is the error
// message. Transport and service failures are represented this way so they
// flow through formatting as data rather than as Go errors.
func ErrorDocument(msg string) Document {
	return Document{raw: map[string]any{"error": msg}}
}

// Raw returns the underlying mapping. Callers must not mutate it.
func (d Document) Raw() map[string]any { return d.raw }

// MarshalJSON round-trips the raw mapping.
func (d Document) MarshalJSON() ([]byte, error) {
	if d.raw == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d.raw)
}

// Err returns the top-level error message, or "" when the document is a
// real scan result. A non-empty error overrides every other section.
func (d Document) Err() string {
	s, _ := str(d.raw, "error")
	return s
}

// IsError reports whether the document represents a failed scan.
func (d Document) IsError() bool { return d.Err() != "" }

// section returns a nested mapping by key. An error document exposes no
// sections at all, which gives every consumer the short-circuit behaviour
// for free.
func (d Document) section(key string) (map[string]any, bool) {
	if d.IsError() {
		return nil, false
	}
	return sub(d.raw, key)
}

// AI returns the AI-detection section.
func (d Document) AI() (AISection, bool) {
	m, ok := d.section("ai")
	return AISection{m: m}, ok
}

// Plagiarism returns the plagiarism section.
func (d Document) Plagiarism() (PlagiarismSection, bool) {
	m, ok := d.section("plagiarism")
	return PlagiarismSection{m: m}, ok
}

// Readability returns the readability section.
func (d Document) Readability() (ReadabilitySection, bool) {
	m, ok := d.section("readability")
	return ReadabilitySection{m: m}, ok
}

// GrammarSpelling returns the grammar/spelling section. The upstream
// feature is partial and may only ever carry an error placeholder.
func (d Document) GrammarSpelling() (GrammarSection, bool) {
	m, ok := d.section("grammarSpelling")
	return GrammarSection{m: m}, ok
}

// Credits returns the account credits section.
func (d Document) Credits() (CreditsSection, bool) {
	m, ok := d.section("credits")
	return CreditsSection{m: m}, ok
}

// Properties returns the stored-scan properties section.
func (d Document) Properties() (PropertiesSection, bool) {
	m, ok := d.section("properties")
	return PropertiesSection{m: m}, ok
}

// AISection is a view over the "ai" section.
type AISection struct {
	m map[string]any
}

// HasClassification reports whether the classification sub-block exists.
func (s AISection) HasClassification() bool {
	_, ok := sub(s.m, "classification")
	return ok
}

// HasConfidence reports whether the confidence sub-block exists.
func (s AISection) HasConfidence() bool {
	_, ok := sub(s.m, "confidence")
	return ok
}

// ClassificationAI returns classification.AI as a probability in [0,1].
func (s AISection) ClassificationAI() (float64, bool) {
	return nestedNum(s.m, "classification", "AI")
}

// ClassificationOriginal returns classification.Original.
func (s AISection) ClassificationOriginal() (float64, bool) {
	return nestedNum(s.m, "classification", "Original")
}

// ConfidenceAI returns confidence.AI.
func (s AISection) ConfidenceAI() (float64, bool) {
	return nestedNum(s.m, "confidence", "AI")
}

// ConfidenceOriginal returns confidence.Original.
func (s AISection) ConfidenceOriginal() (float64, bool) {
	return nestedNum(s.m, "confidence", "Original")
}

// Blocks returns the scored text blocks in source order. A malformed entry
// degrades to a zero-valued block so indices stay aligned with the source.
func (s AISection) Blocks() []Block {
	items, ok := list(s.m, "blocks")
	if !ok {
		return nil
	}
	blocks := make([]Block, 0, len(items))
	for _, item := range items {
		var b Block
		if m, ok := item.(map[string]any); ok {
			b.Text, _ = str(m, "text")
			if result, ok := sub(m, "result"); ok {
				b.Fake, _ = num(result, "fake")
				b.Real, _ = num(result, "real")
			}
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// Block is a contiguous text segment independently scored for AI likelihood.
type Block struct {
	Text string
	Fake float64 // probability the block is AI generated, 0-1
	Real float64 // probability the block is human written, 0-1
}

// PlagiarismSection is a view over the "plagiarism" section.
type PlagiarismSection struct {
	m map[string]any
}

// Score returns the overall plagiarism score, 0-100.
func (s PlagiarismSection) Score() (float64, bool) {
	return num(s.m, "score")
}

// Matches returns the plagiarism hits in source order.
func (s PlagiarismSection) Matches() []Match {
	items, ok := list(s.m, "matches")
	if !ok {
		return nil
	}
	matches := make([]Match, 0, len(items))
	for _, item := range items {
		var match Match
		if m, ok := item.(map[string]any); ok {
			match.URL, _ = str(m, "url")
			match.Score, _ = num(m, "score")
		}
		matches = append(matches, match)
	}
	return matches
}

// Match is a plagiarism hit against an external source.
type Match struct {
	URL   string
	Score float64
}

// ReadabilitySection is a view over the "readability" section.
type ReadabilitySection struct {
	m map[string]any
}

// Stat returns a named value from textStats (word counts, timings).
func (s ReadabilitySection) Stat(name string) (float64, bool) {
	return nestedNum(s.m, "textStats", name)
}

// Score returns a named readability score (fleschReadingEase, smogIndex...).
func (s ReadabilitySection) Score(name string) (float64, bool) {
	return nestedNum(s.m, "readability", name)
}

// Sentences returns the per-sentence records in source order.
func (s ReadabilitySection) Sentences() []Sentence {
	items, ok := list(s.m, "sentences")
	if !ok {
		return nil
	}
	sentences := make([]Sentence, 0, len(items))
	for _, item := range items {
		var sent Sentence
		if m, ok := item.(map[string]any); ok {
			sent.IsHard, _ = boolean(m, "isHard")
			sent.IsVeryHard, _ = boolean(m, "isVeryHard")
			sent.WordsOver13Chars = strList(m, "wordsOver13Chars")
			sent.WordsOver4Syllables = strList(m, "wordsOver4Syllables")
		}
		sentences = append(sentences, sent)
	}
	return sentences
}

// Sentence carries the complexity flags for one sentence. IsHard and
// IsVeryHard are independent booleans; a sentence may be both or neither.
type Sentence struct {
	IsHard              bool
	IsVeryHard          bool
	WordsOver13Chars    []string
	WordsOver4Syllables []string
}

// GrammarSection is a view over the "grammarSpelling" section.
type GrammarSection struct {
	m map[string]any
}

// Err returns the grammar check's error placeholder, if any.
func (s GrammarSection) Err() (string, bool) {
	return str(s.m, "error")
}

// CreditsSection is a view over the "credits" section.
type CreditsSection struct {
	m map[string]any
}

// Used returns the credits consumed by this scan.
func (s CreditsSection) Used() (float64, bool) { return num(s.m, "used") }

// Base returns the account's base credit balance.
func (s CreditsSection) Base() (float64, bool) { return num(s.m, "base_credits") }

// Subscription returns the account's subscription credit balance.
func (s CreditsSection) Subscription() (float64, bool) { return num(s.m, "subscription_credits") }

// PropertiesSection is a view over the "properties" section.
type PropertiesSection struct {
	m map[string]any
}

// Title returns the stored scan title.
func (s PropertiesSection) Title() (string, bool) { return str(s.m, "title") }

// ID returns the remote scan id.
func (s PropertiesSection) ID() (string, bool) { return stringish(s.m, "id") }

// PublicLink returns the shareable result link.
func (s PropertiesSection) PublicLink() (string, bool) { return str(s.m, "public_link") }

// PrivateID returns the private scan identifier.
func (s PropertiesSection) PrivateID() (string, bool) { return stringish(s.m, "privateID") }
