package report

import (
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/zombar/scanreport/internal/derive"
	"github.com/zombar/scanreport/internal/document"
)

// Figure is an opaque, pre-rendered visualization fragment. The HTML
// formatter sequences figures without inspecting their contents, so the
// chart technology can change without touching the report layout.
type Figure struct {
	Title string
	HTML  template.HTML
}

// Figures builds the interactive chart fragments for a document in the
// fixed report order: AI detection, readability, text stats, complexity,
// plagiarism, readability detail, timeline, heatmap. Figures whose source
// section is absent are skipped.
func Figures(doc document.Document) []Figure {
	var figures []Figure
	builders := []func(document.Document) *Figure{
		aiDetectionFigure,
		readabilityMetricsFigure,
		textStatisticsFigure,
		complexityFigure,
		plagiarismFigure,
		readabilityDetailFigure,
		timelineFigure,
		heatmapFigure,
	}
	for _, build := range builders {
		if fig := build(doc); fig != nil {
			figures = append(figures, *fig)
		}
	}
	return figures
}

// plotFragment renders one self-contained Plotly div+script pair. The JSON
// encoder escapes angle brackets, so the payload is safe inside <script>.
func plotFragment(id string, data any, layout any) template.HTML {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	layoutJSON, err := json.Marshal(layout)
	if err != nil {
		return ""
	}
	return template.HTML(fmt.Sprintf(
		`<div id=%q class="plot"></div>
<script>Plotly.newPlot(%q, %s, %s, {"responsive": true});</script>`,
		id, id, dataJSON, layoutJSON))
}

func aiDetectionFigure(doc document.Document) *Figure {
	ai, ok := doc.AI()
	if !ok {
		return nil
	}
	confAI, _ := ai.ConfidenceAI()
	confOriginal, _ := ai.ConfidenceOriginal()
	data := []map[string]any{{
		"type":   "pie",
		"labels": []string{"AI Generated", "Original"},
		"values": []float64{confAI * 100, confOriginal * 100},
		"hole":   0.3,
		"marker": map[string]any{"colors": []string{"#FF9999", "#66B2FF"}},
	}}
	layout := map[string]any{"title": "AI Detection Confidence Scores"}
	return &Figure{Title: "AI Detection", HTML: plotFragment("fig-ai-detection", data, layout)}
}

func readabilityMetricsFigure(doc document.Document) *Figure {
	read, ok := doc.Readability()
	if !ok {
		return nil
	}
	categories := []string{
		"Flesch Reading Ease", "Flesch-Kincaid Grade",
		"Gunning Fox Index", "SMOG Index", "Coleman-Liau",
	}
	keys := []string{
		"fleschReadingEase", "fleschGradeLevel",
		"gunningFoxIndex", "smogIndex", "colemanLiauIndex",
	}
	values := make([]float64, len(keys))
	for i, key := range keys {
		values[i], _ = read.Score(key)
	}
	data := []map[string]any{{
		"type":  "scatterpolar",
		"r":     values,
		"theta": categories,
		"fill":  "toself",
		"name":  "Readability Scores",
	}}
	layout := map[string]any{
		"title":      "Readability Metrics",
		"showlegend": false,
	}
	return &Figure{Title: "Readability Metrics", HTML: plotFragment("fig-readability", data, layout)}
}

func textStatisticsFigure(doc document.Document) *Figure {
	read, ok := doc.Readability()
	if !ok {
		return nil
	}
	labels := []string{"Word Count", "Sentence Count", "Syllable Count", "Speaking Time (min)", "Reading Time (min)"}
	keys := []string{"uniqueWordCount", "sentenceCount", "syllableCount", "averageSpeakingTime", "averageReadingTime"}
	values := make([]float64, len(keys))
	for i, key := range keys {
		values[i], _ = read.Stat(key)
	}
	data := []map[string]any{{
		"type":   "bar",
		"x":      labels,
		"y":      values,
		"marker": map[string]any{"color": []string{"#FF9999", "#66B2FF", "#99FF99", "#FFCC99", "#FF99CC"}},
	}}
	layout := map[string]any{"title": "Text Statistics"}
	return &Figure{Title: "Text Statistics", HTML: plotFragment("fig-text-stats", data, layout)}
}

func complexityFigure(doc document.Document) *Figure {
	c := derive.Complexity(doc)
	if c == nil {
		return nil
	}
	data := []map[string]any{{
		"type":   "bar",
		"x":      []string{"Simple", "Hard", "Very Hard"},
		"y":      []int{c.Simple(), c.Hard, c.VeryHard},
		"marker": map[string]any{"color": []string{"#99FF99", "#FFCC99", "#FF9999"}},
	}}
	layout := map[string]any{
		"title": "Sentence Complexity Distribution",
		"xaxis": map[string]any{"title": "Complexity Level"},
		"yaxis": map[string]any{"title": "Number of Sentences"},
	}
	return &Figure{Title: "Sentence Complexity", HTML: plotFragment("fig-complexity", data, layout)}
}

func plagiarismFigure(doc document.Document) *Figure {
	metrics := derive.PlagiarismMetrics(doc)
	if metrics == nil {
		return nil
	}
	labels := make([]string, len(metrics))
	values := make([]float64, len(metrics))
	text := make([]string, len(metrics))
	for i, m := range metrics {
		labels[i] = m.Label
		values[i] = m.Score
		text[i] = fmt.Sprintf("%g%%", m.Score)
	}
	data := []map[string]any{{
		"type":         "bar",
		"x":            labels,
		"y":            values,
		"marker":       map[string]any{"color": "#FF9999"},
		"text":         text,
		"textposition": "auto",
	}}
	layout := map[string]any{
		"title": "Plagiarism Analysis",
		"yaxis": map[string]any{"title": "Match Percentage (%)", "range": []int{0, 100}},
	}
	return &Figure{Title: "Plagiarism Analysis", HTML: plotFragment("fig-plagiarism", data, layout)}
}

func readabilityDetailFigure(doc document.Document) *Figure {
	read, ok := doc.Readability()
	if !ok {
		return nil
	}
	labels := []string{"Unique Words", "Total Syllables", "Avg Syllables/Word", "Words with 3+ Syllables", "% Complex Words"}
	keys := []string{"uniqueWordCount", "totalSyllables", "averageSyllablesPerWord", "wordsWithThreeSyllables", "percentWordsWithThreeSyllables"}
	values := make([]float64, len(keys))
	for i, key := range keys {
		values[i], _ = read.Stat(key)
	}
	data := []map[string]any{{
		"type":   "bar",
		"x":      labels,
		"y":      values,
		"marker": map[string]any{"color": []string{"#66B2FF", "#99FF99", "#FFCC99", "#FF99CC", "#FF9999"}},
	}}
	layout := map[string]any{"title": "Detailed Readability Metrics"}
	return &Figure{Title: "Readability Detail", HTML: plotFragment("fig-readability-detail", data, layout)}
}

func timelineFigure(doc document.Document) *Figure {
	series := derive.Timeline(doc)
	if series == nil {
		return nil
	}
	positions := make([]int, len(series.Complexity))
	for i := range positions {
		positions[i] = i
	}
	trace := func(name string, values []float64) map[string]any {
		return map[string]any{
			"type": "scatter",
			"mode": "lines+markers",
			"name": name,
			"x":    positions,
			"y":    values,
		}
	}
	data := []map[string]any{
		trace("Complexity", series.Complexity),
		trace("Long Words", series.LongWords),
		trace("Complex Words", series.ComplexWords),
	}
	layout := map[string]any{
		"title":      fmt.Sprintf("Readability Timeline (Rolling Average: %d sentences)", derive.TimelineWindow),
		"xaxis":      map[string]any{"title": "Sentence Position"},
		"yaxis":      map[string]any{"title": "Metric Value"},
		"showlegend": true,
	}
	return &Figure{Title: "Text Analysis Timeline", HTML: plotFragment("fig-timeline", data, layout)}
}

func heatmapFigure(doc document.Document) *Figure {
	matrix := derive.Heatmap(doc)
	if matrix == nil {
		return nil
	}
	positions := make([]int, len(matrix.Lengths))
	for i := range positions {
		positions[i] = i
	}
	data := []map[string]any{{
		"type":         "heatmap",
		"z":            [][]float64{matrix.Lengths, matrix.AIProb},
		"x":            positions,
		"y":            []string{"Length", "AI Probability"},
		"colorscale":   "RdBu",
		"reversescale": true,
		"showscale":    true,
	}}
	layout := map[string]any{
		"title": "Sentence Analysis Heatmap",
		"xaxis": map[string]any{"title": "Sentence Index"},
	}
	return &Figure{Title: "Sentence Heatmap", HTML: plotFragment("fig-heatmap", data, layout)}
}
