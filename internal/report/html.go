package report

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/zombar/scanreport/internal/document"
)

// PlotlyCDN is the single external script reference the HTML artifact
// carries; everything else is inline so the file opens standalone.
const PlotlyCDN = "https://cdn.plot.ly/plotly-latest.min.js"

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Originality Analysis Report</title>
<script src="{{.PlotlyCDN}}"></script>
<style>
body {
    font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
    margin: 0;
    padding: 20px;
    background-color: #f5f5f5;
}
.container {
    max-width: 1200px;
    margin: auto;
    background-color: white;
    padding: 20px;
    border-radius: 10px;
    box-shadow: 0 2px 10px rgba(0,0,0,0.1);
}
.section {
    margin: 30px 0;
    padding: 20px;
    border: 1px solid #eee;
    border-radius: 8px;
    background-color: white;
}
.section h2 {
    color: #2c3e50;
    border-bottom: 2px solid #3498db;
    padding-bottom: 10px;
}
.insights {
    background-color: #f8f9fa;
    padding: 20px;
    border-radius: 8px;
    font-family: monospace;
    white-space: pre-wrap;
}
.metric {
    display: inline-block;
    margin: 10px;
    padding: 15px 25px;
    background-color: #fff;
    border-radius: 8px;
    box-shadow: 0 2px 5px rgba(0,0,0,0.1);
}
.plot {
    margin: 20px 0;
    padding: 10px;
    background-color: white;
    border-radius: 8px;
}
</style>
</head>
<body>
<div class="container">
<h1 style="color: #2c3e50; text-align: center;">Originality Analysis Report</h1>
{{if .HasProperties}}
<div class="section">
<h2>Document Properties</h2>
<div class="metric">Title: {{.Title}}</div>
<div class="metric">ID: {{.ID}}</div>
{{if .PublicLink}}<div class="metric">Public Link: <a href="{{.PublicLink}}" target="_blank">View</a></div>{{end}}
</div>
{{end}}
{{if .Insights}}
<div class="section">
<h2>Key Insights</h2>
<div class="insights">{{.Insights}}</div>
</div>
{{end}}
{{range .Figures}}
<div class="section">
<h2>{{.Title}}</h2>
{{.HTML}}
</div>
{{end}}
{{if .HasCredits}}
<div class="section">
<h2>Credits Information</h2>
<div class="metric">Used Credits: {{.CreditsUsed}}</div>
<div class="metric">Base Credits: {{.CreditsBase}}</div>
<div class="metric">Subscription Credits: {{.CreditsSubscription}}</div>
</div>
{{end}}
</div>
<script>
window.onresize = function() {
    document.querySelectorAll('.plot').forEach(function(p) { Plotly.Plots.resize(p); });
};
</script>
</body>
</html>
`))

var errorTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head><title>Originality Analysis Report</title></head>
<body><p>Error: {{.}}</p></body>
</html>
`))

type reportData struct {
	PlotlyCDN           string
	HasProperties       bool
	Title               string
	ID                  string
	PublicLink          string
	Insights            string
	Figures             []Figure
	HasCredits          bool
	CreditsUsed         string
	CreditsBase         string
	CreditsSubscription string
}

// FormatHTML assembles the standalone HTML artifact: document properties,
// the insight list, the caller-supplied figure fragments in their given
// order, and the credits block. An error document renders only the error
// message.
func FormatHTML(doc document.Document, figures []Figure, insightLines []string) string {
	if msg := doc.Err(); msg != "" {
		var sb strings.Builder
		if err := errorTemplate.Execute(&sb, msg); err != nil {
			return fmt.Sprintf("Error: %s", msg)
		}
		return sb.String()
	}

	data := reportData{
		PlotlyCDN: PlotlyCDN,
		Insights:  strings.Join(insightLines, "\n"),
		Figures:   figures,
	}

	if props, ok := doc.Properties(); ok {
		data.HasProperties = true
		data.Title = naString(props.Title())
		data.ID = naString(props.ID())
		data.PublicLink, _ = props.PublicLink()
	}

	if credits, ok := doc.Credits(); ok {
		data.HasCredits = true
		data.CreditsUsed = naNumber(credits.Used())
		data.CreditsBase = naNumber(credits.Base())
		data.CreditsSubscription = naNumber(credits.Subscription())
	}

	var sb strings.Builder
	if err := reportTemplate.Execute(&sb, data); err != nil {
		// Template data is fully under our control; execution can only
		// fail on a writer error, which strings.Builder never returns.
		return ""
	}
	return sb.String()
}

func naString(s string, ok bool) string {
	if !ok || s == "" {
		return "N/A"
	}
	return s
}
