package scenario

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"
)

// CategorySummary contains summary data for one test category
type CategorySummary struct {
	Name        string
	TotalTests  int
	PassedTests int
	FailedTests int
	PassRate    float64
}

// Categories groups the results by category in first-seen order.
func Categories(summary Summary) []CategorySummary {
	var categories []CategorySummary
	index := make(map[string]int)
	for _, r := range summary.Results {
		name := r.TestCase.Category
		i, ok := index[name]
		if !ok {
			i = len(categories)
			index[name] = i
			categories = append(categories, CategorySummary{Name: name})
		}
		cat := &categories[i]
		cat.TotalTests++
		if r.Passed {
			cat.PassedTests++
		} else {
			cat.FailedTests++
		}
	}
	for i := range categories {
		cat := &categories[i]
		cat.PassRate = float64(cat.PassedTests) / float64(cat.TotalTests) * 100
	}
	return categories
}

type reportData struct {
	Summary     Summary
	Categories  []CategorySummary
	GeneratedAt string
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Terminal Scenario Report</title>
<style>
body { font-family: 'Segoe UI', Tahoma, sans-serif; margin: 2em; color: #333; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #ddd; padding: 4px 10px; text-align: left; vertical-align: top; }
.pass { color: #2e7d32; }
.fail { color: #c62828; }
pre { margin: 0; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>Terminal Scenario Report</h1>
<p>{{.Summary.TotalPassed}}/{{.Summary.TotalTests}} passed ({{printf "%.1f" .Summary.PassRate}}%) in {{.Summary.TotalDuration}}</p>
<h2>Categories</h2>
<table>
<tr><th>Category</th><th>Passed</th><th>Failed</th><th>Pass rate</th></tr>
{{range .Categories}}<tr><td>{{.Name}}</td><td>{{.PassedTests}}</td><td>{{.FailedTests}}</td><td>{{printf "%.1f" .PassRate}}%</td></tr>
{{end}}</table>
<h2>Cases</h2>
<table>
<tr><th>ID</th><th>Description</th><th>Result</th><th>Details</th></tr>
{{range .Summary.Results}}<tr>
<td>{{.TestCase.ID}}</td>
<td>{{.TestCase.Description}}</td>
{{if .Passed}}<td class="pass">PASS</td><td></td>{{else}}<td class="fail">FAIL</td><td><pre>{{.Error}}</pre></td>{{end}}
</tr>
{{end}}</table>
<p>Generated {{.GeneratedAt}}</p>
</body>
</html>
`

var reportTemplate = template.Must(template.New("report").Parse(htmlTemplate))

// WriteHTMLReport renders summary as a standalone HTML page.
func WriteHTMLReport(w io.Writer, summary Summary) error {
	data := reportData{
		Summary:     summary,
		Categories:  Categories(summary),
		GeneratedAt: time.Now().Format("January 2, 2006 at 15:04:05 MST"),
	}
	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

// GenerateHTMLReport writes the report to outputPath, creating its directory.
func GenerateHTMLReport(summary Summary, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := WriteHTMLReport(file, summary); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
