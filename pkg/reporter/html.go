package reporter

import (
	"fmt"
	"html/template"
	"io"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Cloud Cost Advisory Report</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background: #f5f7fa; color: #333; padding: 20px; line-height: 1.6; }
        .container { max-width: 1100px; margin: 0 auto; background: white; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); padding: 40px; }
        h1 { color: #1a4d8f; margin-bottom: 10px; }
        .meta { color: #5f6368; margin-bottom: 30px; }
        .savings { font-size: 2em; font-weight: 700; color: #34a853; }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        th { background: #f8f9fa; text-align: left; padding: 10px; border-bottom: 2px solid #e8eaed; text-transform: uppercase; font-size: 0.8em; letter-spacing: 1px; color: #5f6368; }
        td { padding: 10px; border-bottom: 1px solid #e8eaed; }
        .confidence-medium { color: #34a853; font-weight: 600; }
        .confidence-low { color: #fbbc04; font-weight: 600; }
        .empty { color: #5f6368; font-style: italic; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Cloud Cost Advisory Report</h1>
        <div class="meta">
            {{if .SourceName}}Source: <strong>{{.SourceName}}</strong> &middot; {{end}}
            Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}} &middot;
            Findings: <strong>{{.Summary.NumFindings}}</strong>
        </div>
        <div class="savings">${{printf "%.2f" .Summary.TotalEstimatedMonthlySavings}}/month potential savings</div>
        {{if .Summary.Findings}}
        <table>
            <tr><th>Service</th><th>Resource</th><th>Issue</th><th>Savings ($/mo)</th><th>Confidence</th></tr>
            {{range .Summary.Findings}}
            <tr>
                <td>{{.Service}}</td>
                <td>{{.ResourceName}}</td>
                <td>{{.Issue}}</td>
                <td>{{printf "%.2f" .EstimatedSavings}}</td>
                <td class="confidence-{{.Confidence}}">{{.Confidence}}</td>
            </tr>
            {{end}}
        </table>
        {{else}}
        <p class="empty">No savings opportunities found.</p>
        {{end}}
    </div>
</body>
</html>
`

// GenerateHTML creates an HTML report
func GenerateHTML(report *Report, writer io.Writer) error {
	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}
	if err := tmpl.Execute(writer, report); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}
