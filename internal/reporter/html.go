package reporter

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/connwatch/connwatch/internal/analyzer"
)

var reportTemplate = template.Must(template.New("report").Parse(htmlTemplate))

// HTMLReporter renders annotated findings as a self-contained static
// HTML document. Addresses and commentary pass through html/template,
// so backend replies can never break the document structure.
type HTMLReporter struct {
	path   string
	title  string
	runID  string
	logger hclog.Logger
}

// NewHTMLReporter returns a reporter that writes the document to path.
func NewHTMLReporter(path, title, runID string, logger hclog.Logger) *HTMLReporter {
	return &HTMLReporter{
		path:   path,
		title:  title,
		runID:  runID,
		logger: logger,
	}
}

type reportData struct {
	Title       string
	RunID       string
	Hostname    string
	GeneratedAt string
	Total       int
	Flagged     int
	Unavailable int
	Rows        []reportRow
}

type reportRow struct {
	Index      int
	Kind       string
	Local      string
	Remote     string
	State      string
	Process    string
	Verdict    string
	Commentary string
}

// Report writes the document for the annotated findings. Zero findings
// still produce a valid document with an empty-state row.
func (r *HTMLReporter) Report(_ context.Context, items []analyzer.AnalyzedFinding) error {
	data := r.buildReport(items)

	file, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("creating report file %q: %w", r.path, err)
	}
	if err := reportTemplate.Execute(file, data); err != nil {
		file.Close()
		return fmt.Errorf("rendering report %q: %w", r.path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing report file %q: %w", r.path, err)
	}

	r.logger.Info("HTML report written", "path", r.path, "connections", data.Total, "flagged", data.Flagged)
	return nil
}

func (r *HTMLReporter) buildReport(items []analyzer.AnalyzedFinding) reportData {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	data := reportData{
		Title:       r.title,
		RunID:       r.runID,
		Hostname:    hostname,
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
		Total:       len(items),
		Rows:        make([]reportRow, 0, len(items)),
	}

	for i, item := range items {
		row := reportRow{
			Index:      i + 1,
			Kind:       fmt.Sprintf("%s:%s", item.Finding.IPVersion, item.Finding.Transport),
			Local:      item.Finding.LocalAddr,
			Remote:     item.Finding.RemoteAddr,
			State:      string(item.Finding.State),
			Process:    item.Finding.ProcDetails,
			Commentary: item.Annotation.Commentary,
		}
		switch {
		case item.Annotation.Failed:
			row.Verdict = "unavailable"
			data.Unavailable++
		case item.Annotation.Flagged:
			row.Verdict = "flagged"
			data.Flagged++
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
body { font-family: "Segoe UI", "Helvetica Neue", Arial, sans-serif; color: #16324d; margin: 0; padding: 24px; background: #fbfcfe; }
h1 { margin: 0 0 4px; color: #0b3d6e; }
.meta { color: #5b738c; margin: 0 0 2px; }
.summary { margin: 12px 0 20px; font-weight: 600; }
table { border-collapse: collapse; width: 100%; background: #ffffff; box-shadow: 0 2px 8px rgba(16, 53, 88, 0.06); }
th, td { border: 1px solid #d9e1ea; padding: 8px 10px; text-align: left; vertical-align: top; }
th { background: #eef3f8; }
tr.flagged td { background: #fdecea; }
tr.unavailable td { background: #fff8e1; color: #8a6d00; }
td.empty { text-align: center; color: #5b738c; padding: 24px; }
.commentary { white-space: pre-wrap; max-width: 42em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Generated at {{.GeneratedAt}} on host {{.Hostname}}</p>
<p class="meta">Run ID: {{.RunID}}</p>
<p class="summary">{{.Total}} connections, {{.Flagged}} flagged, {{.Unavailable}} unavailable</p>
<table>
<thead>
<tr><th>#</th><th>Kind</th><th>Local socket</th><th>Remote socket</th><th>State</th><th>Process</th><th>Commentary</th></tr>
</thead>
<tbody>
{{if .Rows}}{{range .Rows}}<tr{{if .Verdict}} class="{{.Verdict}}"{{end}}>
<td>{{.Index}}</td>
<td>{{.Kind}}</td>
<td>{{.Local}}</td>
<td>{{.Remote}}</td>
<td>{{.State}}</td>
<td>{{.Process}}</td>
<td class="commentary">{{.Commentary}}</td>
</tr>
{{end}}{{else}}<tr><td class="empty" colspan="7">No connections captured.</td></tr>
{{end}}</tbody>
</table>
</body>
</html>
`
