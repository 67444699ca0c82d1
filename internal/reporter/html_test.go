package reporter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/connwatch/connwatch/internal/analyzer"
)

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
		return n.FirstChild.Data
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}

func countElements(n *html.Node, name string) int {
	count := 0
	if n.Type == html.ElementNode && n.Data == name {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countElements(c, name)
	}
	return count
}

func TestHTMLReportEscapesAndCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	items := []analyzer.AnalyzedFinding{
		annotated("127.0.0.1:9150", "127.0.0.1:56162", analyzer.Annotation{Flagged: true}),
		annotated("10.0.0.5:40122", "93.184.216.34:443", analyzer.Annotation{
			Commentary: "<script>alert('x')</script> suspicious",
		}),
		annotated("10.0.0.5:40123", "93.184.216.35:443", analyzer.Annotation{
			Failed:     true,
			Commentary: "analysis unavailable: backend offline",
		}),
	}

	r := NewHTMLReporter(path, "Host connections", "run-42", hclog.NewNullLogger())
	require.NoError(t, r.Report(context.Background(), items))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)

	assert.NotContains(t, content, "<script>")
	assert.Contains(t, content, "&lt;script&gt;")
	assert.Contains(t, content, "3 connections, 1 flagged, 1 unavailable")
	assert.Contains(t, content, "Run ID: run-42")

	doc, err := html.Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "Host connections", findTitle(doc))
	// Header row plus one row per finding.
	assert.Equal(t, 4, countElements(doc, "tr"))
}

func TestHTMLReportEmptyState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	r := NewHTMLReporter(path, "Host connections", "run-7", hclog.NewNullLogger())

	require.NoError(t, r.Report(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "No connections captured.")
	assert.Contains(t, string(raw), "0 connections, 0 flagged, 0 unavailable")

	doc, err := html.Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 2, countElements(doc, "tr"))
}

func TestHTMLReportFailsOnUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.html")
	r := NewHTMLReporter(path, "Host connections", "run-1", hclog.NewNullLogger())

	err := r.Report(context.Background(), nil)

	require.Error(t, err)
	assert.ErrorContains(t, err, "creating report file")
}
