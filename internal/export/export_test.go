package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samdwyer/readydeck/internal/session"
)

func testResults() session.Results {
	return session.Results{
		Accepted: []session.Card{{ID: 3, Title: "Dependencies agreed"}, {ID: 1, Title: "Dependencies resolved"}},
		Rejected: []session.Card{{ID: 26, Title: "Legal review", Category: session.CategoryCustom}},
	}
}

var testDate = time.Date(2026, 10, 19, 15, 4, 0, 0, time.UTC)

func TestMarkdown(t *testing.T) {
	got := Markdown(testResults(), Meta{SessionID: "abc", Date: testDate})

	want := `# Definition of Ready - Team results
Date: 2026-10-19
Session: abc

## Accepted - agreed criteria (2)
- Dependencies agreed
- Dependencies resolved

## Deferred - for the future (0)

## Rejected - not applicable (1)
- Legal review
`
	if got != want {
		t.Errorf("Markdown() =\n%s\nwant:\n%s", got, want)
	}
}

func TestHTML(t *testing.T) {
	html, err := HTML(Markdown(testResults(), Meta{Title: "Squad A", Date: testDate}))
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	for _, want := range []string{"<h1>Squad A</h1>", "<h2>Accepted - agreed criteria (2)</h2>", "<li>Legal review</li>"} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML() missing %q in:\n%s", want, html)
		}
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := Write(dir, testResults(), Meta{Date: testDate}, true)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "dor-results-2026-10-19.md"),
		filepath.Join(dir, "dor-results-2026-10-19.html"),
	}
	if len(paths) != len(want) {
		t.Fatalf("Write() paths = %v, want %v", paths, want)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("stat %s: %v", p, err)
		}
	}

	md, _ := os.ReadFile(want[0])
	if !strings.Contains(string(md), "- Legal review") {
		t.Errorf("markdown file missing card title:\n%s", md)
	}
}

func TestWriteMarkdownOnly(t *testing.T) {
	paths, err := Write(t.TempDir(), session.Results{}, Meta{Date: testDate}, false)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if len(paths) != 1 || !strings.HasSuffix(paths[0], ".md") {
		t.Errorf("Write() paths = %v, want one .md file", paths)
	}
}
