// Package export formats session results as Markdown and HTML documents.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/samdwyer/readydeck/internal/session"
)

// Meta describes the session an export belongs to.
type Meta struct {
	Title     string
	SessionID string
	Date      time.Time
}

type section struct {
	heading string
	cards   []session.Card
}

// Markdown renders the three buckets as a Markdown document, listing card
// titles in the order they were filed.
func Markdown(r session.Results, meta Meta) string {
	title := meta.Title
	if title == "" {
		title = "Definition of Ready - Team results"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	fmt.Fprintf(&b, "Date: %s\n", meta.Date.Format(time.DateOnly))
	if meta.SessionID != "" {
		fmt.Fprintf(&b, "Session: %s\n", meta.SessionID)
	}

	sections := []section{
		{"Accepted - agreed criteria", r.Accepted},
		{"Deferred - for the future", r.Deferred},
		{"Rejected - not applicable", r.Rejected},
	}
	for _, s := range sections {
		fmt.Fprintf(&b, "\n## %s (%d)\n", s.heading, len(s.cards))
		for _, c := range s.cards {
			fmt.Fprintf(&b, "- %s\n", c.Title)
		}
	}
	return b.String()
}

// HTML converts a Markdown document to HTML.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// FileName returns the base name (without extension) for an export on date.
func FileName(date time.Time) string {
	return "dor-results-" + date.Format(time.DateOnly)
}

// Write stores the Markdown export (and optionally its HTML rendition) in
// dir and returns the written paths.
func Write(dir string, r session.Results, meta Meta, withHTML bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	md := Markdown(r, meta)
	base := filepath.Join(dir, FileName(meta.Date))

	paths := []string{base + ".md"}
	if err := os.WriteFile(paths[0], []byte(md), 0o644); err != nil {
		return nil, fmt.Errorf("write markdown: %w", err)
	}

	if withHTML {
		html, err := HTML(md)
		if err != nil {
			return paths, err
		}
		path := base + ".html"
		if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
			return paths, fmt.Errorf("write html: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
