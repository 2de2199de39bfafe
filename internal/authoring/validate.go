// Package authoring validates custom card text before it reaches a session.
package authoring

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Length bounds in grapheme clusters.
const (
	MinTitle       = 5
	MaxTitle       = 100
	MinDescription = 10
	MaxDescription = 300
)

// Field names a form field.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
)

// Draft is the raw form input for a custom card.
type Draft struct {
	Title       string
	Description string
}

// FieldError describes why one field was rejected.
type FieldError struct {
	Field   Field
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects every rejected field of a draft.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// For returns the message for a field, or "" if the field is valid.
func (e Errors) For(f Field) string {
	for _, fe := range e {
		if fe.Field == f {
			return fe.Message
		}
	}
	return ""
}

// Length returns the number of user-perceived characters in s.
func Length(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Validate trims the draft and checks its bounds. On success it returns the
// cleaned draft; otherwise an Errors value listing each bad field.
func Validate(d Draft) (Draft, error) {
	clean := Draft{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
	}

	var errs Errors
	if msg := checkBounds(clean.Title, MinTitle, MaxTitle); msg != "" {
		errs = append(errs, FieldError{Field: FieldTitle, Message: msg})
	}
	if msg := checkBounds(clean.Description, MinDescription, MaxDescription); msg != "" {
		errs = append(errs, FieldError{Field: FieldDescription, Message: msg})
	}
	if len(errs) > 0 {
		return clean, errs
	}
	return clean, nil
}

func checkBounds(s string, lo, hi int) string {
	n := Length(s)
	switch {
	case n == 0:
		return "is required"
	case n < lo:
		return fmt.Sprintf("must be at least %d characters", lo)
	case n > hi:
		return fmt.Sprintf("must be at most %d characters", hi)
	default:
		return ""
	}
}

// Truncate cuts s to at most max grapheme clusters. Forms use it to enforce
// the upper bound while typing.
func Truncate(s string, max int) string {
	if Length(s) <= max {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for n := 0; n < max && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	return b.String()
}
