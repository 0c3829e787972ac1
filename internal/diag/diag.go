// Package diag holds the structured errors reported by the rewriter.
package diag

import (
	"bytes"
	"fmt"
	"strings"

	"wraptest/internal/domain"
)

// Kind classifies a diagnostic
type Kind int

const (
	// ConfigurationError is a malformed or unrecognized invocation argument
	ConfigurationError Kind = iota
	// UnsupportedSignature is a test whose signature cannot be wrapped
	UnsupportedSignature
	// MissingHandler is a test whose required handler was not configured
	MissingHandler
	// SyntaxError is input the front-end could not parse
	SyntaxError
)

func (k Kind) String() string {
	switch k {
	case ConfigurationError:
		return "ConfigurationError"
	case UnsupportedSignature:
		return "UnsupportedSignature"
	case MissingHandler:
		return "MissingHandler"
	case SyntaxError:
		return "SyntaxError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Diagnostic is a single error anchored to a source span
type Diagnostic struct {
	Kind    Kind
	Span    domain.Span
	Message string
	Note    string
}

func (d Diagnostic) Error() string {
	if d.Span.IsZero() {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Kind, d.Message)
}

// List is an ordered set of diagnostics
type List []Diagnostic

// Add appends a diagnostic
func (l *List) Add(kind Kind, span domain.Span, msg, note string) {
	*l = append(*l, Diagnostic{Kind: kind, Span: span, Message: msg, Note: note})
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors:", len(l))
	for _, d := range l {
		b.WriteString("\n\t")
		b.WriteString(d.Error())
	}
	return b.String()
}

// Has reports whether any diagnostic is of kind k
func (l List) Has(k Kind) bool {
	for _, d := range l {
		if d.Kind == k {
			return true
		}
	}
	return false
}

// Records converts l to its persisted form, attaching the source line
// each diagnostic starts on.
func Records(path string, src []byte, l List) []domain.DiagnosticRecord {
	records := make([]domain.DiagnosticRecord, 0, len(l))
	for _, d := range l {
		records = append(records, domain.DiagnosticRecord{
			FilePath: path,
			Kind:     d.Kind.String(),
			Message:  d.Message,
			Note:     d.Note,
			Line:     d.Span.Start.Line,
			Column:   d.Span.Start.Column,
			Snippet:  lineAt(src, d.Span.Start.Offset),
		})
	}
	return records
}

func lineAt(src []byte, offset int) string {
	if offset < 0 || offset > len(src) || len(src) == 0 {
		return ""
	}
	start := bytes.LastIndexByte(src[:offset], '\n') + 1
	end := bytes.IndexByte(src[offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += offset
	}
	return strings.TrimRight(string(src[start:end]), "\r")
}
