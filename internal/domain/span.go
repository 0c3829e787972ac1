package domain

import "fmt"

// Position is a location in a source file
type Position struct {
	Offset int `json:"offset"` // Byte offset, 0-based
	Line   int `json:"line"`   // 1-based
	Column int `json:"column"` // 1-based, in bytes
}

// Span is a half-open byte range [Start, End) in a source file
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// IsZero reports whether the span carries no location
func (s Span) IsZero() bool {
	return s == Span{}
}

// Join returns the smallest span covering both s and other
func (s Span) Join(other Span) Span {
	if s.IsZero() {
		return other
	}
	if other.IsZero() {
		return s
	}
	out := s
	if other.Start.Offset < out.Start.Offset {
		out.Start = other.Start
	}
	if other.End.Offset > out.End.Offset {
		out.End = other.End
	}
	return out
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Column)
}
