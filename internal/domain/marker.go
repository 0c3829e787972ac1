package domain

import "strings"

// TokenKind classifies a token of an attribute argument list
type TokenKind int

const (
	TokenIdent TokenKind = iota
	TokenPunct
	TokenLiteral
	TokenGroup
	TokenOther
)

func (k TokenKind) String() string {
	switch k {
	case TokenIdent:
		return "identifier"
	case TokenPunct:
		return "punctuation"
	case TokenLiteral:
		return "literal"
	case TokenGroup:
		return "group"
	default:
		return "token"
	}
}

// Token is a single argument token
type Token struct {
	Kind TokenKind
	Text string
	Span Span
}

// Marker is an attribute attached to an item, e.g. #[tokio::test(flavor = "current_thread")]
type Marker struct {
	Leading string // Trivia between the previous marker and this one
	Text    string // Verbatim attribute text

	// Path holds the attribute path segments; a leading "::" is dropped.
	Path []string
	// Args holds the tokens between the argument delimiters. HasArgs
	// distinguishes #[x()] from #[x].
	Args    []Token
	HasArgs bool
	// Value is the verbatim expression of the #[path = value] form
	Value string

	// Synthetic markers were added by the rewriter rather than parsed
	Synthetic bool

	Span     Span
	ArgsSpan Span
}

// NewMarker returns a synthetic argument-less marker for path
func NewMarker(path ...string) *Marker {
	return &Marker{
		Text:      "#[" + strings.Join(path, "::") + "]",
		Path:      path,
		Synthetic: true,
	}
}

// Is reports whether the marker path equals path
func (m *Marker) Is(path ...string) bool {
	if len(m.Path) != len(path) {
		return false
	}
	for i := range path {
		if m.Path[i] != path[i] {
			return false
		}
	}
	return true
}

// PathString returns the path joined with "::"
func (m *Marker) PathString() string {
	return strings.Join(m.Path, "::")
}

// Clone returns a copy of m
func (m *Marker) Clone() *Marker {
	out := *m
	out.Path = append([]string(nil), m.Path...)
	out.Args = append([]Token(nil), m.Args...)
	return &out
}
