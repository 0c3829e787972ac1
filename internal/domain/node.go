package domain

import "strings"

// Node is a declaration-tree item: *Func, *Module or *Other
type Node interface {
	node()
	// Pos returns the item's source span, markers included
	Pos() Span
	// Attributes returns the item's attribute list
	Attributes() *Attrs
}

// Attrs is the marker list attached to an item.
//
// Text is rendered as Leading, then each marker, then HeaderLeading, then
// the item header. Leading holds whatever separated the item from its
// predecessor (whitespace, comments).
type Attrs struct {
	Leading       string
	Markers       []*Marker
	HeaderLeading string

	// Expanded is set once a wraptest invocation has rewritten the item,
	// so enclosing invocations leave it alone.
	Expanded bool
}

// Attributes returns the attribute list itself
func (a *Attrs) Attributes() *Attrs { return a }

// Find returns the index of the first marker matching pred, or -1
func (a *Attrs) Find(pred func(*Marker) bool) int {
	for i, m := range a.Markers {
		if pred(m) {
			return i
		}
	}
	return -1
}

// RemoveMarker deletes marker i, handing its leading trivia to whatever
// follows so the surrounding layout stays intact.
func (a *Attrs) RemoveMarker(i int) {
	if i < 0 || i >= len(a.Markers) {
		return
	}
	removed := a.Markers[i]
	if i+1 < len(a.Markers) {
		a.Markers[i+1].Leading = removed.Leading
	} else if i == 0 {
		a.HeaderLeading = removed.Leading
	}
	a.Markers = append(a.Markers[:i:i], a.Markers[i+1:]...)
}

// PrependMarker inserts m before every existing marker
func (a *Attrs) PrependMarker(m *Marker) {
	a.Markers = append([]*Marker{m}, a.Markers...)
}

// Indent returns the whitespace the item's first line starts with
func (a *Attrs) Indent() string {
	lead := a.Leading
	if i := strings.LastIndexByte(lead, '\n'); i >= 0 {
		lead = lead[i+1:]
	} else {
		return ""
	}
	if strings.TrimLeft(lead, " \t") != "" {
		return ""
	}
	return lead
}

// Param is a single entry of a parameter list
type Param struct {
	Text string
	Span Span
}

// Func is a function declaration
type Func struct {
	Attrs

	// Header is the verbatim signature text from the first non-marker
	// token up to the body. Empty for synthesized functions, which are
	// rendered from the structured fields below.
	Header string

	Vis        string   // "pub", "pub(crate)", ... or empty
	Qualifiers []string // const, unsafe, extern "C"; async is tracked separately
	Async      bool
	Name       string
	Generics   string // "<T: Clone>" or empty
	Params     []Param
	ParamsSpan Span
	Result     string // Return type without the arrow, empty for unit
	Where      string // "where T: Send" or empty
	Body       *Block

	Span     Span
	NameSpan Span
}

func (*Func) node() {}

// Pos returns the function span
func (f *Func) Pos() Span { return f.Span }

// Clone returns a deep copy of f
func (f *Func) Clone() *Func {
	out := *f
	out.Markers = make([]*Marker, len(f.Markers))
	for i, m := range f.Markers {
		out.Markers[i] = m.Clone()
	}
	out.Qualifiers = append([]string(nil), f.Qualifiers...)
	out.Params = append([]Param(nil), f.Params...)
	if f.Body != nil {
		out.Body = f.Body.Clone()
	}
	return &out
}

// Module is a module declaration with an inline body
type Module struct {
	Attrs

	Header   string // Verbatim text up to the opening brace, e.g. "pub mod tests "
	Name     string
	Items    []Node
	Trailing string // Text between the last item and the closing brace

	Span     Span
	NameSpan Span
}

func (*Module) node() {}

// Pos returns the module span
func (m *Module) Pos() Span { return m.Span }

// Other is any item the rewriter does not look into
type Other struct {
	Attrs

	Kind string // Front-end node kind, e.g. "use_declaration"
	Text string // Verbatim item text after its markers
	Span Span
}

func (*Other) node() {}

// Pos returns the item span
func (o *Other) Pos() Span { return o.Span }

// File is a parsed source file, the root scope of the tree
type File struct {
	Path     string
	Items    []Node
	Trailing string
}
