package parser

import (
	"bytes"
	"strings"

	"wraptest/internal/domain"
)

const indentUnit = "    "

// RustRenderer implements Renderer for Rust. Parsed text is written back
// verbatim; synthesized functions and bodies are indented one level deeper
// than the item they belong to, using tabs when the item is tab-indented
// and four spaces otherwise.
type RustRenderer struct{}

// NewRustRenderer creates a new RustRenderer
func NewRustRenderer() *RustRenderer {
	return &RustRenderer{}
}

// Render returns the source text of file
func (r *RustRenderer) Render(file *domain.File) []byte {
	var buf bytes.Buffer
	for _, item := range file.Items {
		r.item(&buf, item)
	}
	buf.WriteString(file.Trailing)
	return buf.Bytes()
}

func (r *RustRenderer) item(buf *bytes.Buffer, n domain.Node) {
	attrs := n.Attributes()
	indent := attrs.Indent()

	buf.WriteString(attrs.Leading)
	for _, m := range attrs.Markers {
		if m.Synthetic {
			buf.WriteString(m.Text)
			buf.WriteString("\n" + indent)
			continue
		}
		buf.WriteString(m.Leading)
		buf.WriteString(m.Text)
	}
	buf.WriteString(attrs.HeaderLeading)

	switch n := n.(type) {
	case *domain.Func:
		r.function(buf, n, indent, "", unitFor(indent, n.Body))
	case *domain.Module:
		buf.WriteString(n.Header)
		buf.WriteByte('{')
		for _, item := range n.Items {
			r.item(buf, item)
		}
		buf.WriteString(n.Trailing)
		buf.WriteByte('}')
	case *domain.Other:
		buf.WriteString(n.Text)
	}
}

// function writes f. shift is added to every line of a body kept as
// written, for functions moved one level deeper than they were parsed.
func (r *RustRenderer) function(buf *bytes.Buffer, f *domain.Func, indent, shift, unit string) {
	if f.Header != "" {
		buf.WriteString(f.Header)
	} else {
		buf.WriteString(Signature(f))
		buf.WriteByte(' ')
	}
	r.block(buf, f.Body, indent, shift, unit)
}

// nested writes a synthesized function declared inside a body
func (r *RustRenderer) nested(buf *bytes.Buffer, f *domain.Func, indent, unit string) {
	for _, m := range f.Markers {
		buf.WriteString(m.Text)
		buf.WriteString("\n" + indent)
	}
	r.function(buf, f, indent, unit, unit)
}

func (r *RustRenderer) block(buf *bytes.Buffer, b *domain.Block, indent, shift, unit string) {
	if b == nil {
		buf.WriteString("{}")
		return
	}
	if len(b.Stmts) == 1 {
		if raw, ok := b.Stmts[0].(*domain.RawStmt); ok {
			text := raw.Text
			if !raw.Verbatim {
				text = shiftLines(text, shift)
			}
			buf.WriteByte('{')
			buf.WriteString(text)
			buf.WriteByte('}')
			return
		}
	}

	inner := indent + unit
	buf.WriteString("{\n")
	for _, s := range b.Stmts {
		buf.WriteString(inner)
		r.stmt(buf, s, inner, unit)
		buf.WriteByte('\n')
	}
	buf.WriteString(indent)
	buf.WriteByte('}')
}

func (r *RustRenderer) stmt(buf *bytes.Buffer, s domain.Stmt, indent, unit string) {
	switch s := s.(type) {
	case *domain.RawStmt:
		buf.WriteString(s.Text)
	case *domain.ItemStmt:
		r.nested(buf, s.Func, indent, unit)
	case *domain.LetStmt:
		buf.WriteString("let ")
		buf.WriteString(s.Name)
		buf.WriteString(" = ")
		buf.WriteString(Expr(s.Value))
		buf.WriteByte(';')
	case *domain.ExprStmt:
		buf.WriteString(Expr(s.X))
		if !s.Tail {
			buf.WriteByte(';')
		}
	}
}

// unitFor returns one indentation level for an item starting with indent.
// Top-level items have no indent of their own, so their body decides.
func unitFor(indent string, body *domain.Block) string {
	if indent == "" {
		indent = bodyIndent(body)
	}
	if strings.HasPrefix(indent, "\t") {
		return "\t"
	}
	return indentUnit
}

// bodyIndent returns the leading whitespace of the first indented line of
// the source text held in b, looking into nested functions
func bodyIndent(b *domain.Block) string {
	if b == nil {
		return ""
	}
	for _, s := range b.Stmts {
		switch s := s.(type) {
		case *domain.RawStmt:
			for _, line := range strings.Split(s.Text, "\n")[1:] {
				if strings.TrimSpace(line) == "" {
					continue
				}
				if trimmed := strings.TrimLeft(line, " \t"); len(trimmed) < len(line) {
					return line[:len(line)-len(trimmed)]
				}
			}
		case *domain.ItemStmt:
			if indent := bodyIndent(s.Func.Body); indent != "" {
				return indent
			}
		}
	}
	return ""
}

// shiftLines prefixes every non-blank line after the first with prefix
func shiftLines(text, prefix string) string {
	if prefix == "" || !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" || i == len(lines)-1 {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// Expr returns the Rust text of e
func Expr(e domain.Expr) string {
	switch e := e.(type) {
	case *domain.Ident:
		return e.Name
	case *domain.CallExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = Expr(a)
		}
		return Expr(e.Fun) + "(" + strings.Join(args, ", ") + ")"
	case *domain.AwaitExpr:
		return Expr(e.X) + ".await"
	}
	return ""
}

// Signature returns the declaration line of f built from its structured
// fields, without the body
func Signature(f *domain.Func) string {
	var parts []string
	if f.Vis != "" {
		parts = append(parts, f.Vis)
	}
	// Rust requires const, async, unsafe, extern in that order
	for _, q := range f.Qualifiers {
		if q == "const" {
			parts = append(parts, q)
		}
	}
	if f.Async {
		parts = append(parts, "async")
	}
	for _, q := range f.Qualifiers {
		if q != "const" {
			parts = append(parts, q)
		}
	}

	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Text
	}

	var sig strings.Builder
	sig.WriteString(strings.Join(append(parts, "fn"), " "))
	sig.WriteByte(' ')
	sig.WriteString(f.Name)
	sig.WriteString(f.Generics)
	sig.WriteString("(" + strings.Join(params, ", ") + ")")
	if f.Result != "" {
		sig.WriteString(" -> " + f.Result)
	}
	if f.Where != "" {
		sig.WriteString(" " + f.Where)
	}
	return sig.String()
}
