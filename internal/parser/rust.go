package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"wraptest/internal/domain"
)

// RustParser implements Parser for Rust source files using Tree-sitter.
// A fresh sitter.Parser is created per call, so a RustParser may be
// shared between goroutines.
type RustParser struct{}

// NewRustParser creates a new RustParser
func NewRustParser() *RustParser {
	return &RustParser{}
}

// SupportedExtensions returns [".rs"]
func (p *RustParser) SupportedExtensions() []string {
	return []string{".rs"}
}

// Parse builds the declaration tree of a Rust file. Input with syntax
// errors is rejected with a *SyntaxError.
func (p *RustParser) Parse(ctx context.Context, path string, src []byte) (*domain.File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(path, root, src)
	}

	b := &builder{src: src}
	items, trailing := b.items(root, 0, len(src))
	return &domain.File{Path: path, Items: items, Trailing: trailing}, nil
}

// builder converts Tree-sitter nodes into domain nodes. Every byte of the
// input lands in exactly one verbatim field, so an unmodified tree
// renders back to the original text.
type builder struct {
	src []byte
}

func (b *builder) text(n *sitter.Node) string {
	return string(b.src[n.StartByte():n.EndByte()])
}

func (b *builder) slice(start, end int) string {
	if start >= end {
		return ""
	}
	return string(b.src[start:end])
}

func (b *builder) span(n *sitter.Node) domain.Span {
	return domain.Span{
		Start: position(n.StartByte(), n.StartPoint()),
		End:   position(n.EndByte(), n.EndPoint()),
	}
}

func position(offset uint32, p sitter.Point) domain.Position {
	return domain.Position{Offset: int(offset), Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

// items converts the named children of container lying in [start, end).
// Attributes are attached to the item that follows them; comments stay in
// the gaps between items.
func (b *builder) items(container *sitter.Node, start, end int) ([]domain.Node, string) {
	var (
		items   []domain.Node
		pending []*sitter.Node
	)
	cursor := start

	for i := 0; i < int(container.NamedChildCount()); i++ {
		child := container.NamedChild(i)
		switch child.Type() {
		case "line_comment", "block_comment":
			continue
		case "attribute_item":
			pending = append(pending, child)
			continue
		}

		items = append(items, b.item(child, pending, cursor))
		pending = nil
		cursor = int(child.EndByte())
	}

	if len(pending) > 0 {
		// Dangling attributes with no item after them
		last := pending[len(pending)-1]
		items = append(items, &domain.Other{
			Attrs: domain.Attrs{Leading: b.slice(cursor, int(pending[0].StartByte()))},
			Kind:  "attribute_item",
			Text:  b.slice(int(pending[0].StartByte()), int(last.EndByte())),
			Span:  b.span(pending[0]).Join(b.span(last)),
		})
		cursor = int(last.EndByte())
	}

	return items, b.slice(cursor, end)
}

func (b *builder) item(n *sitter.Node, attrNodes []*sitter.Node, cursor int) domain.Node {
	itemStart := int(n.StartByte())
	span := b.span(n)
	if len(attrNodes) > 0 {
		itemStart = int(attrNodes[0].StartByte())
		span = b.span(attrNodes[0]).Join(span)
	}

	attrs := domain.Attrs{Leading: b.slice(cursor, itemStart)}
	prev := itemStart
	for _, a := range attrNodes {
		m := b.marker(a)
		m.Leading = b.slice(prev, int(a.StartByte()))
		attrs.Markers = append(attrs.Markers, m)
		prev = int(a.EndByte())
	}
	if len(attrNodes) > 0 {
		attrs.HeaderLeading = b.slice(prev, int(n.StartByte()))
	}

	switch n.Type() {
	case "function_item":
		if f := b.function(n, attrs, span); f != nil {
			return f
		}
	case "mod_item":
		if m := b.module(n, attrs, span); m != nil {
			return m
		}
	}

	return &domain.Other{
		Attrs: attrs,
		Kind:  n.Type(),
		Text:  b.text(n),
		Span:  span,
	}
}

func (b *builder) function(n *sitter.Node, attrs domain.Attrs, span domain.Span) *domain.Func {
	name := n.ChildByFieldName("name")
	params := n.ChildByFieldName("parameters")
	body := n.ChildByFieldName("body")
	if name == nil || params == nil || body == nil {
		return nil
	}

	f := &domain.Func{
		Attrs:      attrs,
		Header:     b.slice(int(n.StartByte()), int(body.StartByte())),
		Name:       b.text(name),
		ParamsSpan: b.span(params),
		Span:       span,
		NameSpan:   b.span(name),
	}

	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		f.Generics = b.text(tp)
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		f.Result = b.text(ret)
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "visibility_modifier":
			f.Vis = b.text(child)
		case "function_modifiers":
			for j := 0; j < int(child.ChildCount()); j++ {
				mod := child.Child(j)
				if mod.Type() == "async" {
					f.Async = true
					continue
				}
				f.Qualifiers = append(f.Qualifiers, b.text(mod))
			}
		case "where_clause":
			f.Where = b.text(child)
		}
	}

	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "line_comment", "block_comment", "attribute_item":
			continue
		}
		f.Params = append(f.Params, domain.Param{Text: b.text(p), Span: b.span(p)})
	}

	f.Body = &domain.Block{
		Stmts: []domain.Stmt{&domain.RawStmt{
			Text:     b.slice(int(body.StartByte())+1, int(body.EndByte())-1),
			Verbatim: b.hasMultilineLiteral(body),
		}},
		Span: b.span(body),
	}
	return f
}

func (b *builder) module(n *sitter.Node, attrs domain.Attrs, span domain.Span) *domain.Module {
	body := n.ChildByFieldName("body")
	if body == nil {
		// `mod name;` has no inline items
		return nil
	}

	m := &domain.Module{
		Attrs:  attrs,
		Header: b.slice(int(n.StartByte()), int(body.StartByte())),
		Span:   span,
	}
	if name := n.ChildByFieldName("name"); name != nil {
		m.Name = b.text(name)
		m.NameSpan = b.span(name)
	}
	m.Items, m.Trailing = b.items(body, int(body.StartByte())+1, int(body.EndByte())-1)
	return m
}

// marker converts an attribute_item node, `#[path(args)]` or `#[path = value]`
func (b *builder) marker(n *sitter.Node) *domain.Marker {
	m := &domain.Marker{Text: b.text(n), Span: b.span(n)}

	var attr *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "attribute" {
			attr = c
			break
		}
	}
	if attr == nil || attr.NamedChildCount() == 0 {
		return m
	}

	m.Path = b.segments(attr.NamedChild(0))

	if args := attr.ChildByFieldName("arguments"); args != nil {
		m.HasArgs = true
		m.ArgsSpan = b.span(args)
		m.Args = b.tokens(args)
	}
	if value := attr.ChildByFieldName("value"); value != nil {
		m.Value = b.text(value)
	}
	return m
}

// segments flattens an attribute path; `::tokio::test` yields [tokio test]
func (b *builder) segments(n *sitter.Node) []string {
	if n.Type() != "scoped_identifier" {
		return []string{b.text(n)}
	}
	var segs []string
	if p := n.ChildByFieldName("path"); p != nil {
		segs = b.segments(p)
	}
	if name := n.ChildByFieldName("name"); name != nil {
		segs = append(segs, b.text(name))
	}
	return segs
}

// tokens returns the tokens of a token_tree without its delimiters.
// Nested trees become single Group tokens.
func (b *builder) tokens(tree *sitter.Node) []domain.Token {
	count := int(tree.ChildCount())
	if count < 2 {
		return nil
	}
	var tokens []domain.Token
	for i := 1; i < count-1; i++ {
		c := tree.Child(i)
		kind := domain.TokenPunct
		switch t := c.Type(); {
		case t == "line_comment" || t == "block_comment":
			continue
		case t == "identifier":
			kind = domain.TokenIdent
		case t == "token_tree":
			kind = domain.TokenGroup
		case strings.HasSuffix(t, "_literal"):
			kind = domain.TokenLiteral
		case c.IsNamed():
			kind = domain.TokenOther
		}
		tokens = append(tokens, domain.Token{Kind: kind, Text: b.text(c), Span: b.span(c)})
	}
	return tokens
}

func (b *builder) hasMultilineLiteral(n *sitter.Node) bool {
	if strings.HasSuffix(n.Type(), "string_literal") {
		return strings.Contains(b.text(n), "\n")
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if b.hasMultilineLiteral(n.NamedChild(i)) {
			return true
		}
	}
	return false
}

// syntaxError describes the first error or missing node under root
func syntaxError(path string, root *sitter.Node, src []byte) *SyntaxError {
	n := firstError(root)
	if n == nil {
		n = root
	}
	b := &builder{src: src}
	msg := "syntax error"
	switch {
	case n.IsMissing():
		msg = fmt.Sprintf("syntax error: missing `%s`", n.Type())
	case n.EndByte() > n.StartByte():
		text := b.text(n)
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[:i]
		}
		msg = fmt.Sprintf("syntax error near `%s`", strings.TrimSpace(text))
	}
	return &SyntaxError{Path: path, Span: b.span(n), Message: msg}
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstError(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}
