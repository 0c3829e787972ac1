// Package parser converts between source text and declaration trees.
package parser

import (
	"context"
	"fmt"

	"wraptest/internal/domain"
)

// Parser turns source text into a declaration tree
type Parser interface {
	Parse(ctx context.Context, path string, src []byte) (*domain.File, error)
	// SupportedExtensions lists the file extensions the parser reads
	SupportedExtensions() []string
}

// Renderer turns a declaration tree back into source text
type Renderer interface {
	Render(file *domain.File) []byte
}

// SyntaxError is input the front-end could not parse
type SyntaxError struct {
	Path    string
	Span    domain.Span
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Span.Start.Line, e.Span.Start.Column, e.Message)
}
