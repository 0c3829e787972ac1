package discovery

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"wraptest/internal/domain"
	"wraptest/internal/parser"
	"wraptest/internal/wrap"
)

// Inspector reports what a source file contains without rewriting it
type Inspector struct {
	parser     parser.Parser
	classifier *wrap.Classifier
}

// NewInspector creates a new Inspector
func NewInspector(p parser.Parser, classifier *wrap.Classifier) *Inspector {
	return &Inspector{parser: p, classifier: classifier}
}

// Summary describes the wraptest-relevant content of a file
type Summary struct {
	Path        string
	Invocations int
	Tests       []domain.TestCase
}

// Inspect parses the file at path and collects its invocations and tests
func (in *Inspector) Inspect(ctx context.Context, path string) (*Summary, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}
	file, err := in.parser.Parse(ctx, path, src)
	if err != nil {
		return nil, err
	}

	s := &Summary{Path: path}
	in.collect(file.Items, nil, s)

	// Sort for consistent output
	sort.SliceStable(s.Tests, func(i, j int) bool {
		return s.Tests[i].Line < s.Tests[j].Line
	})
	return s, nil
}

func (in *Inspector) collect(items []domain.Node, modPath []string, s *Summary) {
	for _, item := range items {
		for _, m := range item.Attributes().Markers {
			if wrap.IsInvocation(m) {
				s.Invocations++
			}
		}

		switch n := item.(type) {
		case *domain.Func:
			class := in.classifier.Classify(n)
			if class == wrap.NotATest {
				continue
			}
			s.Tests = append(s.Tests, domain.TestCase{
				Name:     n.Name,
				FilePath: s.Path,
				Module:   strings.Join(modPath, "::"),
				Line:     n.NameSpan.Start.Line,
				Async:    class == wrap.AsyncTest,
				Marker:   in.classifier.TestMarker(n).PathString(),
			})
		case *domain.Module:
			in.collect(n.Items, append(modPath[:len(modPath):len(modPath)], n.Name), s)
		}
	}
}
