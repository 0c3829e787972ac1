package wrap

import (
	"strings"

	"wraptest/internal/domain"
)

// Class is the outcome of classifying a declaration
type Class int

const (
	NotATest Class = iota
	SyncTest
	AsyncTest
)

func (c Class) String() string {
	switch c {
	case SyncTest:
		return "sync test"
	case AsyncTest:
		return "async test"
	default:
		return "not a test"
	}
}

type markerKind int

const (
	markerNone markerKind = iota
	markerBare
	markerRunner
)

// Classifier recognizes test markers structurally, by path segments
type Classifier struct {
	bare   [][]string
	runner [][]string
}

// NewClassifier returns a Classifier recognizing #[test] and
// #[tokio::test], plus any extra async runner markers given as
// "::"-separated paths such as "async_std::test".
func NewClassifier(runners ...string) *Classifier {
	c := &Classifier{
		bare: [][]string{
			{"test"},
			{"core", "prelude", "v1", "test"},
			{"std", "prelude", "v1", "test"},
		},
		runner: [][]string{
			{"tokio", "test"},
		},
	}
	for _, r := range runners {
		path := strings.Split(strings.TrimPrefix(strings.TrimSpace(r), "::"), "::")
		if len(path) > 0 && path[0] != "" {
			c.runner = append(c.runner, path)
		}
	}
	return c
}

func (c *Classifier) kind(m *domain.Marker) markerKind {
	for _, p := range c.bare {
		if m.Is(p...) {
			return markerBare
		}
	}
	for _, p := range c.runner {
		if m.Is(p...) {
			return markerRunner
		}
	}
	return markerNone
}

// IsTestMarker reports whether m marks a test
func (c *Classifier) IsTestMarker(m *domain.Marker) bool {
	return c.kind(m) != markerNone
}

// IsHarnessMarker reports whether m only has meaning next to a test
// marker, like #[ignore] or #[should_panic(expected = "...")]
func (c *Classifier) IsHarnessMarker(m *domain.Marker) bool {
	return m.Is("ignore") || m.Is("should_panic")
}

// TestMarker returns the first test marker of f, or nil
func (c *Classifier) TestMarker(f *domain.Func) *domain.Marker {
	if i := f.Find(c.IsTestMarker); i >= 0 {
		return f.Markers[i]
	}
	return nil
}

// Classify tags f. Sync or async comes from the declaration itself, not
// from which marker matched.
func (c *Classifier) Classify(f *domain.Func) Class {
	if c.TestMarker(f) == nil {
		return NotATest
	}
	if f.Async {
		return AsyncTest
	}
	return SyncTest
}

// mismatch returns the first test marker whose kind disagrees with the
// async flag of f: #[test] on an async fn, or a runner marker on a
// plain fn.
func (c *Classifier) mismatch(f *domain.Func) *domain.Marker {
	for _, m := range f.Markers {
		switch c.kind(m) {
		case markerBare:
			if f.Async {
				return m
			}
		case markerRunner:
			if !f.Async {
				return m
			}
		}
	}
	return nil
}
