// Package wrap rewrites test declarations so a configured handler runs
// around each test body.
package wrap

import (
	"fmt"

	"go.uber.org/zap"

	"wraptest/internal/diag"
	"wraptest/internal/domain"
)

// Transformer applies wraptest invocations to declaration trees
type Transformer struct {
	classifier *Classifier
	logger     *zap.Logger
}

// Option configures a Transformer
type Option func(*Transformer)

// WithRunnerMarkers recognizes additional async runner markers, e.g. "async_std::test"
func WithRunnerMarkers(paths ...string) Option {
	return func(t *Transformer) {
		t.classifier = NewClassifier(paths...)
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *zap.Logger) Option {
	return func(t *Transformer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Transformer
func New(opts ...Option) *Transformer {
	t := &Transformer{
		classifier: NewClassifier(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Classifier returns the marker classifier in use
func (t *Transformer) Classifier() *Classifier {
	return t.classifier
}

// Transform rewrites target with cfg. A *domain.Func is treated as a
// single test (function mode); a *domain.Module has every test function
// inside it rewritten (module mode). It returns the number of rewritten
// declarations. On any diagnostic, target is left untouched.
func (t *Transformer) Transform(cfg Config, target domain.Node) (int, diag.List) {
	plans, diags := t.plan(cfg, target)
	if len(diags) > 0 {
		return 0, diags
	}
	for _, apply := range plans {
		apply()
	}
	return len(plans), nil
}

func (t *Transformer) plan(cfg Config, target domain.Node) ([]func(), diag.List) {
	switch n := target.(type) {
	case *domain.Func:
		class := SyncTest
		if n.Async {
			class = AsyncTest
		}
		apply, diags := t.rewrite(n, class, FunctionMode, cfg)
		if len(diags) > 0 {
			return nil, diags
		}
		return []func(){apply}, nil
	case *domain.Module:
		w := &walker{t: t, cfg: cfg}
		domain.Walk(w, n.Items)
		if len(w.diags) > 0 {
			return nil, w.diags
		}
		return w.plans, nil
	default:
		var diags diag.List
		diags.Add(diag.ConfigurationError, target.Pos(),
			"wraptest can only be applied to functions and modules", "")
		return nil, diags
	}
}

// Result summarizes the expansion of one file
type Result struct {
	Invocations int
	Rewritten   int
	Diagnostics diag.List
}

// Expand applies every invocation attribute in file. Nested invocations
// are expanded before enclosing ones. Diagnostics from all invocations
// are collected; when any are reported the file must not be rendered.
func (t *Transformer) Expand(file *domain.File) Result {
	var res Result
	t.expandItems(file.Items, &res)
	if len(res.Diagnostics) > 0 {
		t.logger.Debug("expansion failed",
			zap.String("file", file.Path),
			zap.Int("diagnostics", len(res.Diagnostics)))
	}
	return res
}

func (t *Transformer) expandItems(items []domain.Node, res *Result) {
	for _, item := range items {
		if m, ok := item.(*domain.Module); ok {
			t.expandItems(m.Items, res)
		}

		idx, mode, ok := t.invocation(item, res)
		if !ok {
			continue
		}
		attrs := item.Attributes()
		marker := attrs.Markers[idx]
		if marker.Value != "" {
			res.Diagnostics.Add(diag.ConfigurationError, marker.Span,
				fmt.Sprintf("#[%s = ...] is not supported", marker.PathString()), mode.usage())
			continue
		}
		cfg, diags := ParseConfig(mode, marker.Args, marker.Span)
		if len(diags) > 0 {
			res.Diagnostics = append(res.Diagnostics, diags...)
			continue
		}

		plans, diags := t.plan(cfg, item)
		if len(diags) > 0 {
			res.Diagnostics = append(res.Diagnostics, diags...)
			continue
		}

		attrs.RemoveMarker(idx)
		for _, apply := range plans {
			apply()
		}
		attrs.Expanded = true
		res.Invocations++
		res.Rewritten += len(plans)
	}
}

// invocation finds the wraptest attribute on item. Misplaced or repeated
// attributes are reported and yield ok == false.
func (t *Transformer) invocation(item domain.Node, res *Result) (idx int, mode Mode, ok bool) {
	idx = -1
	for i, m := range item.Attributes().Markers {
		found, isInvocation := invocationMode(m)
		if !isInvocation {
			continue
		}
		if idx >= 0 {
			res.Diagnostics.Add(diag.ConfigurationError, m.Span,
				fmt.Sprintf("#[%s] applied more than once", m.PathString()),
				"merge the arguments into a single attribute")
			return -1, mode, false
		}
		idx, mode = i, found
	}
	if idx < 0 {
		return -1, mode, false
	}

	marker := item.Attributes().Markers[idx]
	switch item.(type) {
	case *domain.Func:
		if mode == FunctionMode {
			return idx, mode, true
		}
		res.Diagnostics.Add(diag.ConfigurationError, marker.Span,
			"#[wrap_tests] applies to modules", "use #[wraptest(before = ..., after = ...)] on a single function")
	case *domain.Module:
		if mode == ModuleMode {
			return idx, mode, true
		}
		res.Diagnostics.Add(diag.ConfigurationError, marker.Span,
			"#[wraptest] applies to single functions", "use #[wrap_tests(...)] on a module")
	default:
		res.Diagnostics.Add(diag.ConfigurationError, marker.Span,
			fmt.Sprintf("#[%s] must be placed on a function or an inline module", marker.PathString()), "")
	}
	return -1, mode, false
}

// invocationMode reports whether m is a wraptest invocation attribute
func invocationMode(m *domain.Marker) (Mode, bool) {
	switch {
	case m.Is("wraptest"), m.Is("wraptest", "wraptest"):
		return FunctionMode, true
	case m.Is("wrap_tests"), m.Is("wraptest", "wrap_tests"):
		return ModuleMode, true
	}
	return 0, false
}

// IsInvocation reports whether m is a wraptest invocation attribute
func IsInvocation(m *domain.Marker) bool {
	_, ok := invocationMode(m)
	return ok
}
