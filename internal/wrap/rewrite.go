package wrap

import (
	"fmt"

	"wraptest/internal/diag"
	"wraptest/internal/domain"
)

const (
	// innerPrefix renames the nested copy of a rewritten test
	innerPrefix = "__wraptest_"
	// resultBinding holds the inner result between the test and after calls
	resultBinding = "__wraptest_result"
)

// InnerName returns the name given to the nested copy of test name
func InnerName(name string) string {
	return innerPrefix + name
}

// rewrite validates f against cfg and returns the closure that replaces
// its body. Nothing is modified until the closure runs.
func (t *Transformer) rewrite(f *domain.Func, class Class, mode Mode, cfg Config) (func(), diag.List) {
	var diags diag.List

	if len(f.Params) > 0 {
		diags.Add(diag.UnsupportedSignature, f.ParamsSpan,
			fmt.Sprintf("test function `%s` cannot take arguments", f.Name),
			"remove the parameters and build the values inside the test body")
	}

	if m := t.classifier.mismatch(f); m != nil {
		if f.Async {
			diags.Add(diag.UnsupportedSignature, m.Span,
				fmt.Sprintf("`async fn %s` is marked with #[%s]", f.Name, m.PathString()),
				"use an async runner marker such as #[tokio::test]")
		} else {
			diags.Add(diag.UnsupportedSignature, m.Span,
				fmt.Sprintf("`fn %s` is not async but is marked with #[%s]", f.Name, m.PathString()),
				"declare the test as `async fn` or use #[test]")
		}
	}

	var build func(inner *domain.Func) []domain.Stmt
	if mode == FunctionMode || cfg.statements() {
		if !cfg.statements() {
			diags.Add(diag.MissingHandler, f.Span,
				fmt.Sprintf("%s `%s` has no `before` or `after` handler", class, f.Name),
				fmt.Sprintf("add `before = <fn>` or `after = <fn>` to #[%s(...)]", mode))
		}
		build = func(inner *domain.Func) []domain.Stmt {
			return statementBody(inner, class, cfg)
		}
	} else {
		key, handler := KeyWrapper, cfg.Wrapper
		if class == AsyncTest {
			key, handler = KeyAsyncWrapper, cfg.AsyncWrapper
		}
		if handler == "" {
			diags.Add(diag.MissingHandler, f.Span,
				fmt.Sprintf("%s `%s` requires a `%s` handler", class, f.Name, key),
				fmt.Sprintf("add `%s = <fn>` to #[%s(...)]", key, mode))
		}
		build = func(inner *domain.Func) []domain.Stmt {
			return wrapperBody(inner, class, handler)
		}
	}

	if len(diags) > 0 {
		return nil, diags
	}

	return func() {
		inner := t.innerCopy(f)
		span := domain.Span{}
		if f.Body != nil {
			span = f.Body.Span
		}
		f.Body = &domain.Block{
			Stmts: append([]domain.Stmt{&domain.ItemStmt{Func: inner}}, build(inner)...),
			Span:  span,
		}
		f.Expanded = true
		if mode == FunctionMode && t.classifier.TestMarker(f) == nil {
			if class == AsyncTest {
				f.PrependMarker(domain.NewMarker("tokio", "test"))
			} else {
				f.PrependMarker(domain.NewMarker("test"))
			}
		}
	}, nil
}

// innerCopy clones f as a private, renamed function without test or
// harness markers
func (t *Transformer) innerCopy(f *domain.Func) *domain.Func {
	inner := f.Clone()
	inner.Name = InnerName(f.Name)
	inner.Header = ""
	inner.Vis = ""
	inner.Leading = ""
	inner.HeaderLeading = ""
	inner.Expanded = false
	kept := inner.Markers[:0]
	for _, m := range inner.Markers {
		if !t.classifier.IsTestMarker(m) && !t.classifier.IsHarnessMarker(m) {
			kept = append(kept, m)
		}
	}
	inner.Markers = kept
	return inner
}

// wrapperBody is `handler(inner)`, awaited for async tests
func wrapperBody(inner *domain.Func, class Class, handler string) []domain.Stmt {
	var call domain.Expr = domain.Call(handler, &domain.Ident{Name: inner.Name})
	if class == AsyncTest {
		call = &domain.AwaitExpr{X: call}
	}
	return []domain.Stmt{&domain.ExprStmt{X: call, Tail: true}}
}

// statementBody calls before, the inner test and after in sequence and
// yields the test's result
func statementBody(inner *domain.Func, class Class, cfg Config) []domain.Stmt {
	var stmts []domain.Stmt
	if cfg.Before != "" {
		stmts = append(stmts, &domain.ExprStmt{X: domain.Call(cfg.Before)})
	}

	var invoke domain.Expr = domain.Call(inner.Name)
	if class == AsyncTest {
		invoke = &domain.AwaitExpr{X: invoke}
	}

	if cfg.After == "" {
		return append(stmts, &domain.ExprStmt{X: invoke, Tail: true})
	}
	return append(stmts,
		&domain.LetStmt{Name: resultBinding, Value: invoke},
		&domain.ExprStmt{X: domain.Call(cfg.After)},
		&domain.ExprStmt{X: &domain.Ident{Name: resultBinding}, Tail: true},
	)
}
