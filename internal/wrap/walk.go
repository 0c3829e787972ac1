package wrap

import (
	"go.uber.org/zap"

	"wraptest/internal/diag"
	"wraptest/internal/domain"
)

// walker plans a rewrite for every test function reachable from a
// module. Modules already expanded by their own invocation are skipped.
type walker struct {
	t     *Transformer
	cfg   Config
	plans []func()
	diags diag.List
}

func (w *walker) VisitFunc(f *domain.Func) {
	class := w.t.classifier.Classify(f)
	if class == NotATest || f.Expanded {
		return
	}
	apply, diags := w.t.rewrite(f, class, ModuleMode, w.cfg)
	if len(diags) > 0 {
		w.diags = append(w.diags, diags...)
		return
	}
	w.t.logger.Debug("planned rewrite",
		zap.String("test", f.Name),
		zap.Stringer("class", class),
		zap.Int("line", f.Span.Start.Line))
	w.plans = append(w.plans, apply)
}

func (w *walker) VisitModule(m *domain.Module) bool {
	return !m.Expanded
}

func (w *walker) VisitOther(*domain.Other) {}
