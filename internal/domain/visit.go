package domain

// Visitor receives the items of a declaration tree
type Visitor interface {
	VisitFunc(f *Func)
	// VisitModule reports whether the walk should descend into m
	VisitModule(m *Module) bool
	VisitOther(o *Other)
}

// Walk visits items in document order. Each scope's own items are
// visited before any nested module is entered.
func Walk(v Visitor, items []Node) {
	var nested []*Module
	for _, item := range items {
		switch n := item.(type) {
		case *Func:
			v.VisitFunc(n)
		case *Module:
			if v.VisitModule(n) {
				nested = append(nested, n)
			}
		case *Other:
			v.VisitOther(n)
		}
	}
	for _, m := range nested {
		Walk(v, m.Items)
	}
}

// VisitorFuncs adapts plain functions to Visitor. Nil hooks are skipped
// and modules are always entered when Module is nil.
type VisitorFuncs struct {
	Func   func(*Func)
	Module func(*Module) bool
	Other  func(*Other)
}

func (v VisitorFuncs) VisitFunc(f *Func) {
	if v.Func != nil {
		v.Func(f)
	}
}

func (v VisitorFuncs) VisitModule(m *Module) bool {
	if v.Module != nil {
		return v.Module(m)
	}
	return true
}

func (v VisitorFuncs) VisitOther(o *Other) {
	if v.Other != nil {
		v.Other(o)
	}
}
