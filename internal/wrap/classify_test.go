package wrap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wraptest/internal/domain"
)

func fn(async bool, markers ...*domain.Marker) *domain.Func {
	return &domain.Func{Name: "t", Async: async, Attrs: domain.Attrs{Markers: markers}}
}

func parsed(path ...string) *domain.Marker {
	m := domain.NewMarker(path...)
	m.Synthetic = false
	return m
}

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier("async_std::test", "  ::smol_potat::test ", "")

	tests := []struct {
		name     string
		f        *domain.Func
		expected Class
	}{
		{"plain function", fn(false), NotATest},
		{"unrelated attribute", fn(false, parsed("inline")), NotATest},
		{"test marker", fn(false, parsed("test")), SyncTest},
		{"fully qualified test marker", fn(false, parsed("core", "prelude", "v1", "test")), SyncTest},
		{"tokio runner", fn(true, parsed("tokio", "test")), AsyncTest},
		{"configured runner", fn(true, parsed("async_std", "test")), AsyncTest},
		{"configured runner with leading colons", fn(true, parsed("smol_potat", "test")), AsyncTest},
		{"marker after other attributes", fn(false, parsed("ignore"), parsed("test")), SyncTest},
		{"async decided by declaration", fn(true, parsed("test")), AsyncTest},
		{"sync decided by declaration", fn(false, parsed("tokio", "test")), SyncTest},
		{"name alone is not a path match", fn(false, parsed("my", "test")), NotATest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.f))
		})
	}
}

func TestClassifier_Mismatch(t *testing.T) {
	c := NewClassifier()

	assert.Nil(t, c.mismatch(fn(false, parsed("test"))))
	assert.Nil(t, c.mismatch(fn(true, parsed("tokio", "test"))))

	m := parsed("test")
	assert.Same(t, m, c.mismatch(fn(true, m)))

	m = parsed("tokio", "test")
	assert.Same(t, m, c.mismatch(fn(false, parsed("ignore"), m)))
}

func TestClassifier_TestMarker(t *testing.T) {
	c := NewClassifier()
	m := parsed("tokio", "test")

	assert.Same(t, m, c.TestMarker(fn(true, parsed("ignore"), m)))
	assert.Nil(t, c.TestMarker(fn(true, parsed("ignore"))))
}

func TestClassifier_IsHarnessMarker(t *testing.T) {
	c := NewClassifier()

	assert.True(t, c.IsHarnessMarker(parsed("ignore")))
	assert.True(t, c.IsHarnessMarker(parsed("should_panic")))
	assert.False(t, c.IsHarnessMarker(parsed("allow")))
	assert.False(t, c.IsHarnessMarker(parsed("test")))
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "sync test", SyncTest.String())
	assert.Equal(t, "async test", AsyncTest.String())
	assert.Equal(t, "not a test", NotATest.String())
}
