package wrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"wraptest/internal/diag"
	"wraptest/internal/domain"
	"wraptest/internal/parser"
)

func parse(t *testing.T, src string) *domain.File {
	t.Helper()
	file, err := parser.NewRustParser().Parse(context.Background(), "lib.rs", []byte(src))
	require.NoError(t, err)
	return file
}

func render(file *domain.File) string {
	return string(parser.NewRustRenderer().Render(file))
}

func TestTransform_Function(t *testing.T) {
	file := parse(t, "pub async fn fetch() -> Result<(), E> {\n    Ok(())\n}\n")
	f := file.Items[0].(*domain.Func)

	n, diags := New().Transform(Config{Before: "setup"}, f)
	require.Empty(t, diags)
	assert.Equal(t, 1, n)

	// Outer signature is untouched
	assert.Equal(t, "pub async fn fetch() -> Result<(), E> ", f.Header)
	assert.True(t, f.Expanded)
	require.Len(t, f.Markers, 1)
	assert.True(t, f.Markers[0].Synthetic)
	assert.Equal(t, "#[tokio::test]", f.Markers[0].Text)

	// Exactly one nested copy, private and renamed
	require.Len(t, f.Body.Stmts, 3)
	inner := f.Body.Stmts[0].(*domain.ItemStmt).Func
	assert.Equal(t, "__wraptest_fetch", inner.Name)
	assert.Empty(t, inner.Vis)
	assert.Empty(t, inner.Markers)
	assert.True(t, inner.Async)
	assert.Equal(t, "Result<(), E>", inner.Result)
	assert.Equal(t, "async fn __wraptest_fetch() -> Result<(), E>", parser.Signature(inner))

	assert.Equal(t, "setup()", parser.Expr(f.Body.Stmts[1].(*domain.ExprStmt).X))
	tail := f.Body.Stmts[2].(*domain.ExprStmt)
	assert.True(t, tail.Tail)
	assert.Equal(t, "__wraptest_fetch().await", parser.Expr(tail.X))
}

func TestTransform_ModuleIsAllOrNothing(t *testing.T) {
	src := `mod tests {
    #[test]
    fn good() {}

    #[tokio::test]
    async fn bad() {}
}
`
	file := parse(t, src)
	m := file.Items[0].(*domain.Module)

	n, diags := New().Transform(Config{Wrapper: "w"}, m)
	assert.Zero(t, n)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.MissingHandler, diags[0].Kind)

	// The valid test was not rewritten either
	assert.Equal(t, src, render(file))
	assert.False(t, m.Items[0].(*domain.Func).Expanded)
}

func TestTransform_ModuleSkipsNonTests(t *testing.T) {
	file := parse(t, `mod tests {
    fn helper() {}

    #[test]
    fn only() {}

    struct Fixture;
}
`)
	n, diags := New(WithLogger(zaptest.NewLogger(t))).Transform(Config{Wrapper: "w"}, file.Items[0])
	require.Empty(t, diags)
	assert.Equal(t, 1, n)

	m := file.Items[0].(*domain.Module)
	assert.False(t, m.Items[0].(*domain.Func).Expanded)
	assert.True(t, m.Items[1].(*domain.Func).Expanded)
}

func TestTransform_OtherItem(t *testing.T) {
	file := parse(t, "struct Fixture;\n")

	n, diags := New().Transform(Config{Before: "s"}, file.Items[0])
	assert.Zero(t, n)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.ConfigurationError, diags[0].Kind)
}

func TestTransform_RunnerMarkers(t *testing.T) {
	src := `mod tests {
    #[async_std::test]
    async fn a() {}
}
`
	file := parse(t, src)
	n, diags := New().Transform(Config{Wrapper: "w", AsyncWrapper: "aw"}, file.Items[0])
	require.Empty(t, diags)
	assert.Zero(t, n, "unknown runner is not a test")

	file = parse(t, src)
	n, diags = New(WithRunnerMarkers("async_std::test")).Transform(Config{Wrapper: "w", AsyncWrapper: "aw"}, file.Items[0])
	require.Empty(t, diags)
	assert.Equal(t, 1, n)
}

func TestExpand_Counts(t *testing.T) {
	file := parse(t, `#[wraptest(before = s)]
fn one() {}

#[wrap_tests(wrapper = w)]
mod tests {
    #[test]
    fn two() {}

    #[test]
    fn three() {}
}

#[wrap_tests(wrapper = w)]
mod empty {
    fn helper() {}
}
`)
	res := New().Expand(file)
	require.Empty(t, res.Diagnostics)
	assert.Equal(t, 3, res.Invocations)
	assert.Equal(t, 3, res.Rewritten)

	for _, item := range file.Items {
		for _, m := range item.Attributes().Markers {
			assert.False(t, IsInvocation(m), "invocation %s left behind", m.Text)
		}
	}
	assert.Contains(t, render(file), "mod empty {\n    fn helper() {}\n}")
}

func TestExpand_ValidInvocationsStillCounted(t *testing.T) {
	src := `#[wraptest(before = s)]
fn fine() {}

#[wraptest(wrapper = w)]
fn broken() {}
`
	file := parse(t, src)
	res := New().Expand(file)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, 1, res.Invocations)
	assert.Contains(t, res.Diagnostics.Error(), "unexpected argument name `wrapper`")
}

func TestExpand_NoInvocationsIsIdentity(t *testing.T) {
	src := "//! crate docs\n\n#[cfg(test)]\nmod tests {\n\t#[test]\n\tfn a() { let _ = 1; }\n}\n// trailing\n"
	file := parse(t, src)

	res := New().Expand(file)
	assert.Zero(t, res.Invocations)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, src, render(file))
}

func TestInnerName(t *testing.T) {
	assert.Equal(t, "__wraptest_it_works", InnerName("it_works"))
}
