package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wraptest/internal/parser"
	"wraptest/internal/wrap"
)

const inspectedSource = `use std::time::Duration;

#[wrap_tests(wrapper = with_db)]
mod tests {
    #[test]
    fn creates_user() {}

    #[tokio::test]
    async fn fetches_user() {}

    mod nested {
        #[async_std::test]
        async fn deep() {}
    }

    fn helper() {}
}

#[wraptest(before = setup)]
fn standalone() {}
`

func TestInspector_Inspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte(inspectedSource), 0644))

	inspector := NewInspector(parser.NewRustParser(), wrap.NewClassifier("async_std::test"))
	summary, err := inspector.Inspect(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, summary.Path)
	assert.Equal(t, 2, summary.Invocations)
	require.Len(t, summary.Tests, 3)

	first := summary.Tests[0]
	assert.Equal(t, "creates_user", first.Name)
	assert.Equal(t, "tests", first.Module)
	assert.Equal(t, "test", first.Marker)
	assert.Equal(t, 6, first.Line)
	assert.False(t, first.Async)

	assert.Equal(t, "fetches_user", summary.Tests[1].Name)
	assert.Equal(t, "tokio::test", summary.Tests[1].Marker)
	assert.True(t, summary.Tests[1].Async)

	assert.Equal(t, "deep", summary.Tests[2].Name)
	assert.Equal(t, "tests::nested", summary.Tests[2].Module)
}

func TestInspector_UnknownRunnerIsNotATest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte(inspectedSource), 0644))

	summary, err := NewInspector(parser.NewRustParser(), wrap.NewClassifier()).Inspect(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, summary.Tests, 2)
}

func TestInspector_Errors(t *testing.T) {
	inspector := NewInspector(parser.NewRustParser(), wrap.NewClassifier())

	_, err := inspector.Inspect(context.Background(), filepath.Join(t.TempDir(), "missing.rs"))
	assert.ErrorContains(t, err, "error reading file")

	path := filepath.Join(t.TempDir(), "broken.rs")
	require.NoError(t, os.WriteFile(path, []byte("fn broken( {"), 0644))
	_, err = inspector.Inspect(context.Background(), path)

	var syntaxErr *parser.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}
