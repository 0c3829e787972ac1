package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wraptest/internal/domain"
)

func at(offset, line, column int) domain.Span {
	p := domain.Position{Offset: offset, Line: line, Column: column}
	return domain.Span{Start: p, End: p}
}

func TestList(t *testing.T) {
	var l List
	assert.Equal(t, "no errors", l.Error())

	l.Add(MissingHandler, at(0, 3, 5), "needs a handler", "add one")
	assert.Equal(t, "3:5: MissingHandler: needs a handler", l.Error())

	l.Add(ConfigurationError, domain.Span{}, `bad key "x"`, "")
	assert.Equal(t, "2 errors:\n\t3:5: MissingHandler: needs a handler\n\tConfigurationError: bad key \"x\"", l.Error())

	assert.True(t, l.Has(ConfigurationError))
	assert.False(t, l.Has(SyntaxError))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "ConfigurationError", ConfigurationError.String())
	assert.Equal(t, "UnsupportedSignature", UnsupportedSignature.String())
	assert.Equal(t, "MissingHandler", MissingHandler.String())
	assert.Equal(t, "SyntaxError", SyntaxError.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestRecords(t *testing.T) {
	src := []byte("mod tests {\r\n    #[tokio::test]\n    async fn a() {}\n}")

	var l List
	l.Add(MissingHandler, at(17, 2, 5), "requires async_wrapper", "add it")
	l.Add(SyntaxError, at(len(src)-1, 4, 1), "oops", "")

	records := Records("src/lib.rs", src, l)
	require.Len(t, records, 2)

	assert.Equal(t, domain.DiagnosticRecord{
		FilePath: "src/lib.rs",
		Kind:     "MissingHandler",
		Message:  "requires async_wrapper",
		Note:     "add it",
		Line:     2,
		Column:   5,
		Snippet:  "    #[tokio::test]",
	}, records[0])

	assert.Equal(t, "}", records[1].Snippet)
	assert.Equal(t, "mod tests {", lineAt(src, 3))
	assert.Empty(t, lineAt(nil, 0))
	assert.Empty(t, lineAt(src, -1))
}
