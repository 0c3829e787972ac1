package wrap

import (
	"fmt"
	"strings"

	"wraptest/internal/diag"
	"wraptest/internal/domain"
)

// Configuration keys accepted by the invocation attributes
const (
	KeyBefore       = "before"
	KeyAfter        = "after"
	KeyWrapper      = "wrapper"
	KeyAsyncWrapper = "async_wrapper"
)

// Mode selects which invocation a configuration belongs to
type Mode int

const (
	// FunctionMode is #[wraptest(...)] on a single function
	FunctionMode Mode = iota
	// ModuleMode is #[wrap_tests(...)] on a module
	ModuleMode
)

func (m Mode) String() string {
	if m == FunctionMode {
		return "wraptest"
	}
	return "wrap_tests"
}

func (m Mode) keys() []string {
	if m == FunctionMode {
		return []string{KeyBefore, KeyAfter}
	}
	return []string{KeyBefore, KeyAfter, KeyWrapper, KeyAsyncWrapper}
}

func (m Mode) usage() string {
	if m == FunctionMode {
		return "usage: #[wraptest(before = setup, after = teardown)]"
	}
	return "usage: #[wrap_tests(wrapper = with_setup, async_wrapper = with_setup_async)] " +
		"or #[wrap_tests(before = setup, after = teardown)]"
}

// Config names the handlers of one invocation. Empty means not set.
type Config struct {
	Before       string
	After        string
	Wrapper      string
	AsyncWrapper string
}

// statements reports whether the config uses the before/after model
func (c Config) statements() bool {
	return c.Before != "" || c.After != ""
}

func (c *Config) set(key, value string) {
	switch key {
	case KeyBefore:
		c.Before = value
	case KeyAfter:
		c.After = value
	case KeyWrapper:
		c.Wrapper = value
	case KeyAsyncWrapper:
		c.AsyncWrapper = value
	}
}

// ParseConfig reads a comma-separated list of `key = identifier` pairs.
// A repeated key overwrites the earlier value. at anchors diagnostics
// that concern the list as a whole.
func ParseConfig(mode Mode, tokens []domain.Token, at domain.Span) (Config, diag.List) {
	var (
		cfg   Config
		diags diag.List
	)
	known := make(map[string]bool)
	for _, k := range mode.keys() {
		known[k] = true
	}

	// skip advances past the next comma so one bad pair does not hide the rest
	skip := func(i int) int {
		for i < len(tokens) && !isPunct(tokens[i], ",") {
			i++
		}
		return i + 1
	}

	for i := 0; i < len(tokens); {
		key := tokens[i]
		if key.Kind != domain.TokenIdent {
			diags.Add(diag.ConfigurationError, key.Span,
				fmt.Sprintf("expected argument name, found `%s`", key.Text), mode.usage())
			i = skip(i)
			continue
		}

		if i+1 >= len(tokens) || !isPunct(tokens[i+1], "=") {
			anchor := key.Span
			if i+1 < len(tokens) {
				anchor = tokens[i+1].Span
			}
			diags.Add(diag.ConfigurationError, anchor,
				fmt.Sprintf("expected `=` after `%s`", key.Text), mode.usage())
			i = skip(i)
			continue
		}

		if i+2 >= len(tokens) || isPunct(tokens[i+2], ",") {
			diags.Add(diag.ConfigurationError, tokens[i+1].Span,
				fmt.Sprintf("expected a handler name after `%s =`", key.Text), mode.usage())
			i = skip(i)
			continue
		}

		value := tokens[i+2]
		end := i + 3
		for end < len(tokens) && !isPunct(tokens[end], ",") {
			end++
		}
		if value.Kind != domain.TokenIdent || end != i+3 {
			span := value.Span
			var text strings.Builder
			for _, tok := range tokens[i+2 : end] {
				span = span.Join(tok.Span)
				text.WriteString(tok.Text)
			}
			diags.Add(diag.ConfigurationError, span,
				fmt.Sprintf("handler for `%s` must be a plain identifier, found `%s`", key.Text, text.String()),
				"define a function in scope and pass its name")
			i = end + 1
			continue
		}

		if !known[key.Text] {
			diags.Add(diag.ConfigurationError, key.Span,
				fmt.Sprintf("unexpected argument name `%s` for #[%s]", key.Text, mode), mode.usage())
		} else {
			cfg.set(key.Text, value.Text)
		}
		i = end + 1
	}

	if mode == ModuleMode && cfg.statements() && (cfg.Wrapper != "" || cfg.AsyncWrapper != "") {
		diags.Add(diag.ConfigurationError, at,
			"`before`/`after` cannot be combined with `wrapper`/`async_wrapper`",
			"call the setup and teardown from inside the wrapper instead")
	}

	if len(diags) > 0 {
		return Config{}, diags
	}
	return cfg, nil
}

func isPunct(tok domain.Token, text string) bool {
	return tok.Kind == domain.TokenPunct && tok.Text == text
}
