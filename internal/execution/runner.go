package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"wraptest/internal/config"
	"wraptest/internal/diag"
	"wraptest/internal/domain"
	"wraptest/internal/logging"
	"wraptest/internal/parser"
	"wraptest/internal/wrap"
)

// invocationHints are substrings every file with an invocation contains.
// Files without any of them are passed through without parsing.
var invocationHints = [][]byte{[]byte("wraptest"), []byte("wrap_tests")}

// Runner expands a single source file
type Runner struct {
	config      *config.Config
	parser      parser.Parser
	renderer    parser.Renderer
	transformer *wrap.Transformer
	logger      *zap.Logger
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, p parser.Parser, r parser.Renderer, t *wrap.Transformer, logger *zap.Logger) *Runner {
	return &Runner{
		config:      cfg,
		parser:      p,
		renderer:    r,
		transformer: t,
		logger:      logging.OrNop(logger),
	}
}

// Run expands the file at path and, unless running in check mode, writes
// the result. A file with diagnostics is never written.
func (r *Runner) Run(ctx context.Context, path string, workerID int) domain.FileResult {
	start := time.Now()
	result := r.expand(ctx, path)
	result.Duration = time.Since(start)

	r.logger.Debug("processed file",
		zap.String("file", path),
		zap.Int("worker", workerID),
		zap.Bool("changed", result.Changed),
		zap.Int("rewritten", result.Rewritten),
		zap.Int("diagnostics", len(result.Diagnostics)),
		zap.Duration("duration", result.Duration))

	if result.Failed() || r.config.Flags.Check {
		return result
	}
	if result.Changed || r.config.Flags.OutDir != "" {
		if err := r.write(path, result.Output); err != nil {
			result.Error = err
		}
	}
	return result
}

func (r *Runner) expand(ctx context.Context, path string) domain.FileResult {
	result := domain.FileResult{Path: path}

	src, err := os.ReadFile(path)
	if err != nil {
		result.Error = fmt.Errorf("read %s: %w", path, err)
		return result
	}

	if !containsAny(src, invocationHints) {
		result.Output = src
		return result
	}

	file, err := r.parser.Parse(ctx, path, src)
	if err != nil {
		var syntaxErr *parser.SyntaxError
		if errors.As(err, &syntaxErr) {
			var diags diag.List
			diags.Add(diag.SyntaxError, syntaxErr.Span, syntaxErr.Message, "")
			result.Diagnostics = diag.Records(path, src, diags)
			return result
		}
		result.Error = err
		return result
	}

	res := r.transformer.Expand(file)
	result.Invocations = res.Invocations
	if len(res.Diagnostics) > 0 {
		result.Diagnostics = diag.Records(path, src, res.Diagnostics)
		return result
	}

	result.Rewritten = res.Rewritten
	result.Output = r.renderer.Render(file)
	result.Changed = !bytes.Equal(result.Output, src)
	return result
}

func (r *Runner) write(source string, data []byte) error {
	target := r.config.GetOutputPath(source)
	mode := os.FileMode(0644)
	if info, err := os.Stat(source); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(target, data, mode); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

func containsAny(src []byte, needles [][]byte) bool {
	for _, n := range needles {
		if bytes.Contains(src, n) {
			return true
		}
	}
	return false
}
