package ui

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"wraptest/internal/config"
	"wraptest/internal/discovery"
	"wraptest/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to the colour-aware stdout
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg, out: color.Output}
}

// SetOutput redirects the formatter's output
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	bold   = color.New(color.Bold)
	yellow = color.New(color.FgYellow)
	blue   = color.New(color.FgBlue, color.Bold)
	alert  = color.New(color.FgRed, color.Bold)
)

// PrintSummary displays the statistics of a run followed by its diagnostics
func (f *Formatter) PrintSummary(report *domain.RunReport) {
	meta := report.Meta

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                   wraptest Expansion Summary                  ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Source Path", f.sourcePath(), bold},
		{"Files Processed", strconv.Itoa(meta.TotalFiles), bold},
		{"Files Changed", strconv.Itoa(meta.ChangedFiles), green},
		{"Files Failed", strconv.Itoa(meta.FailedFiles), red},
		{"Tests Rewritten", strconv.Itoa(meta.RewrittenTests), green},
		{"Diagnostics", strconv.Itoa(meta.Diagnostics), red},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), bold},
		{"Workers", strconv.Itoa(meta.Workers), bold},
		{"Timestamp", meta.Timestamp, bold},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-27s", row.value)
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")
	fmt.Fprintln(f.out)

	switch {
	case meta.FailedFiles > 0:
		red.Fprintf(f.out, "✗ %d file(s) failed with %d diagnostic(s)\n", meta.FailedFiles, meta.Diagnostics)
		fmt.Fprintln(f.out)
		f.printDiagnosticsTree(report.Details)
	case meta.Check && meta.ChangedFiles > 0:
		yellow.Fprintf(f.out, "! %d file(s) would be rewritten\n", meta.ChangedFiles)
	default:
		green.Fprintln(f.out, "✓ All invocations expanded")
	}
}

func (f *Formatter) sourcePath() string {
	if f.config == nil {
		return "-"
	}
	path := f.config.GetSourcePath()
	if len(path) > 27 {
		path = "..." + path[len(path)-24:]
	}
	return path
}

// PrintDiagnostics prints each record in compiler style with its source line
func (f *Formatter) PrintDiagnostics(records []domain.DiagnosticRecord) {
	for _, d := range records {
		alert.Fprintf(f.out, "error[%s]", d.Kind)
		bold.Fprintf(f.out, ": %s\n", d.Message)

		gutter := strings.Repeat(" ", len(strconv.Itoa(d.Line)))
		blue.Fprintf(f.out, "%s--> ", gutter)
		fmt.Fprintf(f.out, "%s:%d:%d\n", d.FilePath, d.Line, d.Column)

		if d.Snippet != "" {
			blue.Fprintf(f.out, "%s |\n", gutter)
			blue.Fprintf(f.out, "%d | ", d.Line)
			fmt.Fprintln(f.out, d.Snippet)
			blue.Fprintf(f.out, "%s | ", gutter)
			red.Fprintln(f.out, caretLine(d.Snippet, d.Column))
		}
		if d.Note != "" {
			blue.Fprintf(f.out, "%s = ", gutter)
			bold.Fprint(f.out, "note")
			fmt.Fprintf(f.out, ": %s\n", d.Note)
		}
		fmt.Fprintln(f.out)
	}
}

// caretLine points at column, keeping tabs so the caret lines up
func caretLine(snippet string, column int) string {
	var b strings.Builder
	for i := 0; i < column-1 && i < len(snippet); i++ {
		if snippet[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	return b.String()
}

// PrintFileList prints the files that carry wraptest invocations, or every
// test declaration when testCases is set
func (f *Formatter) PrintFileList(summaries []*discovery.Summary, testCases bool) {
	if testCases {
		f.printTestCases(summaries)
		return
	}

	total := 0
	for _, s := range summaries {
		if s.Invocations == 0 {
			continue
		}
		total++
		yellow.Fprintf(f.out, "%s", s.Path)
		fmt.Fprintf(f.out, "  (%d invocation(s), %d test(s))\n", s.Invocations, len(s.Tests))
	}
	fmt.Fprintln(f.out)
	cyan.Fprintf(f.out, "%d file(s) with wraptest invocations\n", total)
}

func (f *Formatter) printTestCases(summaries []*discovery.Summary) {
	total := 0
	for _, s := range summaries {
		if len(s.Tests) == 0 {
			continue
		}
		yellow.Fprintln(f.out, s.Path)
		for _, tc := range s.Tests {
			total++
			name := tc.Name
			if tc.Module != "" {
				name = tc.Module + "::" + tc.Name
			}
			kind := "sync "
			if tc.Async {
				kind = "async"
			}
			fmt.Fprintf(f.out, "  |_ %s ", kind)
			bold.Fprint(f.out, name)
			fmt.Fprintf(f.out, "  #[%s] line %d\n", tc.Marker, tc.Line)
		}
	}
	fmt.Fprintln(f.out)
	cyan.Fprintf(f.out, "%d test declaration(s)\n", total)
}

// TreeNode represents a node in the file tree structure
type TreeNode struct {
	Name        string
	Children    map[string]*TreeNode
	Diagnostics []domain.DiagnosticRecord
	IsFile      bool
}

// printDiagnosticsTree prints a tree of files with their diagnostics
func (f *Formatter) printDiagnosticsTree(records []domain.DiagnosticRecord) {
	if len(records) == 0 {
		return
	}

	root := &TreeNode{Children: make(map[string]*TreeNode)}
	for _, d := range records {
		parts := strings.Split(strings.TrimPrefix(d.FilePath, "./"), "/")
		current := root
		for i, part := range parts {
			if part == "" {
				continue
			}
			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
			}
			current = current.Children[part]
		}
		current.Diagnostics = append(current.Diagnostics, d)
	}

	f.printTreeNode(root, "", true)
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string, isRoot bool) {
	// Sort children for consistent output
	keys := make([]string, 0, len(node.Children))
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		isLastChild := i == len(keys)-1

		connector := ""
		childPrefix := prefix
		if !isRoot {
			if isLastChild {
				connector = prefix + "   |_"
				childPrefix = prefix + "     "
			} else {
				connector = prefix + "  |_"
				childPrefix = prefix + "  | "
			}
		}

		if child.IsFile {
			yellow.Fprintf(f.out, "%s%s\n", connector, child.Name)
			for _, d := range child.Diagnostics {
				fmt.Fprintf(f.out, "%s     ", childPrefix)
				red.Fprintf(f.out, "✗ %d:%d %s", d.Line, d.Column, d.Kind)
				fmt.Fprintf(f.out, " %s\n", d.Message)
			}
		} else {
			cyan.Fprintf(f.out, "%s%s\n", connector, child.Name)
		}

		f.printTreeNode(child, childPrefix, false)
	}
}
