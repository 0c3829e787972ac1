package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"wraptest/internal/domain"
	"wraptest/internal/storage"
)

// DiagnosticViewer displays the diagnostics of a report in an interactive TUI
type DiagnosticViewer struct {
	storage storage.Storage
}

// NewDiagnosticViewer creates a new DiagnosticViewer
func NewDiagnosticViewer(st storage.Storage) *DiagnosticViewer {
	return &DiagnosticViewer{storage: st}
}

// View displays report diagnostics. Toggling an entry resolved is written
// straight back to the report file.
func (dv *DiagnosticViewer) View(report *domain.RunReport) error {
	if len(report.Details) == 0 {
		color.Green("✓ No diagnostics found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	for i := range report.Details {
		list.AddItem(listItemText(report.Details[i], i), "", 0, nil)
	}

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Diagnostics (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] toggle resolved, → details, ← back, Ctrl+C exit ",
			len(report.Details), countUnresolved(report.Details)))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(report.Details) {
			return
		}
		d := report.Details[index]
		statsView.SetText(formatDiagnosticStats(d))
		detailsView.SetText(formatDiagnosticDetails(d))
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() != 'r' && event.Rune() != 'R' {
				return event
			}
			index := list.GetCurrentItem()
			if index < 0 || index >= len(report.Details) {
				return nil
			}
			report.Details[index].Resolved = !report.Details[index].Resolved
			list.SetItemText(index, listItemText(report.Details[index], index), "")
			updateHeader()
			updateDetails()
			if err := dv.storage.SaveReport(report); err != nil {
				statsView.SetText(fmt.Sprintf("[red]save failed: %s[white]", tview.Escape(err.Error())))
			}
			return nil
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(body, 0, 1, true)

	if err := app.SetRoot(layout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func countUnresolved(records []domain.DiagnosticRecord) int {
	count := 0
	for _, d := range records {
		if !d.Resolved {
			count++
		}
	}
	return count
}

func listItemText(d domain.DiagnosticRecord, index int) string {
	label := tview.Escape(fmt.Sprintf("%s %s", d.Kind, shortPath(d.FilePath)))
	if d.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, label)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, label)
}

func shortPath(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// formatDiagnosticStats formats the location header of a diagnostic
func formatDiagnosticStats(d domain.DiagnosticRecord) string {
	path := d.FilePath
	if path == "" {
		path = "Unknown path"
	}
	return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]:%d:%d\n", tview.Escape(path), d.Line, d.Column)
}

// formatDiagnosticDetails formats a diagnostic using tview color tags
func formatDiagnosticDetails(d domain.DiagnosticRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ %s[white]\n\n", tview.Escape(d.Kind))
	fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n\n", tview.Escape(d.Message))

	if d.Snippet != "" {
		fmt.Fprintf(&b, "[yellow]Source:[white]\n")
		fmt.Fprintf(&b, "[blue]%d |[white] %s\n", d.Line, tview.Escape(d.Snippet))
		gutter := strings.Repeat(" ", len(fmt.Sprint(d.Line)))
		fmt.Fprintf(&b, "[blue]%s |[white] [red]%s[white]\n\n", gutter, caretLine(d.Snippet, d.Column))
	}
	if d.Note != "" {
		fmt.Fprintf(&b, "[yellow]Note:[white]\n%s\n", tview.Escape(d.Note))
	}
	if d.Resolved {
		fmt.Fprintf(&b, "\n[gray]marked resolved[white]\n")
	}
	return b.String()
}
