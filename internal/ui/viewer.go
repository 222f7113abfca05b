package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"pws/internal/domain"
)

// Viewer displays the run history
type Viewer interface {
	View(records []domain.RunRecord) error
}

// HistoryViewer displays past runs in an interactive TUI
type HistoryViewer struct{}

// NewHistoryViewer creates a new HistoryViewer
func NewHistoryViewer() *HistoryViewer {
	return &HistoryViewer{}
}

// View shows the newest run first; ↑↓ navigate, → shows details, ← goes back
func (hv *HistoryViewer) View(records []domain.RunRecord) error {
	if len(records) == 0 {
		color.Yellow("No runs recorded yet.")
		return nil
	}

	ordered := make([]domain.RunRecord, len(records))
	for i, r := range records {
		ordered[len(records)-1-i] = r
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, r := range ordered {
		list.AddItem(listItemText(i, r), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

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

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	failed := 0
	for _, r := range ordered {
		if !r.Success {
			failed++
		}
	}
	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Run History (%d runs, %d failed) | Use ↑↓ to navigate, → to view details, ← to go back, Ctrl+C to exit ", len(ordered), failed))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(ordered) {
			statsView.SetText(formatRunStats(ordered[index]))
			detailsView.SetText(formatRunDetails(ordered[index]))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
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
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func listItemText(index int, r domain.RunRecord) string {
	mark := "[green]✓"
	if !r.Success {
		mark = "[red]✗"
	}
	return fmt.Sprintf("%s [yellow]%d.[white] %s %s", mark, index+1, r.StartedAt.Format("2006-01-02 15:04"), r.Environment)
}

// formatRunStats formats the header line of a run using tview color tags
func formatRunStats(r domain.RunRecord) string {
	return fmt.Sprintf("[cyan]env:[white] [yellow]%s[white] [cyan]result:[white] %s[white]\n", r.Environment, statusTag(r))
}

// formatRunDetails formats a run for the details pane using tview color tags
func formatRunDetails(r domain.RunRecord) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[cyan]Run:[white]\t%s\n", r.ID)
	fmt.Fprintf(w, "[cyan]Started:[white]\t%s\n", r.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "[cyan]Duration:[white]\t%s\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "[cyan]Result:[white]\t%s[white]\n\n", statusTag(r))

	fmt.Fprintf(w, "[yellow]Files:[white]\n")
	if r.All {
		fmt.Fprintf(w, "  all\n")
	}
	for _, f := range r.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	fmt.Fprintf(w, "\n[yellow]Tag:[white] %s\n\n", tagsLabel(r.Tags))

	if r.Command != "" {
		fmt.Fprintf(w, "[yellow]Command:[white]\n%s\n", tview.Escape(r.Command))
	}

	w.Flush()
	return builder.String()
}

func statusTag(r domain.RunRecord) string {
	if r.Success {
		return "[green]" + r.Status()
	}
	return "[red]" + r.Status()
}
