package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"pws/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to color.Output
func NewFormatter() *Formatter {
	return &Formatter{out: color.Output}
}

// NewFormatterTo creates a Formatter writing to w
func NewFormatterTo(w io.Writer) *Formatter {
	return &Formatter{out: w}
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// PrintFiles prints the numbered file menu shown before the files prompt
func (f *Formatter) PrintFiles(files []domain.TestFile) {
	cyan.Fprintln(f.out, "\n📄 Available test files:")
	for i, file := range files {
		fmt.Fprintf(f.out, "  %s %s\n", yellow.Sprintf("%d.", i+1), file)
	}
}

// PrintTags prints the detected tags as a numbered list; nothing when there are none
func (f *Formatter) PrintTags(tags []string) {
	if len(tags) == 0 {
		return
	}
	cyan.Fprintln(f.out, "\n📂 Detected tags:")
	for i, tag := range tags {
		fmt.Fprintf(f.out, "  %s %s\n", yellow.Sprintf("%d.", i+1), green.Sprint(tag))
	}
}

// PrintRunSummary prints the statistics box for a finished run
func (f *Formatter) PrintRunSummary(run domain.RunRecord) {
	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                    Test Execution Summary                     ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	row := func(label string, c *color.Color, value string) {
		fmt.Fprintf(f.out, "│ %-31s │ ", label)
		c.Fprintf(f.out, "%-27s", value)
		fmt.Fprintln(f.out, " │")
	}
	sep := func() {
		fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
	}

	verdict := green
	if !run.Success {
		verdict = red
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	row("Environment", white, run.Environment)
	sep()
	row("Files", white, filesLabel(run))
	sep()
	row("Tag", white, tagsLabel(run.Tags))
	sep()
	row("Result", verdict, run.Status())
	sep()
	row("Duration", white, fmt.Sprintf("%.2fs", run.Duration.Seconds()))
	sep()
	row("Started", white, run.StartedAt.Format(time.RFC3339))
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if run.Success {
		green.Fprintln(f.out, "✓ All tests passed!")
	} else {
		red.Fprintln(f.out, "✗ Test run failed")
	}
}

// PrintTestList prints the spec files as a tree. titles, when non-nil, adds each
// file's test cases as children.
func (f *Formatter) PrintTestList(files []domain.TestFile, titles map[domain.TestFile][]string) {
	green.Fprintf(f.out, "Found %d test file(s):\n\n", len(files))

	for i, file := range files {
		isLastFile := i == len(files)-1
		if isLastFile {
			cyan.Fprintf(f.out, "└── %s\n", file)
		} else {
			cyan.Fprintf(f.out, "├── %s\n", file)
		}
		if titles == nil {
			continue
		}

		branch := "│   "
		if isLastFile {
			branch = "    "
		}
		cases := titles[file]
		if len(cases) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", branch, red.Sprint("(no test cases found)"))
		}
		for j, title := range cases {
			connector := "├── "
			if j == len(cases)-1 {
				connector = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s\n", branch, connector, yellow.Sprint(title))
		}
		if !isLastFile {
			fmt.Fprintln(f.out)
		}
	}
}

// PrintHistory prints past runs as a table, newest last
func (f *Formatter) PrintHistory(records []domain.RunRecord) {
	if len(records) == 0 {
		yellow.Fprintln(f.out, "No runs recorded yet.")
		return
	}

	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSTARTED\tENV\tFILES\tTAG\tRESULT\tDURATION")
	for i, r := range records {
		status := green.Sprint(r.Status())
		if !r.Success {
			status = red.Sprint(r.Status())
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Environment,
			filesLabel(r),
			tagsLabel(r.Tags),
			status,
			r.Duration.Round(time.Millisecond),
		)
	}
	w.Flush()
}

func filesLabel(r domain.RunRecord) string {
	if r.All {
		return "all"
	}
	return strings.Join(r.Files, ", ")
}

func tagsLabel(tags []string) string {
	if len(tags) == 0 {
		return "none"
	}
	return strings.Join(tags, ", ")
}
