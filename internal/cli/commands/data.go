package commands

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pws/internal/config"
	"pws/internal/testdata"
)

// DataCommand prints rows of the Excel test data workbook
type DataCommand struct {
	config *config.Config
}

// NewDataCommand creates a new DataCommand
func NewDataCommand(cfg *config.Config) *DataCommand {
	return &DataCommand{config: cfg}
}

// Execute runs the command
func (dc *DataCommand) Execute(cmd *cobra.Command, args []string) error {
	wb := testdata.Open(dc.config.GetTestDataPath())
	sheet := dc.config.Flags.Sheet
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		row, err := wb.ByTestName(sheet, args[0])
		if err != nil {
			return err
		}
		color.New(color.FgCyan).Fprintf(out, "%s\n", args[0])
		printRow(cmd, row)
		return nil
	}

	records, err := wb.Records(sheet)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		color.New(color.FgYellow).Fprintf(out, "No rows in sheet %s\n", sheet)
		return nil
	}
	for i, record := range records {
		color.New(color.FgCyan).Fprintf(out, "Row %d\n", i+2)
		printRow(cmd, record)
	}
	return nil
}

func printRow(cmd *cobra.Command, row map[string]string) {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", k, row[k])
	}
}
