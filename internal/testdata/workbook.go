// Package testdata reads and writes the Excel workbook that feeds data-driven tests.
package testdata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrSheetNotFound  = errors.New("sheet not found")
	ErrHeaderNotFound = errors.New("header row not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrRowNotFound    = errors.New("row not found")
	ErrTestNotFound   = errors.New("test name not found")
)

// Workbook is an Excel file on disk. Every call opens the file afresh so edits
// made by other tools between calls are seen.
type Workbook struct {
	path string
}

// Open returns a Workbook for path. The file is not read until first use.
func Open(path string) *Workbook {
	return &Workbook{path: path}
}

// Path returns the workbook location
func (w *Workbook) Path() string {
	return w.path
}

func (w *Workbook) withSheet(sheet string, fn func(f *excelize.File) error) error {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return fmt.Errorf("open workbook %s: %w", w.path, err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	return fn(f)
}

// Cell returns the formatted value at a 1-based column and row, or "" for an empty cell
func (w *Workbook) Cell(sheet string, col, row int) (string, error) {
	var value string
	err := w.withSheet(sheet, func(f *excelize.File) error {
		ref, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		value, err = f.GetCellValue(sheet, ref)
		return err
	})
	return value, err
}

// CellByColumnName returns the value in the column whose header matches column
// (trimmed, case-insensitive) at a 1-based row number
func (w *Workbook) CellByColumnName(sheet, column string, row int) (string, error) {
	var value string
	err := w.withSheet(sheet, func(f *excelize.File) error {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("%w in sheet %q", ErrHeaderNotFound, sheet)
		}

		col := headerIndex(rows[0], column)
		if col == -1 {
			return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
		}
		if row < 1 || row > len(rows) {
			return fmt.Errorf("%w: %d", ErrRowNotFound, row)
		}
		if cells := rows[row-1]; col < len(cells) {
			value = cells[col]
		}
		return nil
	})
	return value, err
}

// Records returns every data row keyed by the header row. Missing cells are "",
// blank rows are skipped.
func (w *Workbook) Records(sheet string) ([]map[string]string, error) {
	var records []map[string]string
	err := w.withSheet(sheet, func(f *excelize.File) error {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		header := rows[0]
		for _, cells := range rows[1:] {
			if isBlank(cells) {
				continue
			}
			record := make(map[string]string, len(header))
			for i, name := range header {
				if name == "" {
					continue
				}
				record[name] = ""
				if i < len(cells) {
					record[name] = cells[i]
				}
			}
			records = append(records, record)
		}
		return nil
	})
	return records, err
}

// ByTestName finds the row whose first cell equals testName (case-insensitive) and
// returns the remaining columns keyed by their trimmed header
func (w *Workbook) ByTestName(sheet, testName string) (map[string]string, error) {
	var data map[string]string
	err := w.withSheet(sheet, func(f *excelize.File) error {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("%w in sheet %q", ErrHeaderNotFound, sheet)
		}

		header := rows[0]
		for _, cells := range rows[1:] {
			if len(cells) == 0 || !strings.EqualFold(strings.TrimSpace(cells[0]), testName) {
				continue
			}
			data = make(map[string]string, len(header))
			for i := 1; i < len(header); i++ {
				name := strings.TrimSpace(header[i])
				if name == "" {
					continue
				}
				data[name] = ""
				if i < len(cells) {
					data[name] = strings.TrimSpace(cells[i])
				}
			}
			return nil
		}
		return fmt.Errorf("%w: %q in sheet %q", ErrTestNotFound, testName, sheet)
	})
	return data, err
}

// Write stores value at a 1-based row and column and saves the workbook
func (w *Workbook) Write(sheet string, row, col int, value any) error {
	return w.withSheet(sheet, func(f *excelize.File) error {
		ref, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, ref, value); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, ref, err)
		}
		if err := f.Save(); err != nil {
			return fmt.Errorf("save workbook %s: %w", w.path, err)
		}
		return nil
	})
}

func headerIndex(header []string, column string) int {
	want := strings.TrimSpace(column)
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), want) {
			return i
		}
	}
	return -1
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
