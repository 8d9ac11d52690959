// Package export renders query snapshots into xlsx workbooks. Rendering is
// pure formatting: the same snapshot always produces the same bytes.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// Column is one spreadsheet column with a header label and a fixed width.
type Column struct {
	Label string
	Width float64
}

// Sheet is one worksheet: a header row built from Columns followed by Rows in
// the order given. Callers own the ordering (newest-first by convention).
type Sheet struct {
	Name    string
	Columns []Column
	Rows    [][]interface{}
}

// WriteWorkbook renders the sheets into a single xlsx document.
func WriteWorkbook(sheets []Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return nil, err
			}
		}

		header := make([]interface{}, len(sheet.Columns))
		for col, column := range sheet.Columns {
			header[col] = column.Label

			name, err := excelize.ColumnNumberToName(col + 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetColWidth(sheet.Name, name, name, column.Width); err != nil {
				return nil, err
			}
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return nil, err
		}

		for row, values := range sheet.Rows {
			cell := fmt.Sprintf("A%d", row+2)
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename builds the download name for an export: <prefix>_<date>.xlsx.
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, now.Format("2006-01-02"))
}
