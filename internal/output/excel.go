// internal/output/excel.go
package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Excel cells truncate beyond this many characters
const excelMaxCellLength = 32767

// ExcelWriter writes records to an .xlsx workbook with a header row
type ExcelWriter struct {
	filename  string
	sheetName string
	file      *excelize.File
}

// NewExcelWriter creates an Excel writer
func NewExcelWriter(filename, sheetName string) (*ExcelWriter, error) {
	if filename == "" {
		return nil, fmt.Errorf("Excel filename is required")
	}
	if sheetName == "" {
		sheetName = "Results"
	}

	file := excelize.NewFile()
	defaultSheet := file.GetSheetName(0)
	if defaultSheet != sheetName {
		if err := file.SetSheetName(defaultSheet, sheetName); err != nil {
			return nil, fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	return &ExcelWriter{
		filename:  filename,
		sheetName: sheetName,
		file:      file,
	}, nil
}

// Write writes the records below a header row
func (w *ExcelWriter) Write(records []map[string]interface{}) error {
	if len(records) == 0 {
		return nil
	}

	columns := collectColumns(records)

	header := make([]interface{}, len(columns))
	for i, column := range columns {
		header[i] = column
	}
	if err := w.writeRow(1, header); err != nil {
		return err
	}

	for rowIdx, record := range records {
		row := make([]interface{}, len(columns))
		for i, column := range columns {
			value := stringify(record[column])
			if len(value) > excelMaxCellLength {
				value = value[:excelMaxCellLength]
			}
			row[i] = value
		}
		if err := w.writeRow(rowIdx+2, row); err != nil {
			return err
		}
	}

	return nil
}

func (w *ExcelWriter) writeRow(row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := w.file.SetSheetRow(w.sheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// Close saves the workbook and releases it
func (w *ExcelWriter) Close() error {
	if w.file == nil {
		return nil
	}
	saveErr := w.file.SaveAs(w.filename)
	closeErr := w.file.Close()
	w.file = nil
	if saveErr != nil {
		return fmt.Errorf("failed to save workbook: %w", saveErr)
	}
	return closeErr
}
