package transaction

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	"github.com/xuri/excelize/v2"
)

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

const exportSheet = "Transações"

var exportHeader = []string{"ID", "Data", "Tipo", "Categoria", "Descrição", "Valor"}

func (f ExportFormat) Valid() bool {
	return f == FormatCSV || f == FormatXLSX
}

func (f ExportFormat) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func exportRow(t *Transaction) []string {
	return []string{
		strconv.FormatInt(t.ID, 10),
		t.Date.Format(validation.DateLayout),
		t.Type.Label(),
		spreadsheetSafe(deref(t.CategoryName)),
		spreadsheetSafe(deref(t.Description)),
		t.Amount.StringFixed(2),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// spreadsheetSafe keeps user text from being evaluated as a formula when
// the export is opened in a spreadsheet.
func spreadsheetSafe(s string) string {
	if s != "" && strings.ContainsRune("=+-@", rune(s[0])) {
		return "'" + s
	}
	return s
}

// WriteCSV writes the transactions with a UTF-8 BOM so spreadsheet tools
// detect the encoding.
func WriteCSV(w io.Writer, transactions []*Transaction) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, t := range transactions {
		if err := writer.Write(exportRow(t)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteXLSX(w io.Writer, transactions []*Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return err
	}

	for i, h := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return err
		}
	}

	for i, t := range transactions {
		row := i + 2
		amount, _ := t.Amount.Float64()
		values := []interface{}{
			t.ID,
			t.Date.Format(validation.DateLayout),
			t.Type.Label(),
			deref(t.CategoryName),
			deref(t.Description),
			amount,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return err
			}
		}
	}

	for col, width := range map[string]float64{"A": 8, "B": 12, "C": 10, "D": 18, "E": 40, "F": 14} {
		if err := f.SetColWidth(exportSheet, col, col, width); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
