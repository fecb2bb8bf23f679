// Package export renders in-memory rows as downloadable CSV, XLSX or PDF
// files, named per module.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

// Column pairs a row key with its Portuguese header label, in output order.
type Column struct {
	Key   string
	Label string
}

// Filename builds the per-module download name, e.g. "contratos-2026-08-31.csv".
func Filename(module, ext string) string {
	return fmt.Sprintf("%s-%s.%s", module, time.Now().Format("2006-01-02"), ext)
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		if t {
			return "Sim"
		}
		return "Não"
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(t)
	}
}

// WriteCSV streams rows as semicolon-separated CSV with a UTF-8 BOM, the
// dialect Excel pt-BR opens correctly by default.
func WriteCSV(w io.Writer, columns []Column, rows []map[string]any) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Label
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, c := range columns {
			record[i] = cellString(row[c.Key])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX renders rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, columns []Column, rows []map[string]any) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c.Label
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for rowIdx, row := range rows {
		cells := make([]any, len(columns))
		for i, c := range columns {
			cells[i] = row[c.Key]
		}
		addr, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return err
		}
	}

	for i := range columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		_ = f.SetColWidth(sheet, col, col, 20)
	}
	return f.Write(w)
}

// WritePDF renders rows as a landscape table, title on top.
func WritePDF(w io.Writer, title string, columns []Column, rows []map[string]any) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(columns))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range columns {
		pdf.CellFormat(colWidth, 7, c.Label, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range rows {
		for _, c := range columns {
			text := cellString(row[c.Key])
			if len(text) > 40 {
				text = text[:37] + "..."
			}
			pdf.CellFormat(colWidth, 6, text, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
