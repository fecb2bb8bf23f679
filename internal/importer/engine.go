package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// ErrUnreadableFile rejects a whole upload; row-level problems never do.
var ErrUnreadableFile = errors.New("não foi possível processar o arquivo")

// Row is one spreadsheet line as header -> raw value.
type Row map[string]any

// ImportResult is the outcome of mapping a parsed spreadsheet.
// Success is true iff Errors is empty; ValidRows == len(Data).
type ImportResult struct {
	Success   bool     `json:"success"`
	Data      []Row    `json:"data"`
	Errors    []string `json:"errors"`
	TotalRows int      `json:"totalRows"`
	ValidRows int      `json:"validRows"`
}

// ParseFile reads a spreadsheet upload into header->value rows. The format
// is picked by extension: .xlsx/.xlsm via excelize, .csv via encoding/csv
// (UTF-8 BOM tolerated). Malformed files fail with ErrUnreadableFile.
func ParseFile(filename string, r io.Reader) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return parseXLSX(r)
	case ".csv":
		return parseCSV(r)
	default:
		return nil, ErrUnreadableFile
	}
}

func parseXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		log.Warn().Err(err).Msg("rejected unreadable xlsx upload")
		return nil, ErrUnreadableFile
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrUnreadableFile
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		log.Warn().Err(err).Msg("rejected unreadable xlsx sheet")
		return nil, ErrUnreadableFile
	}
	return cellsToRows(cells), nil
}

func parseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var cells [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Msg("rejected unreadable csv upload")
			return nil, ErrUnreadableFile
		}
		cells = append(cells, record)
	}
	return cellsToRows(cells), nil
}

// skipBOM drops a leading UTF-8 byte order mark, common in CSVs saved by
// Excel on Windows.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if peeked, err := br.Peek(3); err == nil && peeked[0] == 0xEF && peeked[1] == 0xBB && peeked[2] == 0xBF {
		br.Discard(3)
	}
	return br
}

func cellsToRows(cells [][]string) []Row {
	if len(cells) == 0 {
		return nil
	}
	headers := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []Row
	for _, record := range cells[1:] {
		row := make(Row, len(headers))
		empty := true
		for i, header := range headers {
			if header == "" {
				continue
			}
			var value string
			if i < len(record) {
				value = record[i]
			}
			if strings.TrimSpace(value) != "" {
				empty = false
			}
			row[header] = value
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}

// ExtractHeaders parses only the header row of an upload, for the import
// preview screen.
func ExtractHeaders(filename string, r io.Reader) ([]string, error) {
	rows, err := rawHeaderRow(filename, r)
	if err != nil {
		return nil, err
	}
	headers := make([]string, 0, len(rows))
	for _, h := range rows {
		if trimmed := strings.TrimSpace(h); trimmed != "" {
			headers = append(headers, trimmed)
		}
	}
	return headers, nil
}

func rawHeaderRow(filename string, r io.Reader) ([]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, ErrUnreadableFile
		}
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrUnreadableFile
		}
		cells, err := f.GetRows(sheets[0])
		if err != nil || len(cells) == 0 {
			return nil, ErrUnreadableFile
		}
		return cells[0], nil
	case ".csv":
		reader := csv.NewReader(skipBOM(r))
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1
		record, err := reader.Read()
		if err != nil {
			return nil, ErrUnreadableFile
		}
		return record, nil
	default:
		return nil, ErrUnreadableFile
	}
}

// MapRows resolves each mapping against each row (exact header match first,
// then normalized match) and applies the transforms. Rows with a missing
// required value, or whose transform panics, are reported as one error line
// each and dropped; the batch itself never aborts.
func MapRows(rows []Row, mappings []ColumnMapping) ImportResult {
	result := ImportResult{
		Data:      make([]Row, 0, len(rows)),
		Errors:    []string{},
		TotalRows: len(rows),
	}

	for i, row := range rows {
		lineNo := i + 2 // spreadsheet line, after the header row
		normalized := normalizedKeys(row)

		mapped := make(Row, len(mappings))
		var rowErrors []string

		for _, m := range mappings {
			raw, found := resolveCell(row, normalized, m.SourceHeader)
			if !found || isEmptyCell(raw) {
				// Aliases must not clobber a value another spelling
				// already resolved.
				if _, ok := mapped[m.TargetField]; !ok {
					mapped[m.TargetField] = nil
				}
				continue
			}

			value, err := applyTransform(m.Transform, raw)
			if err != nil {
				rowErrors = append(rowErrors, fmt.Sprintf("Linha %d: Valor inválido no campo %q", lineNo, m.SourceHeader))
				continue
			}
			if existing, ok := mapped[m.TargetField]; ok && !isEmptyCell(existing) {
				continue
			}
			mapped[m.TargetField] = value
		}

		// Required-ness is checked once per target field, after every
		// header alias has had its chance to supply the value.
		seenRequired := make(map[string]bool)
		for _, m := range mappings {
			if !m.Required || seenRequired[m.TargetField] {
				continue
			}
			seenRequired[m.TargetField] = true
			if isEmptyCell(mapped[m.TargetField]) {
				rowErrors = append(rowErrors, fmt.Sprintf("Linha %d: Campo %q é obrigatório", lineNo, m.SourceHeader))
			}
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}
		result.Data = append(result.Data, mapped)
	}

	result.ValidRows = len(result.Data)
	result.Success = len(result.Errors) == 0
	return result
}

// applyTransform runs a transform with panic isolation: a buggy transform
// costs one row, not the whole import.
func applyTransform(fn TransformFunc, raw any) (value any, err error) {
	if fn == nil {
		return raw, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transform panic: %v", r)
		}
	}()
	return fn(raw), nil
}

func normalizedKeys(row Row) map[string]any {
	out := make(map[string]any, len(row))
	for header, value := range row {
		out[NormalizeHeader(header)] = value
	}
	return out
}

func resolveCell(row Row, normalized map[string]any, header string) (any, bool) {
	if v, ok := row[header]; ok {
		return v, true
	}
	v, ok := normalized[NormalizeHeader(header)]
	return v, ok
}

func isEmptyCell(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// BuildTemplate generates an empty spreadsheet carrying only the given
// headers, for users to fill in and re-upload.
func BuildTemplate(headers []string) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return nil, err
	}
	for i := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		_ = f.SetColWidth(sheet, col, col, 22)
	}
	return f, nil
}
