package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/donflow/donflow/internal/tabular"
)

// loadStatement reads a CSV or XLSX export into header names and schema-free
// rows. Legacy Korean card exports often ship as EUC-KR/CP949 CSV; pass
// encoding "euc-kr" to decode them.
func loadStatement(path, encoding string) ([]string, []tabular.Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return loadXLSX(path)
	default:
		return loadCSV(path, encoding)
	}
}

func loadCSV(path, encoding string) ([]string, []tabular.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
	case "euc-kr", "cp949":
		r = transform.NewReader(f, korean.EUCKR.NewDecoder())
	default:
		return nil, nil, fmt.Errorf("unsupported encoding %q", encoding)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv: %w", err)
	}
	return tableToRows(records)
}

func loadXLSX(path string) ([]string, []tabular.Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("xlsx has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return tableToRows(records)
}

// tableToRows treats the first record as the header and zips every later
// record into a string map keyed by those headers.
func tableToRows(records [][]string) ([]string, []tabular.Row, error) {
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("statement is empty")
	}

	headers := make([]string, 0, len(records[0]))
	for _, h := range records[0] {
		headers = append(headers, strings.TrimSpace(h))
	}

	rows := make([]tabular.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(tabular.Row, len(headers))
		empty := true
		for i, h := range headers {
			if i >= len(rec) {
				break
			}
			row[h] = rec[i]
			if strings.TrimSpace(rec[i]) != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return headers, rows, nil
}

func readNotifications(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	return string(data), nil
}
