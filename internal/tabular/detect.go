package tabular

import "regexp"

const (
	// sampleSize is how many data rows the pattern-scoring fallback inspects.
	sampleSize = 5
	// scoreThreshold is the minimum match fraction to assign a column.
	scoreThreshold = 0.8
)

var (
	// slash/dot/dash delimited with 2-or-4-digit year, optional trailing
	// time, or a contiguous 8-digit date.
	dateShape = regexp.MustCompile(`^(\d{1,4}[./-]\d{1,2}[./-]\d{1,4}(\s+\d{1,2}:\d{2}(:\d{2})?)?|\d{8})$`)
	// signed or currency-affixed numerics, plus accounting-style negatives.
	amountShape = regexp.MustCompile(`(?i)^([-+]?[₩$€¥]?\d{1,3}(,\d{3})*(\.\d+)?\s*(원|won|krw|usd|eur)?|[-+]?[₩$€¥]?\d+(\.\d+)?\s*(원|won|krw|usd|eur)?|\(\d{1,3}(,\d{3})*(\.\d+)?\)|\(\d+(\.\d+)?\))$`)
	letterShape = regexp.MustCompile(`\p{L}`)
)

// DetectColumns resolves which headers hold the date, merchant and amount
// fields. Stage 1 matches header names against the synonym lists; if that
// fails to resolve both date and amount, or the resolved columns convert
// zero rows, stage 2 scores the first few data rows by value shape under the
// same zero-usable-rows condition. When both stages fail it returns
// *UnrecognizedFormatError carrying the raw headers.
func DetectColumns(headers []string, rows []Row) (Columns, error) {
	cols := Columns{
		Date:     matchHeader(headers, dateSynonyms),
		Merchant: matchHeader(headers, merchantSynonyms),
		Amount:   matchHeader(headers, amountSynonyms),
	}
	if cols.Date != "" && cols.Amount != "" && yieldsRows(rows, cols) {
		return cols, nil
	}

	cols = scoreColumns(headers, rows)
	if cols.Date != "" && cols.Amount != "" && yieldsRows(rows, cols) {
		return cols, nil
	}

	return Columns{}, &UnrecognizedFormatError{Headers: headers}
}

// yieldsRows reports whether the candidate columns convert at least one row.
// A detection that drops every row is a failed detection, not an empty
// success; with no data rows at all there is nothing to disprove.
func yieldsRows(rows []Row, cols Columns) bool {
	records, skipped := Convert(rows, cols)
	return len(records) > 0 || skipped == 0
}

// scoreColumns samples the first few rows and assigns each column to the
// first field whose match fraction clears the threshold. A column serves at
// most one field; fields fill in date, amount, merchant order.
func scoreColumns(headers []string, rows []Row) Columns {
	if len(rows) > sampleSize {
		rows = rows[:sampleSize]
	}

	var cols Columns
	for _, h := range headers {
		var total, dates, amounts, merchants int
		for _, row := range rows {
			cell := row[h]
			if cell == "" {
				continue
			}
			total++
			switch {
			case dateShape.MatchString(cell):
				dates++
			case amountShape.MatchString(cell):
				amounts++
			case letterShape.MatchString(cell):
				merchants++
			}
		}
		if total == 0 {
			continue
		}
		switch {
		case cols.Date == "" && fraction(dates, total) >= scoreThreshold:
			cols.Date = h
		case cols.Amount == "" && fraction(amounts, total) >= scoreThreshold:
			cols.Amount = h
		case cols.Merchant == "" && fraction(merchants, total) >= scoreThreshold:
			cols.Merchant = h
		}
	}
	return cols
}

func fraction(n, total int) float64 {
	return float64(n) / float64(total)
}
