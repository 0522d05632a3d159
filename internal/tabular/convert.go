package tabular

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/donflow/donflow/internal/model"
)

// Record is one converted statement row, not yet categorized.
type Record struct {
	Date     string // YYYY-MM-DD
	Time     string // HH:MM[:SS] when the cell carried one, else empty
	Merchant string
	Amount   int64 // positive magnitude, won
	Type     model.TransactionType
}

var (
	timeShape      = regexp.MustCompile(`\b\d{1,2}:\d{2}(:\d{2})?\b`)
	currencyRunes  = "₩$€¥"
	currencyWords  = []string{"원", "won", "krw", "usd", "eur"}
	digitsOnly     = regexp.MustCompile(`^\d+$`)
)

// Convert turns rows into records using the detected (or manually mapped)
// columns. Rows whose amount is zero/non-numeric or whose date cell is empty
// or unparseable are dropped; the second return value counts the drops.
func Convert(rows []Row, cols Columns) ([]Record, int) {
	records := make([]Record, 0, len(rows))
	skipped := 0

	for _, row := range rows {
		dateCell := strings.TrimSpace(row[cols.Date])
		if dateCell == "" {
			skipped++
			continue
		}

		amount, explicitPlus, ok := parseAmount(row[cols.Amount])
		if !ok || amount == 0 {
			skipped++
			continue
		}

		date, timePart, ok := normalizeDate(dateCell)
		if !ok {
			skipped++
			continue
		}

		merchant := ""
		if cols.Merchant != "" {
			merchant = strings.TrimSpace(row[cols.Merchant])
		}

		records = append(records, Record{
			Date:     date,
			Time:     timePart,
			Merchant: merchant,
			Amount:   amount,
			Type:     direction(row, explicitPlus),
		})
	}

	return records, skipped
}

// parseAmount strips currency symbols, thousands separators, trailing
// currency words and accounting-style parentheses, then takes the absolute
// value. The second result reports an explicit leading plus sign, used for
// sign inference when no type column exists.
func parseAmount(cell string) (int64, bool, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false, false
	}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
	}
	explicitPlus := strings.HasPrefix(s, "+")

	lower := strings.ToLower(s)
	for _, word := range currencyWords {
		lower = strings.TrimSuffix(strings.TrimSpace(lower), word)
	}
	s = lower

	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(currencyRunes, r) || r == ',' || r == ' ' || r == '+' {
			continue
		}
		b.WriteRune(r)
	}
	s = strings.TrimSpace(b.String())
	if s == "" {
		return 0, false, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, false
	}
	return int64(math.Abs(f)), explicitPlus, true
}

// normalizeDate reduces a localized date cell to zero-padded YYYY-MM-DD plus
// an optional time part. Two-digit years expand to the 20xx century.
func normalizeDate(cell string) (string, string, bool) {
	timePart := ""
	if loc := timeShape.FindString(cell); loc != "" {
		timePart = loc
		cell = strings.Replace(cell, loc, "", 1)
	}

	cleaned := strings.NewReplacer("년", "-", "월", "-", "/", "-", ".", "-").Replace(cell)
	cleaned = strings.ReplaceAll(cleaned, "일", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	if digitsOnly.MatchString(cleaned) {
		switch len(cleaned) {
		case 8: // YYYYMMDD
			return cleaned[:4] + "-" + cleaned[4:6] + "-" + cleaned[6:], timePart, true
		case 6: // YYMMDD
			return "20" + cleaned[:2] + "-" + cleaned[2:4] + "-" + cleaned[4:], timePart, true
		}
		return "", "", false
	}

	parts := make([]string, 0, 3)
	for _, p := range strings.Split(cleaned, "-") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 3 {
		return "", "", false
	}

	year := parts[0]
	if len(year) == 2 {
		year = "20" + year
	}
	return year + "-" + pad2(parts[1]) + "-" + pad2(parts[2]), timePart, true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// direction resolves the transaction type. An explicit tag column wins over
// sign inference; without either, imported card rows are expenses.
func direction(row Row, explicitPlus bool) model.TransactionType {
	for _, syn := range typeSynonyms {
		for key, val := range row {
			if !strings.EqualFold(strings.TrimSpace(key), syn) {
				continue
			}
			switch {
			case containsAny(val, "입금", "수입", "income"):
				return model.TypeIncome
			case containsAny(val, "이체", "transfer"):
				return model.TypeTransfer
			case containsAny(val, "출금", "지출", "expense"):
				return model.TypeExpense
			}
		}
	}
	if explicitPlus {
		return model.TypeIncome
	}
	return model.TypeExpense
}

func containsAny(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
