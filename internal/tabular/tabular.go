// Package tabular infers the schema of arbitrary bank/card statement exports
// and converts their rows into typed transaction candidates. Input rows are
// schema-free string maps produced by an external CSV/XLSX reader; header
// names may be in any locale.
package tabular

import (
	"fmt"
	"strings"
)

// Row is one statement line keyed by its raw header names. All values are
// textual before parsing, so a plain string map loses nothing.
type Row map[string]string

// Columns names the headers resolved for each logical field. Merchant may be
// empty; Date and Amount are always set on a successful detection.
type Columns struct {
	Date     string
	Merchant string
	Amount   string
}

// UnrecognizedFormatError reports that neither header-name matching nor
// data-pattern scoring could resolve both a date and an amount column. It
// exposes the raw header list so a manual-mapping step can retry with an
// explicit column triple.
type UnrecognizedFormatError struct {
	Headers []string
}

func (e *UnrecognizedFormatError) Error() string {
	return fmt.Sprintf("unrecognized tabular format: no date/amount columns among %v", e.Headers)
}

// Header synonym lists, in priority order. Korean entries cover the export
// formats of the major domestic card issuers and banking apps.
var (
	dateSynonyms = []string{
		"이용일시", "이용일", "이용일자", "거래일", "거래일시", "날짜", "일자", "일시",
		"date", "결제일", "승인일", "사용일", "거래일자", "승인일시", "매입일",
	}
	merchantSynonyms = []string{
		"가맹점", "가맹점명", "이용가맹점", "이용처", "적요", "merchant", "내용",
		"사용처", "상호", "상호명", "거래처", "비고", "메모", "이용 내역", "거래내용",
		"description",
	}
	amountSynonyms = []string{
		"이용금액", "국내이용금액", "결제금액", "거래금액", "금액", "amount", "결제",
		"이용금", "출금", "출금액", "승인금액", "지출금액", "사용금액", "결제 금액",
		"매출금액",
	}
	typeSynonyms = []string{
		"구분", "거래구분", "입출구분", "타입", "유형", "type",
	}
)

// matchHeader resolves one logical field against the header set: exact match
// first (synonym priority order), then substring containment (header contains
// synonym). Returns "" when nothing matches.
func matchHeader(headers []string, synonyms []string) string {
	for _, syn := range synonyms {
		for _, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), syn) {
				return h
			}
		}
	}
	for _, h := range headers {
		lower := strings.ToLower(h)
		for _, syn := range synonyms {
			if strings.Contains(lower, strings.ToLower(syn)) {
				return h
			}
		}
	}
	return ""
}
