// Package notification extracts transaction candidates from pasted Korean
// card push notifications. Parsing is stateless per line: a batch is the
// concatenation of independent per-line results, and a line that fails to
// parse is dropped without affecting its siblings.
package notification

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parsed is one successfully extracted notification line.
type Parsed struct {
	SourceTag string
	Amount    int64 // positive magnitude, won
	Merchant  string
	Occurred  time.Time
	Raw       string
}

// TagOther marks lines with no recognized provider bracket. Such lines are
// still parsed; the tag alone never rejects a line.
const TagOther = "기타"

// providerMarkers maps bracketed provider markers to their source tags, in
// priority order.
var providerMarkers = []struct {
	marker string
	tag    string
}{
	{"[삼성카드]", "삼성"},
	{"[KB국민카드]", "KB"},
	{"[국민카드]", "KB"},
	{"[현대카드]", "현대"},
	{"[신한카드]", "신한"},
	{"[우리카드]", "우리"},
	{"[하나카드]", "하나"},
	{"[롯데카드]", "롯데"},
	{"[BC카드]", "BC"},
	{"[NH카드]", "NH"},
	{"[NH농협카드]", "NH"},
	{"[IBK카드]", "IBK"},
	{"[카카오뱅크]", "카카오"},
	{"[토스]", "토스"},
}

var (
	amountPattern = regexp.MustCompile(`([\d,]+)원`)
	// MM/DD HH:MM, MM-DD HH:MM or MM월DD일 HH:MM; notifications never carry
	// a century.
	datePattern    = regexp.MustCompile(`(\d{1,2})[/\-월](\d{1,2})일?\s+(\d{1,2}):(\d{2})`)
	bracketPattern = regexp.MustCompile(`\[.*?\]\s*`)
	// approval / installment-count / debit / overseas boilerplate.
	boilerplatePattern = regexp.MustCompile(`^(승인|일시불|할부\d*개월?|체크|해외)\s*`)
)

// Parser parses notification pastes. The clock is injectable so the
// future-date year rollback is testable.
type Parser struct {
	now func() time.Time
}

// NewParser returns a Parser using the system clock.
func NewParser() *Parser {
	return &Parser{now: time.Now}
}

// NewParserWithClock returns a Parser with a custom time source for tests.
func NewParserWithClock(now func() time.Time) *Parser {
	return &Parser{now: now}
}

// Parse splits the paste into lines and returns every line that yields a
// candidate. It never fails as a batch.
func (p *Parser) Parse(text string) []Parsed {
	results := make([]Parsed, 0)
	for _, line := range strings.Split(text, "\n") {
		if parsed, ok := p.parseLine(line); ok {
			results = append(results, parsed)
		}
	}
	return results
}

func (p *Parser) parseLine(line string) (Parsed, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Parsed{}, false
	}

	tag := TagOther
	for _, pm := range providerMarkers {
		if strings.Contains(trimmed, pm.marker) {
			tag = pm.tag
			break
		}
	}

	amountMatch := amountPattern.FindStringSubmatch(trimmed)
	if amountMatch == nil {
		return Parsed{}, false
	}
	amount, err := strconv.ParseInt(strings.ReplaceAll(amountMatch[1], ",", ""), 10, 64)
	if err != nil || amount <= 0 {
		return Parsed{}, false
	}

	now := p.now()
	occurred := now
	dateMatch := datePattern.FindStringSubmatch(trimmed)
	if dateMatch != nil {
		month, _ := strconv.Atoi(dateMatch[1])
		day, _ := strconv.Atoi(dateMatch[2])
		hour, _ := strconv.Atoi(dateMatch[3])
		minute, _ := strconv.Atoi(dateMatch[4])
		occurred = time.Date(now.Year(), time.Month(month), day, hour, minute, 0, 0, now.Location())
		// Notifications are historical: a date past the current instant only
		// means the omitted year is last year.
		if occurred.After(now) {
			occurred = occurred.AddDate(-1, 0, 0)
		}
	}

	remaining := trimmed
	if loc := bracketPattern.FindStringIndex(remaining); loc != nil {
		remaining = remaining[:loc[0]] + remaining[loc[1]:]
	}
	for {
		stripped := boilerplatePattern.ReplaceAllString(remaining, "")
		if stripped == remaining {
			break
		}
		remaining = stripped
	}
	remaining = strings.Replace(remaining, amountMatch[0], "", 1)
	if dateMatch != nil {
		remaining = strings.Replace(remaining, dateMatch[0], "", 1)
	}
	merchant := strings.TrimSpace(strings.Join(strings.Fields(remaining), " "))
	if merchant == "" {
		return Parsed{}, false
	}

	return Parsed{
		SourceTag: tag,
		Amount:    amount,
		Merchant:  merchant,
		Occurred:  occurred,
		Raw:       trimmed,
	}, true
}
