// Package classify resolves merchant names (optionally with a transaction
// amount) to categories through a strict priority chain: exact learned rule,
// amount-banded aggregator rule, partial learned rule, built-in keyword
// table, then the uncategorized fallback. The first stage that matches wins;
// there is no cross-stage re-ranking.
package classify

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/donflow/donflow/internal/model"
)

// FallbackCategory is returned when no stage matches.
const FallbackCategory = "기타"

// Amount band for aggregator merchants: a rule matches when the current
// amount is within ±20% of the rule's recorded amount.
const (
	bandLow  = 0.8
	bandHigh = 1.2
)

// Stage confidences. These reflect which resolution stage matched, not a
// probabilistic estimate.
const (
	confidenceExact   = 1.0
	confidenceBand    = 0.95
	confidencePartial = 0.95
	confidenceKeyword = 0.9
)

// Result is the outcome of one classification. CategoryID is zero when the
// named category could not be resolved to a stored identifier.
type Result struct {
	CategoryName string
	CategoryID   int64
	Confidence   float64
	UserLabel    string
}

// RuleStore is the persistence surface the classifier needs. Rules sharing a
// pattern form one group so amount-band scans stay small; iteration order
// within a group and across AllRules is stable between calls.
type RuleStore interface {
	RulesByPattern(pattern string) ([]*model.MerchantRule, error)
	AllRules() ([]*model.MerchantRule, error)
	PutRule(rule *model.MerchantRule) error
}

// Categories resolves externally owned categories. Lookups return nil
// without error when no such category exists.
type Categories interface {
	CategoryByID(id int64) (*model.Category, error)
	CategoryByName(name string) (*model.Category, error)
}

// Classifier resolves merchants against learned rules and the built-in
// keyword table. It is deterministic for a fixed rule-store state.
type Classifier struct {
	rules      RuleStore
	categories Categories
}

// New creates a Classifier over the given stores.
func New(rules RuleStore, categories Categories) *Classifier {
	return &Classifier{rules: rules, categories: categories}
}

// Classify resolves a merchant name to a category. Pass amount 0 when the
// amount is unknown; the amount-band stage then never matches. Absence of a
// confident match is not an error: the fallback result has confidence 0.
// Only store I/O can fail.
func (c *Classifier) Classify(merchant string, amount int64) (Result, error) {
	pattern := strings.TrimSpace(merchant)
	if pattern == "" {
		return c.fallback()
	}

	isAgg := IsAggregator(pattern)

	// Stage 1: exact learned rule, non-aggregator merchants only. Aggregator
	// names carry no signal without an amount band.
	if !isAgg {
		rules, err := c.rules.RulesByPattern(pattern)
		if err != nil {
			return Result{}, fmt.Errorf("looking up rules for %q: %w", pattern, err)
		}
		for _, rule := range rules {
			cat, err := c.categories.CategoryByID(rule.CategoryID)
			if err != nil {
				return Result{}, fmt.Errorf("resolving category %d: %w", rule.CategoryID, err)
			}
			if cat == nil {
				continue
			}
			c.bumpUseCount(rule)
			return Result{CategoryName: cat.Name, CategoryID: cat.ID, Confidence: confidenceExact, UserLabel: rule.UserLabel}, nil
		}
	}

	// Stage 2: amount-banded learned rule for aggregator merchants.
	if isAgg && amount > 0 {
		rules, err := c.rules.RulesByPattern(pattern)
		if err != nil {
			return Result{}, fmt.Errorf("looking up rules for %q: %w", pattern, err)
		}
		for _, rule := range rules {
			if !withinBand(amount, rule.Amount) {
				continue
			}
			cat, err := c.categories.CategoryByID(rule.CategoryID)
			if err != nil {
				return Result{}, fmt.Errorf("resolving category %d: %w", rule.CategoryID, err)
			}
			if cat == nil {
				continue
			}
			c.bumpUseCount(rule)
			return Result{CategoryName: cat.Name, CategoryID: cat.ID, Confidence: confidenceBand, UserLabel: rule.UserLabel}, nil
		}
	}

	// Stage 3: partial match against non-aggregator rule patterns,
	// containment in either direction.
	all, err := c.rules.AllRules()
	if err != nil {
		return Result{}, fmt.Errorf("listing rules: %w", err)
	}
	for _, rule := range all {
		if IsAggregator(rule.Pattern) {
			continue
		}
		if !strings.Contains(pattern, rule.Pattern) && !strings.Contains(rule.Pattern, pattern) {
			continue
		}
		cat, err := c.categories.CategoryByID(rule.CategoryID)
		if err != nil {
			return Result{}, fmt.Errorf("resolving category %d: %w", rule.CategoryID, err)
		}
		if cat == nil {
			continue
		}
		return Result{CategoryName: cat.Name, CategoryID: cat.ID, Confidence: confidencePartial, UserLabel: rule.UserLabel}, nil
	}

	// Stage 4: built-in keyword table.
	for _, kw := range keywordTable {
		if !strings.Contains(pattern, kw.Keyword) && !strings.Contains(kw.Keyword, pattern) {
			continue
		}
		cat, err := c.categories.CategoryByName(kw.Category)
		if err != nil {
			return Result{}, fmt.Errorf("resolving category %q: %w", kw.Category, err)
		}
		var id int64
		if cat != nil {
			id = cat.ID
		}
		return Result{CategoryName: kw.Category, CategoryID: id, Confidence: confidenceKeyword}, nil
	}

	return c.fallback()
}

// LearnOptions carries the optional parts of a learn call. Amount is the
// transaction amount for aggregator disambiguation; Label is a user-supplied
// display name for the rule.
type LearnOptions struct {
	Amount int64
	Label  string
}

// Learn records a user-confirmed merchant→category mapping. For aggregator
// merchants with an amount, an existing rule in the same ±20% band is updated
// in place; otherwise the rule is upserted by exact pattern. Rules are never
// deleted here.
func (c *Classifier) Learn(merchant string, categoryID int64, opt LearnOptions) error {
	pattern := strings.TrimSpace(merchant)
	if pattern == "" {
		return fmt.Errorf("learning rule: merchant name is empty")
	}

	rules, err := c.rules.RulesByPattern(pattern)
	if err != nil {
		return fmt.Errorf("looking up rules for %q: %w", pattern, err)
	}

	if opt.Amount > 0 && IsAggregator(pattern) {
		for _, rule := range rules {
			if !withinBand(opt.Amount, rule.Amount) {
				continue
			}
			rule.CategoryID = categoryID
			rule.UseCount++
			rule.Amount = opt.Amount
			if opt.Label != "" {
				rule.UserLabel = opt.Label
			}
			return c.rules.PutRule(rule)
		}
		return c.rules.PutRule(&model.MerchantRule{
			Pattern:    pattern,
			CategoryID: categoryID,
			UseCount:   1,
			Amount:     opt.Amount,
			UserLabel:  opt.Label,
		})
	}

	if len(rules) > 0 {
		rule := rules[0]
		rule.CategoryID = categoryID
		rule.UseCount++
		if opt.Label != "" {
			rule.UserLabel = opt.Label
		}
		return c.rules.PutRule(rule)
	}
	return c.rules.PutRule(&model.MerchantRule{
		Pattern:    pattern,
		CategoryID: categoryID,
		UseCount:   1,
		UserLabel:  opt.Label,
	})
}

func (c *Classifier) fallback() (Result, error) {
	cat, err := c.categories.CategoryByName(FallbackCategory)
	if err != nil {
		return Result{}, fmt.Errorf("resolving fallback category: %w", err)
	}
	var id int64
	if cat != nil {
		id = cat.ID
	}
	return Result{CategoryName: FallbackCategory, CategoryID: id, Confidence: 0}, nil
}

// bumpUseCount records a resolution hit on a learned rule. Bookkeeping only:
// useCount is never consulted during resolution, and a failed bump must not
// break classification.
func (c *Classifier) bumpUseCount(rule *model.MerchantRule) {
	rule.UseCount++
	if err := c.rules.PutRule(rule); err != nil {
		slog.Warn("failed to update rule use count", "pattern", rule.Pattern, "error", err)
	}
}

func withinBand(amount, ruleAmount int64) bool {
	if ruleAmount == 0 {
		return false
	}
	ratio := float64(amount) / float64(ruleAmount)
	return ratio >= bandLow && ratio <= bandHigh
}
