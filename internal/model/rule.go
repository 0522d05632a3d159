package model

// MerchantRule is a learned merchant→category mapping. The pattern is the
// trimmed merchant name as observed on a statement. For payment-gateway
// merchants the rule additionally carries an amount fingerprint: the same
// gateway name at materially different typical totals represents different
// real-world merchants, so one (pattern, amount band) pair maps to at most
// one rule.
type MerchantRule struct {
	ID         string `json:"id"`
	Pattern    string `json:"merchant_pattern"`
	CategoryID int64  `json:"category_id"`
	UseCount   int    `json:"use_count"`
	Amount     int64  `json:"amount,omitempty"` // amount fingerprint; 0 means none
	UserLabel  string `json:"user_label,omitempty"`
}
