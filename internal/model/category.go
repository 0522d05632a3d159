package model

// Category is owned by the surrounding budgeting app; this module only
// references categories by their stable identifiers and never deletes them.
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	Color        string `json:"color"`
	IsIncome     bool   `json:"is_income"`
	IsDefault    bool   `json:"is_default"`
	DisplayOrder int    `json:"display_order"`
	GroupName    string `json:"group_name,omitempty"`
}
