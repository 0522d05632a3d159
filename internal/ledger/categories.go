package ledger

import "github.com/donflow/donflow/internal/model"

// DefaultCategories is the category set the surrounding budgeting app seeds
// on first run. IDs are assigned by the store and stay stable afterwards;
// this module never creates or deletes categories beyond this bootstrap.
func DefaultCategories() []*model.Category {
	return []*model.Category{
		{Name: "식비", Icon: "🍚", Color: "#EF4444", IsDefault: true, DisplayOrder: 1, GroupName: "생활비"},
		{Name: "카페", Icon: "☕", Color: "#F97316", IsDefault: true, DisplayOrder: 2, GroupName: "생활비"},
		{Name: "교통", Icon: "🚌", Color: "#EAB308", IsDefault: true, DisplayOrder: 3, GroupName: "고정비"},
		{Name: "쇼핑", Icon: "🛒", Color: "#84CC16", IsDefault: true, DisplayOrder: 4, GroupName: "자유지출"},
		{Name: "주거", Icon: "🏠", Color: "#22C55E", IsDefault: true, DisplayOrder: 5, GroupName: "고정비"},
		{Name: "통신", Icon: "📱", Color: "#14B8A6", IsDefault: true, DisplayOrder: 6, GroupName: "고정비"},
		{Name: "구독", Icon: "🔄", Color: "#06B6D4", IsDefault: true, DisplayOrder: 7, GroupName: "고정비"},
		{Name: "의료", Icon: "🏥", Color: "#3B82F6", IsDefault: true, DisplayOrder: 8, GroupName: "생활비"},
		{Name: "교육", Icon: "📚", Color: "#6366F1", IsDefault: true, DisplayOrder: 9, GroupName: "생활비"},
		{Name: "데이트", Icon: "💕", Color: "#EC4899", IsDefault: true, DisplayOrder: 10, GroupName: "자유지출"},
		{Name: "경조사", Icon: "🎁", Color: "#F43F5E", IsDefault: true, DisplayOrder: 11, GroupName: "자유지출"},
		{Name: "여행", Icon: "✈️", Color: "#8B5CF6", IsDefault: true, DisplayOrder: 12, GroupName: "자유지출"},
		{Name: "보험", Icon: "🛡️", Color: "#64748B", IsDefault: true, DisplayOrder: 13, GroupName: "고정비"},
		{Name: "저축", Icon: "🏦", Color: "#0EA5E9", IsDefault: true, DisplayOrder: 14, GroupName: "저축/투자"},
		{Name: "급여", Icon: "💰", Color: "#10B981", IsIncome: true, IsDefault: true, DisplayOrder: 15, GroupName: "수입"},
		{Name: "기타", Icon: "📌", Color: "#6B7280", IsDefault: true, DisplayOrder: 16, GroupName: "자유지출"},
	}
}
