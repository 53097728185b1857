package domain

// Price range buckets shared by customers (avg order value) and products.
const (
	PriceRangeLow    = "low"
	PriceRangeMedium = "medium"
	PriceRangeHigh   = "high"
)

// PreferenceSummary is the per-customer snapshot derived from browsing and
// purchase history. PreferredCategories is never empty after fallback and
// holds at most 3 entries, all valid catalog categories. BrandPreferences is
// optional and only consulted by the full scoring variant.
type PreferenceSummary struct {
	PreferredCategories []string `json:"preferred_categories"`
	PriceRange          string   `json:"price_range"`
	BrandPreferences    []string `json:"brand_preferences,omitempty"`
}

// ScoredProduct pairs a product with its computed score for one ranking pass.
// Rank is 1-based and assigned after sorting.
type ScoredProduct struct {
	Product Product `json:"product"`
	Score   float64 `json:"score"`
	Rank    int     `json:"rank"`
}
