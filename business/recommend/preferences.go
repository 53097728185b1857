package recommend

import (
	"encoding/json"

	"mySmartShop/business/catalog"
	"mySmartShop/domain"

	"gorm.io/datatypes"
)

const maxPreferredCategories = 3

// parseHistory decodes a history column into its tokens. Histories are JSON
// arrays of strings; anything else yields an empty list (fail closed). The
// raw value is never evaluated or interpreted beyond strict JSON decoding.
func parseHistory(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}

	var tokens []string
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return nil
	}

	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			out = append(out, t)
		}
	}

	return out
}

// ResolvePreferences derives the bounded preference summary for one customer.
//
// Category selection order is deterministic: tokens are scanned in first-seen
// order over the browsing history followed by the purchase history, filtered
// against the catalog's valid categories, and the first three survivors win.
// When no valid category remains the summary falls back to the first
// min(3, |categories|) categories in catalog first-seen order, so the result
// is never empty for a non-empty catalog.
func ResolvePreferences(customer domain.Customer, idx *catalog.Index) domain.PreferenceSummary {
	browsing := parseHistory(customer.BrowsingHistory)
	purchases := parseHistory(customer.PurchaseHistory)

	seen := make(map[string]struct{}, len(browsing)+len(purchases))
	preferred := make([]string, 0, maxPreferredCategories)

	for _, tok := range append(browsing, purchases...) {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}

		if !idx.HasCategory(tok) {
			continue
		}

		preferred = append(preferred, tok)
		if len(preferred) == maxPreferredCategories {
			break
		}
	}

	if len(preferred) == 0 {
		cats := idx.Categories()
		n := maxPreferredCategories
		if len(cats) < n {
			n = len(cats)
		}
		preferred = append(preferred, cats[:n]...)
	}

	return domain.PreferenceSummary{
		PreferredCategories: preferred,
		PriceRange:          customerPriceRange(customer.AvgOrderValue),
	}
}

// customerPriceRange buckets the average order value. 2000 and 5000 are
// inclusive on the medium side; a missing or non-positive value maps to
// medium as the neutral default.
func customerPriceRange(avgOrderValue float64) string {
	switch {
	case avgOrderValue <= 0:
		return domain.PriceRangeMedium
	case avgOrderValue < 2000:
		return domain.PriceRangeLow
	case avgOrderValue > 5000:
		return domain.PriceRangeHigh
	default:
		return domain.PriceRangeMedium
	}
}
