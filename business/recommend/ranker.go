package recommend

import (
	"sort"

	"mySmartShop/business/catalog"
	"mySmartShop/domain"
)

// Rank resolves the customer's preferences and returns the top n scored
// candidates. See RankWithPreferences for the ordering contract.
func Rank(customer domain.Customer, idx *catalog.Index, n int, variant Variant) []domain.ScoredProduct {
	prefs := ResolvePreferences(customer, idx)
	return RankWithPreferences(customer, prefs, idx, n, variant)
}

// RankWithPreferences scores the candidate pool for an already resolved
// preference summary.
//
// The pool is the union of the indexed products across the preferred
// categories, visited in preference order then catalog order, so the input
// order is deterministic. Sorting is stable and descending by score: ties
// keep their pool position. The result never exceeds n and never contains a
// product outside the preferred-category union; an empty pool yields an
// empty result, which callers treat as "no recommendations", not an error.
func RankWithPreferences(customer domain.Customer, prefs domain.PreferenceSummary, idx *catalog.Index, n int, variant Variant) []domain.ScoredProduct {
	if n <= 0 {
		n = domain.RecommendationSlots
	}

	purchased := parseHistory(customer.PurchaseHistory)

	var candidates []domain.ScoredProduct
	for _, cat := range prefs.PreferredCategories {
		for _, p := range idx.ProductsInCategory(cat) {
			candidates = append(candidates, domain.ScoredProduct{
				Product: p,
				Score:   ScoreProduct(p, prefs, purchased, variant),
			})
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}

	for i := range candidates {
		candidates[i].Rank = i + 1
	}

	return candidates
}
