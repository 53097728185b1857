package recommend

import (
	"fmt"

	"mySmartShop/domain"
)

// Variant selects which scoring criteria apply. The fast variant is the
// batch default; the full variant adds brand and prior-purchase terms for
// the interactive path.
type Variant string

const (
	VariantFast Variant = "fast"
	VariantFull Variant = "full"
)

func ParseVariant(s string) (Variant, error) {
	switch s {
	case "", string(VariantFast):
		return VariantFast, nil
	case string(VariantFull):
		return VariantFull, nil
	}
	return "", fmt.Errorf("unknown scoring variant: %q", s)
}

// Scoring weights. Terms are cumulative, not mutually exclusive.
const (
	weightCategoryMatch = 0.4
	weightPriceMatch    = 0.3
	weightRating        = 0.2
	weightSentiment     = 0.1
	weightBrandMatch    = 0.2
	weightPurchased     = 0.1
)

// ScoreProduct assigns the deterministic score for one (product, preference)
// pair. Rating and sentiment are applied on their stored scale with no
// normalization and no clamping, so the result is not guaranteed to stay
// below 1 when those fields exceed their nominal ranges.
//
// purchaseHistory is only consulted by the full variant and should be the
// customer's parsed purchase history tokens.
func ScoreProduct(product domain.Product, prefs domain.PreferenceSummary, purchaseHistory []string, variant Variant) float64 {
	score := 0.0

	if containsString(prefs.PreferredCategories, product.Category) {
		score += weightCategoryMatch
	}

	if productPriceRange(product.Price) == prefs.PriceRange {
		score += weightPriceMatch
	}

	score += product.Rating * weightRating
	score += product.SentimentScore * weightSentiment

	if variant == VariantFull {
		if len(prefs.BrandPreferences) > 0 && containsString(prefs.BrandPreferences, product.Brand) {
			score += weightBrandMatch
		}
		if containsString(purchaseHistory, product.Category) {
			score += weightPurchased
		}
	}

	return score
}

// productPriceRange buckets a product price. 1000 and 5000 are inclusive on
// the medium side.
func productPriceRange(price float64) string {
	switch {
	case price < 1000:
		return domain.PriceRangeLow
	case price > 5000:
		return domain.PriceRangeHigh
	default:
		return domain.PriceRangeMedium
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
