package catalog

import (
	"mySmartShop/domain"
)

// Index is the in-memory view of the full product catalog used by every
// ranking pass. It is built once and read-only afterwards; rebuilding means
// constructing a new Index from the store.
//
// Category order is first-seen order over the product collection, so every
// lookup that iterates categories is deterministic.
type Index struct {
	categories         []string
	categorySet        map[string]struct{}
	productsByCategory map[string][]domain.Product
	productsByID       map[string]domain.Product
	total              int
}

// BuildIndex groups products by category and records the valid category set.
// An empty product collection yields a valid empty index, not an error.
func BuildIndex(products []domain.Product) *Index {
	idx := &Index{
		categorySet:        make(map[string]struct{}),
		productsByCategory: make(map[string][]domain.Product),
		productsByID:       make(map[string]domain.Product, len(products)),
	}

	for _, p := range products {
		if p.Category == "" {
			continue
		}

		if _, ok := idx.categorySet[p.Category]; !ok {
			idx.categorySet[p.Category] = struct{}{}
			idx.categories = append(idx.categories, p.Category)
		}

		idx.productsByCategory[p.Category] = append(idx.productsByCategory[p.Category], p)
		idx.productsByID[p.ProductID] = p
		idx.total++
	}

	return idx
}

// Categories returns all valid category names in first-seen catalog order.
func (idx *Index) Categories() []string {
	return idx.categories
}

// HasCategory reports whether cat exists in the catalog.
func (idx *Index) HasCategory(cat string) bool {
	_, ok := idx.categorySet[cat]
	return ok
}

// ProductsInCategory returns the products of one category in catalog order.
// Unknown categories yield nil.
func (idx *Index) ProductsInCategory(cat string) []domain.Product {
	return idx.productsByCategory[cat]
}

// ProductByID looks a product up by its external identifier.
func (idx *Index) ProductByID(productID string) (domain.Product, bool) {
	p, ok := idx.productsByID[productID]
	return p, ok
}

// Len returns the number of indexed products.
func (idx *Index) Len() int {
	return idx.total
}
