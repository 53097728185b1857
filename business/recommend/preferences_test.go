//go:build !integration

package recommend

import (
	"reflect"
	"testing"

	"mySmartShop/business/catalog"
	"mySmartShop/domain"

	"gorm.io/datatypes"
)

func testIndex() *catalog.Index {
	return catalog.BuildIndex([]domain.Product{
		{ProductID: "P1", Category: "Books"},
		{ProductID: "P2", Category: "Electronics"},
		{ProductID: "P3", Category: "Fashion"},
		{ProductID: "P4", Category: "Home"},
	})
}

func TestParseHistory_MalformedFailsClosed(t *testing.T) {
	cases := []string{
		`{'Books', 'Electronics'}`,
		`['Books', 'Electronics']`,
		`Books`,
		`{"a": 1}`,
		`[1, 2, 3]`,
		``,
	}

	for _, raw := range cases {
		if got := parseHistory(datatypes.JSON(raw)); len(got) != 0 {
			t.Errorf("parseHistory(%q) = %v, want empty", raw, got)
		}
	}
}

func TestParseHistory_DropsEmptyTokens(t *testing.T) {
	got := parseHistory(datatypes.JSON(`["Books", "", "Fashion"]`))
	want := []string{"Books", "Fashion"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolvePreferences_FirstSeenOrderBrowsingThenPurchase(t *testing.T) {
	c := domain.Customer{
		CustomerID:      "C1",
		BrowsingHistory: datatypes.JSON(`["Fashion", "Unknown", "Books"]`),
		PurchaseHistory: datatypes.JSON(`["Books", "Electronics", "Home"]`),
	}

	prefs := ResolvePreferences(c, testIndex())

	want := []string{"Fashion", "Books", "Electronics"}
	if !reflect.DeepEqual(prefs.PreferredCategories, want) {
		t.Fatalf("preferred = %v, want %v", prefs.PreferredCategories, want)
	}
}

func TestResolvePreferences_CapsAtThree(t *testing.T) {
	c := domain.Customer{
		BrowsingHistory: datatypes.JSON(`["Books", "Electronics", "Fashion", "Home"]`),
	}

	prefs := ResolvePreferences(c, testIndex())

	if len(prefs.PreferredCategories) != 3 {
		t.Fatalf("got %d categories, want 3", len(prefs.PreferredCategories))
	}
}

func TestResolvePreferences_FallbackToCatalogOrder(t *testing.T) {
	c := domain.Customer{
		BrowsingHistory: datatypes.JSON(`["Unknown1", "Unknown2"]`),
	}

	prefs := ResolvePreferences(c, testIndex())

	want := []string{"Books", "Electronics", "Fashion"}
	if !reflect.DeepEqual(prefs.PreferredCategories, want) {
		t.Fatalf("fallback = %v, want %v", prefs.PreferredCategories, want)
	}
}

func TestResolvePreferences_FallbackSmallCatalog(t *testing.T) {
	idx := catalog.BuildIndex([]domain.Product{
		{ProductID: "P1", Category: "Books"},
	})

	prefs := ResolvePreferences(domain.Customer{}, idx)

	want := []string{"Books"}
	if !reflect.DeepEqual(prefs.PreferredCategories, want) {
		t.Fatalf("fallback = %v, want %v", prefs.PreferredCategories, want)
	}
}

func TestCustomerPriceRange_Boundaries(t *testing.T) {
	cases := []struct {
		avg  float64
		want string
	}{
		{-10, domain.PriceRangeMedium},
		{0, domain.PriceRangeMedium},
		{0.01, domain.PriceRangeLow},
		{1999.99, domain.PriceRangeLow},
		{2000, domain.PriceRangeMedium},
		{3500, domain.PriceRangeMedium},
		{5000, domain.PriceRangeMedium},
		{5000.01, domain.PriceRangeHigh},
	}

	for _, tc := range cases {
		if got := customerPriceRange(tc.avg); got != tc.want {
			t.Errorf("customerPriceRange(%v) = %s, want %s", tc.avg, got, tc.want)
		}
	}
}
