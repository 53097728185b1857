//go:build !integration

package recommend

import (
	"testing"

	"mySmartShop/business/catalog"
	"mySmartShop/domain"

	"gorm.io/datatypes"
)

func rankIndex() *catalog.Index {
	return catalog.BuildIndex([]domain.Product{
		{ProductID: "B1", Category: "Books", Price: 500, Rating: 3},
		{ProductID: "B2", Category: "Books", Price: 1500, Rating: 5},
		{ProductID: "B3", Category: "Books", Price: 800, Rating: 4},
		{ProductID: "E1", Category: "Electronics", Price: 6000, Rating: 4.5},
		{ProductID: "E2", Category: "Electronics", Price: 900, Rating: 2},
		{ProductID: "F1", Category: "Fashion", Price: 300, Rating: 5},
		{ProductID: "H1", Category: "Home", Price: 100, Rating: 5},
	})
}

func TestRank_NeverExceedsN(t *testing.T) {
	c := domain.Customer{
		BrowsingHistory: datatypes.JSON(`["Books", "Electronics", "Fashion"]`),
		AvgOrderValue:   1000,
	}

	for _, n := range []int{1, 2, 3, 10} {
		got := Rank(c, rankIndex(), n, VariantFast)
		if len(got) > n {
			t.Errorf("n=%d returned %d results", n, len(got))
		}
	}
}

func TestRank_OnlyPreferredCategories(t *testing.T) {
	c := domain.Customer{
		BrowsingHistory: datatypes.JSON(`["Books", "Fashion"]`),
		AvgOrderValue:   1000,
	}

	got := Rank(c, rankIndex(), 10, VariantFast)
	if len(got) == 0 {
		t.Fatal("expected candidates")
	}

	allowed := map[string]bool{"Books": true, "Fashion": true}
	for _, sc := range got {
		if !allowed[sc.Product.Category] {
			t.Errorf("product %s from category %s outside preference union", sc.Product.ProductID, sc.Product.Category)
		}
	}
}

func TestRank_DescendingWithRanks(t *testing.T) {
	c := domain.Customer{
		BrowsingHistory: datatypes.JSON(`["Books", "Electronics"]`),
		AvgOrderValue:   3000,
	}

	got := Rank(c, rankIndex(), 10, VariantFast)
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("score at %d (%v) exceeds score at %d (%v)", i, got[i].Score, i-1, got[i-1].Score)
		}
	}
	for i, sc := range got {
		if sc.Rank != i+1 {
			t.Errorf("rank at %d = %d, want %d", i, sc.Rank, i+1)
		}
	}
}

func TestRank_TiesKeepPoolOrder(t *testing.T) {
	// identical products score identically; stable sort keeps catalog order
	idx := catalog.BuildIndex([]domain.Product{
		{ProductID: "T1", Category: "Books", Price: 500, Rating: 3},
		{ProductID: "T2", Category: "Books", Price: 500, Rating: 3},
		{ProductID: "T3", Category: "Books", Price: 500, Rating: 3},
	})

	c := domain.Customer{BrowsingHistory: datatypes.JSON(`["Books"]`)}

	got := Rank(c, idx, 3, VariantFast)
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	for i, wantID := range []string{"T1", "T2", "T3"} {
		if got[i].Product.ProductID != wantID {
			t.Errorf("position %d = %s, want %s", i, got[i].Product.ProductID, wantID)
		}
	}
}

func TestRank_EmptyCatalogYieldsNoCandidates(t *testing.T) {
	idx := catalog.BuildIndex(nil)
	c := domain.Customer{BrowsingHistory: datatypes.JSON(`["Books"]`)}

	if got := Rank(c, idx, 5, VariantFast); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestRank_Deterministic(t *testing.T) {
	c := domain.Customer{
		BrowsingHistory: datatypes.JSON(`["Books", "Electronics", "Fashion"]`),
		PurchaseHistory: datatypes.JSON(`["Books"]`),
		AvgOrderValue:   2500,
	}

	first := Rank(c, rankIndex(), 5, VariantFull)
	for i := 0; i < 20; i++ {
		again := Rank(c, rankIndex(), 5, VariantFull)
		if len(again) != len(first) {
			t.Fatalf("result length changed: %d != %d", len(again), len(first))
		}
		for j := range first {
			if again[j].Product.ProductID != first[j].Product.ProductID || again[j].Score != first[j].Score {
				t.Fatalf("result changed at %d: %+v != %+v", j, again[j], first[j])
			}
		}
	}
}
