//go:build !integration

package catalog

import (
	"reflect"
	"testing"

	"mySmartShop/domain"
)

func TestBuildIndex_CategoryOrderIsFirstSeen(t *testing.T) {
	products := []domain.Product{
		{ProductID: "P1", Category: "Books"},
		{ProductID: "P2", Category: "Electronics"},
		{ProductID: "P3", Category: "Books"},
		{ProductID: "P4", Category: "Fashion"},
		{ProductID: "P5", Category: "Electronics"},
	}

	idx := BuildIndex(products)

	want := []string{"Books", "Electronics", "Fashion"}
	if !reflect.DeepEqual(idx.Categories(), want) {
		t.Fatalf("categories = %v, want %v", idx.Categories(), want)
	}

	if idx.Len() != 5 {
		t.Fatalf("len = %d, want 5", idx.Len())
	}
}

func TestBuildIndex_SkipsEmptyCategory(t *testing.T) {
	products := []domain.Product{
		{ProductID: "P1", Category: ""},
		{ProductID: "P2", Category: "Books"},
	}

	idx := BuildIndex(products)

	if idx.Len() != 1 {
		t.Fatalf("len = %d, want 1", idx.Len())
	}
	if idx.HasCategory("") {
		t.Fatal("empty category should not be valid")
	}
	if _, ok := idx.ProductByID("P1"); ok {
		t.Fatal("product without category should not be indexed")
	}
}

func TestBuildIndex_EmptyCatalog(t *testing.T) {
	idx := BuildIndex(nil)

	if idx.Len() != 0 {
		t.Fatalf("len = %d, want 0", idx.Len())
	}
	if len(idx.Categories()) != 0 {
		t.Fatalf("categories = %v, want none", idx.Categories())
	}
	if idx.ProductsInCategory("Books") != nil {
		t.Fatal("unknown category should yield nil")
	}
}

func TestIndex_ProductsInCategoryKeepsCatalogOrder(t *testing.T) {
	products := []domain.Product{
		{ProductID: "P3", Category: "Books"},
		{ProductID: "P1", Category: "Books"},
		{ProductID: "P2", Category: "Books"},
	}

	idx := BuildIndex(products)

	got := idx.ProductsInCategory("Books")
	if len(got) != 3 {
		t.Fatalf("got %d products, want 3", len(got))
	}
	for i, wantID := range []string{"P3", "P1", "P2"} {
		if got[i].ProductID != wantID {
			t.Errorf("position %d = %s, want %s", i, got[i].ProductID, wantID)
		}
	}
}
