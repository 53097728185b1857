//go:build !integration

package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"mySmartShop/business/catalog"
	"mySmartShop/domain"
)

type fakeProductStore struct {
	replaced []domain.Product
}

func (f *fakeProductStore) ReplaceAll(ctx context.Context, products []domain.Product) error {
	f.replaced = products
	return nil
}

func (f *fakeProductStore) FindAll(ctx context.Context) ([]domain.Product, error) {
	return f.replaced, nil
}

type fakeCustomerStore struct {
	replaced []domain.Customer
}

func (f *fakeCustomerStore) ReplaceAll(ctx context.Context, customers []domain.Customer) error {
	f.replaced = customers
	return nil
}

func (f *fakeCustomerStore) FindAll(ctx context.Context) ([]domain.Customer, error) {
	return f.replaced, nil
}

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	return path
}

func TestNormalizeListCell(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`['Books', 'Electronics']`, `["Books","Electronics"]`},
		{`["Books","Electronics"]`, `["Books","Electronics"]`},
		{``, `[]`},
		{`not a list`, `[]`},
		{`{'a': 1}`, `[]`},
	}

	for _, tc := range cases {
		if got := string(normalizeListCell(tc.in)); got != tc.want {
			t.Errorf("normalizeListCell(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestLoadProductsCSV(t *testing.T) {
	csv := "Product_ID,Category,Subcategory,Price,Brand,Average_Rating_of_Similar_Products,Product_Rating,Customer_Review_Sentiment_Score,Holiday,Season,Geographical_Location,Similar_Product_List,Probability_of_Recommendation\n" +
		"P001,Books,Fiction,24.99,Acme,4.2,4.5,0.8,No,Winter,Jakarta,\"['P002', 'P003']\",0.91\n" +
		",Books,Fiction,10,Acme,4,4,0.5,No,Winter,Jakarta,[],0.5\n" +
		"P002,Electronics,Audio,199.99,Beta,3.9,4.1,0.6,Yes,Summer,Bandung,[],0.75\n"

	path := writeTempCSV(t, "products.csv", csv)

	prodStore := &fakeProductStore{}
	custStore := &fakeCustomerStore{}
	svc := NewIngestService(prodStore, custStore, catalog.NewService(prodStore, custStore))

	count, err := svc.LoadProductsCSV(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the row without a product id is dropped
	if count != 2 || len(prodStore.replaced) != 2 {
		t.Fatalf("count = %d, replaced = %d, want 2", count, len(prodStore.replaced))
	}

	p := prodStore.replaced[0]
	if p.ProductID != "P001" || p.Category != "Books" || p.Price != 24.99 || p.Rating != 4.5 {
		t.Fatalf("unexpected first product: %+v", p)
	}
	if string(p.SimilarProducts) != `["P002","P003"]` {
		t.Fatalf("similar products = %s", p.SimilarProducts)
	}
}

func TestLoadCustomersCSV(t *testing.T) {
	csv := "Customer_ID,Age,Gender,Location,Browsing_History,Purchase_History,Customer_Segment,Avg_Order_Value,Holiday,Season\n" +
		"C001,34,Female,Jakarta,\"['Books', 'Fashion']\",\"['Books']\",Frequent Buyer,2450.5,No,Winter\n" +
		"C002,41,Male,Surabaya,broken cell,[],New Visitor,120,Yes,Summer\n"

	path := writeTempCSV(t, "customers.csv", csv)

	prodStore := &fakeProductStore{}
	custStore := &fakeCustomerStore{}
	svc := NewIngestService(prodStore, custStore, catalog.NewService(prodStore, custStore))

	count, err := svc.LoadCustomersCSV(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	c1 := custStore.replaced[0]
	if c1.CustomerID != "C001" || c1.Age != 34 || c1.AvgOrderValue != 2450.5 {
		t.Fatalf("unexpected first customer: %+v", c1)
	}
	if string(c1.BrowsingHistory) != `["Books","Fashion"]` {
		t.Fatalf("browsing history = %s", c1.BrowsingHistory)
	}

	// malformed history cells fail closed to an empty array
	c2 := custStore.replaced[1]
	if string(c2.BrowsingHistory) != `[]` {
		t.Fatalf("malformed cell = %s, want []", c2.BrowsingHistory)
	}
}

func TestLoadProductsCSV_MissingFile(t *testing.T) {
	prodStore := &fakeProductStore{}
	custStore := &fakeCustomerStore{}
	svc := NewIngestService(prodStore, custStore, catalog.NewService(prodStore, custStore))

	if _, err := svc.LoadProductsCSV(context.Background(), "/nonexistent/file.csv"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
