//go:build !integration

package recommend

import (
	"context"
	"errors"
	"testing"

	"mySmartShop/business/catalog"
	"mySmartShop/domain"

	"gorm.io/datatypes"
)

type fakeProductStore struct {
	products []domain.Product
}

func (f *fakeProductStore) FindAll(ctx context.Context) ([]domain.Product, error) {
	return f.products, nil
}

type fakeCustomerStore struct {
	customers map[string]domain.Customer
}

func (f *fakeCustomerStore) FindByCustomerID(ctx context.Context, customerID string) (domain.Customer, error) {
	if c, ok := f.customers[customerID]; ok {
		return c, nil
	}
	return domain.Customer{}, domain.ErrCustomerNotFound
}

func (f *fakeCustomerStore) FindAll(ctx context.Context) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, c)
	}
	return out, nil
}

type fakeRecoStore struct {
	rows map[string]domain.CustomerRecommendation
}

func (f *fakeRecoStore) GetByCustomerID(ctx context.Context, customerID string) (domain.CustomerRecommendation, error) {
	if r, ok := f.rows[customerID]; ok {
		return r, nil
	}
	return domain.CustomerRecommendation{}, domain.ErrRecommendationNotFound
}

type fakeNarrator struct {
	text string
	err  error
}

func (f *fakeNarrator) Explain(ctx context.Context, customer domain.Customer, prefs domain.PreferenceSummary, items []domain.RecommendationItem) (string, error) {
	return f.text, f.err
}

func newTestService(products []domain.Product, customers map[string]domain.Customer, narrator NarrationRepository) *Service {
	prodStore := &fakeProductStore{products: products}
	custStore := &fakeCustomerStore{customers: customers}
	cat := catalog.NewService(prodStore, custStore)

	return NewService(custStore, &fakeRecoStore{rows: map[string]domain.CustomerRecommendation{}}, cat, nil, narrator, testTokenKey, 5)
}

func TestRecommendForCustomer_UnknownCustomer(t *testing.T) {
	svc := newTestService(nil, map[string]domain.Customer{}, nil)

	_, err := svc.RecommendForCustomer(context.Background(), "nope", 5, VariantFast)
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("err = %v, want ErrCustomerNotFound", err)
	}
}

func TestRecommendForCustomer_NoCandidatesIsNotAnError(t *testing.T) {
	customers := map[string]domain.Customer{
		"C1": {CustomerID: "C1", BrowsingHistory: datatypes.JSON(`["Books"]`)},
	}

	// empty catalog: known customer, nothing to recommend
	svc := newTestService(nil, customers, nil)

	result, err := svc.RecommendForCustomer(context.Background(), "C1", 5, VariantFast)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || len(result.Items) != 0 {
		t.Fatalf("result = %+v, want empty item list", result)
	}
}

func TestRecommendForCustomer_ServesTokens(t *testing.T) {
	products := []domain.Product{
		{ProductID: "P1", Category: "Books", Price: 500, Rating: 4},
		{ProductID: "P2", Category: "Books", Price: 1500, Rating: 5},
	}
	customers := map[string]domain.Customer{
		"C1": {CustomerID: "C1", BrowsingHistory: datatypes.JSON(`["Books"]`), AvgOrderValue: 800},
	}

	svc := newTestService(products, customers, nil)

	result, err := svc.RecommendForCustomer(context.Background(), "C1", 5, VariantFast)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(result.Items))
	}

	for _, item := range result.Items {
		if item.FeedbackToken == "" {
			t.Fatalf("item %s missing feedback token", item.ProductID)
		}
		cID, pID, err := ParseFeedbackToken(item.FeedbackToken, testTokenKey)
		if err != nil {
			t.Fatalf("token parse: %v", err)
		}
		if cID != "C1" || pID != item.ProductID {
			t.Fatalf("token binds (%s, %s), want (C1, %s)", cID, pID, item.ProductID)
		}
	}
}

func TestExplainRecommendations_DegradesOnNarratorFailure(t *testing.T) {
	products := []domain.Product{
		{ProductID: "P1", Category: "Books", Price: 500, Rating: 4},
	}
	customers := map[string]domain.Customer{
		"C1": {CustomerID: "C1", BrowsingHistory: datatypes.JSON(`["Books"]`)},
	}

	svc := newTestService(products, customers, &fakeNarrator{err: errors.New("model offline")})

	explanation, err := svc.ExplainRecommendations(context.Background(), "C1", 5)
	if err != nil {
		t.Fatalf("narration failure must not fail the call: %v", err)
	}
	if explanation.Available || explanation.Text != "" {
		t.Fatalf("explanation = %+v, want degraded", explanation)
	}
}

func TestExplainRecommendations_NarratorText(t *testing.T) {
	products := []domain.Product{
		{ProductID: "P1", Category: "Books", Price: 500, Rating: 4},
	}
	customers := map[string]domain.Customer{
		"C1": {CustomerID: "C1", BrowsingHistory: datatypes.JSON(`["Books"]`)},
	}

	svc := newTestService(products, customers, &fakeNarrator{text: "because you like books"})

	explanation, err := svc.ExplainRecommendations(context.Background(), "C1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !explanation.Available || explanation.Text != "because you like books" {
		t.Fatalf("explanation = %+v", explanation)
	}
}
