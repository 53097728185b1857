//go:build !integration

package feedback

import (
	"context"
	"errors"
	"math"
	"testing"

	"mySmartShop/business/catalog"
	"mySmartShop/business/recommend"
	"mySmartShop/domain"
)

const testTokenKey = "0123456789abcdef"

type fakeProductStore struct {
	products map[string]domain.Product
	updated  *domain.Product
}

func (f *fakeProductStore) FindByProductID(ctx context.Context, productID string) (domain.Product, error) {
	if p, ok := f.products[productID]; ok {
		return p, nil
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (f *fakeProductStore) Update(ctx context.Context, product *domain.Product) error {
	f.updated = product
	f.products[product.ProductID] = *product
	return nil
}

func (f *fakeProductStore) FindAll(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

type fakeCustomerStore struct{}

func (f *fakeCustomerStore) FindAll(ctx context.Context) ([]domain.Customer, error) {
	return nil, nil
}

type fakeSentiment struct {
	score float64
	err   error
}

func (f *fakeSentiment) SentimentScore(ctx context.Context, text string) (float64, error) {
	return f.score, f.err
}

func newTestService(products map[string]domain.Product, sentiment SentimentRepository) (*feedbackService, *fakeProductStore) {
	prodStore := &fakeProductStore{products: products}
	cat := catalog.NewService(prodStore, &fakeCustomerStore{})

	return NewFeedbackService(prodStore, sentiment, cat, testTokenKey), prodStore
}

func validToken(t *testing.T, customerID, productID string) string {
	t.Helper()

	token, err := recommend.BuildFeedbackToken(customerID, productID, testTokenKey)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}

	return token
}

func TestSubmitFeedback_UpdatesSentimentEWMA(t *testing.T) {
	products := map[string]domain.Product{
		"P1": {ProductID: "P1", Category: "Books", SentimentScore: 0.5},
	}
	svc, prodStore := newTestService(products, &fakeSentiment{score: 1.0})

	ack, err := svc.SubmitFeedback(context.Background(), domain.Feedback{
		Token:   validToken(t, "C1", "P1"),
		Rating:  5,
		Comment: "love it",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ack.CustomerID != "C1" || ack.ProductID != "P1" || ack.Sentiment != 1.0 {
		t.Fatalf("ack = %+v", ack)
	}

	// 0.7*0.5 + 0.3*1.0
	want := 0.65
	if got := prodStore.updated.SentimentScore; math.Abs(got-want) > 1e-9 {
		t.Fatalf("sentiment = %v, want %v", got, want)
	}
}

func TestSubmitFeedback_InvalidTokenRejected(t *testing.T) {
	svc, prodStore := newTestService(map[string]domain.Product{}, &fakeSentiment{})

	_, err := svc.SubmitFeedback(context.Background(), domain.Feedback{
		Token:  "garbage",
		Rating: 3,
	})
	if err == nil {
		t.Fatal("expected error for invalid token")
	}
	if prodStore.updated != nil {
		t.Fatal("no product update should happen on invalid token")
	}
}

func TestSubmitFeedback_UnknownProduct(t *testing.T) {
	svc, _ := newTestService(map[string]domain.Product{}, &fakeSentiment{})

	_, err := svc.SubmitFeedback(context.Background(), domain.Feedback{
		Token:  validToken(t, "C1", "P404"),
		Rating: 3,
	})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}

func TestSubmitFeedback_SentimentFailureIsNeutral(t *testing.T) {
	products := map[string]domain.Product{
		"P1": {ProductID: "P1", Category: "Books", SentimentScore: 0.5},
	}
	svc, prodStore := newTestService(products, &fakeSentiment{err: errors.New("model offline")})

	ack, err := svc.SubmitFeedback(context.Background(), domain.Feedback{
		Token:   validToken(t, "C1", "P1"),
		Rating:  2,
		Comment: "meh",
	})
	if err != nil {
		t.Fatalf("sentiment failure must not fail the call: %v", err)
	}
	if ack.Sentiment != 0 {
		t.Fatalf("sentiment = %v, want neutral 0", ack.Sentiment)
	}

	// EWMA still applied with the neutral score: 0.7*0.5
	want := 0.35
	if got := prodStore.updated.SentimentScore; math.Abs(got-want) > 1e-9 {
		t.Fatalf("sentiment = %v, want %v", got, want)
	}
}

func TestSubmitFeedback_RatingOutOfRange(t *testing.T) {
	svc, _ := newTestService(map[string]domain.Product{}, &fakeSentiment{})

	_, err := svc.SubmitFeedback(context.Background(), domain.Feedback{
		Token:  validToken(t, "C1", "P1"),
		Rating: 9,
	})
	if err == nil {
		t.Fatal("expected error for out-of-range rating")
	}
}
