//go:build !integration

package batch

import (
	"context"
	"errors"
	"sync"
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
	customers []domain.Customer
}

func (f *fakeCustomerStore) FindAll(ctx context.Context) ([]domain.Customer, error) {
	return f.customers, nil
}

type fakeRecoStore struct {
	mu      sync.Mutex
	rows    map[string]*domain.CustomerRecommendation
	failFor map[string]bool
	runs    []*domain.BatchRun
}

func newFakeRecoStore() *fakeRecoStore {
	return &fakeRecoStore{
		rows:    make(map[string]*domain.CustomerRecommendation),
		failFor: make(map[string]bool),
	}
}

func (f *fakeRecoStore) Upsert(ctx context.Context, rec *domain.CustomerRecommendation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFor[rec.CustomerID] {
		return errors.New("write failed")
	}
	f.rows[rec.CustomerID] = rec

	return nil
}

func (f *fakeRecoStore) SaveBatchRun(ctx context.Context, run *domain.BatchRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.runs = append(f.runs, run)

	return nil
}

func testCustomers(n int) []domain.Customer {
	customers := make([]domain.Customer, 0, n)
	for i := 0; i < n; i++ {
		customers = append(customers, domain.Customer{
			CustomerID:      string(rune('A' + i)),
			BrowsingHistory: datatypes.JSON(`["Books"]`),
			AvgOrderValue:   1500,
		})
	}
	return customers
}

func newBatchService(products []domain.Product, customers []domain.Customer, recoStore *fakeRecoStore) *Service {
	custStore := &fakeCustomerStore{customers: customers}
	cat := catalog.NewService(&fakeProductStore{products: products}, custStore)

	return NewService(custStore, recoStore, cat, nil, 4, 100)
}

func TestRunAll_ProcessesEveryCustomer(t *testing.T) {
	products := []domain.Product{
		{ProductID: "P1", Category: "Books", Price: 500, Rating: 4},
		{ProductID: "P2", Category: "Books", Price: 1500, Rating: 5},
	}
	recoStore := newFakeRecoStore()

	svc := newBatchService(products, testCustomers(10), recoStore)

	result, err := svc.RunAll(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total != 10 || result.Processed != 10 || result.Skipped != 0 {
		t.Fatalf("result = %+v, want 10/10/0", result)
	}
	if len(recoStore.rows) != 10 {
		t.Fatalf("persisted %d rows, want 10", len(recoStore.rows))
	}
}

func TestRunAll_PadsShortRowsWithNull(t *testing.T) {
	// two candidates only: slots 3..5 must stay NULL
	products := []domain.Product{
		{ProductID: "P1", Category: "Books", Price: 500, Rating: 4},
		{ProductID: "P2", Category: "Books", Price: 1500, Rating: 5},
	}
	recoStore := newFakeRecoStore()

	svc := newBatchService(products, testCustomers(1), recoStore)

	if _, err := svc.RunAll(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := recoStore.rows["A"]
	if row == nil {
		t.Fatal("row not persisted")
	}

	slots := row.Slots()
	if slots[0] == nil || slots[1] == nil {
		t.Fatal("first two slots must be filled")
	}
	for i := 2; i < domain.RecommendationSlots; i++ {
		if slots[i] != nil {
			t.Errorf("slot %d = %v, want NULL", i+1, *slots[i])
		}
	}
}

func TestRunAll_PersistFailureIsSkippedNotFatal(t *testing.T) {
	products := []domain.Product{
		{ProductID: "P1", Category: "Books", Price: 500, Rating: 4},
	}
	recoStore := newFakeRecoStore()
	recoStore.failFor["B"] = true
	recoStore.failFor["D"] = true

	svc := newBatchService(products, testCustomers(6), recoStore)

	result, err := svc.RunAll(context.Background(), 5)
	if err != nil {
		t.Fatalf("a failing customer must not abort the run: %v", err)
	}

	if result.Processed != 4 || result.Skipped != 2 {
		t.Fatalf("processed/skipped = %d/%d, want 4/2", result.Processed, result.Skipped)
	}
}

func TestRunAll_EmptyCatalogSkipsEveryone(t *testing.T) {
	recoStore := newFakeRecoStore()

	svc := newBatchService(nil, testCustomers(5), recoStore)

	result, err := svc.RunAll(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Processed != 0 || result.Skipped != 5 {
		t.Fatalf("processed/skipped = %d/%d, want 0/5", result.Processed, result.Skipped)
	}
}

func TestRunAll_SavesRunSummary(t *testing.T) {
	products := []domain.Product{
		{ProductID: "P1", Category: "Books", Price: 500, Rating: 4},
	}
	recoStore := newFakeRecoStore()

	svc := newBatchService(products, testCustomers(3), recoStore)

	result, err := svc.RunAll(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(recoStore.runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(recoStore.runs))
	}

	run := recoStore.runs[0]
	if run.ID != result.RunID || run.Total != 3 || run.Processed != 3 {
		t.Fatalf("run = %+v, result = %+v", run, result)
	}
}
