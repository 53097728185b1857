package ingest

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"mySmartShop/business/catalog"
	"mySmartShop/domain"
	"mySmartShop/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	ReplaceAll(ctx context.Context, products []domain.Product) error
}

// CustomerRepository contract interface
type CustomerRepository interface {
	ReplaceAll(ctx context.Context, customers []domain.Customer) error
}

type ingestService struct {
	productRepo  ProductRepository
	customerRepo CustomerRepository
	catalog      *catalog.Service
}

func NewIngestService(productRepo ProductRepository, customerRepo CustomerRepository, catalogService *catalog.Service) *ingestService {
	return &ingestService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		catalog:      catalogService,
	}
}

// LoadProductsCSV replaces the products table with the CSV content.
// Columns are matched by header name, so column order does not matter.
func (s *ingestService) LoadProductsCSV(ctx context.Context, path string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	rows, header, err := readCSV(path)
	if err != nil {
		return 0, err
	}

	products := make([]domain.Product, 0, len(rows))
	for i, row := range rows {
		p := domain.Product{
			ProductID:                 header.get(row, "Product_ID"),
			Category:                  header.get(row, "Category"),
			Subcategory:               header.get(row, "Subcategory"),
			Price:                     header.getFloat(row, "Price"),
			Brand:                     header.get(row, "Brand"),
			AverageRatingSimilar:      header.getFloat(row, "Average_Rating_of_Similar_Products"),
			Rating:                    header.getFloat(row, "Product_Rating"),
			SentimentScore:            header.getFloat(row, "Customer_Review_Sentiment_Score"),
			Holiday:                   header.get(row, "Holiday"),
			Season:                    header.get(row, "Season"),
			GeographicalLocation:      header.get(row, "Geographical_Location"),
			SimilarProducts:           normalizeListCell(header.get(row, "Similar_Product_List")),
			RecommendationProbability: header.getFloat(row, "Probability_of_Recommendation"),
		}

		if p.ProductID == "" {
			logger.Warn("skipping product row without product id", "row", i+1)
			continue
		}

		products = append(products, p)
	}

	if err := s.productRepo.ReplaceAll(ctx, products); err != nil {
		logger.Error("Failed to replace products", err)
		return 0, fmt.Errorf("replace products: %w", err)
	}

	s.catalog.Invalidate()
	logger.Info("products loaded from csv", "path", path, "count", len(products))

	return len(products), nil
}

// LoadCustomersCSV replaces the customers table with the CSV content.
// History cells are re-encoded as strict JSON arrays; unparsable cells become
// empty arrays instead of failing the load.
func (s *ingestService) LoadCustomersCSV(ctx context.Context, path string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	rows, header, err := readCSV(path)
	if err != nil {
		return 0, err
	}

	customers := make([]domain.Customer, 0, len(rows))
	for i, row := range rows {
		c := domain.Customer{
			CustomerID:      header.get(row, "Customer_ID"),
			Age:             int(header.getFloat(row, "Age")),
			Gender:          header.get(row, "Gender"),
			Location:        header.get(row, "Location"),
			BrowsingHistory: normalizeListCell(header.get(row, "Browsing_History")),
			PurchaseHistory: normalizeListCell(header.get(row, "Purchase_History")),
			CustomerSegment: header.get(row, "Customer_Segment"),
			AvgOrderValue:   header.getFloat(row, "Avg_Order_Value"),
			Holiday:         header.get(row, "Holiday"),
			Season:          header.get(row, "Season"),
		}

		if c.CustomerID == "" {
			logger.Warn("skipping customer row without customer id", "row", i+1)
			continue
		}

		customers = append(customers, c)
	}

	if err := s.customerRepo.ReplaceAll(ctx, customers); err != nil {
		logger.Error("Failed to replace customers", err)
		return 0, fmt.Errorf("replace customers: %w", err)
	}

	logger.Info("customers loaded from csv", "path", path, "count", len(customers))

	return len(customers), nil
}

type headerIndex map[string]int

func (h headerIndex) get(row []string, col string) string {
	idx, ok := h[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (h headerIndex) getFloat(row []string, col string) float64 {
	v, err := strconv.ParseFloat(h.get(row, col), 64)
	if err != nil {
		return 0
	}
	return v
}

func readCSV(path string) ([][]string, headerIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty csv: %s", path)
	}

	header := make(headerIndex, len(records[0]))
	for i, name := range records[0] {
		header[strings.TrimSpace(name)] = i
	}

	return records[1:], header, nil
}

// normalizeListCell turns a CSV list cell into a strict JSON array of
// strings. Source exports write Python-style lists ('single quotes'), which
// are rewritten to JSON before validation; anything that still fails to
// decode as an array of strings becomes an empty array. Cells are never
// evaluated.
func normalizeListCell(cell string) []byte {
	empty := []byte("[]")

	cell = strings.TrimSpace(cell)
	if cell == "" {
		return empty
	}

	var tokens []string
	if err := json.Unmarshal([]byte(cell), &tokens); err != nil {
		rewritten := strings.ReplaceAll(cell, "'", `"`)
		if err := json.Unmarshal([]byte(rewritten), &tokens); err != nil {
			return empty
		}
	}

	out, err := json.Marshal(tokens)
	if err != nil {
		return empty
	}

	return out
}
