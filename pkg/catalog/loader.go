package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/stepedge/concierge/pkg/domain"
)

// Column names expected in the catalog CSV header.
const (
	colID         = "ID"
	colName       = "Product Name"
	colCategory   = "Category"
	colBrand      = "Brand"
	colPrice      = "Price"
	colSpecs      = "Specifications"
	colFeatures   = "Features"
	colReviews    = "User Reviews"
	colPopularity = "Popularity Score"
)

var requiredColumns = []string{
	colID, colName, colCategory, colBrand, colPrice,
	colSpecs, colFeatures, colReviews, colPopularity,
}

// Load reads the catalog CSV at path. Any missing or malformed source is a
// *domain.CatalogError: the process cannot serve without a catalog.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.CatalogError{Source: path, Err: err}
	}
	defer f.Close()

	c, err := Read(f)
	if err != nil {
		return nil, &domain.CatalogError{Source: path, Err: err}
	}
	return c, nil
}

// Read parses catalog CSV content from r.
func Read(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	var products []domain.Product
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		p, err := parseRecord(record, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		products = append(products, p)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	return New(products), nil
}

func parseRecord(record []string, idx map[string]int) (domain.Product, error) {
	field := func(col string) string {
		i := idx[col]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	id, err := strconv.Atoi(field(colID))
	if err != nil {
		return domain.Product{}, fmt.Errorf("non-numeric id %q", field(colID))
	}
	price, err := strconv.ParseFloat(field(colPrice), 64)
	if err != nil {
		return domain.Product{}, fmt.Errorf("non-numeric price %q", field(colPrice))
	}
	if price <= 0 {
		return domain.Product{}, fmt.Errorf("price must be positive, got %v", price)
	}
	popularity, err := strconv.Atoi(field(colPopularity))
	if err != nil {
		return domain.Product{}, fmt.Errorf("non-numeric popularity score %q", field(colPopularity))
	}

	return domain.Product{
		ID:              id,
		Name:            field(colName),
		Category:        field(colCategory),
		Brand:           field(colBrand),
		Price:           price,
		Specifications:  field(colSpecs),
		Features:        field(colFeatures),
		UserReviews:     field(colReviews),
		PopularityScore: popularity,
	}, nil
}
