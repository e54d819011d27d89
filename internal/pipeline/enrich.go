package pipeline

import (
	"strings"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
)

// ReferenceIndex is a product-code keyed lookup over reference records.
type ReferenceIndex map[string]domain.ReferenceRecord

// NewReferenceIndex builds the lookup. A nil or empty record slice is
// fine; enrichment then degrades to defaults.
func NewReferenceIndex(records []domain.ReferenceRecord) ReferenceIndex {
	idx := make(ReferenceIndex, len(records))
	for _, rec := range records {
		code := strings.TrimSpace(rec.ProductCode)
		if code == "" {
			continue
		}
		idx[code] = rec
	}
	return idx
}

// Attributes is the enriched, display-ready attribute set for a product.
type Attributes struct {
	Name      string
	CPNCP     string
	SalesDest string
	Category  string
	Region    string
	Taste     string
	Package   string
	Notes     string
}

// Enrich resolves display attributes for one raw row. Precedence per
// attribute: reference value, then (category only) the product-line
// hint, then the fixed default. Pure; never fails.
func Enrich(row domain.RawStockRow, refs ReferenceIndex) Attributes {
	ref := refs[row.ProductCode]

	name := ref.Name
	if name == "" {
		name = row.ShortName
	}
	if name == "" {
		name = row.FullName
	}

	return Attributes{
		Name:      name,
		CPNCP:     orDefault(ref.CPNCP, domain.DefaultCPNCP),
		SalesDest: orDefault(ref.SalesDest, domain.DefaultSalesDest),
		Category:  resolveCategory(ref.Category, row.ProductLine),
		Region:    orDefault(ref.Region, domain.DefaultRegion),
		Taste:     orDefault(ref.Taste, domain.DefaultTaste),
		Package:   orDefault(ref.Package, domain.DefaultPackage),
		Notes:     ref.Notes,
	}
}

// resolveCategory falls through to the product-line hint when the
// reference gives no usable category.
func resolveCategory(refCategory, productLine string) string {
	if refCategory != "" && refCategory != domain.CategoryOther {
		return refCategory
	}
	switch productLine {
	case "Amante":
		return domain.CategoryAmante
	case "Chocopie":
		return domain.CategoryChocopie
	}
	return domain.CategoryOther
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
