package domain

// Dimension identifies one dropdown filter.
type Dimension string

const (
	DimWarehouse Dimension = "warehouse"
	DimCPNCP     Dimension = "cpncp"
	DimSalesDest Dimension = "sales_dest"
	DimCategory  Dimension = "category"
	DimRegion    Dimension = "region"
	DimTaste     Dimension = "taste"
	DimPackage   Dimension = "package"
	DimNotes     Dimension = "notes"
)

// FilterAll is the sentinel meaning "no restriction" for a dimension.
const FilterAll = "all"

// FilterState holds the chosen value per filter dimension plus the
// free-text search. The cascade keeps every chosen value inside its
// current option set; invalid values are reset to FilterAll.
type FilterState struct {
	Warehouse string `json:"warehouse"`
	CPNCP     string `json:"cpncp"`
	SalesDest string `json:"sales_dest"`
	Category  string `json:"category"`
	Region    string `json:"region"`
	Taste     string `json:"taste"`
	Package   string `json:"package"`
	Notes     string `json:"notes"`
	Search    string `json:"search"`
}

// NewFilterState returns a state with every dimension set to FilterAll.
func NewFilterState() FilterState {
	return FilterState{
		Warehouse: FilterAll,
		CPNCP:     FilterAll,
		SalesDest: FilterAll,
		Category:  FilterAll,
		Region:    FilterAll,
		Taste:     FilterAll,
		Package:   FilterAll,
		Notes:     FilterAll,
	}
}

// Normalize replaces empty dimension values with FilterAll.
func (f *FilterState) Normalize() {
	for _, d := range Dimensions {
		if f.Value(d) == "" {
			f.SetValue(d, FilterAll)
		}
	}
}

// Dimensions is the fixed cascade order: each filter's option set depends
// only on the filters before it.
var Dimensions = []Dimension{
	DimWarehouse,
	DimCPNCP,
	DimSalesDest,
	DimCategory,
	DimRegion,
	DimTaste,
	DimPackage,
	DimNotes,
}

// Value returns the chosen value for a dimension.
func (f *FilterState) Value(d Dimension) string {
	switch d {
	case DimWarehouse:
		return f.Warehouse
	case DimCPNCP:
		return f.CPNCP
	case DimSalesDest:
		return f.SalesDest
	case DimCategory:
		return f.Category
	case DimRegion:
		return f.Region
	case DimTaste:
		return f.Taste
	case DimPackage:
		return f.Package
	case DimNotes:
		return f.Notes
	}
	return FilterAll
}

// SetValue sets the chosen value for a dimension.
func (f *FilterState) SetValue(d Dimension, v string) {
	switch d {
	case DimWarehouse:
		f.Warehouse = v
	case DimCPNCP:
		f.CPNCP = v
	case DimSalesDest:
		f.SalesDest = v
	case DimCategory:
		f.Category = v
	case DimRegion:
		f.Region = v
	case DimTaste:
		f.Taste = v
	case DimPackage:
		f.Package = v
	case DimNotes:
		f.Notes = v
	}
}
