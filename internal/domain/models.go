package domain

// RawStockRow is one physical lot record from the warehouse export.
// Rows are produced once per ingestion cycle and never mutated.
type RawStockRow struct {
	ProductCode      string  // Код номенклатуры
	FullName         string  // Наименование номенклатуры
	ShortName        string  // Краткое наименование
	Warehouse        string  // Склад
	BatchCode        string  // Номер партии
	Location         string  // Местоположение
	Quantity         float64 // Физ. доступно
	ShelfLifePercent float64 // % годности
	LineLabel        string  // Наименование строки
	ProductLine      string  // Продукция линии
}

// ReferenceRecord is one master-data entry keyed by product code.
// Any attribute may be empty; enrichment falls back to defaults.
type ReferenceRecord struct {
	ProductCode string
	Name        string // 제품명
	CPNCP       string // CP/NCP
	SalesDest   string // 판매지
	Category    string // 카테고리
	Region      string // 브랜드 (지역분류)
	Taste       string // 맛
	Package     string // 패키지
	Notes       string // 비고
}

// Enrichment fallback values.
const (
	DefaultCPNCP     = "-"
	DefaultSalesDest = "내수용"
	DefaultRegion    = "내수용"
	DefaultTaste     = "오리지날"
	DefaultPackage   = "기타"

	CategoryOther    = "기타"
	CategoryAmante   = "아망테"
	CategoryChocopie = "초코파이"
)

// AggregatedRow is one (product code × freshness band) summary, the unit
// the dashboard operates on. Built once per reload, never mutated.
type AggregatedRow struct {
	ProductCode      string   `json:"product_code"`
	Name             string   `json:"name"`
	CPNCP            string   `json:"cpncp"`
	SalesDest        string   `json:"sales_dest"`
	Category         string   `json:"category"`
	Region           string   `json:"region"`
	Taste            string   `json:"taste"`
	Package          string   `json:"package"`
	Notes            string   `json:"notes"`
	Warehouse        string   `json:"warehouse"`
	Location         string   `json:"location"`
	FreshnessBand    string   `json:"freshness_band"`
	FreshnessPercent float64  `json:"freshness_percent"`
	TotalQuantity    float64  `json:"total_quantity"`
	BatchCodes       []string `json:"batch_codes"`
	DisplayDate      string   `json:"display_date"`
}

// Attribute returns the row value for a filter dimension.
func (r *AggregatedRow) Attribute(d Dimension) string {
	switch d {
	case DimWarehouse:
		return r.Warehouse
	case DimCPNCP:
		return r.CPNCP
	case DimSalesDest:
		return r.SalesDest
	case DimCategory:
		return r.Category
	case DimRegion:
		return r.Region
	case DimTaste:
		return r.Taste
	case DimPackage:
		return r.Package
	case DimNotes:
		return r.Notes
	}
	return ""
}

// Summary is the dashboard header rollup over the filtered rows.
type Summary struct {
	TotalStock   float64 `json:"total_stock"`
	SKUCount     int     `json:"sku_count"`
	AvgShelfLife float64 `json:"avg_shelf_life"`
	WarningStock float64 `json:"warning_stock"`
}

// WarningShelfLife is the percent below which stock counts toward the
// summary's warning figure.
const WarningShelfLife = 70

// TreemapNode is one tile of the category treemap.
type TreemapNode struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
}

// StockPage is one page of the filtered, sorted view.
type StockPage struct {
	Items      []AggregatedRow `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// User is an authenticated dashboard user.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Default ordering priority lists. Values absent from a list sort after
// all listed values, keeping their relative input order.
var (
	RegionPriority  = []string{"내수용", "벨라루스용", "카작용", "소머리"}
	TastePriority   = []string{"오리지날", "카카오", "바나나", "치즈", "딸기", "아망테"}
	PackagePriority = []string{"48봉", "16봉", "12봉", "6봉", "4봉"}
)
