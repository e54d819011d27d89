package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
)

// Column headers of the warehouse export.
const (
	colCode        = "Код номенклатуры"
	colFullName    = "Наименование номенклатуры"
	colShortName   = "Краткое наименование"
	colWarehouse   = "Склад"
	colBatch       = "Номер партии"
	colLocation    = "Местоположение"
	colStock       = "Физ. доступно"
	colShelfLife   = "% годности"
	colLine        = "Наименование строки"
	colProductLine = "Продукция линии"
)

// Column headers of the product reference export.
const (
	refColCode      = "제품코드"
	refColName      = "제품명"
	refColCPNCP     = "CP/NCP"
	refColSalesDest = "판매지"
	refColCategory  = "카테고리"
	refColRegion    = "브랜드"
	refColTaste     = "맛"
	refColPackage   = "패키지"
	refColNotes     = "비고"
)

// DecodeSnapshotCSV parses the warehouse export. Fields are matched by
// named header, not position. Rows without a product code are skipped;
// unparseable numbers degrade to 0.
func DecodeSnapshotCSV(r io.Reader) ([]domain.RawStockRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := headerIndex(header)
	for _, col := range []string{colCode, colStock} {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var rows []domain.RawStockRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		getValue := func(colName string) string {
			if idx, ok := colMap[colName]; ok && idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}
		getFloat := func(colName string) float64 {
			f, _ := strconv.ParseFloat(getValue(colName), 64)
			return f
		}

		code := getValue(colCode)
		if code == "" {
			continue
		}

		rows = append(rows, domain.RawStockRow{
			ProductCode:      code,
			FullName:         getValue(colFullName),
			ShortName:        getValue(colShortName),
			Warehouse:        getValue(colWarehouse),
			BatchCode:        getValue(colBatch),
			Location:         getValue(colLocation),
			Quantity:         getFloat(colStock),
			ShelfLifePercent: getFloat(colShelfLife),
			LineLabel:        getValue(colLine),
			ProductLine:      getValue(colProductLine),
		})
	}

	return rows, nil
}

// DecodeReferenceCSV parses the product reference export. Every
// attribute is optional; records without a product code are skipped.
func DecodeReferenceCSV(r io.Reader) ([]domain.ReferenceRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read reference header: %w", err)
	}
	colMap := headerIndex(header)
	if _, ok := colMap[refColCode]; !ok {
		return nil, fmt.Errorf("missing required column: %s", refColCode)
	}

	var records []domain.ReferenceRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read reference record: %w", err)
		}

		getValue := func(colName string) string {
			if idx, ok := colMap[colName]; ok && idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}

		code := getValue(refColCode)
		if code == "" {
			continue
		}

		records = append(records, domain.ReferenceRecord{
			ProductCode: code,
			Name:        getValue(refColName),
			CPNCP:       getValue(refColCPNCP),
			SalesDest:   getValue(refColSalesDest),
			Category:    getValue(refColCategory),
			Region:      getValue(refColRegion),
			Taste:       getValue(refColTaste),
			Package:     getValue(refColPackage),
			Notes:       getValue(refColNotes),
		})
	}

	return records, nil
}

func headerIndex(header []string) map[string]int {
	colMap := make(map[string]int, len(header))
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\uFEFF")
		}
		colMap[strings.TrimSpace(col)] = i
	}
	return colMap
}
