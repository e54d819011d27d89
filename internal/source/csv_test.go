package source

import (
	"strings"
	"testing"
)

const snapshotCSV = "\uFEFF" + `Код номенклатуры,Наименование номенклатуры,Краткое наименование,Склад,Номер партии,Местоположение,Физ. доступно,% годности,Наименование строки,Продукция линии
2141,ЧокоПай матча 8шт,초코파이 말차,LProduct,20112024,A-01,120,85.5,Line-1,초코파이
2142,,초코파이 카카오,LProduct,15102024,A-02,40,72,Line-1,초코파이
,ghost row,,LProduct,,,10,50,,
1684,Custard cake,카스타드,SubMat,5032026,B-07,abc,91,Line-2,기타
`

func TestDecodeSnapshotCSV(t *testing.T) {
	rows, err := DecodeSnapshotCSV(strings.NewReader(snapshotCSV))
	if err != nil {
		t.Fatalf("DecodeSnapshotCSV() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (row without code skipped)", len(rows))
	}

	first := rows[0]
	if first.ProductCode != "2141" {
		t.Errorf("ProductCode = %q, want 2141", first.ProductCode)
	}
	if first.ShortName != "초코파이 말차" {
		t.Errorf("ShortName = %q", first.ShortName)
	}
	if first.Quantity != 120 {
		t.Errorf("Quantity = %v, want 120", first.Quantity)
	}
	if first.ShelfLifePercent != 85.5 {
		t.Errorf("ShelfLifePercent = %v, want 85.5", first.ShelfLifePercent)
	}
	if first.BatchCode != "20112024" {
		t.Errorf("BatchCode = %q, want 20112024", first.BatchCode)
	}

	// Unparseable quantity degrades to zero rather than failing the file.
	if rows[2].Quantity != 0 {
		t.Errorf("Quantity = %v, want 0 for unparseable value", rows[2].Quantity)
	}
}

func TestDecodeSnapshotCSVColumnOrder(t *testing.T) {
	// Columns are matched by header name, not position.
	reordered := `Физ. доступно,Код номенклатуры,% годности
50,9001,66
`
	rows, err := DecodeSnapshotCSV(strings.NewReader(reordered))
	if err != nil {
		t.Fatalf("DecodeSnapshotCSV() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].ProductCode != "9001" || rows[0].Quantity != 50 || rows[0].ShelfLifePercent != 66 {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestDecodeSnapshotCSVMissingColumn(t *testing.T) {
	noStock := `Код номенклатуры,Склад
2141,LProduct
`
	if _, err := DecodeSnapshotCSV(strings.NewReader(noStock)); err == nil {
		t.Fatal("expected error for missing stock column")
	}
}

func TestDecodeReferenceCSV(t *testing.T) {
	refCSV := "\uFEFF" + `제품코드,제품명,CP/NCP,판매지,카테고리,브랜드,맛,패키지,비고
2141,초코파이 말차 48봉,CP,내수용,신제품,초코파이,말차,48봉,
1684,카스타드,NCP,카작용,기타,기타,오리지날,12봉,단산예정

,orphan,,,,,,,
`
	records, err := DecodeReferenceCSV(strings.NewReader(refCSV))
	if err != nil {
		t.Fatalf("DecodeReferenceCSV() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.ProductCode != "2141" {
		t.Errorf("ProductCode = %q, want 2141", first.ProductCode)
	}
	if first.SalesDest != "내수용" || first.Taste != "말차" || first.Package != "48봉" {
		t.Errorf("record = %+v", first)
	}
	if records[1].Notes != "단산예정" {
		t.Errorf("Notes = %q, want 단산예정", records[1].Notes)
	}
}

func TestDecodeReferenceCSVMissingCode(t *testing.T) {
	noCode := `제품명,카테고리
초코파이,신제품
`
	if _, err := DecodeReferenceCSV(strings.NewReader(noCode)); err == nil {
		t.Fatal("expected error for missing code column")
	}
}
