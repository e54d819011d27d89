package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLocalSourceLatest(t *testing.T) {
	dir := t.TempDir()
	older := `Код номенклатуры,Физ. доступно
1111,10
`
	newer := `Код номенклатуры,Физ. доступно
2222,20
`
	writeFile(t, dir, "재고raw데이터_20241110.csv", older)
	writeFile(t, dir, "재고raw데이터_20241120.csv", newer)
	writeFile(t, dir, "notes.txt", "ignore me")

	snap, err := NewLocalSource(dir).Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if snap.Name != "재고raw데이터_20241120.csv" {
		t.Errorf("Name = %q, want newest export", snap.Name)
	}
	if len(snap.Rows) != 1 || snap.Rows[0].ProductCode != "2222" {
		t.Errorf("Rows = %+v, want the newer export's rows", snap.Rows)
	}
}

func TestLocalSourceEmptyDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "reference.csv", "제품코드\n")

	_, err := NewLocalSource(dir).Latest(context.Background())
	if !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("Latest() error = %v, want ErrNoSnapshot", err)
	}
}
