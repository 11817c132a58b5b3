package inventory

import (
	"errors"
	"strings"
	"testing"

	"github.com/bekirdag/inventario/internal/storage"
)

func TestOrderFields(t *testing.T) {
	got := OrderFields([]string{"Local", "Quantidade", "Observação", "Nome", "Área", "Código"})
	want := []string{"Código", "Nome", "Quantidade", "Área", "Local", "Observação"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestOpenReturnsFieldsInEditingOrder(t *testing.T) {
	store := importedSample(t)
	fields, err := store.Open("ARMARIO", 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(fields) != 3 || fields[0].Name != "Nome" || fields[1].Name != "Qtd" || fields[1].Value != "2" {
		t.Fatalf("unexpected fields %+v", fields)
	}
	if _, err := store.Open("ARMARIO", 9); !errors.Is(err, ErrRowOutOfRange) {
		t.Fatalf("expected ErrRowOutOfRange, got %v", err)
	}
}

func TestCommitLeavesUnchangedFieldsAlone(t *testing.T) {
	kv := storage.NewMemory(0)
	store := newTestStore(kv, Options{})
	if _, err := store.ImportWorkbook(sampleSource(), "estoque.xlsx"); err != nil {
		t.Fatalf("import: %v", err)
	}
	fields, err := store.Open("CARRINHO 1", 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for i := range fields {
		if fields[i].Name == "Quantidade" {
			fields[i].Value = "12"
		}
	}
	row, err := store.Commit("CARRINHO 1", 0, fields)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if v, _ := row.Get("Código"); v != "007" {
		t.Fatalf("unchanged code should keep its text form, got %#v", v)
	}
	if v, _ := row.Get("Quantidade"); v != 12.0 {
		t.Fatalf("expected 12, got %#v", v)
	}
	if keys := row.Keys(); keys[0] != "Código" || keys[2] != "Quantidade" {
		t.Fatalf("natural field order changed: %v", keys)
	}

	restored, err := newTestStore(kv, Options{}).Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	sh, _ := restored.Sheet("CARRINHO 1")
	if v, _ := sh.Rows[0].Get("Quantidade"); v != 12.0 {
		t.Fatalf("commit was not persisted, got %#v", v)
	}
}

func TestCommitReportsStorageFull(t *testing.T) {
	store := newTestStore(storage.NewMemory(100), Options{})
	if _, err := store.ImportWorkbook(sampleSource(), "estoque.xlsx"); err != nil {
		t.Fatalf("import: %v", err)
	}
	row, err := store.Commit("ARMARIO", 0, []EditField{{Name: "Qtd", Value: "9"}})
	if !errors.Is(err, ErrStorageFull) {
		t.Fatalf("expected ErrStorageFull, got %v", err)
	}
	if row == nil || row.Text("Qtd") != "9" {
		t.Fatal("row should be updated in memory even when storage is full")
	}
}
