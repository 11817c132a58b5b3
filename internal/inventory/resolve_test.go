package inventory

import "testing"

func TestResolvePrefersExactMatch(t *testing.T) {
	row := NewRow(
		Field{Name: "Nome completo", Value: "substring"},
		Field{Name: "NOME", Value: "exact"},
	)
	v, ok := Resolve(row, "nome")
	if !ok || v != "exact" {
		t.Fatalf("expected exact match, got %v (ok=%v)", v, ok)
	}
}

func TestResolveFallsBackToSubstringInFieldOrder(t *testing.T) {
	row := NewRow(
		Field{Name: "Código", Value: "A1"},
		Field{Name: "Quantidade em estoque", Value: 7},
		Field{Name: "Quantidade mínima", Value: 2},
	)
	v, ok := Resolve(row, QuantityCandidates...)
	if !ok || v != 7.0 {
		t.Fatalf("expected first substring match 7, got %v (ok=%v)", v, ok)
	}
}

func TestResolveMiss(t *testing.T) {
	row := NewRow(Field{Name: "Código", Value: "A1"})
	if v, ok := Resolve(row, DrawerCandidates...); ok || v != nil {
		t.Fatalf("expected miss, got %v", v)
	}
	if got := ResolveText(row, DrawerCandidates...); got != "" {
		t.Fatalf("expected empty text on miss, got %q", got)
	}
	if _, ok := Resolve(nil, "x"); ok {
		t.Fatal("nil row should never resolve")
	}
}

func TestDisplayName(t *testing.T) {
	row := NewRow(
		Field{Name: "Nome", Value: ""},
		Field{Name: "descricao", Value: "Broca"},
	)
	if got := DisplayName(row, "-"); got != "Broca" {
		t.Fatalf("expected Broca, got %q", got)
	}

	noCandidates := NewRow(
		Field{Name: "Coluna 1", Value: ""},
		Field{Name: "Coluna 2", Value: "Porca M8"},
	)
	if got := DisplayName(noCandidates, "-"); got != "Porca M8" {
		t.Fatalf("expected first non-empty field, got %q", got)
	}

	blank := NewRow(Field{Name: "Coluna 1", Value: " "})
	if got := DisplayName(blank, LabelsPT.NoDescription); got != LabelsPT.NoDescription {
		t.Fatalf("expected placeholder, got %q", got)
	}
}
