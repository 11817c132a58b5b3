package inventory

import (
	"strings"
	"testing"
)

func TestFormatLocation(t *testing.T) {
	cases := []struct {
		name   string
		sheet  string
		row    *Row
		index  int
		labels Labels
		want   string
	}{
		{
			name:  "cart one with full address",
			sheet: "CARRINHO 1",
			row: NewRow(
				Field{Name: "CARRINHO", Value: 1},
				Field{Name: "GAVETA", Value: 5},
				Field{Name: "FILEIRA", Value: "B"},
				Field{Name: "Nº DA FILEIRA", Value: 3},
			),
			labels: LabelsPT,
			want:   "Carrinho 1 • Gaveta 5 • Fileira B • Nº 3",
		},
		{
			name:  "english labels",
			sheet: "CARRINHO 1",
			row: NewRow(
				Field{Name: "CARRINHO", Value: 1},
				Field{Name: "GAVETA", Value: 5},
				Field{Name: "FILEIRA", Value: "B"},
				Field{Name: "Nº DA FILEIRA", Value: 3},
			),
			labels: LabelsEN,
			want:   "Cart 1 • Drawer 5 • Row B • No. 3",
		},
		{
			name:  "english sheet name drives the cart",
			sheet: "Cart 1",
			row: NewRow(
				Field{Name: "GAVETA", Value: 5},
				Field{Name: "FILEIRA", Value: "B"},
				Field{Name: "Nº DA FILEIRA", Value: 3},
			),
			labels: LabelsEN,
			want:   "Cart 1 • Drawer 5 • Row B • No. 3",
		},
		{
			name:  "cart three has no row letter",
			sheet: "CARRINHO 3",
			row: NewRow(
				Field{Name: "GAVETA", Value: 2},
				Field{Name: "FILEIRA", Value: "C"},
				Field{Name: "Nº DA FILEIRA", Value: 7},
			),
			labels: LabelsPT,
			want:   "Carrinho 3 • Gaveta 2 • Nº 7",
		},
		{
			name:   "cart field on a generic sheet",
			sheet:  "GERAL",
			row:    NewRow(Field{Name: "carrinho", Value: "Carrinho 2"}, Field{Name: "gaveta", Value: 1}, Field{Name: "fileira", Value: "A"}, Field{Name: "nº da fileira", Value: 4}),
			labels: LabelsPT,
			want:   "Carrinho 2 • Gaveta 1 • Fileira A • Nº 4",
		},
		{
			name:   "generic location field",
			sheet:  "ARMARIO",
			row:    NewRow(Field{Name: "Nome", Value: "Paquímetro"}, Field{Name: "Local de armazenamento", Value: "Prateleira 2"}),
			labels: LabelsPT,
			want:   "Prateleira 2",
		},
		{
			name:   "falls back to the row position",
			sheet:  "ARMARIO",
			row:    NewRow(Field{Name: "Nome", Value: "Paquímetro"}),
			index:  4,
			labels: LabelsPT,
			want:   "Linha 5",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatLocation(tc.sheet, tc.row, tc.index, tc.labels); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatLocationUnknownCartUsesSheetNumber(t *testing.T) {
	row := NewRow(Field{Name: "CARRINHO", Value: "?"}, Field{Name: "GAVETA", Value: 1})
	got := FormatLocation("CARRINHO 2", row, 0, LabelsPT)
	if !strings.HasPrefix(got, "Carrinho 2 • Gaveta 1") {
		t.Fatalf("unexpected location %q", got)
	}
}

func TestSheetCartNumber(t *testing.T) {
	if n, ok := SheetCartNumber(" carrinho 2 "); !ok || n != 2 {
		t.Fatalf("expected cart 2, got %d (ok=%v)", n, ok)
	}
	if n, ok := SheetCartNumber("cart3"); !ok || n != 3 {
		t.Fatalf("expected cart 3, got %d (ok=%v)", n, ok)
	}
	if _, ok := SheetCartNumber("ARMARIO"); ok {
		t.Fatal("ARMARIO is not a cart")
	}
}

func TestParseCartNumber(t *testing.T) {
	if n, ok := ParseCartNumber("Carrinho 01"); !ok || n != 1 {
		t.Fatalf("expected 1, got %d (ok=%v)", n, ok)
	}
	if n, ok := ParseCartNumber(3.0); !ok || n != 3 {
		t.Fatalf("expected 3, got %d (ok=%v)", n, ok)
	}
	if _, ok := ParseCartNumber("sem número"); ok {
		t.Fatal("text without digits has no cart number")
	}
}

func TestLabelsFor(t *testing.T) {
	if LabelsFor("EN").Cart != "Cart" {
		t.Fatal("expected english labels")
	}
	if LabelsFor("de").Cart != "Carrinho" {
		t.Fatal("unknown languages fall back to portuguese")
	}
}
