package inventory

import "strings"

// Candidate name lists, in priority order.
var (
	DisplayNameCandidates = []string{"descrição", "descricao", "nome", "item", "material", "produto", "description", "descr"}
	QuantityCandidates    = []string{"quantidade", "qtd", "quant", "qty", "contagem"}
	CartCandidates        = []string{"CARRINHO", "carrinho"}
	DrawerCandidates      = []string{"GAVETA", "gaveta"}
	RowLetterCandidates   = []string{"FILEIRA", "fileira"}
	RowNumberCandidates   = []string{"Nº DA FILEIRA", "N DA FILEIRA", "nº da fileira", "n da fileira", "num da fileira"}
	LocationCandidates    = []string{"local", "loc", "armazen", "armazenamento", "local de armazenamento", "location"}
)

// Resolve finds the value of the first field matching any candidate.
// Exact case-insensitive matches are tried first in candidate order, then
// the row's fields are scanned in natural order for a name containing any
// candidate. It returns nil, false when nothing matches.
func Resolve(row *Row, candidates ...string) (any, bool) {
	if row == nil || row.Len() == 0 || len(candidates) == 0 {
		return nil, false
	}
	lookup := make(map[string]string, row.Len())
	for _, k := range row.keys {
		lk := strings.ToLower(strings.TrimSpace(k))
		if _, seen := lookup[lk]; !seen {
			lookup[lk] = k
		}
	}
	needles := make([]string, 0, len(candidates))
	for _, c := range candidates {
		needles = append(needles, strings.ToLower(strings.TrimSpace(c)))
	}
	for _, n := range needles {
		if real, ok := lookup[n]; ok {
			return row.values[real], true
		}
	}
	for _, k := range row.keys {
		lk := strings.ToLower(strings.TrimSpace(k))
		for _, n := range needles {
			if n != "" && strings.Contains(lk, n) {
				return row.values[k], true
			}
		}
	}
	return nil, false
}

// ResolveText is Resolve rendered for display; misses yield "".
func ResolveText(row *Row, candidates ...string) string {
	v, _ := Resolve(row, candidates...)
	return FormatValue(v)
}

// DisplayName guesses a human readable label for row. Each preferred
// candidate is tried on its own; the first non-empty hit wins, then the
// first non-empty field, then placeholder.
func DisplayName(row *Row, placeholder string) string {
	for _, c := range DisplayNameCandidates {
		if v := ResolveText(row, c); strings.TrimSpace(v) != "" {
			return v
		}
	}
	for _, k := range row.Keys() {
		if v := row.Text(k); strings.TrimSpace(v) != "" {
			return v
		}
	}
	return placeholder
}
