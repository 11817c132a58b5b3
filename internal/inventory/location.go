package inventory

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Labels are the words used when formatting catalog entries.
type Labels struct {
	Cart, Drawer, RowLetter, RowNumber, Line, Quantity, NoDescription, All, SearchResult string
	// Items is the plural noun used in counts ("12 itens").
	Items string
}

var (
	LabelsPT = Labels{
		Cart:          "Carrinho",
		Drawer:        "Gaveta",
		RowLetter:     "Fileira",
		RowNumber:     "Nº",
		Line:          "Linha",
		Quantity:      "Qtd",
		NoDescription: "(sem descrição)",
		All:           "Todos os locais",
		SearchResult:  "Resultado da busca",
		Items:         "itens",
	}
	LabelsEN = Labels{
		Cart:          "Cart",
		Drawer:        "Drawer",
		RowLetter:     "Row",
		RowNumber:     "No.",
		Line:          "Line",
		Quantity:      "Qty",
		NoDescription: "(no description)",
		All:           "All locations",
		SearchResult:  "Search results",
		Items:         "items",
	}
)

// LabelsFor picks a label set by language code; unknown codes get Portuguese.
func LabelsFor(lang string) Labels {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "en", "en-us", "en-gb", "english":
		return LabelsEN
	default:
		return LabelsPT
	}
}

var cartSheetPattern = regexp.MustCompile(`^(?:CARRINHO|CART)\s*([0-9]+)$`)

// SheetCartNumber reports the cart number encoded in a sheet name such as
// "CARRINHO 1" or "cart2".
func SheetCartNumber(sheet string) (int, bool) {
	m := cartSheetPattern.FindStringSubmatch(NormalizeSheetName(sheet))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseCartNumber strips everything but digits and parses the rest.
// Values without digits are unknown.
func ParseCartNumber(v any) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, FormatValue(v))
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatLocation applies the storage addressing rules: carts 1 and 2 have
// drawer, row letter and row number; cart 3 has no row letter; anything else
// uses a generic location field or the row's position.
func FormatLocation(sheet string, row *Row, index int, l Labels) string {
	sheetCart, sheetIsCart := SheetCartNumber(sheet)
	cartRaw, _ := Resolve(row, CartCandidates...)
	cart, cartKnown := ParseCartNumber(cartRaw)

	drawer := ResolveText(row, DrawerCandidates...)
	number := ResolveText(row, RowNumberCandidates...)

	switch {
	case (sheetIsCart && (sheetCart == 1 || sheetCart == 2)) || (cartKnown && (cart == 1 || cart == 2)):
		label := FormatValue(cartRaw)
		switch {
		case cartKnown && cart != 0:
			label = strconv.Itoa(cart)
		case sheetIsCart:
			label = strconv.Itoa(sheetCart)
		}
		letter := ResolveText(row, RowLetterCandidates...)
		return fmt.Sprintf("%s %s • %s %s • %s %s • %s %s", l.Cart, label, l.Drawer, drawer, l.RowLetter, letter, l.RowNumber, number)
	case (sheetIsCart && sheetCart == 3) || (cartKnown && cart == 3):
		return fmt.Sprintf("%s 3 • %s %s • %s %s", l.Cart, l.Drawer, drawer, l.RowNumber, number)
	}
	if loc := ResolveText(row, LocationCandidates...); loc != "" {
		return loc
	}
	return fmt.Sprintf("%s %d", l.Line, index+1)
}
