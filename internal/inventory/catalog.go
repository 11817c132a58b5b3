package inventory

import "strings"

// Query selects what the catalog shows. An empty Sheet means every sheet.
type Query struct {
	Sheet  string
	Filter string
}

// Item is one display row of the catalog.
type Item struct {
	Sheet    string
	Index    int
	Label    string
	Quantity string
	Location string
}

// Group is a titled list of items from one sheet.
type Group struct {
	Title    string
	Sheet    string
	Count    int
	Filtered bool
	Items    []Item
}

// Groups builds the display groups for q. Item indexes always refer to the
// row's position in its sheet, so filtered lists still address the right row.
// In all-sheets mode groups without matches are omitted while filtering.
func Groups(inv *Inventory, q Query, l Labels) []Group {
	if inv.Empty() {
		return nil
	}
	filtering := strings.TrimSpace(q.Filter) != ""
	if q.Sheet != "" {
		sh, ok := inv.Sheet(q.Sheet)
		if !ok {
			return nil
		}
		g := buildGroup(sh, q.Filter, l)
		if filtering {
			g.Title = sh.Name + " — " + l.SearchResult
		}
		return []Group{g}
	}
	groups := make([]Group, 0, len(inv.Sheets))
	for _, sh := range inv.Sheets {
		g := buildGroup(sh, q.Filter, l)
		if filtering && g.Count == 0 {
			continue
		}
		groups = append(groups, g)
	}
	return groups
}

func buildGroup(sh *Sheet, filter string, l Labels) Group {
	g := Group{Title: sh.Name, Sheet: sh.Name, Filtered: strings.TrimSpace(filter) != ""}
	for i, row := range sh.Rows {
		if !Matches(row, filter) {
			continue
		}
		g.Items = append(g.Items, Item{
			Sheet:    sh.Name,
			Index:    i,
			Label:    DisplayName(row, l.NoDescription),
			Quantity: ResolveText(row, QuantityCandidates...),
			Location: FormatLocation(sh.Name, row, i, l),
		})
	}
	g.Count = len(g.Items)
	return g
}

// Meta is the secondary line shown under an item label.
func (it Item) Meta(l Labels) string {
	return it.Location + " • " + l.Quantity + ": " + it.Quantity
}

// SheetEntry is a sidebar entry: a sheet name and its row count.
type SheetEntry struct {
	Name  string
	Count int
}

// SheetEntries lists every sheet with its size, in workbook order.
func SheetEntries(inv *Inventory) []SheetEntry {
	if inv == nil {
		return nil
	}
	out := make([]SheetEntry, 0, len(inv.Sheets))
	for _, s := range inv.Sheets {
		out = append(out, SheetEntry{Name: s.Name, Count: len(s.Rows)})
	}
	return out
}
