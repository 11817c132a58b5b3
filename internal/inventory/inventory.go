// Package inventory holds the workbook-derived inventory: import with header
// recovery, field heuristics, catalog grouping, search and row editing.
package inventory

import (
	"strings"
	"time"
)

// Sheet is one named partition of the workbook.
type Sheet struct {
	Name string `json:"name"`
	Rows []*Row `json:"rows"`
}

// Inventory maps sheet names to sheets, keeping workbook order.
type Inventory struct {
	SourceFile string    `json:"source,omitempty"`
	ImportedAt time.Time `json:"imported_at,omitempty"`
	Sheets     []*Sheet  `json:"sheets"`
}

// Sheet returns the sheet with the exact name.
func (inv *Inventory) Sheet(name string) (*Sheet, bool) {
	if inv == nil {
		return nil, false
	}
	for _, s := range inv.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Names lists sheet names in workbook order.
func (inv *Inventory) Names() []string {
	if inv == nil {
		return nil
	}
	names := make([]string, 0, len(inv.Sheets))
	for _, s := range inv.Sheets {
		names = append(names, s.Name)
	}
	return names
}

// Empty reports whether the inventory has no sheets.
func (inv *Inventory) Empty() bool {
	return inv == nil || len(inv.Sheets) == 0
}

// RowCount sums rows over every sheet.
func (inv *Inventory) RowCount() int {
	if inv == nil {
		return 0
	}
	total := 0
	for _, s := range inv.Sheets {
		total += len(s.Rows)
	}
	return total
}

// Clone returns a deep copy.
func (inv *Inventory) Clone() *Inventory {
	if inv == nil {
		return nil
	}
	out := &Inventory{SourceFile: inv.SourceFile, ImportedAt: inv.ImportedAt}
	for _, s := range inv.Sheets {
		rows := make([]*Row, len(s.Rows))
		for i, r := range s.Rows {
			rows[i] = r.Clone()
		}
		out.Sheets = append(out.Sheets, &Sheet{Name: s.Name, Rows: rows})
	}
	return out
}

// Equal compares sheet order, names and rows. Metadata is ignored.
func (inv *Inventory) Equal(other *Inventory) bool {
	if inv.Empty() || other.Empty() {
		return inv.Empty() == other.Empty()
	}
	if len(inv.Sheets) != len(other.Sheets) {
		return false
	}
	for i, s := range inv.Sheets {
		o := other.Sheets[i]
		if s.Name != o.Name || len(s.Rows) != len(o.Rows) {
			return false
		}
		for j := range s.Rows {
			if !s.Rows[j].Equal(o.Rows[j]) {
				return false
			}
		}
	}
	return true
}

// NormalizeSheetName trims and upper-cases a sheet name for comparisons.
func NormalizeSheetName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// ExcludedSet is a case and whitespace insensitive set of sheet names.
type ExcludedSet map[string]struct{}

// DefaultExcludedSheets are never imported unless configured otherwise.
var DefaultExcludedSheets = []string{"materiais SAP (2)", "materiais SAP-ALTERADO", "PADRAO"}

func NewExcludedSet(names ...string) ExcludedSet {
	set := make(ExcludedSet, len(names))
	for _, n := range names {
		if key := NormalizeSheetName(n); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

func (s ExcludedSet) Contains(name string) bool {
	_, ok := s[NormalizeSheetName(name)]
	return ok
}
