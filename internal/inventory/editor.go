package inventory

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// editorPriority puts identifying fields first in the edit form.
var editorPriority = []string{"código", "codigo", "cod", "sap", "nome", "descrição", "descricao", "quantidade", "qtd", "quant"}

// EditField is one editable field as presented in the form.
type EditField struct {
	Name  string
	Value string
}

// OrderFields sorts field names for editing: names containing a priority
// token come first in token order, the rest follow in collation order.
func OrderFields(names []string) []string {
	out := append([]string(nil), names...)
	coll := collate.New(language.Portuguese)
	rank := func(name string) int {
		lower := strings.ToLower(name)
		for i, p := range editorPriority {
			if strings.Contains(lower, p) {
				return i
			}
		}
		return -1
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		switch {
		case ri == -1 && rj == -1:
			return coll.CompareString(out[i], out[j]) < 0
		case ri == -1:
			return false
		case rj == -1:
			return true
		default:
			return ri < rj
		}
	})
	return out
}

// Open returns the fields of a row in editing order.
func (s *Store) Open(sheet string, index int) ([]EditField, error) {
	row, err := s.Row(sheet, index)
	if err != nil {
		return nil, err
	}
	names := OrderFields(row.Keys())
	fields := make([]EditField, 0, len(names))
	for _, n := range names {
		fields = append(fields, EditField{Name: n, Value: row.Text(n)})
	}
	return fields, nil
}

// Commit applies the submitted values to the row and persists. Fields whose
// text is unchanged are left alone so codes like "007" keep their zeros. A
// storage overflow is reported through the returned error (ErrStorageFull)
// while the row itself is already updated and returned.
func (s *Store) Commit(sheet string, index int, fields []EditField) (*Row, error) {
	current, err := s.Row(sheet, index)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		if v, ok := current.Get(f.Name); ok && FormatValue(v) == f.Value {
			continue
		}
		if err := s.UpdateField(sheet, index, f.Name, f.Value); err != nil {
			return nil, err
		}
	}
	row, err := s.Row(sheet, index)
	if err != nil {
		return nil, err
	}
	return row, s.Persist()
}
