package workbook

import (
	"fmt"

	"github.com/bekirdag/inventario/internal/inventory"
	"github.com/xuri/excelize/v2"
)

// Export writes inv as a workbook, one sheet per inventory sheet. Each
// sheet's header is the union of its rows' field names in first-seen order.
func Export(inv *inventory.Inventory, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	for i, sh := range inv.Sheets {
		name := sh.Name
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}

		header := headerFor(sh.Rows)
		for c, h := range header {
			cellName, err := excelize.CoordinatesToCellName(c+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cellName, h); err != nil {
				return err
			}
		}
		for r, row := range sh.Rows {
			for c, h := range header {
				v, ok := row.Get(h)
				if !ok {
					continue
				}
				cellName, err := excelize.CoordinatesToCellName(c+1, r+2)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(name, cellName, v); err != nil {
					return err
				}
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func headerFor(rows []*inventory.Row) []string {
	seen := make(map[string]bool)
	var header []string
	for _, r := range rows {
		for _, k := range r.Keys() {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}
	return header
}
