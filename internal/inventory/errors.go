package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrSheetNotFound indicates the named sheet is not in the inventory.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrRowOutOfRange indicates a row index outside the sheet.
	ErrRowOutOfRange = errors.New("row index out of range")
	// ErrStorageFull indicates the inventory did not fit in storage and only
	// a summary was saved. In-memory data is intact.
	ErrStorageFull = errors.New("storage capacity exceeded; only a summary was saved")
	// ErrNoData indicates the workbook produced no importable sheets.
	ErrNoData = errors.New("workbook has no importable sheets")
)

// ImportError reports a sheet that could not be read during import.
type ImportError struct {
	Sheet string
	Err   error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import sheet %q: %v", e.Sheet, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
