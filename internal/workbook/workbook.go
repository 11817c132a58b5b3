// Package workbook reads and writes spreadsheet files with excelize.
package workbook

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat indicates a file type excelize cannot open.
var ErrUnsupportedFormat = errors.New("unsupported workbook format (expected .xlsx, .xlsm, .xltx or .xltm)")

var supportedExt = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// Supported reports whether path has a readable workbook extension.
func Supported(path string) bool {
	return supportedExt[strings.ToLower(filepath.Ext(path))]
}

// Extensions lists the readable workbook extensions.
func Extensions() []string {
	return []string{".xlsx", ".xlsm", ".xltx", ".xltm"}
}

// Workbook is an open spreadsheet.
type Workbook struct {
	file   *excelize.File
	name   string
	sheets []string
}

// Open reads the workbook at path.
func Open(path string) (*Workbook, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", filepath.Base(path), err)
	}
	return wrap(f, filepath.Base(path)), nil
}

// OpenReader reads a workbook from r; name is only used for messages.
func OpenReader(r io.Reader, name string) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", name, err)
	}
	return wrap(f, name), nil
}

func wrap(f *excelize.File, name string) *Workbook {
	return &Workbook{file: f, name: name, sheets: f.GetSheetList()}
}

// Name is the workbook file name without directories.
func (w *Workbook) Name() string {
	return w.name
}

// SheetNames lists sheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return append([]string(nil), w.sheets...)
}

// Rows returns the sheet as a grid of formatted cell text.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (w *Workbook) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	return w.file.Close()
}

// Static is an in-memory workbook, handy for tests and piped data.
type Static struct {
	Names []string
	Grids map[string][][]string
}

func (s Static) SheetNames() []string {
	return append([]string(nil), s.Names...)
}

func (s Static) Rows(sheet string) ([][]string, error) {
	grid, ok := s.Grids[sheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q does not exist", sheet)
	}
	return grid, nil
}

// Snapshot reads every sheet into memory so the file can be closed before
// the rows are processed.
func (w *Workbook) Snapshot() (Static, error) {
	snap := Static{Names: w.SheetNames(), Grids: make(map[string][][]string, len(w.sheets))}
	for _, name := range w.sheets {
		rows, err := w.Rows(name)
		if err != nil {
			return Static{}, fmt.Errorf("read sheet %q: %w", name, err)
		}
		snap.Grids[name] = rows
	}
	return snap, nil
}

// Load opens path, snapshots it and closes the file.
func Load(path string) (Static, error) {
	wb, err := Open(path)
	if err != nil {
		return Static{}, err
	}
	defer wb.Close()
	return wb.Snapshot()
}
