package inventory

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/bekirdag/inventario/internal/storage"
)

// Default storage keys.
const (
	DefaultDataKey  = "inventario_usinagem"
	DefaultThemeKey = "inventario_theme"
	summarySuffix   = "_mini"
)

// WorkbookSource is the spreadsheet reader the store imports from.
type WorkbookSource interface {
	SheetNames() []string
	Rows(sheet string) ([][]string, error)
}

// Options configures a Store.
type Options struct {
	DataKey         string
	ThemeKey        string
	Compress        bool
	KeepEmptySheets bool
	Excluded        ExcludedSet
	Now             func() time.Time
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.DataKey) == "" {
		o.DataKey = DefaultDataKey
	}
	if strings.TrimSpace(o.ThemeKey) == "" {
		o.ThemeKey = DefaultThemeKey
	}
	if o.Excluded == nil {
		o.Excluded = NewExcludedSet(DefaultExcludedSheets...)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Store owns the in-memory inventory and its persisted copy. The inventory
// returned by Inventory is live and must only be changed through the store.
type Store struct {
	mu   sync.Mutex
	kv   storage.KV
	opts Options
	inv  *Inventory
}

func NewStore(kv storage.KV, opts Options) *Store {
	return &Store{kv: kv, opts: opts.withDefaults(), inv: &Inventory{}}
}

// Inventory returns the current inventory.
func (s *Store) Inventory() *Inventory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv
}

// SummaryKey is where the reduced summary goes on overflow.
func (s *Store) SummaryKey() string {
	return s.opts.DataKey + summarySuffix
}

// ImportWorkbook replaces the inventory with the sheets read from src. The
// new inventory is built aside and swapped in only when every sheet was read.
func (s *Store) ImportWorkbook(src WorkbookSource, sourceFile string) (*Inventory, error) {
	next := &Inventory{SourceFile: strings.TrimSpace(sourceFile), ImportedAt: s.opts.Now().UTC()}
	seen := make(map[string]bool)
	for _, name := range src.SheetNames() {
		if s.opts.Excluded.Contains(name) {
			continue
		}
		grid, err := src.Rows(name)
		if err != nil {
			return nil, &ImportError{Sheet: name, Err: err}
		}
		rows := Recover(grid)
		if len(rows) == 0 && !s.opts.KeepEmptySheets {
			continue
		}
		trimmed := strings.TrimSpace(name)
		if seen[trimmed] {
			log.Printf("[inventory] sheet %q duplicates an earlier sheet name after trimming; skipped", name)
			continue
		}
		seen[trimmed] = true
		next.Sheets = append(next.Sheets, &Sheet{Name: trimmed, Rows: rows})
	}
	if len(next.Sheets) == 0 {
		return nil, ErrNoData
	}
	s.mu.Lock()
	s.inv = next
	s.mu.Unlock()
	return next, nil
}

// Persist writes the inventory to storage. When it does not fit, a per-sheet
// summary is written instead and ErrStorageFull is returned; the in-memory
// inventory is untouched either way.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := Encode(s.inv, s.opts.Compress)
	if err != nil {
		return err
	}
	err = s.kv.Set(s.opts.DataKey, payload)
	if err == nil {
		if derr := s.kv.Delete(s.SummaryKey()); derr != nil {
			log.Printf("[inventory] drop stale summary: %v", derr)
		}
		return nil
	}
	if !errors.Is(err, storage.ErrQuotaExceeded) {
		return fmt.Errorf("persist inventory: %w", err)
	}
	log.Printf("[inventory] inventory payload of %d bytes exceeds storage quota; saving summary", len(payload))
	summary, serr := EncodeSummary(Summarize(s.inv), s.opts.Compress)
	if serr == nil {
		serr = s.kv.Set(s.SummaryKey(), summary)
	}
	if serr != nil {
		log.Printf("[inventory] summary not saved: %v", serr)
	}
	return ErrStorageFull
}

// Restore loads the persisted inventory. Missing or undecodable data yields
// an empty inventory; only storage read failures are returned.
func (s *Store) Restore() (*Inventory, error) {
	payload, ok, err := s.kv.Get(s.opts.DataKey)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.inv = &Inventory{}
		return s.inv, fmt.Errorf("restore inventory: %w", err)
	}
	if !ok || strings.TrimSpace(payload) == "" {
		s.inv = &Inventory{}
		return s.inv, nil
	}
	inv, err := Decode(payload)
	if err != nil {
		log.Printf("[inventory] saved data could not be decoded, starting empty: %v", err)
		s.inv = &Inventory{}
		return s.inv, nil
	}
	s.inv = inv
	return inv, nil
}

// Row returns the row at index in sheet.
func (s *Store) Row(sheet string, index int) (*Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rowLocked(sheet, index)
}

func (s *Store) rowLocked(sheet string, index int) (*Row, error) {
	sh, ok := s.inv.Sheet(sheet)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	if index < 0 || index >= len(sh.Rows) {
		return nil, fmt.Errorf("%w: %d (sheet %q has %d rows)", ErrRowOutOfRange, index, sheet, len(sh.Rows))
	}
	return sh.Rows[index], nil
}

// UpdateField sets one field of one row. Values that parse fully as numbers
// are stored as numbers.
func (s *Store) UpdateField(sheet string, index int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, err := s.rowLocked(sheet, index)
	if err != nil {
		return err
	}
	row.Set(field, ParseValue(value))
	return nil
}

// Clear empties the inventory and removes its persisted copies.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inv = &Inventory{}
	if err := s.kv.Delete(s.opts.DataKey, s.SummaryKey()); err != nil {
		return fmt.Errorf("clear inventory: %w", err)
	}
	return nil
}

// LoadTheme reads the theme preference, defaulting to dark.
func (s *Store) LoadTheme() Theme {
	raw, ok, err := s.kv.Get(s.opts.ThemeKey)
	if err != nil {
		log.Printf("[inventory] read theme: %v", err)
	}
	if !ok {
		return ThemeDark
	}
	return ParseTheme(raw)
}

// SaveTheme persists the theme preference.
func (s *Store) SaveTheme(t Theme) error {
	return s.kv.Set(s.opts.ThemeKey, string(t))
}
