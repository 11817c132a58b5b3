package main

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/bekirdag/inventario/internal/config"
	"github.com/bekirdag/inventario/internal/inventory"
	"github.com/bekirdag/inventario/internal/storage"
	"github.com/bekirdag/inventario/internal/workbook"
)

// app wires configuration, storage and the inventory store. Both the TUI
// and the CLI commands work through it.
type app struct {
	cfg       *config.Config
	kv        storage.KV
	store     *inventory.Store
	labels    inventory.Labels
	telemetry *telemetryLogger
}

func openApp(cfg *config.Config) (*app, error) {
	kv, err := storage.OpenSQLite(cfg.DBPath, cfg.QuotaBytes)
	if err != nil {
		return nil, err
	}
	a := newAppWithKV(cfg, kv)
	if _, err := a.store.Restore(); err != nil {
		_ = kv.Close()
		return nil, err
	}
	return a, nil
}

func newAppWithKV(cfg *config.Config, kv storage.KV) *app {
	return &app{
		cfg:       cfg,
		kv:        kv,
		store:     inventory.NewStore(kv, cfg.StoreOptions()),
		labels:    cfg.Labels(),
		telemetry: newTelemetryLogger(cfg.TelemetryPath, newTelemetrySessionID(), resolveTelemetryUserID()),
	}
}

func (a *app) Close() error {
	if a == nil || a.kv == nil {
		return nil
	}
	return a.kv.Close()
}

// importResult describes a finished import; Degraded is set when the data
// only made it to storage as a summary.
type importResult struct {
	Inventory *inventory.Inventory
	Degraded  bool
}

// importSnapshot replaces the inventory with src and persists it. A storage
// overflow is not fatal: the import stands and Degraded is reported.
func (a *app) importSnapshot(src inventory.WorkbookSource, sourceFile string) (importResult, error) {
	inv, err := a.store.ImportWorkbook(src, filepath.Base(sourceFile))
	if err != nil {
		a.telemetry.Emit(telemetryEvent{Event: eventImportFailed, Source: filepath.Base(sourceFile), ExtraJSON: map[string]string{"error": err.Error()}})
		return importResult{}, err
	}
	res := importResult{Inventory: inv}
	a.telemetry.Emit(telemetryEvent{
		Event:  eventImport,
		Source: inv.SourceFile,
		ExtraJSON: map[string]string{
			"sheets": fmt.Sprint(len(inv.Sheets)),
			"rows":   fmt.Sprint(inv.RowCount()),
		},
	})
	if err := a.store.Persist(); err != nil {
		if !errors.Is(err, inventory.ErrStorageFull) {
			return res, err
		}
		res.Degraded = true
		a.telemetry.Emit(telemetryEvent{Event: eventPersistDegraded, Source: inv.SourceFile})
	}
	return res, nil
}

// importFile reads a workbook from disk and imports it.
func (a *app) importFile(path string) (importResult, error) {
	snap, err := workbook.Load(path)
	if err != nil {
		a.telemetry.Emit(telemetryEvent{Event: eventImportFailed, Source: filepath.Base(path), ExtraJSON: map[string]string{"error": err.Error()}})
		return importResult{}, err
	}
	return a.importSnapshot(snap, path)
}

// commitEdit saves an edited row. degraded mirrors importResult.Degraded.
func (a *app) commitEdit(sheet string, index int, fields []inventory.EditField) (row *inventory.Row, degraded bool, err error) {
	row, err = a.store.Commit(sheet, index, fields)
	switch {
	case errors.Is(err, inventory.ErrStorageFull):
		degraded = true
		err = nil
		a.telemetry.EmitRow(eventPersistDegraded, sheet, index, nil)
	case err != nil:
		return nil, false, err
	}
	a.telemetry.EmitRow(eventEditCommit, sheet, index, map[string]string{"fields": fmt.Sprint(len(fields))})
	return row, degraded, nil
}

func (a *app) clear() error {
	if err := a.store.Clear(); err != nil {
		return err
	}
	a.telemetry.Emit(telemetryEvent{Event: eventClear})
	log.Printf("[inventory] inventory cleared")
	return nil
}

func (a *app) setTheme(theme inventory.Theme) error {
	if err := a.store.SaveTheme(theme); err != nil {
		return err
	}
	a.telemetry.Emit(telemetryEvent{Event: eventThemeToggle, ExtraJSON: map[string]string{"theme": string(theme)}})
	return nil
}
