package main

import (
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bekirdag/inventario/internal/config"
	"github.com/bekirdag/inventario/internal/inventory"
	"github.com/bekirdag/inventario/internal/storage"
	"github.com/bekirdag/inventario/internal/workbook"
)

func newTestModel(t *testing.T) (*model, *config.Config) {
	t.Helper()
	isolateHome(t)
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	a := newAppWithKV(cfg, storage.NewMemory(cfg.QuotaBytes))
	m := newModel(a)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, cfg
}

func sampleSnapshot() workbook.Static {
	return workbook.Static{
		Names: []string{"ESTOQUE", "PADRAO"},
		Grids: map[string][][]string{
			"ESTOQUE": {
				{"Código", "Descrição", "Qtd"},
				{"001", "Parafuso", "10"},
				{"002", "Porca", "5"},
			},
			"PADRAO": {{"Nome"}, {"modelo"}},
		},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelStartsEmpty(t *testing.T) {
	m, _ := newTestModel(t)
	if m.currentSheet != "" || m.itemsCol.Len() != 0 {
		t.Fatalf("expected empty catalog, got sheet %q with %d items", m.currentSheet, m.itemsCol.Len())
	}
	if m.sheetsCol.Len() != 1 {
		t.Fatalf("sidebar should only hold the all-sheets entry, got %d", m.sheetsCol.Len())
	}
	if view := m.View(); !strings.Contains(view, "inventario") {
		t.Fatalf("header missing from view:\n%s", view)
	}
}

func TestModelIgnoresSupersededImport(t *testing.T) {
	m, cfg := newTestModel(t)
	m.importSeq = 2
	m.importing = true

	m.Update(workbookLoadedMsg{seq: 1, path: "/tmp/old.xlsx", snap: sampleSnapshot()})
	if !m.app.store.Inventory().Empty() || !m.importing {
		t.Fatal("superseded read must not be applied")
	}

	m.Update(workbookLoadedMsg{seq: 2, path: "/tmp/planilhas/estoque.xlsx", snap: sampleSnapshot()})
	inv := m.app.store.Inventory()
	if names := inv.Names(); len(names) != 1 || names[0] != "ESTOQUE" {
		t.Fatalf("unexpected sheets %v", names)
	}
	if m.importing || m.currentSheet != "ESTOQUE" || m.itemsCol.Len() != 2 {
		t.Fatalf("model not refreshed: importing=%v sheet=%q items=%d", m.importing, m.currentSheet, m.itemsCol.Len())
	}
	if m.currentItem == nil || m.currentItem.Label != "Parafuso" {
		t.Fatalf("first item should be previewed, got %+v", m.currentItem)
	}
	if cfg.LastImportDir != "/tmp/planilhas" {
		t.Fatalf("last import dir not remembered: %q", cfg.LastImportDir)
	}

	data, err := os.ReadFile(cfg.TelemetryPath)
	if err != nil {
		t.Fatalf("read telemetry: %v", err)
	}
	if !strings.Contains(string(data), `"event":"import"`) {
		t.Fatalf("import not recorded:\n%s", data)
	}
}

func TestModelImportErrorKeepsState(t *testing.T) {
	m, _ := newTestModel(t)
	m.importSeq = 1
	m.Update(workbookLoadedMsg{seq: 1, path: "planilha.ods", err: workbook.ErrUnsupportedFormat})
	if !m.toastError || !strings.Contains(m.toastMessage, "formato não suportado") {
		t.Fatalf("expected error toast, got %q", m.toastMessage)
	}

	m.importSeq = 2
	empty := workbook.Static{Names: []string{"PADRAO"}, Grids: sampleSnapshot().Grids}
	m.Update(workbookLoadedMsg{seq: 2, path: "vazio.xlsx", snap: empty})
	if !m.app.store.Inventory().Empty() {
		t.Fatal("a workbook without data must not replace the inventory")
	}
}

func importSample(t *testing.T, m *model) {
	t.Helper()
	m.importSeq++
	m.Update(workbookLoadedMsg{seq: m.importSeq, path: "estoque.xlsx", snap: sampleSnapshot()})
	if m.app.store.Inventory().Empty() {
		t.Fatal("sample import failed")
	}
}

func TestModelDebouncedSearch(t *testing.T) {
	m, _ := newTestModel(t)
	importSample(t, m)

	m.Update(runes("/"))
	if !m.searchFocused {
		t.Fatal("slash should focus the search box")
	}
	for _, r := range "par" {
		m.Update(runes(string(r)))
	}
	if m.searchRuns != 0 {
		t.Fatal("typing alone must not run the search")
	}

	m.Update(searchDebounceMsg{ID: m.debouncer.lastID - 1, Query: "pa"})
	if m.searchRuns != 0 {
		t.Fatal("stale debounce message ran a search")
	}
	m.Update(searchDebounceMsg{ID: m.debouncer.lastID, Query: "par"})
	if m.searchRuns != 1 || m.query != "par" {
		t.Fatalf("expected one search for %q, got %d runs with %q", "par", m.searchRuns, m.query)
	}
	if m.itemsCol.Len() != 1 || m.currentItem == nil || m.currentItem.Label != "Parafuso" {
		t.Fatalf("expected only Parafuso, got %d items", m.itemsCol.Len())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.searchFocused || m.query != "par" {
		t.Fatal("esc in the search box should blur it and keep the query")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.query != "" || m.itemsCol.Len() != 2 {
		t.Fatalf("second esc should clear the query, got %q with %d items", m.query, m.itemsCol.Len())
	}
}

func TestModelShowAll(t *testing.T) {
	m, _ := newTestModel(t)
	importSample(t, m)
	m.Update(runes("a"))
	if m.currentSheet != "" || m.itemsCol.Len() != 2 {
		t.Fatalf("show all should list every sheet, got %q / %d", m.currentSheet, m.itemsCol.Len())
	}
	entry, ok := m.itemsCol.SelectedEntry()
	if !ok || !strings.HasPrefix(entry.title, "ESTOQUE › ") {
		t.Fatalf("all-sheets entries carry their sheet, got %q", entry.title)
	}
}

func TestModelEditRow(t *testing.T) {
	m, _ := newTestModel(t)
	importSample(t, m)
	m.itemsCol.Select(1)
	m.syncPreview()

	m.Update(runes("e"))
	if m.overlay != overlayEditor || m.editor == nil {
		t.Fatal("e should open the editor")
	}
	if m.editor.index != 1 || m.editor.names[0] != "Código" {
		t.Fatalf("unexpected editor target %d %v", m.editor.index, m.editor.names)
	}
	for i, name := range m.editor.names {
		if name == "Qtd" {
			m.editor.inputs[i].SetValue("25")
		}
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.overlay != overlayNone {
		t.Fatal("saving should close the editor")
	}
	row, err := m.app.store.Row("ESTOQUE", 1)
	if err != nil {
		t.Fatalf("row: %v", err)
	}
	if v, _ := row.Get("Qtd"); v != 25.0 {
		t.Fatalf("expected 25, got %#v", v)
	}
	if v, _ := row.Get("Código"); v != "002" {
		t.Fatalf("untouched code changed to %#v", v)
	}
	if m.toastError {
		t.Fatalf("unexpected error toast %q", m.toastMessage)
	}
}

func TestModelEditKeepsLongFields(t *testing.T) {
	m, _ := newTestModel(t)
	notes := strings.Repeat("a", 1500)
	snap := workbook.Static{
		Names: []string{"ESTOQUE"},
		Grids: map[string][][]string{
			"ESTOQUE": {
				{"Código", "Descrição", "Qtd", "Obs"},
				{"001", "Parafuso", "10", notes},
			},
		},
	}
	m.importSeq++
	m.Update(workbookLoadedMsg{seq: m.importSeq, path: "estoque.xlsx", snap: snap})

	m.Update(runes("e"))
	if m.editor == nil {
		t.Fatal("e should open the editor")
	}
	for i, name := range m.editor.names {
		switch name {
		case "Obs":
			if got := len(m.editor.inputs[i].Value()); got != len(notes) {
				t.Fatalf("editor shows %d of %d characters", got, len(notes))
			}
		case "Qtd":
			m.editor.inputs[i].SetValue("11")
		}
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	row, err := m.app.store.Row("ESTOQUE", 0)
	if err != nil {
		t.Fatalf("row: %v", err)
	}
	if v, _ := row.Get("Qtd"); v != 11.0 {
		t.Fatalf("expected 11, got %#v", v)
	}
	if got := row.Text("Obs"); got != notes {
		t.Fatalf("long field was rewritten to %d characters", len(got))
	}
}

func TestModelEditWithoutChangesDoesNotPersist(t *testing.T) {
	m, _ := newTestModel(t)
	importSample(t, m)
	m.Update(runes("e"))
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.overlay != overlayNone || m.toastMessage != "Nenhuma alteração." {
		t.Fatalf("expected no-op save, got overlay %d toast %q", m.overlay, m.toastMessage)
	}
}

func TestModelToggleTheme(t *testing.T) {
	m, _ := newTestModel(t)
	if m.theme != inventory.ThemeDark {
		t.Fatalf("expected dark default, got %q", m.theme)
	}
	m.Update(runes("t"))
	if m.theme != inventory.ThemeLight || m.app.store.LoadTheme() != inventory.ThemeLight {
		t.Fatal("theme toggle should persist light")
	}
}

func TestModelClearNeedsConfirmation(t *testing.T) {
	m, _ := newTestModel(t)
	importSample(t, m)

	m.Update(runes("x"))
	if m.overlay != overlayConfirmClear {
		t.Fatal("x should ask for confirmation")
	}
	m.Update(runes("n"))
	if m.overlay != overlayNone || m.app.store.Inventory().Empty() {
		t.Fatal("cancel must keep the data")
	}

	m.Update(runes("x"))
	m.Update(runes("y"))
	if !m.app.store.Inventory().Empty() || m.itemsCol.Len() != 0 {
		t.Fatal("confirmed clear should empty the inventory")
	}
	if _, ok, _ := m.app.kv.Get(m.app.cfg.StorageKey); ok {
		t.Fatal("persisted data should be removed")
	}
}

func TestModelStorageFullStillImports(t *testing.T) {
	isolateHome(t)
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	plain := false
	cfg.Compress = &plain
	m := newModel(newAppWithKV(cfg, storage.NewMemory(120)))
	importSample(t, m)
	if m.itemsCol.Len() != 2 {
		t.Fatal("import should stand even when storage is full")
	}
	if !m.toastError || !strings.Contains(m.toastMessage, "Armazenamento cheio") {
		t.Fatalf("expected storage warning, got %q", m.toastMessage)
	}
	if _, ok, _ := m.app.kv.Get(cfg.StorageKey + "_mini"); !ok {
		t.Fatal("summary should be saved on overflow")
	}
}

func TestImportSnapshotReportsDegraded(t *testing.T) {
	isolateHome(t)
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	plain := false
	cfg.Compress = &plain
	a := newAppWithKV(cfg, storage.NewMemory(120))
	res, err := a.importSnapshot(sampleSnapshot(), "estoque.xlsx")
	if err != nil || !res.Degraded {
		t.Fatalf("expected degraded import, got %+v / %v", res, err)
	}
	if _, err := a.importSnapshot(workbook.Static{}, "vazio.xlsx"); !errors.Is(err, inventory.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}
