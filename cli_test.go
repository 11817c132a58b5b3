package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/bekirdag/inventario/internal/inventory"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("INVENTARIO_HOME", home)
	for _, key := range []string{
		"INVENTARIO_DB",
		"INVENTARIO_STORAGE_KEY",
		"INVENTARIO_LANG",
		"INVENTARIO_EXCLUDED_SHEETS",
		"INVENTARIO_QUOTA_BYTES",
		"INVENTARIO_DEBOUNCE_MS",
		"INVENTARIO_COMPRESS",
		"INVENTARIO_KEEP_EMPTY_SHEETS",
	} {
		t.Setenv(key, "")
	}
	return home
}

func writeWorkbook(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "ESTOQUE"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	rows := [][]any{
		{"Código", "Descrição", "Qtd"},
		{"001", "Parafuso", 10},
		{"002", "Porca", 5},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("ESTOQUE", cell, &row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	path := filepath.Join(dir, "estoque.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLIWorkflow(t *testing.T) {
	home := isolateHome(t)
	path := writeWorkbook(t, home)

	out, err := runCLI(t, "import", path)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 sheets, 2 rows imported from estoque.xlsx") {
		t.Fatalf("unexpected import output:\n%s", out)
	}

	out, err = runCLI(t, "list", "-q", "porca")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "#2") || !strings.Contains(out, "Porca") || strings.Contains(out, "Parafuso") {
		t.Fatalf("unexpected list output:\n%s", out)
	}

	if _, err := runCLI(t, "list", "--sheet", "NOPE"); !errors.Is(err, inventory.ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}

	out, err = runCLI(t, "show", "ESTOQUE", "2", "--plain")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "ESTOQUE #2") || !strings.Contains(out, "Descrição: Porca") {
		t.Fatalf("unexpected show output:\n%s", out)
	}

	out, err = runCLI(t, "set", "ESTOQUE", "#2", "Qtd", "7")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if strings.TrimSpace(out) != "Qtd = 7" {
		t.Fatalf("unexpected set output %q", out)
	}
	if _, err := runCLI(t, "set", "ESTOQUE", "2", "Cor", "azul"); err == nil {
		t.Fatal("setting an unknown field should fail")
	}

	jsonPath := filepath.Join(home, "out.json")
	if _, err := runCLI(t, "export", "-o", jsonPath); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), `"Qtd": 7`) {
		t.Fatalf("edit missing from export:\n%s", data)
	}

	if _, err := runCLI(t, "clear"); !errors.Is(err, errConfirmRequired) {
		t.Fatalf("expected confirmation error, got %v", err)
	}
	if _, err := runCLI(t, "clear", "--yes"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := runCLI(t, "export"); !errors.Is(err, inventory.ErrNoData) {
		t.Fatalf("expected ErrNoData after clear, got %v", err)
	}
}

func TestCLITheme(t *testing.T) {
	isolateHome(t)
	if _, err := runCLI(t, "theme", "purple"); err == nil {
		t.Fatal("unknown theme should fail")
	}
	if _, err := runCLI(t, "theme", "light"); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	out, err := runCLI(t, "theme")
	if err != nil {
		t.Fatalf("get theme: %v", err)
	}
	if strings.TrimSpace(out) != "light" {
		t.Fatalf("expected light, got %q", out)
	}
}

func TestParseRowArg(t *testing.T) {
	cases := map[string]int{"1": 0, "#3": 2, " 10 ": 9}
	for raw, want := range cases {
		got, err := parseRowArg(raw)
		if err != nil || got != want {
			t.Errorf("parseRowArg(%q) = %d, %v; want %d", raw, got, err, want)
		}
	}
	for _, raw := range []string{"0", "-1", "abc", ""} {
		if _, err := parseRowArg(raw); err == nil {
			t.Errorf("parseRowArg(%q) should fail", raw)
		}
	}
}
