package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bekirdag/inventario/internal/inventory"
)

// renderRowPreview describes one row as Markdown: a heading with its label,
// its location line and a field/value table in natural field order.
func renderRowPreview(item inventory.Item, row *inventory.Row, labels inventory.Labels) string {
	if row == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(item.Label))
	fmt.Fprintf(&b, "_%s_ • %s %d\n\n", escapeMarkdown(item.Sheet), labels.Line, item.Index+1)
	fmt.Fprintf(&b, "**%s**\n\n", escapeMarkdown(item.Meta(labels)))
	b.WriteString("| Campo | Valor |\n|---|---|\n")
	for _, name := range row.Keys() {
		fmt.Fprintf(&b, "| %s | %s |\n", escapeTableCell(name), escapeTableCell(row.Text(name)))
	}
	return b.String()
}

// renderInventorySummary is shown when no row is highlighted.
func renderInventorySummary(inv *inventory.Inventory, labels inventory.Labels) string {
	if inv == nil || inv.Empty() {
		return "# Inventário vazio\n\nPressione `i` para importar uma planilha (.xlsx).\n"
	}
	var b strings.Builder
	b.WriteString("# Inventário\n\n")
	if inv.SourceFile != "" {
		fmt.Fprintf(&b, "Arquivo: `%s`\n\n", filepath.Base(inv.SourceFile))
	}
	if !inv.ImportedAt.IsZero() {
		fmt.Fprintf(&b, "Importado em %s\n\n", inv.ImportedAt.Local().Format(time.DateTime))
	}
	b.WriteString("| Local | Itens |\n|---|---:|\n")
	for _, e := range inventory.SheetEntries(inv) {
		fmt.Fprintf(&b, "| %s | %d |\n", escapeTableCell(e.Name), e.Count)
	}
	fmt.Fprintf(&b, "\n**%s:** %d\n", labels.All, inv.RowCount())
	return b.String()
}

// rowClipboardText is the plain-text form copied to the clipboard.
func rowClipboardText(sheet string, index int, row *inventory.Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d\n", sheet, index+1)
	for _, name := range row.Keys() {
		fmt.Fprintf(&b, "%s: %s\n", name, row.Text(name))
	}
	return b.String()
}

func escapeTableCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.TrimSpace(s) == "" {
		return " "
	}
	return s
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer("*", `\*`, "_", `\_`, "#", `\#`, "`", "\\`")
	return replacer.Replace(s)
}
