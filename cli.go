package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bekirdag/inventario/internal/inventory"
	"github.com/bekirdag/inventario/internal/workbook"
)

var errConfirmRequired = errors.New("refusing to clear without --yes")

// withApp opens the application for one command and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a workbook, replacing the stored inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				res, err := a.importFile(args[0])
				if err != nil {
					return fmt.Errorf("import %s: %w", filepath.Base(args[0]), err)
				}
				out := cmd.OutOrStdout()
				for _, e := range inventory.SheetEntries(res.Inventory) {
					fmt.Fprintf(out, "%-32s %6d\n", e.Name, e.Count)
				}
				fmt.Fprintf(out, "%d sheets, %d rows imported from %s\n", len(res.Inventory.Sheets), res.Inventory.RowCount(), res.Inventory.SourceFile)
				if res.Degraded {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning: storage quota exceeded; only a per-sheet summary was saved")
				}
				return nil
			})
		},
	}
}

func newListCmd() *cobra.Command {
	var sheet, query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rows, optionally for one sheet and/or matching a query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				inv := a.store.Inventory()
				if sheet != "" {
					if _, ok := inv.Sheet(sheet); !ok {
						return fmt.Errorf("%w: %q", inventory.ErrSheetNotFound, sheet)
					}
				}
				groups := inventory.Groups(inv, inventory.Query{Sheet: sheet, Filter: query}, a.labels)
				writeGroups(cmd.OutOrStdout(), groups, a.labels)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Only this sheet")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive text to search for")
	return cmd
}

func writeGroups(w io.Writer, groups []inventory.Group, labels inventory.Labels) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "no rows")
		return
	}
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n", g.Title, countLabel(g.Count, labels))
		for _, it := range g.Items {
			fmt.Fprintf(w, "  #%-4d %s\n        %s\n", it.Index+1, it.Label, it.Meta(labels))
		}
	}
}

func newShowCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "show SHEET ROW",
		Short: "Show every field of one row (ROW is 1-based)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseRowArg(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				row, err := a.store.Row(args[0], index)
				if err != nil {
					return err
				}
				if plain {
					fmt.Fprint(cmd.OutOrStdout(), rowClipboardText(args[0], index, row))
					return nil
				}
				setMarkdownTheme(a.store.LoadTheme())
				item := inventory.Item{
					Sheet:    args[0],
					Index:    index,
					Label:    inventory.DisplayName(row, a.labels.NoDescription),
					Quantity: inventory.ResolveText(row, inventory.QuantityCandidates...),
					Location: inventory.FormatLocation(args[0], row, index, a.labels),
				}
				fmt.Fprint(cmd.OutOrStdout(), RenderMarkdown(renderRowPreview(item, row, a.labels)))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print field: value lines instead of rendered Markdown")
	return cmd
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set SHEET ROW FIELD VALUE",
		Short: "Change one field of one row (ROW is 1-based)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet, field, value := args[0], args[2], args[3]
			index, err := parseRowArg(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				row, err := a.store.Row(sheet, index)
				if err != nil {
					return err
				}
				if _, ok := row.Get(field); !ok {
					return fmt.Errorf("row %d of %q has no field %q (fields: %s)", index+1, sheet, field, strings.Join(row.Keys(), ", "))
				}
				row, degraded, err := a.commitEdit(sheet, index, []inventory.EditField{{Name: field, Value: value}})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", field, row.Text(field))
				if degraded {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning: storage quota exceeded; only a per-sheet summary was saved")
				}
				return nil
			})
		},
	}
}

func newExportCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the inventory as JSON or as an .xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				inv := a.store.Inventory()
				if inv.Empty() {
					return inventory.ErrNoData
				}
				if strings.EqualFold(filepath.Ext(outPath), ".xlsx") {
					if err := workbook.Export(inv, outPath); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
					return nil
				}
				data, err := json.MarshalIndent(inv, "", "  ")
				if err != nil {
					return err
				}
				if outPath == "" {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return err
				}
				if err := os.WriteFile(outPath, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file; .xlsx writes a workbook, anything else JSON (default: stdout)")
	return cmd
}

func newClearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored inventory data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errConfirmRequired
			}
			return withApp(cmd, func(a *app) error {
				if err := a.clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "inventory cleared")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Print or set the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(inventory.ThemeLight), string(inventory.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				if len(args) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), a.store.LoadTheme())
					return nil
				}
				raw := strings.ToLower(strings.TrimSpace(args[0]))
				if raw != string(inventory.ThemeLight) && raw != string(inventory.ThemeDark) {
					return fmt.Errorf("unknown theme %q (want light or dark)", args[0])
				}
				theme := inventory.ParseTheme(raw)
				if err := a.setTheme(theme); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), theme)
				return nil
			})
		},
	}
}

func parseRowArg(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("row must be a positive number, got %q", raw)
	}
	return n - 1, nil
}
