package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/bekirdag/inventario/internal/inventory"
)

type column interface {
	SetSize(width, height int)
	Update(msg tea.Msg) (column, tea.Cmd)
	View(styles styles, focused bool) string
	Title() string
	FocusValue() string
}

type selectableColumn struct {
	title       string
	model       list.Model
	width       int
	height      int
	onSelect    func(entry listEntry) tea.Cmd
	onHighlight func(entry listEntry) tea.Cmd
}

type listEntry struct {
	title   string
	desc    string
	payload any
}

func (e listEntry) Title() string       { return e.title }
func (e listEntry) Description() string { return e.desc }
func (e listEntry) FilterValue() string { return e.title }

// sheetEntry is the sidebar payload; an empty name selects every sheet.
type sheetEntry struct {
	name string
}

func newSelectableColumn(title string, items []list.Item, width int, onSelect func(listEntry) tea.Cmd) *selectableColumn {
	delegate := list.NewDefaultDelegate()
	m := list.New(items, delegate, width, 20)
	m.Title = title
	m.SetShowTitle(false)
	m.SetShowStatusBar(false)
	m.SetFilteringEnabled(false)
	m.SetShowHelp(false)
	m.SetShowPagination(true)

	return &selectableColumn{
		title:    title,
		model:    m,
		width:    width,
		onSelect: onSelect,
	}
}

func (c *selectableColumn) ApplyStyles(s styles) {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = s.listSel
	delegate.Styles.SelectedDesc = s.listSel.Copy().Bold(false)
	delegate.Styles.NormalTitle = s.listItem
	delegate.Styles.NormalDesc = s.listDesc
	delegate.Styles.DimmedTitle = s.listDesc
	delegate.Styles.DimmedDesc = s.listDesc
	c.model.SetDelegate(delegate)
}

// SetItems replaces the entries, keeping the cursor when possible.
func (c *selectableColumn) SetItems(items []list.Item) {
	prev := c.model.Index()
	c.model.SetItems(items)
	switch {
	case len(items) == 0:
	case prev < len(items):
		c.model.Select(prev)
	default:
		c.model.Select(len(items) - 1)
	}
}

func (c *selectableColumn) Select(index int) {
	if index >= 0 && index < len(c.model.Items()) {
		c.model.Select(index)
	}
}

func (c *selectableColumn) SetTitle(title string) {
	c.title = title
	c.model.Title = title
}

func (c *selectableColumn) SetSize(width, height int) {
	c.width = width
	if height < 3 {
		height = 3
	}
	c.height = height
	c.model.SetSize(width-2, height-3)
}

func (c *selectableColumn) Update(msg tea.Msg) (column, tea.Cmd) {
	prev := c.model.Index()
	switch m := msg.(type) {
	case tea.KeyMsg:
		if m.String() == "enter" && c.onSelect != nil {
			if item, ok := c.model.SelectedItem().(listEntry); ok {
				return c, c.onSelect(item)
			}
		}
	}
	var cmd tea.Cmd
	c.model, cmd = c.model.Update(msg)
	if c.model.Index() != prev && c.onHighlight != nil {
		if item, ok := c.model.SelectedItem().(listEntry); ok {
			if run := c.onHighlight(item); run != nil {
				return c, tea.Batch(cmd, run)
			}
		}
	}
	return c, cmd
}

func (c *selectableColumn) View(s styles, focused bool) string {
	titleWidth := columnHeaderWidth(c.width, s.panel.GetHorizontalFrameSize(), horizontalInnerFrameSize(s.columnTitle))
	title := s.columnTitle.Render(truncate.StringWithTail(c.title, uint(maxInt(titleWidth, 1)), "…"))
	body := lipgloss.JoinVertical(lipgloss.Left, title, c.model.View())
	if focused {
		return s.panelFocused.Width(c.width - 2).Height(c.height - 2).Render(body)
	}
	return s.panel.Width(c.width - 2).Height(c.height - 2).Render(body)
}

func (c *selectableColumn) Title() string {
	return c.title
}

func (c *selectableColumn) FocusValue() string {
	if item, ok := c.model.SelectedItem().(listEntry); ok {
		return item.title
	}
	return ""
}

func (c *selectableColumn) SelectedEntry() (listEntry, bool) {
	if entry, ok := c.model.SelectedItem().(listEntry); ok {
		return entry, true
	}
	return listEntry{}, false
}

func (c *selectableColumn) Len() int {
	return len(c.model.Items())
}

func (c *selectableColumn) SetHighlightFunc(fn func(listEntry) tea.Cmd) {
	c.onHighlight = fn
}

type previewColumn struct {
	title   string
	width   int
	height  int
	content string
	view    viewport.Model
}

func newPreviewColumn(width int) *previewColumn {
	vp := viewport.New(width, 20)
	return &previewColumn{
		title: "Detalhes",
		view:  vp,
	}
}

func (p *previewColumn) SetSize(width, height int) {
	p.width = width
	if height < 3 {
		height = 3
	}
	p.height = height
	p.view.Width = width - 2
	p.view.Height = height - 3
}

func (p *previewColumn) SetContent(content string) {
	p.content = content
	p.view.SetContent(content)
	p.view.GotoTop()
}

func (p *previewColumn) SetTitle(title string) {
	p.title = title
}

func (p *previewColumn) Update(msg tea.Msg) (column, tea.Cmd) {
	var cmd tea.Cmd
	p.view, cmd = p.view.Update(msg)
	return p, cmd
}

func (p *previewColumn) View(s styles, focused bool) string {
	header := s.columnTitle.Render(p.title)
	body := header + "\n" + p.view.View()
	if focused {
		return s.panelFocused.Width(p.width - 2).Height(p.height - 2).Render(body)
	}
	return s.panel.Width(p.width - 2).Height(p.height - 2).Render(body)
}

func (p *previewColumn) Title() string {
	return p.title
}

func (p *previewColumn) FocusValue() string {
	if p.view.TotalLineCount() <= p.view.Height {
		return ""
	}
	return fmt.Sprintf("%d%%", int(p.view.ScrollPercent()*100))
}

// sheetListEntries builds the sidebar: the all-sheets entry first, then one
// entry per sheet with its row count.
func sheetListEntries(inv *inventory.Inventory, labels inventory.Labels) []list.Item {
	entries := inventory.SheetEntries(inv)
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	items := make([]list.Item, 0, len(entries)+1)
	items = append(items, listEntry{
		title:   labels.All,
		desc:    countLabel(total, labels),
		payload: sheetEntry{},
	})
	for _, e := range entries {
		items = append(items, listEntry{
			title:   e.Name,
			desc:    countLabel(e.Count, labels),
			payload: sheetEntry{name: e.Name},
		})
	}
	return items
}

// itemListEntries flattens groups into list rows. In all-sheets mode each
// label is prefixed with its sheet so rows stay identifiable.
func itemListEntries(groups []inventory.Group, labels inventory.Labels, allSheets bool) []list.Item {
	var items []list.Item
	for _, g := range groups {
		for _, it := range g.Items {
			title := it.Label
			if allSheets {
				title = g.Sheet + " › " + title
			}
			items = append(items, listEntry{
				title:   title,
				desc:    it.Meta(labels),
				payload: it,
			})
		}
	}
	return items
}

func countLabel(n int, labels inventory.Labels) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d %s", n, labels.Items)
}

func horizontalInnerFrameSize(s lipgloss.Style) int {
	return s.GetPaddingLeft() + s.GetPaddingRight()
}

func columnHeaderWidth(width, panelFrame, titleFrame int) int {
	return width - panelFrame - titleFrame
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
