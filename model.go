package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/bekirdag/inventario/internal/inventory"
	"github.com/bekirdag/inventario/internal/workbook"
)

type focusArea int

const (
	focusSheets focusArea = iota
	focusItems
	focusPreview
	focusLogs
)

type overlayMode int

const (
	overlayNone overlayMode = iota
	overlayImport
	overlayConfirmClear
	overlayEditor
)

type sheetSelectedMsg struct {
	name     string
	activate bool
}

type itemHighlightedMsg struct {
	item inventory.Item
}

type itemActivatedMsg struct {
	item inventory.Item
}

// workbookLoadedMsg carries a workbook read off the event loop. seq ties it
// to the import that requested it; older reads are dropped.
type workbookLoadedMsg struct {
	seq  int
	path string
	snap workbook.Static
	err  error
}

type keyMap struct {
	quit        key.Binding
	nextFocus   key.Binding
	prevFocus   key.Binding
	search      key.Binding
	importFile  key.Binding
	edit        key.Binding
	showAll     key.Binding
	toggleTheme key.Binding
	copyRow     key.Binding
	clearAll    key.Binding
	toggleLogs  key.Binding
	toggleHelp  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "sair"),
		),
		nextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "próximo painel"),
		),
		prevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "painel anterior"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "buscar"),
		),
		importFile: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "importar"),
		),
		edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e/enter", "editar"),
		),
		showAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "mostrar tudo"),
		),
		toggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tema"),
		),
		copyRow: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copiar item"),
		),
		clearAll: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "limpar dados"),
		),
		toggleLogs: key.NewBinding(
			key.WithKeys("f6"),
			key.WithHelp("F6", "registro"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ajuda"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.search,
		k.importFile,
		k.edit,
		k.showAll,
		k.toggleTheme,
		k.toggleHelp,
		k.quit,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.nextFocus, k.prevFocus, k.search, k.showAll},
		{k.importFile, k.edit, k.copyRow},
		{k.toggleTheme, k.clearAll, k.toggleLogs},
		{k.toggleHelp, k.quit},
	}
}

type model struct {
	width  int
	height int

	app    *app
	styles styles
	theme  inventory.Theme
	keys   keyMap
	help   help.Model

	sheetsCol  *selectableColumn
	itemsCol   *selectableColumn
	previewCol *previewColumn
	logsCol    *logsColumn
	columns    []column
	focus      int
	showLogs   bool

	currentSheet string
	query        string
	currentItem  *inventory.Item

	search        textinput.Model
	searchFocused bool
	debouncer     *searchDebouncer
	searchRuns    int

	overlay        overlayMode
	filePicker     filepicker.Model
	pathInput      textinput.Model
	manualPath     bool
	editor         *editorForm
	editorOriginal []inventory.EditField

	importSeq int
	importing bool
	spinner   spinner.Model

	toastMessage string
	toastError   bool
	toastExpires time.Time
}

func newModel(a *app) *model {
	theme := a.store.LoadTheme()
	m := &model{
		app:       a,
		theme:     theme,
		styles:    newStyles(theme),
		keys:      newKeyMap(),
		help:      help.New(),
		showLogs:  true,
		debouncer: newSearchDebouncer(a.cfg.SearchDebounce()),
	}
	setMarkdownTheme(theme)

	m.search = textinput.New()
	m.search.Prompt = "Buscar: "
	m.search.Placeholder = "buscar em todos os campos"
	m.search.CharLimit = 128

	m.pathInput = textinput.New()
	m.pathInput.Prompt = "> "
	m.pathInput.CharLimit = 512

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))

	m.sheetsCol = newSelectableColumn("Locais", nil, 28, func(entry listEntry) tea.Cmd {
		if payload, ok := entry.payload.(sheetEntry); ok {
			return func() tea.Msg { return sheetSelectedMsg{name: payload.name, activate: true} }
		}
		return nil
	})
	m.sheetsCol.SetHighlightFunc(func(entry listEntry) tea.Cmd {
		if payload, ok := entry.payload.(sheetEntry); ok {
			return func() tea.Msg { return sheetSelectedMsg{name: payload.name} }
		}
		return nil
	})

	m.itemsCol = newSelectableColumn("Itens", nil, 48, func(entry listEntry) tea.Cmd {
		if item, ok := entry.payload.(inventory.Item); ok {
			return func() tea.Msg { return itemActivatedMsg{item: item} }
		}
		return nil
	})
	m.itemsCol.SetHighlightFunc(func(entry listEntry) tea.Cmd {
		if item, ok := entry.payload.(inventory.Item); ok {
			return func() tea.Msg { return itemHighlightedMsg{item: item} }
		}
		return nil
	})

	m.previewCol = newPreviewColumn(40)
	m.logsCol = newLogsColumn()
	m.columns = []column{m.sheetsCol, m.itemsCol, m.previewCol, m.logsCol}
	m.applyStyles()

	inv := a.store.Inventory()
	if inv.Empty() {
		m.logsCol.Append(logInfo, "Nenhum dado salvo. Pressione i para importar uma planilha.")
	} else {
		m.currentSheet = inv.Sheets[0].Name
		m.logsCol.Append(logInfo, "Dados restaurados: %d locais, %d itens.", len(inv.Sheets), inv.RowCount())
	}
	m.refreshSheets()
	m.refreshCatalog()
	if m.currentSheet != "" {
		m.focus = int(focusItems)
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch message := msg.(type) {
	case spinner.TickMsg:
		if !m.importing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(message)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width, m.height = message.Width, message.Height
		m.applyLayout()
		return m, nil
	case workbookLoadedMsg:
		return m, m.handleWorkbookLoaded(message)
	case searchDebounceMsg:
		if m.debouncer.Ready(message) {
			m.applySearch(message.Query)
		}
		return m, nil
	case sheetSelectedMsg:
		m.handleSheetSelected(message.name, message.activate)
		return m, nil
	case itemHighlightedMsg:
		m.showItem(&message.item)
		return m, nil
	case itemActivatedMsg:
		return m, m.openEditor(message.item)
	}

	switch m.overlay {
	case overlayImport:
		return m, m.updateImportOverlay(msg)
	case overlayConfirmClear:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			m.updateConfirmClear(keyMsg)
		}
		return m, nil
	case overlayEditor:
		return m, m.updateEditor(msg)
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && m.searchFocused {
		return m, m.updateSearch(keyMsg)
	}
	if isKey {
		if handled, cmd := m.handleGlobalKey(keyMsg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.focus >= 0 && m.focus < len(m.columns) {
		m.columns[m.focus], cmd = m.columns[m.focus].Update(msg)
	}
	return m, cmd
}

func (m *model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return true, tea.Quit
	case key.Matches(msg, m.keys.nextFocus):
		m.cycleFocus(1)
		return true, nil
	case key.Matches(msg, m.keys.prevFocus):
		m.cycleFocus(-1)
		return true, nil
	case key.Matches(msg, m.keys.search):
		m.searchFocused = true
		return true, m.search.Focus()
	case key.Matches(msg, m.keys.importFile):
		return true, m.openImport()
	case key.Matches(msg, m.keys.edit):
		if m.currentItem != nil {
			return true, m.openEditor(*m.currentItem)
		}
		return true, nil
	case key.Matches(msg, m.keys.showAll):
		m.showAll()
		return true, nil
	case key.Matches(msg, m.keys.toggleTheme):
		m.toggleTheme()
		return true, nil
	case key.Matches(msg, m.keys.copyRow):
		m.copyCurrentRow()
		return true, nil
	case key.Matches(msg, m.keys.clearAll):
		if m.app.store.Inventory().Empty() {
			m.setToast("Não há dados para limpar.", false)
			return true, nil
		}
		m.overlay = overlayConfirmClear
		return true, nil
	case key.Matches(msg, m.keys.toggleLogs):
		m.showLogs = !m.showLogs
		if !m.showLogs && focusArea(m.focus) == focusLogs {
			m.focus = int(focusItems)
		}
		m.applyLayout()
		return true, nil
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		m.applyLayout()
		return true, nil
	case msg.String() == "esc":
		if m.query != "" {
			m.debouncer.Cancel()
			m.search.SetValue("")
			m.applySearch("")
		}
		return true, nil
	}
	return false, nil
}

func (m *model) cycleFocus(delta int) {
	count := len(m.columns)
	if !m.showLogs {
		count--
	}
	m.focus = (m.focus + delta + count) % count
}

// updateSearch feeds a key to the search box and schedules the debounced
// query. enter runs it at once, esc leaves the box keeping the query.
func (m *model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "tab":
		m.searchFocused = false
		m.search.Blur()
		return nil
	case "enter":
		m.debouncer.Cancel()
		m.searchFocused = false
		m.search.Blur()
		m.applySearch(m.search.Value())
		m.focus = int(focusItems)
		return nil
	case "ctrl+c":
		return tea.Quit
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.debouncer.Schedule(m.search.Value()))
}

func (m *model) applySearch(query string) {
	m.searchRuns++
	m.query = strings.TrimSpace(query)
	count := m.refreshCatalog()
	if m.query != "" {
		m.app.telemetry.Emit(telemetryEvent{
			Event:     eventSearch,
			Sheet:     m.currentSheet,
			ExtraJSON: map[string]string{"results": fmt.Sprint(count)},
		})
	}
}

func (m *model) handleSheetSelected(name string, activate bool) {
	if name != m.currentSheet {
		m.currentSheet = name
		m.itemsCol.Select(0)
		m.refreshCatalog()
	}
	if activate {
		m.focus = int(focusItems)
	}
}

func (m *model) showAll() {
	m.currentSheet = ""
	m.sheetsCol.Select(0)
	m.itemsCol.Select(0)
	m.refreshCatalog()
	m.focus = int(focusItems)
}

func (m *model) refreshSheets() {
	inv := m.app.store.Inventory()
	m.sheetsCol.SetItems(sheetListEntries(inv, m.app.labels))
	index := 0
	for i, name := range inv.Names() {
		if name == m.currentSheet {
			index = i + 1
			break
		}
	}
	m.sheetsCol.Select(index)
}

// refreshCatalog rebuilds the item list for the active sheet and query and
// returns how many items are listed.
func (m *model) refreshCatalog() int {
	inv := m.app.store.Inventory()
	labels := m.app.labels
	groups := inventory.Groups(inv, inventory.Query{Sheet: m.currentSheet, Filter: m.query}, labels)
	m.itemsCol.SetItems(itemListEntries(groups, labels, m.currentSheet == ""))

	count := 0
	for _, g := range groups {
		count += g.Count
	}
	title := labels.All
	switch {
	case m.currentSheet != "" && len(groups) == 1:
		title = groups[0].Title
	case m.currentSheet == "" && m.query != "":
		title = labels.SearchResult
	}
	m.itemsCol.SetTitle(fmt.Sprintf("%s (%s)", title, countLabel(count, labels)))
	m.syncPreview()
	return count
}

func (m *model) syncPreview() {
	entry, ok := m.itemsCol.SelectedEntry()
	if !ok {
		m.showItem(nil)
		return
	}
	item, ok := entry.payload.(inventory.Item)
	if !ok {
		m.showItem(nil)
		return
	}
	m.showItem(&item)
}

func (m *model) showItem(item *inventory.Item) {
	m.currentItem = item
	if item == nil {
		m.previewCol.SetTitle("Resumo")
		m.previewCol.SetContent(RenderMarkdown(renderInventorySummary(m.app.store.Inventory(), m.app.labels)))
		return
	}
	row, err := m.app.store.Row(item.Sheet, item.Index)
	if err != nil {
		m.currentItem = nil
		m.previewCol.SetContent(err.Error())
		return
	}
	m.previewCol.SetTitle("Detalhes")
	m.previewCol.SetContent(RenderMarkdown(renderRowPreview(*item, row, m.app.labels)))
}

func (m *model) openImport() tea.Cmd {
	m.overlay = overlayImport
	m.manualPath = false
	fp := filepicker.New()
	fp.AllowedTypes = workbook.Extensions()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AutoHeight = false
	fp.Height = 12
	if m.height > 0 {
		fp.Height = minInt(maxInt(m.height-10, 6), 18)
	}
	fp.CurrentDirectory = m.pickerStart()
	m.filePicker = fp
	return m.filePicker.Init()
}

func (m *model) pickerStart() string {
	if dir := strings.TrimSpace(m.app.cfg.LastImportDir); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func (m *model) updateImportOverlay(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.closeOverlay()
			return nil
		case "ctrl+t":
			m.manualPath = !m.manualPath
			if m.manualPath {
				m.pathInput.SetValue(m.filePicker.CurrentDirectory + string(filepath.Separator))
				m.pathInput.CursorEnd()
				return m.pathInput.Focus()
			}
			m.pathInput.Blur()
			return nil
		case "enter":
			if m.manualPath {
				path := expandHome(strings.TrimSpace(m.pathInput.Value()))
				m.closeOverlay()
				return m.startImport(path)
			}
		}
		if m.manualPath {
			var cmd tea.Cmd
			m.pathInput, cmd = m.pathInput.Update(keyMsg)
			return cmd
		}
	}
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)
	if selected, path := m.filePicker.DidSelectFile(msg); selected {
		m.closeOverlay()
		return tea.Batch(cmd, m.startImport(path))
	}
	if disabled, path := m.filePicker.DidSelectDisabledFile(msg); disabled {
		m.setToast("Formato não suportado: "+filepath.Base(path), true)
	}
	return cmd
}

// startImport reads the workbook in the background. Persisting happens back
// on the event loop when the read completes.
func (m *model) startImport(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	m.importSeq++
	seq := m.importSeq
	m.importing = true
	m.logsCol.Append(logInfo, "Importando %s...", filepath.Base(path))
	read := func() tea.Msg {
		snap, err := workbook.Load(path)
		return workbookLoadedMsg{seq: seq, path: path, snap: snap, err: err}
	}
	return tea.Batch(read, m.spinner.Tick)
}

func (m *model) handleWorkbookLoaded(msg workbookLoadedMsg) tea.Cmd {
	if msg.seq != m.importSeq {
		log.Printf("[inventory] import of %s superseded", msg.path)
		return nil
	}
	m.importing = false
	name := filepath.Base(msg.path)
	if msg.err != nil {
		m.app.telemetry.Emit(telemetryEvent{Event: eventImportFailed, Source: name, ExtraJSON: map[string]string{"error": msg.err.Error()}})
		m.reportImportError(name, msg.err)
		return nil
	}
	res, err := m.app.importSnapshot(msg.snap, msg.path)
	if err != nil && res.Inventory == nil {
		m.reportImportError(name, err)
		return nil
	}

	m.app.cfg.LastImportDir = filepath.Dir(msg.path)
	if serr := m.app.cfg.Save(); serr != nil {
		log.Printf("[inventory] save config: %v", serr)
	}

	inv := res.Inventory
	m.currentSheet = inv.Sheets[0].Name
	m.query = ""
	m.search.SetValue("")
	m.debouncer.Cancel()
	m.refreshSheets()
	m.itemsCol.Select(0)
	m.refreshCatalog()
	m.focus = int(focusItems)
	m.logsCol.Append(logInfo, "%s importado: %d locais, %d itens.", name, len(inv.Sheets), inv.RowCount())

	switch {
	case err != nil:
		m.logsCol.Append(logError, "Falha ao salvar: %v", err)
		m.setToast("Importado, mas não foi possível salvar: "+err.Error(), true)
	case res.Degraded:
		m.logsCol.Append(logWarn, "Armazenamento cheio: apenas o resumo foi salvo.")
		m.setToast("Importado. Armazenamento cheio: os dados não serão lembrados ao reiniciar.", true)
	default:
		m.setToast(fmt.Sprintf("Importado: %d locais, %d itens.", len(inv.Sheets), inv.RowCount()), false)
	}
	return nil
}

func (m *model) reportImportError(name string, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, inventory.ErrNoData):
		msg = "nenhuma aba com dados"
	case errors.Is(err, workbook.ErrUnsupportedFormat):
		msg = "formato não suportado"
	}
	m.logsCol.Append(logError, "Erro ao importar %s: %v", name, err)
	m.setToast(fmt.Sprintf("Erro ao importar %s: %s", name, msg), true)
}

func (m *model) updateConfirmClear(msg tea.KeyMsg) {
	switch strings.ToLower(msg.String()) {
	case "y", "s", "enter":
		m.closeOverlay()
		if err := m.app.clear(); err != nil {
			m.logsCol.Append(logError, "Erro ao limpar: %v", err)
			m.setToast("Erro ao limpar dados: "+err.Error(), true)
			return
		}
		m.currentSheet = ""
		m.query = ""
		m.search.SetValue("")
		m.refreshSheets()
		m.refreshCatalog()
		m.focus = int(focusSheets)
		m.logsCol.Append(logInfo, "Dados apagados.")
		m.setToast("Todos os dados foram apagados.", false)
	case "n", "esc", "q":
		m.closeOverlay()
	}
}

func (m *model) openEditor(item inventory.Item) tea.Cmd {
	fields, err := m.app.store.Open(item.Sheet, item.Index)
	if err != nil {
		m.setToast(err.Error(), true)
		return nil
	}
	m.editor = newEditorForm(item.Sheet, item.Index, item.Label, fields)
	m.editorOriginal = fields
	m.overlay = overlayEditor
	m.sizeEditor()
	return textinput.Blink
}

func (m *model) updateEditor(msg tea.Msg) tea.Cmd {
	if m.editor == nil {
		m.closeOverlay()
		return nil
	}
	action, cmd := m.editor.Update(msg)
	switch action {
	case editorClose:
		m.closeOverlay()
	case editorSave:
		m.saveEditor()
	}
	return cmd
}

func (m *model) saveEditor() {
	ed := m.editor
	if !ed.Dirty(m.editorOriginal) {
		m.closeOverlay()
		m.setToast("Nenhuma alteração.", false)
		return
	}
	_, degraded, err := m.app.commitEdit(ed.sheet, ed.index, ed.Fields())
	m.closeOverlay()
	if err != nil {
		m.logsCol.Append(logError, "Erro ao salvar %s #%d: %v", ed.sheet, ed.index+1, err)
		m.setToast("Erro ao salvar: "+err.Error(), true)
		return
	}
	m.refreshSheets()
	m.refreshCatalog()
	m.logsCol.Append(logInfo, "%s #%d atualizado.", ed.sheet, ed.index+1)
	if degraded {
		m.logsCol.Append(logWarn, "Armazenamento cheio: apenas o resumo foi salvo.")
		m.setToast("Alterações aplicadas, mas o armazenamento está cheio.", true)
		return
	}
	m.setToast("Alterações salvas.", false)
}

func (m *model) closeOverlay() {
	m.overlay = overlayNone
	m.editor = nil
	m.editorOriginal = nil
	m.manualPath = false
	m.pathInput.Blur()
	m.pathInput.SetValue("")
}

func (m *model) toggleTheme() {
	m.theme = m.theme.Toggle()
	if err := m.app.setTheme(m.theme); err != nil {
		m.logsCol.Append(logWarn, "Tema não salvo: %v", err)
	}
	m.styles = newStyles(m.theme)
	setMarkdownTheme(m.theme)
	m.applyStyles()
	m.syncPreview()
	m.setToast("Tema: "+themeLabel(m.theme), false)
}

func (m *model) applyStyles() {
	m.sheetsCol.ApplyStyles(m.styles)
	m.itemsCol.ApplyStyles(m.styles)
	m.spinner.Style = m.styles.statusHint.Copy().Bold(true)
	m.help.ShortSeparator = " │ "
	m.help.Styles.ShortKey = m.styles.statusHint.Copy().Bold(true)
	m.help.Styles.ShortDesc = m.styles.statusHint.Copy()
	m.help.Styles.ShortSeparator = m.styles.statusHint.Copy()
	m.help.Styles.FullKey = m.styles.statusHint.Copy().Bold(true)
	m.help.Styles.FullDesc = m.styles.statusHint.Copy()
	m.help.Styles.FullSeparator = m.styles.statusHint.Copy()
}

func (m *model) copyCurrentRow() {
	if m.currentItem == nil {
		return
	}
	item := *m.currentItem
	row, err := m.app.store.Row(item.Sheet, item.Index)
	if err != nil {
		m.setToast(err.Error(), true)
		return
	}
	if err := clipboard.WriteAll(rowClipboardText(item.Sheet, item.Index, row)); err != nil {
		m.setToast("Área de transferência indisponível: "+err.Error(), true)
		return
	}
	m.app.telemetry.EmitRow(eventCopyRow, item.Sheet, item.Index, nil)
	m.setToast("Item copiado.", false)
}

func (m *model) applyLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.help.Width = maxInt(m.width-2, 0)
	topChrome := 1 + 3
	bottomChrome := 1 + lipgloss.Height(m.help.View(m.keys))
	bodyHeight := m.height - topChrome - bottomChrome
	if m.showLogs {
		bodyHeight -= logsPanelHeight
		m.logsCol.SetSize(m.width, logsPanelHeight)
	}
	if bodyHeight < 6 {
		bodyHeight = 6
	}

	sheetsWidth := minInt(30, maxInt(m.width/5, 18))
	previewWidth := maxInt(m.width*2/5, 24)
	itemsWidth := m.width - sheetsWidth - previewWidth
	if itemsWidth < 24 {
		itemsWidth = 24
		previewWidth = maxInt(m.width-sheetsWidth-itemsWidth, 10)
	}
	m.sheetsCol.SetSize(sheetsWidth, bodyHeight)
	m.itemsCol.SetSize(itemsWidth, bodyHeight)
	m.previewCol.SetSize(previewWidth, bodyHeight)
	m.search.Width = maxInt(m.width-8, 10)

	wrap := maxInt(previewWidth-6, 20)
	if setMarkdownWordWrap(wrap) {
		m.syncPreview()
	}
	m.sizeEditor()
}

func (m *model) sizeEditor() {
	if m.editor == nil {
		return
	}
	width := minInt(maxInt(m.width-10, 40), 90)
	height := maxInt(m.height-8, 8)
	m.editor.SetSize(width, height)
}

func (m *model) View() string {
	if m.width == 0 {
		return ""
	}
	switch m.overlay {
	case overlayImport:
		return m.placeOverlay(m.renderImportOverlay())
	case overlayConfirmClear:
		return m.placeOverlay(m.renderConfirmClear())
	case overlayEditor:
		if m.editor != nil {
			return m.placeOverlay(m.editor.View(m.styles))
		}
	}

	var builder strings.Builder
	builder.WriteString(m.styles.topBar.Width(m.width).Render(m.headerTitle()))
	builder.WriteRune('\n')

	searchStyle := m.styles.searchBox
	if m.searchFocused {
		searchStyle = m.styles.searchBoxFocused
	}
	builder.WriteString(searchStyle.Width(m.width - 2).Render(m.search.View()))
	builder.WriteRune('\n')

	visible := m.columns[:3]
	var colViews []string
	for i, col := range visible {
		colViews = append(colViews, col.View(m.styles, i == m.focus && !m.searchFocused))
	}
	builder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, colViews...))
	builder.WriteRune('\n')

	if m.showLogs {
		builder.WriteString(m.logsCol.View(m.styles, focusArea(m.focus) == focusLogs))
		builder.WriteRune('\n')
	}
	if helpView := m.help.View(m.keys); helpView != "" {
		builder.WriteString(helpView)
		builder.WriteRune('\n')
	}
	builder.WriteString(m.renderStatus())
	return m.styles.app.Render(builder.String())
}

func (m *model) headerTitle() string {
	title := "inventario"
	inv := m.app.store.Inventory()
	if inv.SourceFile != "" {
		title += " • " + inv.SourceFile
	}
	return truncate.StringWithTail(title, uint(maxInt(m.width-2, 1)), "…")
}

func (m *model) placeOverlay(content string) string {
	width := minInt(maxInt(m.width-8, 40), 96)
	overlay := m.styles.cmdOverlay.Width(width).Render(strings.TrimRight(content, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
}

func (m *model) renderImportOverlay() string {
	var b strings.Builder
	b.WriteString(m.styles.cmdPrompt.Render("Importar planilha"))
	b.WriteRune('\n')
	if m.manualPath {
		b.WriteString(m.pathInput.View())
		b.WriteRune('\n')
		b.WriteString(m.styles.cmdHint.Render("enter importar • ctrl+t navegador • esc cancelar"))
		return b.String()
	}
	b.WriteString(m.filePicker.View())
	b.WriteRune('\n')
	b.WriteString(m.styles.cmdHint.Render(abbreviatePath(m.filePicker.CurrentDirectory)))
	b.WriteRune('\n')
	b.WriteString(m.styles.cmdHint.Render("enter selecionar • ctrl+t digitar caminho • esc cancelar"))
	return b.String()
}

func (m *model) renderConfirmClear() string {
	inv := m.app.store.Inventory()
	var b strings.Builder
	b.WriteString(m.styles.danger.Render("Apagar todos os dados?"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%d locais e %d itens serão removidos deste computador.", len(inv.Sheets), inv.RowCount()))
	b.WriteString("\n\n")
	b.WriteString(m.styles.cmdHint.Render("y confirmar • n cancelar"))
	return b.String()
}

func (m *model) renderStatus() string {
	col := m.columns[m.focus]
	focusValue := strings.TrimSpace(col.FocusValue())
	if focusValue == "" {
		focusValue = "—"
	}
	segments := []string{
		m.styles.statusSeg.Render(fmt.Sprintf("%s: %s", col.Title(), truncate.StringWithTail(focusValue, 32, "…"))),
	}
	if m.query != "" {
		segments = append(segments, m.styles.statusSeg.Render(fmt.Sprintf("Busca: %q", m.query)))
	}
	if m.importing {
		segments = append(segments, m.styles.statusSeg.Render(m.spinner.View()+" importando"))
	}
	segments = append(segments, m.styles.statusSeg.Render("Tema: "+themeLabel(m.theme)))
	if m.toastMessage != "" {
		if time.Now().After(m.toastExpires) {
			m.toastMessage = ""
		} else if m.toastError {
			segments = append(segments, m.styles.statusError.Render(m.toastMessage))
		} else {
			segments = append(segments, m.styles.statusSeg.Render(m.toastMessage))
		}
	}
	content := strings.Join(segments, "│")
	return m.styles.statusBar.Width(m.width).Render(truncate.StringWithTail(content, uint(maxInt(m.width-2, 1)), "…"))
}

func (m *model) setToast(msg string, isError bool) {
	trimmed := strings.TrimSpace(msg)
	if trimmed == "" {
		m.toastMessage = ""
		m.toastExpires = time.Time{}
		return
	}
	duration := 4 * time.Second
	if isError {
		duration = 8 * time.Second
	}
	m.toastMessage = trimmed
	m.toastError = isError
	m.toastExpires = time.Now().Add(duration)
}

func abbreviatePath(path string) string {
	if strings.HasPrefix(path, "~") {
		return path
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		if strings.HasPrefix(path, home) {
			return "~" + strings.TrimPrefix(path, home)
		}
	}
	return path
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
