package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/bekirdag/inventario/internal/inventory"
)

type editorAction int

const (
	editorNone editorAction = iota
	editorSave
	editorClose
)

// editorForm is the modal used to edit every field of one row.
type editorForm struct {
	sheet  string
	index  int
	title  string
	names  []string
	inputs []textinput.Model
	focus  int
	width  int
	height int
}

func newEditorForm(sheet string, index int, title string, fields []inventory.EditField) *editorForm {
	f := &editorForm{sheet: sheet, index: index, title: title}
	for _, field := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 0
		in.SetValue(field.Value)
		in.CursorEnd()
		f.names = append(f.names, field.Name)
		f.inputs = append(f.inputs, in)
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f *editorForm) SetSize(width, height int) {
	f.width = width
	f.height = height
	inputWidth := width - f.labelWidth() - 3
	if inputWidth < 10 {
		inputWidth = 10
	}
	for i := range f.inputs {
		f.inputs[i].Width = inputWidth
	}
}

// Fields returns the submitted values in form order.
func (f *editorForm) Fields() []inventory.EditField {
	out := make([]inventory.EditField, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = inventory.EditField{Name: f.names[i], Value: in.Value()}
	}
	return out
}

// Dirty reports whether any value differs from what the form opened with.
func (f *editorForm) Dirty(original []inventory.EditField) bool {
	current := f.Fields()
	if len(current) != len(original) {
		return true
	}
	for i := range current {
		if current[i] != original[i] {
			return true
		}
	}
	return false
}

func (f *editorForm) Update(msg tea.Msg) (editorAction, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return editorClose, nil
		case "ctrl+s":
			return editorSave, nil
		case "tab", "down":
			return editorNone, f.move(1)
		case "shift+tab", "up":
			return editorNone, f.move(-1)
		case "enter":
			if f.focus == len(f.inputs)-1 {
				return editorSave, nil
			}
			return editorNone, f.move(1)
		}
	}
	if f.focus < 0 || f.focus >= len(f.inputs) {
		return editorNone, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return editorNone, cmd
}

func (f *editorForm) move(delta int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *editorForm) labelWidth() int {
	width := 8
	for _, n := range f.names {
		width = maxInt(width, lipgloss.Width(n))
	}
	return minInt(width, 24)
}

// visibleRange keeps the focused field on screen when the form is taller
// than the overlay.
func (f *editorForm) visibleRange() (int, int) {
	rows := f.height - 4
	if rows < 3 {
		rows = 3
	}
	if len(f.inputs) <= rows {
		return 0, len(f.inputs)
	}
	start := f.focus - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > len(f.inputs) {
		end = len(f.inputs)
		start = end - rows
	}
	return start, end
}

func (f *editorForm) View(s styles) string {
	var b strings.Builder
	b.WriteString(s.cmdPrompt.Render(f.title))
	b.WriteRune('\n')
	b.WriteString(s.cmdHint.Render(fmt.Sprintf("%s • #%d", f.sheet, f.index+1)))
	b.WriteString("\n\n")
	labelWidth := f.labelWidth()
	start, end := f.visibleRange()
	for i := start; i < end; i++ {
		label := truncate.StringWithTail(f.names[i], uint(labelWidth), "…")
		style := s.fieldLabel
		if i == f.focus {
			style = s.fieldLabelFocused
		}
		b.WriteString(style.Width(labelWidth).Render(label))
		b.WriteString(" │ ")
		b.WriteString(f.inputs[i].View())
		b.WriteRune('\n')
	}
	if start > 0 || end < len(f.inputs) {
		b.WriteString(s.cmdHint.Render(fmt.Sprintf("campo %d/%d", f.focus+1, len(f.inputs))))
		b.WriteRune('\n')
	}
	b.WriteRune('\n')
	b.WriteString(s.cmdHint.Render(strings.Join([]string{"tab próximo", "ctrl+s salvar", "esc fechar"}, " • ")))
	return b.String()
}
