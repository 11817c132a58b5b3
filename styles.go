package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bekirdag/inventario/internal/inventory"
)

type themePalette struct {
	text       lipgloss.Color
	textMuted  lipgloss.Color
	border     lipgloss.Color
	accent     lipgloss.Color
	selection  lipgloss.Color
	surface    lipgloss.Color
	danger     lipgloss.Color
	warning    lipgloss.Color
	success    lipgloss.Color
	scrollbar  lipgloss.Color
	background lipgloss.Color
}

var (
	darkPalette = themePalette{
		text:       lipgloss.Color("#E6E6E6"),
		textMuted:  lipgloss.Color("#8A8F98"),
		border:     lipgloss.Color("#3B4048"),
		accent:     lipgloss.Color("#4FB3FF"),
		selection:  lipgloss.Color("#264F78"),
		surface:    lipgloss.Color("#1E2127"),
		danger:     lipgloss.Color("#FF6B6B"),
		warning:    lipgloss.Color("#F4BF75"),
		success:    lipgloss.Color("#7FD88F"),
		scrollbar:  lipgloss.Color("#5C6370"),
		background: lipgloss.Color("#16181D"),
	}
	lightPalette = themePalette{
		text:       lipgloss.Color("#1F2328"),
		textMuted:  lipgloss.Color("#6E7781"),
		border:     lipgloss.Color("#D0D7DE"),
		accent:     lipgloss.Color("#0969DA"),
		selection:  lipgloss.Color("#DDF4FF"),
		surface:    lipgloss.Color("#F6F8FA"),
		danger:     lipgloss.Color("#CF222E"),
		warning:    lipgloss.Color("#9A6700"),
		success:    lipgloss.Color("#1A7F37"),
		scrollbar:  lipgloss.Color("#AFB8C1"),
		background: lipgloss.Color("#FFFFFF"),
	}
)

func paletteFor(theme inventory.Theme) themePalette {
	if theme == inventory.ThemeLight {
		return lightPalette
	}
	return darkPalette
}

type styles struct {
	palette themePalette

	app, topBar, topMenu, topStatus    lipgloss.Style
	sidebar, sidebarTitle, columnTitle lipgloss.Style
	body                               lipgloss.Style
	panel, panelFocused                lipgloss.Style
	statusBar, statusSeg, statusHint   lipgloss.Style
	statusError                        lipgloss.Style
	listItem, listSel, listDesc        lipgloss.Style
	searchBox, searchBoxFocused        lipgloss.Style
	cmdOverlay, cmdPrompt, cmdHint     lipgloss.Style
	fieldLabel, fieldLabelFocused      lipgloss.Style
	danger                             lipgloss.Style
	scrollTrack, scrollThumb           lipgloss.Style
}

func newStyles(theme inventory.Theme) styles {
	p := paletteFor(theme)
	base := lipgloss.NewStyle().Foreground(p.text)
	panelBorder := lipgloss.NormalBorder()
	focusedBorder := lipgloss.DoubleBorder()

	return styles{
		palette:           p,
		app:               base,
		topBar:            base.Copy().Padding(0, 1).Bold(true).Foreground(p.accent),
		topMenu:           base,
		topStatus:         base.Copy().Foreground(p.textMuted),
		sidebar:           base.Copy().BorderStyle(panelBorder).BorderForeground(p.border),
		sidebarTitle:      base.Copy().Bold(true).Padding(0, 1),
		columnTitle:       base.Copy().Bold(true).Padding(0, 1).Foreground(p.accent),
		body:              base,
		panel:             base.Copy().BorderStyle(panelBorder).BorderForeground(p.border),
		panelFocused:      base.Copy().BorderStyle(focusedBorder).BorderForeground(p.accent),
		statusBar:         base.Copy().Padding(0, 1).Background(p.surface),
		statusSeg:         base.Copy().Padding(0, 1).MarginRight(1).Background(p.surface),
		statusHint:        base.Copy().Foreground(p.textMuted),
		statusError:       base.Copy().Padding(0, 1).Bold(true).Foreground(p.danger).Background(p.surface),
		listItem:          base.Copy().Padding(0, 1),
		listSel:           base.Copy().Padding(0, 1).Bold(true).Foreground(p.accent).Background(p.selection),
		listDesc:          base.Copy().Padding(0, 1).Foreground(p.textMuted),
		searchBox:         base.Copy().BorderStyle(panelBorder).BorderForeground(p.border).Padding(0, 1),
		searchBoxFocused:  base.Copy().BorderStyle(panelBorder).BorderForeground(p.accent).Padding(0, 1),
		cmdOverlay:        base.Copy().Border(lipgloss.RoundedBorder()).BorderForeground(p.accent).Padding(1, 2),
		cmdPrompt:         base.Copy().Bold(true),
		cmdHint:           base.Copy().Faint(true),
		fieldLabel:        base.Copy().Foreground(p.textMuted),
		fieldLabelFocused: base.Copy().Bold(true).Foreground(p.accent),
		danger:            base.Copy().Bold(true).Foreground(p.danger),
		scrollTrack:       base.Copy().Foreground(p.border),
		scrollThumb:       base.Copy().Foreground(p.scrollbar),
	}
}
