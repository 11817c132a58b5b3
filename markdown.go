package main

import (
	"log"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/bekirdag/inventario/internal/inventory"
)

// previewRenderer caches one glamour renderer per wrap width and theme.
type previewRenderer struct {
	mu    sync.Mutex
	tr    *glamour.TermRenderer
	wrap  int
	theme inventory.Theme
}

var markdown = &previewRenderer{wrap: 80, theme: inventory.ThemeDark}

// RenderMarkdown renders preview Markdown for the terminal, falling back to
// the raw text when glamour fails.
func RenderMarkdown(content string) string {
	return markdown.render(content)
}

func (p *previewRenderer) render(content string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tr == nil {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(glamourStyle(p.theme)),
			glamour.WithWordWrap(p.wrap),
		)
		if err != nil {
			log.Printf("[markdown] renderer (%s, wrap %d): %v", p.theme, p.wrap, err)
			return content
		}
		p.tr = tr
	}
	out, err := p.tr.Render(content)
	if err != nil {
		log.Printf("[markdown] render: %v", err)
		return content
	}
	return out
}

// configure swaps wrap width and theme, dropping the cached renderer only
// when one of them changed. It reports whether anything changed.
func (p *previewRenderer) configure(wrap int, theme inventory.Theme) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if wrap < 0 {
		wrap = 0
	}
	if theme == "" {
		theme = inventory.ThemeDark
	}
	if wrap == p.wrap && theme == p.theme {
		return false
	}
	p.wrap, p.theme, p.tr = wrap, theme, nil
	return true
}

func (p *previewRenderer) settings() (int, inventory.Theme) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.wrap, p.theme
}

// setMarkdownWordWrap reports whether the preview must be re-rendered.
func setMarkdownWordWrap(width int) bool {
	_, theme := markdown.settings()
	return markdown.configure(width, theme)
}

func setMarkdownTheme(theme inventory.Theme) {
	wrap, _ := markdown.settings()
	markdown.configure(wrap, theme)
}

func glamourStyle(theme inventory.Theme) string {
	if theme == inventory.ThemeLight {
		return "light"
	}
	return "dark"
}

func themeLabel(theme inventory.Theme) string {
	if theme == inventory.ThemeLight {
		return "Claro"
	}
	return "Escuro"
}
