package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	maxLogLines     = 400
	logsPanelHeight = 8
)

type logLevel string

const (
	logInfo  logLevel = "INFO"
	logWarn  logLevel = "WARN"
	logError logLevel = "ERROR"
)

// logsColumn is the bottom pane that records what the session did.
type logsColumn struct {
	title    string
	lines    []string
	view     viewport.Model
	width    int
	height   int
	barWidth int
	now      func() time.Time
}

func newLogsColumn() *logsColumn {
	return &logsColumn{
		title:    "Registro",
		view:     viewport.New(80, logsPanelHeight-3),
		barWidth: 1,
		now:      time.Now,
	}
}

func (c *logsColumn) Append(level logLevel, format string, args ...any) {
	line := fmt.Sprintf("%s [%s] %s", c.now().Format("15:04:05"), level, fmt.Sprintf(format, args...))
	c.lines = append(c.lines, line)
	if len(c.lines) > maxLogLines {
		c.lines = c.lines[len(c.lines)-maxLogLines:]
	}
	atBottom := c.view.AtBottom()
	c.view.SetContent(strings.Join(c.lines, "\n"))
	if atBottom {
		c.view.GotoBottom()
	}
}

func (c *logsColumn) Lines() []string {
	return append([]string(nil), c.lines...)
}

func (c *logsColumn) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 3 {
		height = 3
	}
	c.width = width
	c.height = height
	c.view.Width = maxInt(width-2-c.barWidth, 1)
	c.view.Height = maxInt(height-3, 1)
	maxOffset := len(c.lines) - c.view.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if c.view.YOffset > maxOffset {
		c.view.SetYOffset(maxOffset)
	}
}

func (c *logsColumn) Update(msg tea.Msg) (column, tea.Cmd) {
	var cmd tea.Cmd
	c.view, cmd = c.view.Update(msg)
	return c, cmd
}

func (c *logsColumn) View(s styles, focused bool) string {
	panel := s.panel
	if focused {
		panel = s.panelFocused
	}
	title := s.columnTitle.Render(c.title)
	body := lipgloss.JoinVertical(lipgloss.Left, title, c.renderContent(s))
	return panel.Width(maxInt(c.width-2, 1)).Render(body)
}

func (c *logsColumn) renderContent(s styles) string {
	lines := strings.Split(c.view.View(), "\n")
	height := c.view.Height
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	bar := c.renderScrollBar(s, height)
	for i := range lines {
		lines[i] = bar[i] + lines[i]
	}
	return strings.Join(lines, "\n")
}

func (c *logsColumn) renderScrollBar(s styles, height int) []string {
	lines := make([]string, height)
	track := s.scrollTrack.Render("│")
	thumb := s.scrollThumb.Render("┃")
	for i := range lines {
		lines[i] = track
	}

	total := c.view.TotalLineCount()
	visible := c.view.Height
	if total <= visible || height <= 0 {
		return lines
	}

	thumbHeight := int(math.Round(float64(visible) / float64(total) * float64(height)))
	if thumbHeight < 1 {
		thumbHeight = 1
	}
	maxOffset := total - visible
	offset := c.view.YOffset
	if offset < 0 {
		offset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	ratio := float64(offset) / float64(maxOffset)
	thumbStart := int(math.Round(ratio * float64(height-thumbHeight)))
	if thumbStart+thumbHeight > height {
		thumbStart = height - thumbHeight
	}
	for i := thumbStart; i < thumbStart+thumbHeight; i++ {
		lines[i] = thumb
	}
	return lines
}

func (c *logsColumn) Title() string {
	return c.title
}

func (c *logsColumn) FocusValue() string {
	total := len(c.lines)
	if total == 0 {
		return "—"
	}
	start := c.view.YOffset + 1
	end := minInt(start+c.view.Height-1, total)
	return fmt.Sprintf("%d-%d/%d", start, end, total)
}
