package debugui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type lineKind uint8

const (
	lineText lineKind = iota
	lineHeader
	lineValue
	lineSeparator
)

type line struct {
	kind  lineKind
	label string
	text  string
}

// Console renders the widgets of a frame as a bordered text panel. Frames
// are written at most once per interval; the ones in between are dropped.
type Console struct {
	out      io.Writer
	interval time.Duration
	now      func() time.Time

	lines    []line
	inFrame  bool
	last     time.Time
	rendered int

	panel  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
}

func NewConsole(out io.Writer, interval time.Duration) *Console {
	return &Console{
		out:      out,
		interval: interval,
		now:      time.Now,
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// SetClock replaces the time source used for throttling.
func (c *Console) SetClock(now func() time.Time) {
	c.now = now
}

func (c *Console) BeginRender() {
	c.lines = c.lines[:0]
	c.inFrame = true
}

func (c *Console) EndRender() {
	if !c.inFrame {
		return
	}
	c.inFrame = false
	if len(c.lines) == 0 {
		return
	}
	now := c.now()
	if c.rendered > 0 && now.Sub(c.last) < c.interval {
		return
	}
	c.last = now
	c.rendered++
	fmt.Fprintln(c.out, c.render())
}

// Rendered is the number of panels written so far.
func (c *Console) Rendered() int {
	return c.rendered
}

func (c *Console) Header(title string) {
	c.push(line{kind: lineHeader, text: title})
}

func (c *Console) Text(format string, args ...interface{}) {
	c.push(line{kind: lineText, text: fmt.Sprintf(format, args...)})
}

func (c *Console) Value(label string, value interface{}) {
	c.push(line{kind: lineValue, label: label, text: fmt.Sprint(value)})
}

func (c *Console) Separator() {
	c.push(line{kind: lineSeparator})
}

func (c *Console) push(l line) {
	if c.inFrame {
		c.lines = append(c.lines, l)
	}
}

func (c *Console) render() string {
	labelWidth := 0
	for _, l := range c.lines {
		if l.kind == lineValue && len(l.label) > labelWidth {
			labelWidth = len(l.label)
		}
	}

	rows := make([]string, 0, len(c.lines))
	contentWidth := 0
	for _, l := range c.lines {
		var row string
		switch l.kind {
		case lineHeader:
			row = c.header.Render(l.text)
		case lineValue:
			row = c.label.Render(fmt.Sprintf("%-*s", labelWidth, l.label)) + "  " + l.text
		case lineSeparator:
			row = ""
		default:
			row = l.text
		}
		if w := lipgloss.Width(row); w > contentWidth {
			contentWidth = w
		}
		rows = append(rows, row)
	}
	for i, l := range c.lines {
		if l.kind == lineSeparator {
			rows[i] = strings.Repeat("─", contentWidth)
		}
	}
	return c.panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
