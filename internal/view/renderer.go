package view

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
)

// Renderer writes view descriptions to an output stream.
type Renderer struct {
	w     io.Writer
	color bool
	// sleep is injectable so typewriter rendering is instant in tests.
	sleep func(time.Duration)
}

// NewRenderer creates a renderer. Color output is enabled for
// interactive use and disabled in tests.
func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color, sleep: time.Sleep}
}

// WithSleep replaces the typewriter delay function.
func (r *Renderer) WithSleep(sleep func(time.Duration)) *Renderer {
	r.sleep = sleep
	return r
}

// Card renders a panel.
func (r *Renderer) Card(c Card) {
	width := panelWidth(c)
	rule := strings.Repeat("─", width)

	fmt.Fprintf(r.w, "\n┌%s┐\n", rule)
	fmt.Fprintf(r.w, "│ %-*s │\n", width-2, c.Title)
	fmt.Fprintf(r.w, "├%s┤\n", rule)
	for _, line := range c.Lines {
		fmt.Fprintf(r.w, "│ %-*s │\n", width-2, line)
	}
	for _, f := range c.Fields {
		fmt.Fprintf(r.w, "│ %-*s │\n", width-2, fmt.Sprintf("%s: %s", f.Label, f.Value))
	}
	if len(c.Actions) > 0 {
		fmt.Fprintf(r.w, "│ %-*s │\n", width-2, strings.Join(c.Actions, "  "))
	}
	fmt.Fprintf(r.w, "└%s┘\n", rule)

	if c.Status != nil {
		r.Status(*c.Status)
	}
}

// Modal renders a modal panel.
func (r *Renderer) Modal(m Modal) {
	r.Card(m.Card)
}

// Status renders a status line with its color cue.
func (r *Renderer) Status(s Status) {
	text := s.Text
	if r.color {
		switch s.Tone {
		case ToneAffirmative:
			text = ansiGreen + text + ansiReset
		case ToneNegative:
			text = ansiRed + text + ansiReset
		}
	}
	fmt.Fprintf(r.w, "%s\n", text)
}

// Pause holds the display for the given duration using the injected
// sleep function.
func (r *Renderer) Pause(d time.Duration) {
	r.sleep(d)
}

// Typewriter reveals text one character at a time with the given
// per-character delay, then emits a newline.
func (r *Renderer) Typewriter(text string, delay time.Duration) {
	for _, ch := range text {
		fmt.Fprintf(r.w, "%c", ch)
		r.sleep(delay)
	}
	fmt.Fprintln(r.w)
}

func panelWidth(c Card) int {
	width := len(c.Title) + 2
	for _, line := range c.Lines {
		if len(line)+2 > width {
			width = len(line) + 2
		}
	}
	for _, f := range c.Fields {
		if n := len(f.Label) + len(f.Value) + 4; n > width {
			width = n
		}
	}
	if len(c.Actions) > 0 {
		n := len(strings.Join(c.Actions, "  ")) + 2
		if n > width {
			width = n
		}
	}
	if width < 40 {
		width = 40
	}
	return width
}
