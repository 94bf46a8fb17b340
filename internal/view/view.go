// Package view renders declarative UI descriptions to text panels.
// Controllers emit Cards and Modals; the renderer is stateless given
// its inputs and never reaches back into controller state.
package view

// Tone is the color cue attached to a status line.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneAffirmative
	ToneNegative
)

// Status is an inline status message with a color cue. Failures are
// always surfaced this way, never as a blocking dialog.
type Status struct {
	Text string
	Tone Tone
}

// Affirmative builds a positive status line.
func Affirmative(text string) Status {
	return Status{Text: text, Tone: ToneAffirmative}
}

// Negative builds a negative status line.
func Negative(text string) Status {
	return Status{Text: text, Tone: ToneNegative}
}

// Neutral builds a plain status line.
func Neutral(text string) Status {
	return Status{Text: text, Tone: ToneNeutral}
}

// Field is a labelled value inside a card.
type Field struct {
	Label string
	Value string
}

// Card is one UI panel: a title, free lines, labelled fields, action
// hints, and an optional status line.
type Card struct {
	Title   string
	Lines   []string
	Fields  []Field
	Actions []string
	Status  *Status
}

// Modal is a card presented over the current screen.
type Modal struct {
	Card
}
