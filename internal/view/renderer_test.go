package view

import (
	"strings"
	"testing"
	"time"
)

func noSleep(time.Duration) {}

func TestRenderer_Card(t *testing.T) {
	var sb strings.Builder
	r := NewRenderer(&sb, false)

	status := Negative("Insufficient amount")
	r.Card(Card{
		Title:  "Send HBAR",
		Lines:  []string{"Enter recipient and amount"},
		Fields: []Field{{Label: "Balance", Value: "120.5"}},
		Status: &status,
	})

	out := sb.String()
	for _, want := range []string{"Send HBAR", "Enter recipient and amount", "Balance: 120.5", "Insufficient amount"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("color disabled, no ANSI codes expected")
	}
}

func TestRenderer_StatusTones(t *testing.T) {
	var sb strings.Builder
	r := NewRenderer(&sb, true)

	r.Status(Affirmative("ok"))
	r.Status(Negative("bad"))
	r.Status(Neutral("meh"))

	out := sb.String()
	if !strings.Contains(out, "\x1b[32mok") {
		t.Error("affirmative should render green")
	}
	if !strings.Contains(out, "\x1b[31mbad") {
		t.Error("negative should render red")
	}
	if strings.Contains(out, "\x1b[31mmeh") || strings.Contains(out, "\x1b[32mmeh") {
		t.Error("neutral should not be colored")
	}
}

func TestRenderer_Typewriter(t *testing.T) {
	var sb strings.Builder
	calls := 0
	r := NewRenderer(&sb, false).WithSleep(func(time.Duration) { calls++ })

	r.Typewriter("HELLO", 45*time.Millisecond)

	if got := sb.String(); got != "HELLO\n" {
		t.Errorf("unexpected output %q", got)
	}
	if calls != 5 {
		t.Errorf("expected one sleep per character, got %d", calls)
	}
}
