package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/bobmcallan/ardex/internal/interfaces"
)

// terminalPrompter collects input from stdin. Passwords are read with
// echo disabled when stdin is a terminal.
type terminalPrompter struct {
	reader *bufio.Reader
}

func newTerminalPrompter() *terminalPrompter {
	return &terminalPrompter{reader: bufio.NewReader(os.Stdin)}
}

// Line reads one trimmed line. The second return is false on EOF.
func (p *terminalPrompter) Line(prompt string) (string, bool) {
	fmt.Printf("%s: ", prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (p *terminalPrompter) Password(prompt string) (string, bool) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return p.Line(prompt)
	}

	fmt.Printf("%s: ", prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", false
	}
	return string(raw), true
}

func (p *terminalPrompter) Confirm(prompt string) bool {
	answer, ok := p.Line(fmt.Sprintf("%s (y/n)", prompt))
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

var _ interfaces.Prompter = (*terminalPrompter)(nil)
