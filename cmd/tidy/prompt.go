package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"tidy/internal/engine"
)

// terminalPrompter asks the operator about files below the confidence
// threshold. It reads one line per question from the provided input.
type terminalPrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newTerminalPrompter(in io.Reader, out io.Writer) *terminalPrompter {
	return &terminalPrompter{in: bufio.NewScanner(in), out: out}
}

func (p *terminalPrompter) Decide(req engine.Request) (engine.Decision, error) {
	fmt.Fprintf(p.out, "\n%s\n", req.File.Name)
	fmt.Fprintf(p.out, "  proposed: %s (confidence %.2f)\n", req.Category, req.Confidence)
	if req.Rationale != "" {
		fmt.Fprintf(p.out, "  reason:   %s\n", req.Rationale)
	}

	for {
		fmt.Fprintf(p.out, "[a]ccept / [r]eject to Unsorted / [s]kip / skip [t]ype / [c]ustom category: ")
		line, err := p.readLine()
		if err != nil {
			return engine.Decision{}, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "a", "accept", "":
			return engine.Decision{Kind: engine.DecisionAccept}, nil
		case "r", "reject":
			return engine.Decision{Kind: engine.DecisionReject}, nil
		case "s", "skip":
			return engine.Decision{Kind: engine.DecisionSkip}, nil
		case "t", "type":
			return engine.Decision{Kind: engine.DecisionSkip, AllOfType: true}, nil
		case "c", "custom":
			fmt.Fprintf(p.out, "category name: ")
			name, err := p.readLine()
			if err != nil {
				return engine.Decision{}, err
			}
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			return engine.Decision{Kind: engine.DecisionCustom, Category: name}, nil
		}
	}
}

func (p *terminalPrompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.in.Text(), nil
}
