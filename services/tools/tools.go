// Package tools holds the capabilities agents can invoke while working on a
// task: a knowledge base lookup, web search and a calculator.
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrToolNotConfigured is returned when a tool lacks the credentials it needs.
	ErrToolNotConfigured = errors.New("tool not configured")

	// ErrUnknownTool is returned when a toolkit has no tool with the requested name.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrEmptyInput is returned when a tool is invoked without input.
	ErrEmptyInput = errors.New("tool input is empty")
)

// Tool is a named capability an agent may invoke with free-text input.
type Tool interface {
	Name() string
	Description() string
	Invoke(ctx context.Context, input string) (string, error)
}

// Toolkit is an ordered set of tools.
type Toolkit []Tool

// Lookup finds a tool by name, ignoring case and surrounding whitespace.
func (tk Toolkit) Lookup(name string) (Tool, error) {
	name = strings.TrimSpace(name)
	for _, t := range tk {
		if strings.EqualFold(t.Name(), name) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
}

// Names returns the tool names in order.
func (tk Toolkit) Names() []string {
	names := make([]string, len(tk))
	for i, t := range tk {
		names[i] = t.Name()
	}
	return names
}

// Describe renders one "name: description" line per tool.
func (tk Toolkit) Describe() string {
	var b strings.Builder
	for _, t := range tk {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name(), t.Description())
	}
	return strings.TrimRight(b.String(), "\n")
}

// Options configures the default toolkit.
type Options struct {
	BraveAPIKey       string
	KnowledgeBasePath string
}

// DefaultToolkit returns the knowledge base, web search and calculator tools.
func DefaultToolkit(opts Options) (Toolkit, error) {
	kb, err := LoadKnowledgeBase(opts.KnowledgeBasePath)
	if err != nil {
		return nil, err
	}
	return Toolkit{
		NewRAGTool(kb),
		NewWebSearchTool(opts.BraveAPIKey),
		NewCalculatorTool(),
	}, nil
}
