package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

type commandID int

const (
	cmdCopy commandID = iota
	cmdHelp
	cmdHistory
	cmdClear
	cmdExit
)

type command struct {
	id   commandID
	name string
	desc string
}

var commands = []command{
	{cmdCopy, "copy", "Copy the last answer to the clipboard"},
	{cmdHelp, "help", "Show commands and keys"},
	{cmdHistory, "history", "Show how many turns the agent remembers"},
	{cmdClear, "clear", "Forget the conversation"},
	{cmdExit, "exit", "Quit"},
}

// isExit reports whether input is the session sentinel.
func isExit(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), "exit")
}

// resolveCommand maps "/name" input to a command. Exact names win; otherwise
// an unambiguous prefix, then the best fuzzy match.
func resolveCommand(input string) (command, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return command{}, false
	}
	name := strings.ToLower(strings.TrimPrefix(input, "/"))
	if name == "" {
		return command{}, false
	}

	var prefixed []command
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
		if strings.HasPrefix(c.name, name) {
			prefixed = append(prefixed, c)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], true
	}

	targets := make([]string, len(commands))
	for i, c := range commands {
		targets[i] = c.name
	}
	matches := fuzzy.Find(name, targets)
	if len(matches) == 0 {
		return command{}, false
	}
	return commands[matches[0].Index], true
}
