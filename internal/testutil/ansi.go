// Package testutil holds helpers shared by command and TUI tests.
package testutil

import "regexp"

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape sequences so tests can assert on plain
// text regardless of the lipgloss color profile in use.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
