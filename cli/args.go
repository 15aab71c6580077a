// Package cli holds helpers for the ppa command line, notably loading
// argument files so long invocations can be kept in a text file.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// SplitArgs splits a command line into tokens. Double quotes group a
// single token and may contain interior whitespace; outside quotes tokens
// are separated by any run of whitespace. Quotes are stripped and every
// token has surrounding whitespace trimmed. An unterminated quote is an
// error.
func SplitArgs(line string) ([]string, error) {
	segments := strings.Split(line, `"`)
	if len(segments)%2 == 0 {
		return nil, fmt.Errorf("cli: unterminated quote in %q", line)
	}
	var args []string
	for i, segment := range segments {
		if i%2 == 1 {
			args = append(args, strings.TrimSpace(segment))
			continue
		}
		args = append(args, strings.Fields(segment)...)
	}
	return args, nil
}

// LoadArgsFile reads path and splits its content into command line
// arguments. Line breaks act as argument separators, so the file may
// spread the invocation over several lines.
func LoadArgsFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	line := strings.ReplaceAll(string(content), "\r\n", " ")
	line = strings.ReplaceAll(line, "\n", " ")
	return SplitArgs(line)
}
