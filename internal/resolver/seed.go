package resolver

import (
	"io/ioutil"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// DefaultDependenciesFile is read when no dependency list is given explicitly.
const DefaultDependenciesFile = "dependencies"

// ParseList splits a comma separated dependency list. Entries are not trimmed.
func ParseList(value string) []string {
	return strings.Split(value, ",")
}

// SplitLines splits file content into lines on the same boundaries as Python's
// str.splitlines: "\r\n", "\n", "\r", "\v", "\f", "\x1c", "\x1d", "\x1e",
// U+0085, U+2028 and U+2029. A final line ending does not start another entry.
func SplitLines(content string) []string {
	lines := []string{}
	start := 0
	for i, r := range content {
		if i < start {
			// second half of "\r\n"
			continue
		}
		if !isLineBreak(r) {
			continue
		}
		lines = append(lines, content[start:i])
		start = i + utf8.RuneLen(r)
		if r == '\r' && start < len(content) && content[start] == '\n' {
			start++
		}
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// ReadDependenciesFile reads one direct dependency per line.
func ReadDependenciesFile(path string) ([]string, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dependencies file %v", path)
	}
	return SplitLines(string(data)), nil
}

// Seed picks the direct dependencies of the extension under test. A set list wins
// over the file, even when it is empty.
func Seed(list *string, file string) ([]string, error) {
	if list != nil {
		return ParseList(*list), nil
	}
	if file == "" {
		file = DefaultDependenciesFile
	}
	return ReadDependenciesFile(file)
}
