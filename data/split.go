package data

import "strings"

// SplitFunc splits a string into fields.
type SplitFunc func(s string) []string

// LineSplitter splits a string at line boundaries (\n, \r\n, \r).
// A trailing line terminator does not produce an empty final field.
func LineSplitter(s string) []string {
	if s == "" {
		return []string{}
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// WhitespaceSplitter splits a string at runs of whitespace.
func WhitespaceSplitter(s string) []string {
	return strings.Fields(s)
}

// NewSplitter returns a SplitFunc that splits at separator. An empty
// separator means whitespace splitting.
func NewSplitter(separator string) SplitFunc {
	if separator == "" {
		return WhitespaceSplitter
	}
	return func(s string) []string {
		return strings.Split(s, separator)
	}
}
