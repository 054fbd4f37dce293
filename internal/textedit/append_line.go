package textedit

import (
	"fmt"
	"iter"
	"strings"
)

// AppendLine adds the given line to the end of the file if it is not already
// present. Lines are compared after trimming leading & trailing whitespace, so a
// commented-out copy of the line ("# line") does not count as present.
//
// It will panic if the line is empty after trimming whitespace.
func AppendLine(line string) *appendLineEditor {
	lineTS := strings.TrimSpace(line)
	if lineTS == "" {
		panic(fmt.Errorf("AppendLine: line must not be empty after trimming whitespace"))
	}
	return &appendLineEditor{line: line, lineTS: lineTS}
}

type appendLineEditor struct {
	line, lineTS string

	found bool
}

// Found reports whether the line was already present. It is only valid after
// the editor is used.
func (s *appendLineEditor) Found() bool { return s.found }

// Next implements Editor.
func (s *appendLineEditor) Next(line string) (output iter.Seq[string], err error) {
	if !s.found && strings.TrimSpace(line) == s.lineTS {
		// keep the current formatting (whitespace) of the line
		s.found = true
	}
	return each(line), nil
}

// EOF implements Editor.
func (s *appendLineEditor) EOF() (output iter.Seq[string], err error) {
	if s.found {
		return empty(), nil
	}
	return each(s.line), nil
}
