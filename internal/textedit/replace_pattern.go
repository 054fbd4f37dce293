package textedit

import (
	"iter"
	"regexp"
)

// ReplacePattern makes an editor that replaces the first match of pattern in
// every line with replacement, taken literally. Lines without a match are copied
// unchanged and nothing is added when no line matches.
func ReplacePattern(pattern *regexp.Regexp, replacement string) *replacePatternEditor {
	return &replacePatternEditor{pattern: pattern, replacement: replacement}
}

type replacePatternEditor struct {
	pattern     *regexp.Regexp
	replacement string

	matches int
}

// Matches returns how many lines matched. It is only valid after the editor is
// used.
func (r *replacePatternEditor) Matches() int { return r.matches }

// Next implements Editor.
func (r *replacePatternEditor) Next(line string) (output iter.Seq[string], err error) {
	loc := r.pattern.FindStringIndex(line)
	if loc == nil {
		return each(line), nil
	}
	r.matches++
	return each(line[:loc[0]] + r.replacement + line[loc[1]:]), nil
}

// EOF implements Editor.
func (r *replacePatternEditor) EOF() (output iter.Seq[string], err error) {
	return empty(), nil
}
