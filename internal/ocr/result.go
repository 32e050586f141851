package ocr

import (
	"strings"
	"unicode/utf8"
)

// Result is the text extracted from one region.
type Result struct {
	Text string `json:"text"`
}

// Stats are counts derived from a Result's text.
type Stats struct {
	Words      int `json:"words"`
	Characters int `json:"characters"`
	Lines      int `json:"lines"`
}

// NewResult wraps recognized text verbatim.
func NewResult(text string) *Result {
	return &Result{Text: text}
}

// Empty reports whether the text is empty or whitespace only.
func (r *Result) Empty() bool {
	return strings.TrimSpace(r.Text) == ""
}

// Stats recomputes the counts from the text.
//
// Words are runs of non-whitespace, characters are Unicode code points
// including whitespace and newlines, and lines are lines that contain
// something other than whitespace.
func (r *Result) Stats() Stats {
	lines := 0
	for _, line := range strings.Split(r.Text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	return Stats{
		Words:      len(strings.Fields(r.Text)),
		Characters: utf8.RuneCountInString(r.Text),
		Lines:      lines,
	}
}
