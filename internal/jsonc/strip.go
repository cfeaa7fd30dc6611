// Package jsonc removes whole-line "//" comments from appsettings-style JSON.
//
// The filter is line based, not JSON aware: a line whose left-trimmed content
// starts with "//" is dropped, and so is every empty line. A "//" inside a
// string value ("http://x//y") is never touched.
package jsonc

import (
	"strings"
	"unicode"
)

// CommentPrefix marks a comment-only line.
const CommentPrefix = "//"

const byteOrderMark = "\ufeff"

// Text is the filtered document plus enough bookkeeping to map positions
// back to the original source.
type Text struct {
	// JSON is the kept lines joined with "\n".
	JSON string
	// lines[i] is the 1-based original line number of filtered line i+1.
	lines []int
}

// Strip filters comment and empty lines out of src. A leading UTF-8 byte
// order mark is dropped.
func Strip(src string) Text {
	src = strings.TrimPrefix(src, byteOrderMark)
	var (
		kept  []string
		lines []int
	)
	lineNo := 0
	// "\r\n" counts as one line break; a lone "\r" or "\n" as one each.
	for _, raw := range strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n") {
		for _, part := range strings.Split(raw, "\r") {
			lineNo++
			if part == "" {
				continue
			}
			if strings.HasPrefix(strings.TrimLeftFunc(part, unicode.IsSpace), CommentPrefix) {
				continue
			}
			kept = append(kept, part)
			lines = append(lines, lineNo)
		}
	}
	return Text{JSON: strings.Join(kept, "\n"), lines: lines}
}

// String is a convenience for Strip(src).JSON.
func String(src string) string {
	return Strip(src).JSON
}

// OriginalLine maps a 1-based line number in t.JSON to the 1-based line in
// the source passed to Strip. Out of range values are returned unchanged.
func (t Text) OriginalLine(n int) int {
	if n < 1 || n > len(t.lines) {
		return n
	}
	return t.lines[n-1]
}
