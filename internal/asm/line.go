package asm

import "strings"

// normalizeLine applies the three line-normalization steps spec.md §4.1
// requires before either assembler pass touches a line: strip
// whitespace, truncate at a comment, then drop the decorative '$'
// immediate-prefix sigil. The comment strip runs before the '$' strip
// so a literal '$' appearing after a '#' in a genuine comment can never
// corrupt a later immediate (see SPEC_FULL.md's supplemented-features
// note on assembler.rs's trim_line).
func normalizeLine(line string) string {
	line = strings.TrimSpace(line)
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.ReplaceAll(line, "$", "")
	return strings.TrimSpace(line)
}

// splitLabel returns (label, body, hasLabel) for a normalized line. If
// the line contains ':', everything before the first ':' is the
// trimmed label and everything after is the line body used for size
// computation and encoding.
func splitLabel(line string) (label string, body string, hasLabel bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", line, false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}
