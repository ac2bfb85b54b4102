package tracer

import "strings"

// bodyLine is one statement belonging to a block body, with the source
// line index it came from (inline bodies reuse the header's index).
type bodyLine struct {
	text string
	idx  int
}

// braceWalk updates a brace depth across one line and reports whether the
// depth touched zero, which marks the line terminating the current block
// even when it reopens a new one (as in "} else {").
func braceWalk(line string, depth int) (newDepth int, closed bool) {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth <= 0 {
				closed = true
			}
		}
	}
	return depth, closed
}

// isInlineBlock reports whether the header line opens and fully closes its
// own block, e.g. `if (x) { print(a) }`.
func isInlineBlock(line string) bool {
	open := strings.Index(line, "{")
	if open < 0 {
		return false
	}
	depth, closed := braceWalk(line, 0)
	return closed && depth == 0
}

// inlineBody returns the statement text between the first '{' and the
// last '}' of an inline block header.
func inlineBody(line string) string {
	open := strings.Index(line, "{")
	close := strings.LastIndex(line, "}")
	if open < 0 || close <= open {
		return ""
	}
	return strings.TrimSpace(line[open+1 : close])
}

// splitInlineArm cuts the first `header { body }` segment off an inline
// branch chain. tail holds whatever follows the closing brace, usually
// an else or else-if arm.
func splitInlineArm(s string) (arm, header, body, tail string, ok bool) {
	open := strings.Index(s, "{")
	if open < 0 {
		return "", "", "", "", false
	}
	var quote byte
	depth := 0
	for j := open; j < len(s); j++ {
		c := s[j]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				arm = strings.TrimSpace(s[:j+1])
				header = strings.TrimSpace(s[:open])
				body = strings.TrimSpace(s[open+1 : j])
				tail = strings.TrimSpace(s[j+1:])
				return arm, header, body, tail, true
			}
		}
	}
	return "", "", "", "", false
}

// indentOf measures leading whitespace width (tabs count as one column;
// only relative comparison matters).
func indentOf(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return len(line)
}

// blockBody collects the body of the block opened at header index h and
// the index of the line that terminated it. Recognizes three shapes:
// an opening brace on the header (or alone on the following line), an
// inline single-line block, and indentation-delimited bodies.
//
// The returned closer index points at the terminating line itself: for
// brace blocks that is the line holding the closing '}' (which may also
// open the next branch), for indentation blocks the first line back at or
// below the header's indent. Callers decide whether the closer continues
// a chain (else/elif/catch) or ends the statement.
func (t *trace) blockBody(h int) (body []bodyLine, closer int) {
	header := t.lines[h]
	// A leading '}' closes the previous block ("} else {"), not this one.
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(header), "}"))

	if isInlineBlock(trimmed) {
		if inner := inlineBody(trimmed); inner != "" {
			for _, stmt := range splitStatements(inner) {
				body = append(body, bodyLine{text: stmt, idx: h})
			}
		}
		return body, h
	}

	depth, _ := braceWalk(trimmed, 0)
	scanFrom := h + 1

	// Allman style: brace alone on the next non-blank line.
	if depth <= 0 {
		if j, ok := t.nextNonBlank(h + 1); ok && strings.TrimSpace(t.lines[j]) == "{" {
			depth = 1
			scanFrom = j + 1
		}
	}

	if depth > 0 {
		for j := scanFrom; j < len(t.lines); j++ {
			var closed bool
			depth, closed = braceWalk(t.lines[j], depth)
			if closed {
				return body, j
			}
			body = append(body, bodyLine{text: strings.TrimSpace(t.lines[j]), idx: j})
		}
		return body, len(t.lines)
	}

	// Indentation block (python-style, or a braceless single statement).
	base := indentOf(header)
	j := h + 1
	for ; j < len(t.lines); j++ {
		line := t.lines[j]
		if strings.TrimSpace(line) == "" {
			continue
		}
		if indentOf(line) <= base {
			break
		}
		body = append(body, bodyLine{text: strings.TrimSpace(line), idx: j})
	}
	return body, j
}

// nextNonBlank finds the first non-blank line at or after index i.
func (t *trace) nextNonBlank(i int) (int, bool) {
	for ; i < len(t.lines); i++ {
		if strings.TrimSpace(t.lines[i]) != "" {
			return i, true
		}
	}
	return 0, false
}

// splitStatements breaks an inline block body on semicolons, keeping
// quoted text intact.
func splitStatements(body string) []string {
	var out []string
	var quote byte
	start := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == ';':
			if s := strings.TrimSpace(body[start:i]); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(body[start:]); s != "" {
		out = append(out, s)
	}
	return out
}
