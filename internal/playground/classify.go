// Package playground implements the execution pipeline: classify the
// raw event text, dispatch each record to the interpreter, render the
// outcomes, and restore shared sessions on page load.
package playground

import "strings"

// Mode says how the event text is interpreted.
type Mode int

const (
	// ModeSingle treats the whole event text as one JSON value.
	ModeSingle Mode = iota
	// ModeBatch treats the event text as one JSON value per line.
	ModeBatch
)

// Classified is the classifier's view of the event text: the mode tag
// plus the raw full text (single) or the ordered raw lines (batch).
type Classified struct {
	Mode  Mode
	Raw   string
	Lines []string
}

// Classify decides between single and batch interpretation. The rule is
// a heuristic: if the text spans more than one line and the trimmed
// second line both starts with "{" and ends with "}", it is a batch of
// newline-delimited records; otherwise the whole text is one value.
// This lets users paste either a pretty-printed object or a compact
// NDJSON batch without a mode switch. A pretty-printed object whose
// second line happens to be brace-delimited is misclassified; the rule
// deliberately inspects only the second line.
func Classify(raw string) Classified {
	lines := strings.Split(raw, "\n")
	if len(lines) > 1 {
		second := strings.TrimSpace(lines[1])
		if strings.HasPrefix(second, "{") && strings.HasSuffix(second, "}") {
			return Classified{Mode: ModeBatch, Lines: lines}
		}
	}
	return Classified{Mode: ModeSingle, Raw: raw}
}
