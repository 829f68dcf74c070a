package ocr

import (
	"regexp"
	"strings"
)

// sentenceBreak matches the whitespace run that follows a full stop
var sentenceBreak = regexp.MustCompile(`\.\s+`)

// FormatText breaks OCR output into lines at full stops. Newlines inside a
// sentence are folded into spaces and empty pieces are dropped.
func FormatText(ocrText string) []string {
	text := strings.TrimSpace(ocrText)
	if text == "" {
		return []string{}
	}

	var pieces []string
	last := 0
	for _, loc := range sentenceBreak.FindAllStringIndex(text, -1) {
		// keep the full stop with its sentence
		pieces = append(pieces, text[last:loc[0]+1])
		last = loc[1]
	}
	pieces = append(pieces, text[last:])

	lines := make([]string, 0, len(pieces))
	for _, p := range pieces {
		line := strings.TrimSpace(strings.ReplaceAll(p, "\n", " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
