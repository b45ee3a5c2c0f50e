package screen

import (
	"regexp"
	"strings"
)

var capitalAfterChar = regexp.MustCompile(`[^$\s]([A-Z])`)

// Cleanup normalizes raw OCR output before matching.
// Lines glued together by recognition are split again at every capital letter
// that directly follows another character.
func Cleanup(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	for _, c := range corrections {
		text = strings.ReplaceAll(text, c.from, c.to)
	}

	for {
		loc := capitalAfterChar.FindStringSubmatchIndex(text)
		if loc == nil {
			return text
		}
		text = text[:loc[2]] + " " + text[loc[2]:]
	}
}
