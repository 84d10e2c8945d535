package style

import (
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TruncateToWidth shortens a string with a trailing ellipsis until it
// fits within maxWidth pixels at the given face. Returns the possibly
// shortened string and whether truncation occurred.
func TruncateToWidth(s string, face text.Face, maxWidth float64) (string, bool) {
	if w, _ := text.Measure(s, face, 0); w <= maxWidth {
		return s, false
	}

	const ellipsis = "..."
	for len(s) > 0 {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
		if w, _ := text.Measure(s+ellipsis, face, 0); w <= maxWidth {
			return s + ellipsis, true
		}
	}
	return ellipsis, true
}

// TruncateStart truncates a string from the start, keeping the end
// portion. Useful for paths where the filename matters most.
func TruncateStart(s string, maxLen int) (string, bool) {
	if len(s) <= maxLen {
		return s, false
	}
	if maxLen <= 3 {
		return s[len(s)-maxLen:], true
	}
	return "..." + s[len(s)-maxLen+3:], true
}
