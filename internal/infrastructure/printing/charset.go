package printing

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks after canonical decomposition, turning
// "Ō" into "O". Chains keep internal buffers, so each call builds its own.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// toWinAnsi converts UTF-8 text to the cp1252 bytes expected by the PDF core
// fonts. Characters outside cp1252 lose their diacritics when that makes
// them representable and become '?' otherwise.
func toWinAnsi(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFC.String(s) {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
			continue
		}
		folded, _, err := transform.String(stripMarks(), string(r))
		if err != nil || folded == "" {
			b.WriteByte('?')
			continue
		}
		for _, fr := range folded {
			if c, ok := charmap.Windows1252.EncodeRune(fr); ok {
				b.WriteByte(c)
			} else {
				b.WriteByte('?')
			}
		}
	}
	return b.String()
}
