package policypdf

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const defaultFilePrefix = "policysprint"

// SuggestFilename returns an ASCII file name for a rendered document, such
// as "harbour-street-bakery-ai-policy.pdf". Diacritics are folded and every
// other character outside [a-z0-9] becomes a single hyphen. A blank business
// name falls back to a generic prefix.
func SuggestFilename(business, document string) string {
	doc := slug(document)
	if doc == "" {
		doc = "document"
	}
	prefix := slug(business)
	if prefix == "" {
		prefix = defaultFilePrefix
	}
	name := prefix + "-" + doc
	if len(name) > 96 {
		name = strings.TrimRight(name[:96], "-")
	}
	return name + ".pdf"
}

func slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			hyphen = false
		case r == '&':
			if b.Len() > 0 && !hyphen {
				b.WriteByte('-')
			}
			b.WriteString("and-")
			hyphen = true
		default:
			if b.Len() > 0 && !hyphen {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
