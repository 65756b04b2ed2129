package adapter

import (
	"path"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const fallbackObjectName = "file"

// sanitizeFilename turns an uploaded filename into a key-safe base name:
// extension dropped, lower-cased, diacritics folded, whitespace runs
// collapsed to "-" and everything outside [a-z0-9-] removed.
func sanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if ext := path.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}

	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		strings.ToLower(name),
	)
	if err != nil {
		folded = strings.ToLower(name)
	}

	var b strings.Builder
	b.Grow(len(folded))

	pendingDash := false
	for _, r := range folded {
		switch {
		case unicode.IsSpace(r):
			pendingDash = true
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			if pendingDash {
				b.WriteByte('-')
				pendingDash = false
			}
			b.WriteRune(r)
		}
	}
	if pendingDash && b.Len() > 0 {
		b.WriteByte('-')
	}

	if b.Len() == 0 {
		return fallbackObjectName
	}
	return b.String()
}

// buildObjectKey returns folder/<sanitized>-<unix millis>-<suffix>.
func buildObjectKey(folder, filename string, now time.Time, suffix string) string {
	return strings.Trim(folder, "/") + "/" +
		sanitizeFilename(filename) + "-" +
		strconv.FormatInt(now.UnixMilli(), 10) + "-" +
		suffix
}
