package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripTags = bluemonday.StrictPolicy()

// SanitizeText strips any HTML markup from user or model supplied text and
// returns plain text with entities decoded.
func SanitizeText(s string) string {
	// Decode first so escaped tags are recognized, then again since
	// bluemonday re-escapes what it keeps.
	s = html.UnescapeString(s)
	s = stripTags.Sanitize(s)
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

// TitleFromPrompt uses the first five words of a generation prompt as the form title.
func TitleFromPrompt(prompt string) string {
	words := strings.Fields(SanitizeText(prompt))
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.Join(words, " ")
}

var fieldNameRE = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsValidFieldName reports whether name can be used as a form field key.
func IsValidFieldName(name string) bool {
	return fieldNameRE.MatchString(name)
}

// RemoveAccents folds accented letters to their base letter ("é" -> "e").
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// GenerateFieldName derives an identifier-safe field name from a label or a
// loosely formatted name: "Phone Number" -> "phone_number".
func GenerateFieldName(label string) string {
	key := strings.ToLower(RemoveAccents(strings.TrimSpace(label)))
	var sb strings.Builder
	lastUnderscore := false
	for _, c := range key {
		switch {
		case (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'):
			sb.WriteRune(c)
			lastUnderscore = false
		case c == '_' || c == '-' || unicode.IsSpace(c):
			if !lastUnderscore && sb.Len() > 0 {
				sb.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	name := strings.TrimRight(sb.String(), "_")
	if name == "" {
		return "field"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "field_" + name
	}
	return name
}
