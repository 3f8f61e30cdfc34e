package teams

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases, strips diacritics, collapses whitespace,
// then resolves through the NBA alias map.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = stripDiacritics(s)
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ".", "")
	s = collapseWhitespace(s)
	if canonical, ok := Aliases[s]; ok {
		return canonical
	}
	return s
}

// GameID builds a stable matchup key ("boston celtics@charlotte hornets" ->
// "boston-celtics@charlotte-hornets") used to dedup alerts and tag journal rows.
func GameID(teamA, teamB string) string {
	return slug(Normalize(teamA)) + "@" + slug(Normalize(teamB))
}

func slug(s string) string {
	if s == "" {
		return "unknown"
	}
	return strings.ReplaceAll(s, " ", "-")
}

func stripDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if !unicode.Is(unicode.Mn, r) { // Mn = Mark, Nonspacing (combining accents)
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
