package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWordChars  = regexp.MustCompile(`[^\w\s]`)
)

// Capitalize trims s and upper-cases its first character.
// The rest of the string is left as is.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// NormalizeTags cleans user-entered tags: whitespace runs become "_",
// characters outside [A-Za-z0-9_] are dropped, empty tags are skipped and
// duplicates removed. First occurrence order is kept.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tag = whitespaceRun.ReplaceAllString(tag, "_")
		tag = nonWordChars.ReplaceAllString(tag, "")
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// ParseTags splits a comma-separated tag list and normalizes it.
func ParseTags(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(input, ","))
}
