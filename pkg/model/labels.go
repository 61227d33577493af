package model

import (
	"regexp"
	"strings"
	"unicode"
)

var wordSeparators = regexp.MustCompile(`[_\-.\s]+`)

// DefaultLabeler turns a field name such as "accept_terms" or "firstName" into
// "Accept Terms" / "First Name".
func DefaultLabeler(name string) string {
	var words []string
	for _, chunk := range wordSeparators.Split(name, -1) {
		for _, word := range splitCamel(chunk) {
			runes := []rune(strings.ToLower(word))
			runes[0] = unicode.ToUpper(runes[0])
			words = append(words, string(runes))
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(chunk string) []string {
	if chunk == "" {
		return nil
	}
	var (
		words []string
		start int
		runes = []rune(chunk)
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur))
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}
