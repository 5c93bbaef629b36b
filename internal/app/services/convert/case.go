package convert

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/convert"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

func applyCase(text, style string) (string, error) {
	switch style {
	case convert.CaseUpper:
		return strings.ToUpper(text), nil
	case convert.CaseLower:
		return strings.ToLower(text), nil
	case convert.CaseTitle:
		return joinWords(splitWords(text), " ", titleWord), nil
	case convert.CaseSentence:
		return sentenceCase(text), nil
	case convert.CaseCamel:
		words := splitWords(text)
		for i := range words {
			if i == 0 {
				words[i] = strings.ToLower(words[i])
			} else {
				words[i] = titleWord(words[i])
			}
		}
		return strings.Join(words, ""), nil
	case convert.CasePascal:
		return joinWords(splitWords(text), "", titleWord), nil
	case convert.CaseSnake:
		return joinWords(splitWords(text), "_", strings.ToLower), nil
	case convert.CaseKebab:
		return joinWords(splitWords(text), "-", strings.ToLower), nil
	case convert.CaseConstant:
		return joinWords(splitWords(text), "_", strings.ToUpper), nil
	default:
		return "", fmt.Errorf("unknown case style %q", style)
	}
}

// splitWords breaks input on whitespace, punctuation and camelCase
// boundaries, so already-converted text round-trips through any style.
func splitWords(text string) []string {
	var words []string
	for _, chunk := range nonWord.Split(text, -1) {
		if chunk == "" {
			continue
		}
		words = append(words, splitCamel(chunk)...)
	}
	return words
}

func splitCamel(chunk string) []string {
	runes := []rune(chunk)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := unicode.IsLower(prev) && unicode.IsUpper(cur)
		// ABCDef -> ABC Def
		if unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			boundary = true
		}
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	words = append(words, string(runes[start:]))
	return words
}

func joinWords(words []string, sep string, transform func(string) string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = transform(w)
	}
	return strings.Join(out, sep)
}

func titleWord(w string) string {
	runes := []rune(strings.ToLower(w))
	if len(runes) == 0 {
		return w
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func sentenceCase(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	runes := []rune(lower)
	capitalizeNext := true
	for i, r := range runes {
		if capitalizeNext && unicode.IsLetter(r) {
			runes[i] = unicode.ToUpper(r)
			capitalizeNext = false
			continue
		}
		if r == '.' || r == '!' || r == '?' || r == '؟' { // including Arabic question mark
			capitalizeNext = true
		}
	}
	return string(runes)
}
