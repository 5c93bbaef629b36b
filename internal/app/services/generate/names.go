package generate

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/generate"
)

// BusinessNames combines the style's word tables with the seed keyword and
// returns up to count unique candidates, each with a URL-safe slug.
func (s *Service) BusinessNames(_ context.Context, keyword, style string, count int) ([]generate.NameCandidate, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("keyword is required")
	}
	if count < 1 || count > 50 {
		return nil, fmt.Errorf("count must be between 1 and 50")
	}

	style = strings.ToLower(strings.TrimSpace(style))
	words, ok := s.tools.NameWords[style]
	if !ok {
		return nil, fmt.Errorf("unknown name style %q", style)
	}

	// Every prefix/suffix combination around the keyword, deduplicated.
	var pool []string
	for _, p := range words.Prefixes {
		pool = append(pool, p+" "+keyword, keyword+" "+p)
	}
	for _, sfx := range words.Suffixes {
		pool = append(pool, keyword+" "+sfx)
	}
	for _, p := range words.Prefixes {
		for _, sfx := range words.Suffixes {
			pool = append(pool, p+" "+keyword+" "+sfx)
		}
	}

	seen := make(map[string]bool)
	candidates := make([]generate.NameCandidate, 0, count)
	for len(candidates) < count && len(pool) > 0 {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool))))
		if err != nil {
			return nil, fmt.Errorf("read randomness: %w", err)
		}
		i := n.Int64()
		raw := pool[i]
		pool = append(pool[:i], pool[i+1:]...)

		name := displayName(raw)
		if seen[name] {
			continue
		}
		seen[name] = true
		candidates = append(candidates, generate.NameCandidate{Name: name, Slug: Slugify(name)})
	}
	return candidates, nil
}

func displayName(raw string) string {
	parts := strings.Fields(raw)
	for i, p := range parts {
		runes := []rune(p)
		if len(runes) > 0 && unicode.IsLower(runes[0]) {
			runes[0] = unicode.ToUpper(runes[0])
			parts[i] = string(runes)
		}
	}
	return strings.Join(parts, " ")
}

var slugStrip = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Slugify folds a name into a lowercase hyphen-separated URL slug. Combining
// marks are dropped so accented Latin input produces ASCII slugs; Arabic
// letters pass through unchanged.
func Slugify(name string) string {
	decomposed := norm.NFD.String(strings.ToLower(strings.TrimSpace(name)))
	var b strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	slug := slugStrip.ReplaceAllString(b.String(), "-")
	return strings.Trim(slug, "-")
}
