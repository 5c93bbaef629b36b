package generate

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/generate"
)

// PasswordOptions selects the character classes for password generation.
type PasswordOptions struct {
	Length           int  `json:"length"`
	Upper            bool `json:"upper"`
	Lower            bool `json:"lower"`
	Digits           bool `json:"digits"`
	Symbols          bool `json:"symbols"`
	ExcludeAmbiguous bool `json:"exclude_ambiguous"`
}

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{};:,.<>?"
	ambiguous   = "O0Il1|`'\""
)

// Password generates a random password with at least one character from each
// enabled class, then scores its strength.
func (s *Service) Password(_ context.Context, opts PasswordOptions) (generate.PasswordResult, error) {
	if opts.Length < 4 || opts.Length > 128 {
		return generate.PasswordResult{}, fmt.Errorf("length must be between 4 and 128")
	}

	var classes []string
	var classNames []string
	add := func(enabled bool, chars, name string) {
		if !enabled {
			return
		}
		if opts.ExcludeAmbiguous {
			chars = stripAmbiguous(chars)
		}
		classes = append(classes, chars)
		classNames = append(classNames, name)
	}
	add(opts.Upper, upperChars, "upper")
	add(opts.Lower, lowerChars, "lower")
	add(opts.Digits, digitChars, "digits")
	add(opts.Symbols, symbolChars, "symbols")

	if len(classes) == 0 {
		return generate.PasswordResult{}, fmt.Errorf("at least one character class must be enabled")
	}
	if opts.Length < len(classes) {
		return generate.PasswordResult{}, fmt.Errorf("length %d cannot cover %d character classes", opts.Length, len(classes))
	}

	alphabet := strings.Join(classes, "")
	chars := make([]byte, 0, opts.Length)

	// Guarantee one character per enabled class, fill the rest uniformly.
	for _, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return generate.PasswordResult{}, err
		}
		chars = append(chars, c)
	}
	for len(chars) < opts.Length {
		c, err := randomChar(alphabet)
		if err != nil {
			return generate.PasswordResult{}, err
		}
		chars = append(chars, c)
	}
	if err := shuffle(chars); err != nil {
		return generate.PasswordResult{}, err
	}

	password := string(chars)
	score := Strength(password)
	return generate.PasswordResult{
		Password: password,
		Length:   opts.Length,
		Score:    score,
		Label:    strengthLabel(score),
		Classes:  classNames,
	}, nil
}

// Strength scores a password 0..100 using weighted character-class presence
// and length.
func Strength(password string) int {
	if password == "" {
		return 0
	}

	score := 0
	if strings.ContainsAny(password, upperChars) {
		score += 15
	}
	if strings.ContainsAny(password, lowerChars) {
		score += 15
	}
	if strings.ContainsAny(password, digitChars) {
		score += 15
	}
	if strings.ContainsAny(password, symbolChars) {
		score += 20
	}

	switch n := len(password); {
	case n >= 16:
		score += 35
	case n >= 12:
		score += 25
	case n >= 8:
		score += 15
	case n >= 6:
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

func strengthLabel(score int) string {
	switch {
	case score < 40:
		return generate.StrengthWeak
	case score < 60:
		return generate.StrengthFair
	case score < 80:
		return generate.StrengthGood
	default:
		return generate.StrengthStrong
	}
}

func stripAmbiguous(chars string) string {
	var b strings.Builder
	for _, c := range chars {
		if !strings.ContainsRune(ambiguous, c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func randomChar(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, fmt.Errorf("read randomness: %w", err)
	}
	return alphabet[n.Int64()], nil
}

func shuffle(chars []byte) error {
	for i := len(chars) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("read randomness: %w", err)
		}
		j := n.Int64()
		chars[i], chars[j] = chars[j], chars[i]
	}
	return nil
}
