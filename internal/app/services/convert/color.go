package convert

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/convert"
)

var (
	hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	rgbPattern = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
	hslPattern = regexp.MustCompile(`^hsl\(\s*(\d{1,3}(?:\.\d+)?)\s*,\s*(\d{1,3}(?:\.\d+)?)%\s*,\s*(\d{1,3}(?:\.\d+)?)%\s*\)$`)
)

func parseColor(input string) (convert.Color, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return convert.Color{}, fmt.Errorf("color is required")
	}

	if m := hexPattern.FindStringSubmatch(input); m != nil {
		r, g, b := hexToRGB(m[1])
		return buildColor(r, g, b), nil
	}
	if m := rgbPattern.FindStringSubmatch(input); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			return convert.Color{}, fmt.Errorf("rgb components must be 0-255")
		}
		return buildColor(r, g, b), nil
	}
	if m := hslPattern.FindStringSubmatch(input); m != nil {
		h, _ := strconv.ParseFloat(m[1], 64)
		sat, _ := strconv.ParseFloat(m[2], 64)
		l, _ := strconv.ParseFloat(m[3], 64)
		if h >= 360 || sat > 100 || l > 100 {
			return convert.Color{}, fmt.Errorf("hsl components out of range")
		}
		r, g, b := hslToRGB(h, sat/100, l/100)
		return buildColor(r, g, b), nil
	}
	return convert.Color{}, fmt.Errorf("unrecognised color %q: expected hex, rgb() or hsl()", input)
}

func hexToRGB(hex string) (int, int, int) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	r, _ := strconv.ParseInt(hex[0:2], 16, 0)
	g, _ := strconv.ParseInt(hex[2:4], 16, 0)
	b, _ := strconv.ParseInt(hex[4:6], 16, 0)
	return int(r), int(g), int(b)
}

func buildColor(r, g, b int) convert.Color {
	h, s, l := rgbToHSL(r, g, b)
	return convert.Color{
		Hex: fmt.Sprintf("#%02x%02x%02x", r, g, b),
		R:   r, G: g, B: b,
		H: h, S: s, L: l,
		RGB: fmt.Sprintf("rgb(%d, %d, %d)", r, g, b),
		HSL: fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", h, s, l),
	}
}

func rgbToHSL(ri, gi, bi int) (float64, float64, float64) {
	r := float64(ri) / 255
	g := float64(gi) / 255
	b := float64(bi) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	if max == min {
		return 0, 0, math.Round(l * 100)
	}

	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60

	return math.Round(h), math.Round(s * 100), math.Round(l * 100)
}

func hslToRGB(h, s, l float64) (int, int, int) {
	if s == 0 {
		v := int(math.Round(l * 255))
		return v, v, v
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hk := h / 360

	conv := func(t float64) int {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		var c float64
		switch {
		case t < 1.0/6:
			c = p + (q-p)*6*t
		case t < 1.0/2:
			c = q
		case t < 2.0/3:
			c = p + (q-p)*(2.0/3-t)*6
		default:
			c = p
		}
		return int(math.Round(c * 255))
	}

	return conv(hk + 1.0/3), conv(hk), conv(hk - 1.0/3)
}
