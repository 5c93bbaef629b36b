package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Carrier describes one shipping carrier's volumetric divisor.
type Carrier struct {
	Name    string  `yaml:"name"`
	Divisor float64 `yaml:"divisor"`
}

// Gateway describes one payment gateway's fee schedule.
type Gateway struct {
	Name     string  `yaml:"name"`
	Percent  float64 `yaml:"percent"`
	Fixed    float64 `yaml:"fixed"`
	Currency string  `yaml:"currency"`
}

// NameWords are the word tables used by the business name generator.
type NameWords struct {
	Prefixes []string `yaml:"prefixes"`
	Suffixes []string `yaml:"suffixes"`
}

// Tools carries the data tables behind the calculator and generator tools.
type Tools struct {
	Carriers  map[string]Carrier   `yaml:"carriers"`
	Gateways  map[string]Gateway   `yaml:"gateways"`
	NameWords map[string]NameWords `yaml:"name_words"`
}

// DefaultTools returns the compiled-in tool tables.
func DefaultTools() *Tools {
	return &Tools{
		Carriers: map[string]Carrier{
			"dhl":     {Name: "DHL Express", Divisor: 5000},
			"fedex":   {Name: "FedEx", Divisor: 5000},
			"ups":     {Name: "UPS", Divisor: 5000},
			"aramex":  {Name: "Aramex", Divisor: 5000},
			"smsa":    {Name: "SMSA Express", Divisor: 5000},
			"sea":     {Name: "Sea Freight", Divisor: 6000},
			"economy": {Name: "Economy Post", Divisor: 9000},
		},
		Gateways: map[string]Gateway{
			"stripe": {Name: "Stripe", Percent: 2.9, Fixed: 0.30, Currency: "USD"},
			"paypal": {Name: "PayPal", Percent: 3.49, Fixed: 0.49, Currency: "USD"},
			"mada":   {Name: "mada", Percent: 1.0, Fixed: 1.00, Currency: "SAR"},
			"tap":    {Name: "Tap Payments", Percent: 2.5, Fixed: 1.00, Currency: "SAR"},
			"paymob": {Name: "Paymob", Percent: 2.75, Fixed: 3.00, Currency: "EGP"},
		},
		NameWords: map[string]NameWords{
			"modern": {
				Prefixes: []string{"nova", "zen", "flux", "apex", "lumen", "orbit"},
				Suffixes: []string{"ly", "io", "lab", "hub", "ify", "works"},
			},
			"classic": {
				Prefixes: []string{"royal", "prime", "grand", "crown", "sterling"},
				Suffixes: []string{"co", "trading", "group", "house", "brothers"},
			},
			"playful": {
				Prefixes: []string{"happy", "sunny", "bubbly", "cozy", "witty"},
				Suffixes: []string{"bee", "panda", "pop", "spark", "nest"},
			},
			"arabic": {
				Prefixes: []string{"dar", "bayt", "souq", "noor", "waha", "amal"},
				Suffixes: []string{"mart", "store", "bazaar", "corner", "plaza"},
			},
		},
	}
}

// LoadTools reads tool tables from a YAML file, overlaying the defaults.
// A missing file yields the defaults unchanged.
func LoadTools(path string) (*Tools, error) {
	tools := DefaultTools()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tools, nil
		}
		return nil, fmt.Errorf("read tools config: %w", err)
	}

	var overlay Tools
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse tools config: %w", err)
	}

	for id, c := range overlay.Carriers {
		tools.Carriers[normalizeKey(id)] = c
	}
	for id, g := range overlay.Gateways {
		tools.Gateways[normalizeKey(id)] = g
	}
	for style, words := range overlay.NameWords {
		tools.NameWords[normalizeKey(style)] = words
	}

	if err := tools.validate(); err != nil {
		return nil, err
	}
	return tools, nil
}

func (t *Tools) validate() error {
	for id, c := range t.Carriers {
		if c.Divisor <= 0 {
			return fmt.Errorf("carrier %s: divisor must be positive", id)
		}
	}
	for id, g := range t.Gateways {
		if g.Percent < 0 || g.Percent >= 100 {
			return fmt.Errorf("gateway %s: percent out of range", id)
		}
		if g.Fixed < 0 {
			return fmt.Errorf("gateway %s: fixed fee must not be negative", id)
		}
	}
	for style, words := range t.NameWords {
		if len(words.Prefixes) == 0 || len(words.Suffixes) == 0 {
			return fmt.Errorf("name style %s: prefixes and suffixes required", style)
		}
	}
	return nil
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
