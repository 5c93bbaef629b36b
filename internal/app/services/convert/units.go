package convert

import (
	"fmt"
	"math"
	"strings"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/convert"
)

// Factors express each unit in its category's base unit (gram, meter).
var unitTables = map[string]map[string]float64{
	"weight": {
		"mg": 0.001,
		"g":  1,
		"kg": 1000,
		"t":  1_000_000,
		"oz": 28.349523125,
		"lb": 453.59237,
	},
	"length": {
		"mm": 0.001,
		"cm": 0.01,
		"m":  1,
		"km": 1000,
		"in": 0.0254,
		"ft": 0.3048,
		"yd": 0.9144,
		"mi": 1609.344,
	},
}

func convertUnit(from, to string, value float64) (convert.UnitResult, error) {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))

	fromCat, fromFactor, err := lookupUnit(from)
	if err != nil {
		return convert.UnitResult{}, err
	}
	toCat, toFactor, err := lookupUnit(to)
	if err != nil {
		return convert.UnitResult{}, err
	}
	if fromCat != toCat {
		return convert.UnitResult{}, fmt.Errorf("cannot convert %s (%s) to %s (%s)", from, fromCat, to, toCat)
	}

	result := value * fromFactor / toFactor
	return convert.UnitResult{
		Category: fromCat,
		From:     from,
		To:       to,
		Value:    value,
		Result:   round6(result),
	}, nil
}

func lookupUnit(unit string) (string, float64, error) {
	for category, table := range unitTables {
		if factor, ok := table[unit]; ok {
			return category, factor, nil
		}
	}
	return "", 0, fmt.Errorf("unknown unit %q", unit)
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
