// Package convert defines result types for the text and unit converters.
package convert

// CaseResult holds a single text case transformation.
type CaseResult struct {
	Input  string `json:"input"`
	Style  string `json:"style"`
	Output string `json:"output"`
}

// Case styles accepted by the converter.
const (
	CaseUpper    = "upper"
	CaseLower    = "lower"
	CaseTitle    = "title"
	CaseSentence = "sentence"
	CaseCamel    = "camel"
	CasePascal   = "pascal"
	CaseSnake    = "snake"
	CaseKebab    = "kebab"
	CaseConstant = "constant"
)

// Color carries every supported representation of one color.
type Color struct {
	Hex string  `json:"hex"`
	R   int     `json:"r"`
	G   int     `json:"g"`
	B   int     `json:"b"`
	H   float64 `json:"h"`
	S   float64 `json:"s"`
	L   float64 `json:"l"`
	RGB string  `json:"rgb"`
	HSL string  `json:"hsl"`
}

// UnitResult holds a single unit conversion.
type UnitResult struct {
	Category string  `json:"category"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Value    float64 `json:"value"`
	Result   float64 `json:"result"`
}
