// Package convert implements the text case, color and unit converters.
package convert

import (
	"context"
	"fmt"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/convert"
	"github.com/D-dracula/MicroTools-sub001/pkg/logger"
)

// Service performs the conversions. All operations are pure.
type Service struct {
	log *logger.Logger
}

// New constructs a convert service.
func New(log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("convert")
	}
	return &Service{log: log}
}

// Case transforms text into the requested case style.
func (s *Service) Case(_ context.Context, text, style string) (convert.CaseResult, error) {
	if text == "" {
		return convert.CaseResult{}, fmt.Errorf("text is required")
	}
	out, err := applyCase(text, style)
	if err != nil {
		return convert.CaseResult{}, err
	}
	return convert.CaseResult{Input: text, Style: style, Output: out}, nil
}

// Color parses a color in hex, rgb() or hsl() notation and returns every
// supported representation.
func (s *Service) Color(_ context.Context, input string) (convert.Color, error) {
	return parseColor(input)
}

// Unit converts a value between two units of the same category.
func (s *Service) Unit(_ context.Context, from, to string, value float64) (convert.UnitResult, error) {
	return convertUnit(from, to, value)
}
