// Package commerce implements the business calculators: profit margin,
// volumetric shipping, customer lifetime value, and payment gateway fees.
package commerce

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/commerce"
	"github.com/D-dracula/MicroTools-sub001/internal/config"
	"github.com/D-dracula/MicroTools-sub001/pkg/logger"
)

// Service evaluates the commerce calculators against the configured tables.
type Service struct {
	tools *config.Tools
	log   *logger.Logger
}

// New constructs a commerce service.
func New(tools *config.Tools, log *logger.Logger) *Service {
	if tools == nil {
		tools = config.DefaultTools()
	}
	if log == nil {
		log = logger.NewDefault("commerce")
	}
	return &Service{tools: tools, log: log}
}

// ProfitMargin computes net profit, margin and breakeven for one product line.
func (s *Service) ProfitMargin(_ context.Context, revenue, cost, returnLosses float64) (commerce.ProfitReport, error) {
	if revenue <= 0 {
		return commerce.ProfitReport{}, fmt.Errorf("revenue must be positive")
	}
	if cost < 0 || returnLosses < 0 {
		return commerce.ProfitReport{}, fmt.Errorf("cost and return losses must not be negative")
	}

	net := revenue - cost - returnLosses
	report := commerce.ProfitReport{
		Revenue:          revenue,
		Cost:             cost,
		ReturnLosses:     returnLosses,
		NetProfit:        round2(net),
		MarginPercent:    round2(net / revenue * 100),
		BreakevenRevenue: round2(cost + returnLosses),
	}
	if cost > 0 {
		report.MarkupPercent = round2(net / cost * 100)
	}
	report.Rating = profitRating(report.MarginPercent)
	return report, nil
}

func profitRating(margin float64) string {
	switch {
	case margin < 0:
		return commerce.RatingLoss
	case margin < 10:
		return commerce.RatingThin
	case margin < 20:
		return commerce.RatingFair
	default:
		return commerce.RatingHealthy
	}
}

// Shipping computes the billable weight and cost for one parcel.
func (s *Service) Shipping(_ context.Context, carrierID string, actualKg, lengthCm, widthCm, heightCm, ratePerKg, surcharge float64) (commerce.ShippingQuote, error) {
	carrierID = strings.ToLower(strings.TrimSpace(carrierID))
	carrier, ok := s.tools.Carriers[carrierID]
	if !ok {
		return commerce.ShippingQuote{}, fmt.Errorf("unknown carrier %q", carrierID)
	}
	if actualKg <= 0 {
		return commerce.ShippingQuote{}, fmt.Errorf("actual weight must be positive")
	}
	if lengthCm <= 0 || widthCm <= 0 || heightCm <= 0 {
		return commerce.ShippingQuote{}, fmt.Errorf("dimensions must be positive")
	}
	if ratePerKg < 0 || surcharge < 0 {
		return commerce.ShippingQuote{}, fmt.Errorf("rate and surcharge must not be negative")
	}

	volumetric := lengthCm * widthCm * heightCm / carrier.Divisor
	billable := math.Max(actualKg, volumetric)
	billedBy := "actual"
	if volumetric > actualKg {
		billedBy = "volumetric"
	}

	return commerce.ShippingQuote{
		Carrier:        carrier.Name,
		Divisor:        carrier.Divisor,
		ActualWeightKg: actualKg,
		VolumetricKg:   round2(volumetric),
		BillableKg:     round2(billable),
		BilledBy:       billedBy,
		RatePerKg:      ratePerKg,
		Surcharge:      surcharge,
		TotalCost:      round2(billable*ratePerKg + surcharge),
	}, nil
}

// LTV computes customer lifetime value and its ratio to acquisition cost.
func (s *Service) LTV(_ context.Context, avgOrderValue, purchasesPerYear, lifespanYears, cac float64) (commerce.LTVReport, error) {
	if avgOrderValue <= 0 || purchasesPerYear <= 0 || lifespanYears <= 0 {
		return commerce.LTVReport{}, fmt.Errorf("order value, frequency and lifespan must be positive")
	}
	if cac < 0 {
		return commerce.LTVReport{}, fmt.Errorf("cac must not be negative")
	}

	ltv := avgOrderValue * purchasesPerYear * lifespanYears
	report := commerce.LTVReport{
		AvgOrderValue:    avgOrderValue,
		PurchasesPerYear: purchasesPerYear,
		LifespanYears:    lifespanYears,
		CAC:              cac,
		LTV:              round2(ltv),
	}
	if cac > 0 {
		report.Ratio = round2(ltv / cac)
		switch {
		case report.Ratio < 1:
			report.Rating = commerce.LTVRatingLosing
		case report.Ratio < 3:
			report.Rating = commerce.LTVRatingAcceptable
		default:
			report.Rating = commerce.LTVRatingHealthy
		}
	}
	return report, nil
}

// GatewayFees quotes the fee one gateway charges on an amount.
func (s *Service) GatewayFees(_ context.Context, gatewayID string, amount float64) (commerce.GatewayFeeQuote, error) {
	gatewayID = strings.ToLower(strings.TrimSpace(gatewayID))
	gw, ok := s.tools.Gateways[gatewayID]
	if !ok {
		return commerce.GatewayFeeQuote{}, fmt.Errorf("unknown gateway %q", gatewayID)
	}
	if amount <= 0 {
		return commerce.GatewayFeeQuote{}, fmt.Errorf("amount must be positive")
	}
	return quote(gw, amount), nil
}

// CompareGateways quotes every configured gateway sorted by net amount
// descending, so the cheapest gateway comes first.
func (s *Service) CompareGateways(_ context.Context, amount float64) ([]commerce.GatewayFeeQuote, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	quotes := make([]commerce.GatewayFeeQuote, 0, len(s.tools.Gateways))
	for _, gw := range s.tools.Gateways {
		quotes = append(quotes, quote(gw, amount))
	}
	sort.Slice(quotes, func(i, j int) bool {
		if quotes[i].NetAmount != quotes[j].NetAmount {
			return quotes[i].NetAmount > quotes[j].NetAmount
		}
		return quotes[i].Gateway < quotes[j].Gateway
	})
	return quotes, nil
}

func quote(gw config.Gateway, amount float64) commerce.GatewayFeeQuote {
	fee := amount*gw.Percent/100 + gw.Fixed
	return commerce.GatewayFeeQuote{
		Gateway:          gw.Name,
		Percent:          gw.Percent,
		Fixed:            gw.Fixed,
		Currency:         gw.Currency,
		Amount:           amount,
		Fee:              round2(fee),
		NetAmount:        round2(amount - fee),
		EffectivePercent: round2(fee / amount * 100),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
