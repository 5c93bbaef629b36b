// Package commerce defines result types for the business calculators.
package commerce

// ProfitReport is the outcome of a profit margin calculation.
type ProfitReport struct {
	Revenue          float64 `json:"revenue"`
	Cost             float64 `json:"cost"`
	ReturnLosses     float64 `json:"return_losses"`
	NetProfit        float64 `json:"net_profit"`
	MarginPercent    float64 `json:"margin_percent"`
	MarkupPercent    float64 `json:"markup_percent"`
	BreakevenRevenue float64 `json:"breakeven_revenue"`
	Rating           string  `json:"rating"`
}

// Profit rating bands.
const (
	RatingLoss    = "loss"
	RatingThin    = "thin"
	RatingFair    = "fair"
	RatingHealthy = "healthy"
)

// ShippingQuote is the outcome of a volumetric shipping calculation.
type ShippingQuote struct {
	Carrier        string  `json:"carrier"`
	Divisor        float64 `json:"divisor"`
	ActualWeightKg float64 `json:"actual_weight_kg"`
	VolumetricKg   float64 `json:"volumetric_kg"`
	BillableKg     float64 `json:"billable_kg"`
	BilledBy       string  `json:"billed_by"` // "actual" or "volumetric"
	RatePerKg      float64 `json:"rate_per_kg"`
	Surcharge      float64 `json:"surcharge"`
	TotalCost      float64 `json:"total_cost"`
}

// LTVReport is the outcome of a lifetime value calculation.
type LTVReport struct {
	AvgOrderValue    float64 `json:"avg_order_value"`
	PurchasesPerYear float64 `json:"purchases_per_year"`
	LifespanYears    float64 `json:"lifespan_years"`
	CAC              float64 `json:"cac"`
	LTV              float64 `json:"ltv"`
	Ratio            float64 `json:"ratio"`
	Rating           string  `json:"rating"`
}

// LTV/CAC rating bands.
const (
	LTVRatingLosing     = "losing"
	LTVRatingAcceptable = "acceptable"
	LTVRatingHealthy    = "healthy"
)

// GatewayFeeQuote describes the fees one payment gateway would charge.
type GatewayFeeQuote struct {
	Gateway          string  `json:"gateway"`
	Percent          float64 `json:"percent"`
	Fixed            float64 `json:"fixed"`
	Currency         string  `json:"currency"`
	Amount           float64 `json:"amount"`
	Fee              float64 `json:"fee"`
	NetAmount        float64 `json:"net_amount"`
	EffectivePercent float64 `json:"effective_percent"`
}
