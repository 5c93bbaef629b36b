package commerce

import (
	"context"
	"testing"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/commerce"
)

func TestProfitMargin(t *testing.T) {
	svc := New(nil, nil)

	report, err := svc.ProfitMargin(context.Background(), 1000, 600, 50)
	if err != nil {
		t.Fatalf("ProfitMargin: %v", err)
	}
	if report.NetProfit != 350 {
		t.Fatalf("expected net profit 350, got %v", report.NetProfit)
	}
	if report.MarginPercent != 35 {
		t.Fatalf("expected margin 35%%, got %v", report.MarginPercent)
	}
	if report.MarkupPercent != 58.33 {
		t.Fatalf("expected markup 58.33%%, got %v", report.MarkupPercent)
	}
	if report.BreakevenRevenue != 650 {
		t.Fatalf("expected breakeven 650, got %v", report.BreakevenRevenue)
	}
	if report.Rating != commerce.RatingHealthy {
		t.Fatalf("expected healthy rating, got %q", report.Rating)
	}
}

func TestProfitMarginRatingBands(t *testing.T) {
	svc := New(nil, nil)
	cases := []struct {
		revenue, cost float64
		rating        string
	}{
		{100, 120, commerce.RatingLoss},
		{100, 95, commerce.RatingThin},
		{100, 85, commerce.RatingFair},
		{100, 50, commerce.RatingHealthy},
	}
	for _, tc := range cases {
		report, err := svc.ProfitMargin(context.Background(), tc.revenue, tc.cost, 0)
		if err != nil {
			t.Fatalf("ProfitMargin(%v, %v): %v", tc.revenue, tc.cost, err)
		}
		if report.Rating != tc.rating {
			t.Fatalf("revenue %v cost %v: expected %q, got %q", tc.revenue, tc.cost, tc.rating, report.Rating)
		}
	}
}

func TestProfitMarginRejectsInvalidInput(t *testing.T) {
	svc := New(nil, nil)
	if _, err := svc.ProfitMargin(context.Background(), 0, 10, 0); err == nil {
		t.Fatal("expected error for zero revenue")
	}
	if _, err := svc.ProfitMargin(context.Background(), 100, -1, 0); err == nil {
		t.Fatal("expected error for negative cost")
	}
}

func TestShippingBillsVolumetricWhenHeavierDimensions(t *testing.T) {
	svc := New(nil, nil)

	// 50x40x30 cm over divisor 5000 is 12 kg volumetric vs 2 kg actual.
	quote, err := svc.Shipping(context.Background(), "dhl", 2, 50, 40, 30, 10, 5)
	if err != nil {
		t.Fatalf("Shipping: %v", err)
	}
	if quote.VolumetricKg != 12 {
		t.Fatalf("expected volumetric 12kg, got %v", quote.VolumetricKg)
	}
	if quote.BillableKg != 12 || quote.BilledBy != "volumetric" {
		t.Fatalf("expected billable 12kg by volumetric, got %v by %q", quote.BillableKg, quote.BilledBy)
	}
	if quote.TotalCost != 125 {
		t.Fatalf("expected total 125, got %v", quote.TotalCost)
	}
}

func TestShippingBillsActualWhenHeavierParcel(t *testing.T) {
	svc := New(nil, nil)

	quote, err := svc.Shipping(context.Background(), "fedex", 20, 10, 10, 10, 8, 0)
	if err != nil {
		t.Fatalf("Shipping: %v", err)
	}
	if quote.BilledBy != "actual" {
		t.Fatalf("expected billed by actual, got %q", quote.BilledBy)
	}
	if quote.BillableKg < quote.VolumetricKg {
		t.Fatalf("billable %v must not be below volumetric %v", quote.BillableKg, quote.VolumetricKg)
	}
}

func TestShippingUnknownCarrier(t *testing.T) {
	svc := New(nil, nil)
	if _, err := svc.Shipping(context.Background(), "pigeon", 1, 10, 10, 10, 1, 0); err == nil {
		t.Fatal("expected error for unknown carrier")
	}
}

func TestLTVRatio(t *testing.T) {
	svc := New(nil, nil)

	report, err := svc.LTV(context.Background(), 200, 4, 3, 600)
	if err != nil {
		t.Fatalf("LTV: %v", err)
	}
	if report.LTV != 2400 {
		t.Fatalf("expected ltv 2400, got %v", report.LTV)
	}
	if report.Ratio != 4 {
		t.Fatalf("expected ratio 4, got %v", report.Ratio)
	}
	if report.Rating != commerce.LTVRatingHealthy {
		t.Fatalf("expected healthy rating, got %q", report.Rating)
	}

	losing, err := svc.LTV(context.Background(), 50, 1, 1, 100)
	if err != nil {
		t.Fatalf("LTV: %v", err)
	}
	if losing.Rating != commerce.LTVRatingLosing {
		t.Fatalf("expected losing rating, got %q", losing.Rating)
	}
}

func TestGatewayFees(t *testing.T) {
	svc := New(nil, nil)

	quote, err := svc.GatewayFees(context.Background(), "stripe", 1000)
	if err != nil {
		t.Fatalf("GatewayFees: %v", err)
	}
	if quote.Fee <= 0 || quote.NetAmount >= 1000 {
		t.Fatalf("expected positive fee and net below amount, got fee %v net %v", quote.Fee, quote.NetAmount)
	}
	if quote.EffectivePercent <= 0 {
		t.Fatalf("expected positive effective percent, got %v", quote.EffectivePercent)
	}

	if _, err := svc.GatewayFees(context.Background(), "cash", 100); err == nil {
		t.Fatal("expected error for unknown gateway")
	}
}

func TestCompareGatewaysSortedByNet(t *testing.T) {
	svc := New(nil, nil)

	quotes, err := svc.CompareGateways(context.Background(), 500)
	if err != nil {
		t.Fatalf("CompareGateways: %v", err)
	}
	if len(quotes) < 2 {
		t.Fatalf("expected multiple gateways, got %d", len(quotes))
	}
	for i := 1; i < len(quotes); i++ {
		if quotes[i].NetAmount > quotes[i-1].NetAmount {
			t.Fatalf("quotes not sorted by net descending at %d", i)
		}
	}
}
