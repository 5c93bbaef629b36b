package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/generate"
	generatesvc "github.com/D-dracula/MicroTools-sub001/internal/app/services/generate"
	insightsvc "github.com/D-dracula/MicroTools-sub001/internal/app/services/insight"
	"github.com/D-dracula/MicroTools-sub001/internal/httputil"
)

func (h *Handler) profitMargin(w http.ResponseWriter, r *http.Request) bool {
	var payload struct {
		Revenue      float64 `json:"revenue"`
		Cost         float64 `json:"cost"`
		ReturnLosses float64 `json:"return_losses"`
	}
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		return badRequest(w, err)
	}
	report, err := h.app.Commerce.ProfitMargin(r.Context(), payload.Revenue, payload.Cost, payload.ReturnLosses)
	if err != nil {
		return badRequest(w, err)
	}
	return ok(w, report)
}

func (h *Handler) shipping(w http.ResponseWriter, r *http.Request) bool {
	var payload struct {
		Carrier   string  `json:"carrier"`
		ActualKg  float64 `json:"actual_kg"`
		LengthCm  float64 `json:"length_cm"`
		WidthCm   float64 `json:"width_cm"`
		HeightCm  float64 `json:"height_cm"`
		RatePerKg float64 `json:"rate_per_kg"`
		Surcharge float64 `json:"surcharge"`
	}
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		return badRequest(w, err)
	}
	quote, err := h.app.Commerce.Shipping(r.Context(), payload.Carrier, payload.ActualKg,
		payload.LengthCm, payload.WidthCm, payload.HeightCm, payload.RatePerKg, payload.Surcharge)
	if err != nil {
		return badRequest(w, err)
	}
	return ok(w, quote)
}

func (h *Handler) ltv(w http.ResponseWriter, r *http.Request) bool {
	var payload struct {
		AvgOrderValue    float64 `json:"avg_order_value"`
		PurchasesPerYear float64 `json:"purchases_per_year"`
		LifespanYears    float64 `json:"lifespan_years"`
		CAC              float64 `json:"cac"`
	}
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		return badRequest(w, err)
	}
	report, err := h.app.Commerce.LTV(r.Context(), payload.AvgOrderValue, payload.PurchasesPerYear,
		payload.LifespanYears, payload.CAC)
	if err != nil {
		return badRequest(w, err)
	}
	return ok(w, report)
}

func (h *Handler) gatewayFees(w http.ResponseWriter, r *http.Request) bool {
	var payload struct {
		Gateway string  `json:"gateway"`
		Amount  float64 `json:"amount"`
	}
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		return badRequest(w, err)
	}
	// No gateway id means quote them all, cheapest first.
	if strings.TrimSpace(payload.Gateway) == "" {
		quotes, err := h.app.Commerce.CompareGateways(r.Context(), payload.Amount)
		if err != nil {
			return badRequest(w, err)
		}
		return ok(w, quotes)
	}
	quote, err := h.app.Commerce.GatewayFees(r.Context(), payload.Gateway, payload.Amount)
	if err != nil {
		return badRequest(w, err)
	}
	return ok(w, quote)
}

func (h *Handler) gatewayCompare(w http.ResponseWriter, r *http.Request) bool {
	var payload struct {
		Amount float64 `json:"amount"`
	}
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		return badRequest(w, err)
	}
	quotes, err := h.app.Commerce.CompareGateways(r.Context(), payload.Amount)
	if err != nil {
		return badRequest(w, err)
	}
	return ok(w, quotes)
}

func (h *Handler) caseConvert(w http.ResponseWriter, r *http.Request) bool {
	var payload struct {
		Text  string `json:"text"`
		Style string `json:"style"`
	}
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		return badRequest(w, err)
	}
	result, err := h.app.Convert.Case(r.Context(), payload.Text, payload.Style)
	if err != nil {
		return badRequest(w, err)
	}
	return ok(w, result)
}

func (h *Handler) colorConvert(w http.ResponseWriter, r *http.Request) bool {
	var payload struct {
		Input string `json:"input"`
	}
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		return badRequest(w, err)
	}
	color, err := h.app.Convert.Color(r.Context(), payload.Input)
	if err != nil {
		return badRequest(w, err)
	}
	return ok(w, color)
}

func (h *Handler) unitConvert(w http.ResponseWriter, r *http.Request) bool {
	var payload struct {
		From  string  `json:"from"`
		To    string  `json:"to"`
		Value float64 `json:"value"`
	}
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		return badRequest(w, err)
	}
	result, err := h.app.Convert.Unit(r.Context(), payload.From, payload.To, payload.Value)
	if err != nil {
		return badRequest(w, err)
	}
	return ok(w, result)
}

func (h *Handler) password(w http.ResponseWriter, r *http.Request) bool {
	var opts generatesvc.PasswordOptions
	if err := httputil.DecodeJSON(r, &opts); err != nil {
		return badRequest(w, err)
	}
	result, err := h.app.Generate.Password(r.Context(), opts)
	if err != nil {
		return badRequest(w, err)
	}
	return ok(w, result)
}

func (h *Handler) businessNames(w http.ResponseWriter, r *http.Request) bool {
	var payload struct {
		Keyword string `json:"keyword"`
		Style   string `json:"style"`
		Count   int    `json:"count"`
	}
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		return badRequest(w, err)
	}
	names, err := h.app.Generate.BusinessNames(r.Context(), payload.Keyword, payload.Style, payload.Count)
	if err != nil {
		return badRequest(w, err)
	}
	return ok(w, names)
}

func (h *Handler) utmLink(w http.ResponseWriter, r *http.Request) bool {
	var payload struct {
		URL string `json:"url"`
		generatesvc.UTMParams
	}
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		return badRequest(w, err)
	}
	link, err := h.app.Generate.UTMLink(r.Context(), payload.URL, payload.UTMParams)
	if err != nil {
		return badRequest(w, err)
	}
	return ok(w, link)
}

func (h *Handler) sitemap(w http.ResponseWriter, r *http.Request) bool {
	var payload struct {
		URLs       []generate.SitemapEntry `json:"urls"`
		Alternates bool                    `json:"alternates"`
	}
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		return badRequest(w, err)
	}
	xml, err := h.app.Generate.Sitemap(r.Context(), payload.URLs, generatesvc.SitemapOptions{Alternates: payload.Alternates})
	if err != nil {
		return badRequest(w, err)
	}
	return ok(w, map[string]string{"xml": xml})
}

func (h *Handler) robotsValidate(w http.ResponseWriter, r *http.Request) bool {
	var payload struct {
		Content string `json:"content"`
		Check   *struct {
			Agent string `json:"agent"`
			Path  string `json:"path"`
		} `json:"check"`
	}
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		return badRequest(w, err)
	}
	report, err := h.app.Validate.Robots(r.Context(), payload.Content)
	if err != nil {
		return badRequest(w, err)
	}
	if payload.Check == nil {
		return ok(w, report)
	}
	allowed := h.app.Validate.IsAllowed(r.Context(), report, payload.Check.Agent, payload.Check.Path)
	return ok(w, map[string]interface{}{
		"report":  report,
		"allowed": allowed,
	})
}

func (h *Handler) adAudit(w http.ResponseWriter, r *http.Request) bool {
	var payload struct {
		Document  json.RawMessage         `json:"document"`
		TargetCPA float64                 `json:"target_cpa"`
		Mapping   insightsvc.FieldMapping `json:"mapping"`
	}
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		return badRequest(w, err)
	}
	report, err := h.app.Insight.AuditAdSpend(r.Context(), payload.Document, insightsvc.AuditOptions{
		TargetCPA: payload.TargetCPA,
		Mapping:   payload.Mapping,
	})
	if err != nil {
		return badRequest(w, err)
	}
	return ok(w, report)
}

func (h *Handler) sentiment(w http.ResponseWriter, r *http.Request) bool {
	var payload struct {
		Reviews []string `json:"reviews"`
	}
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		return badRequest(w, err)
	}
	report, err := h.app.Insight.Sentiment(r.Context(), payload.Reviews)
	if err != nil {
		return badRequest(w, err)
	}
	return ok(w, report)
}
