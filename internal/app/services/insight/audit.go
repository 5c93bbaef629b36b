package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/tidwall/gjson"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/insight"
)

// FieldMapping overrides where campaign metrics are read from. Each entry is
// a JSONPath expression evaluated against one campaign object.
type FieldMapping struct {
	Name        string `json:"name"`
	Spend       string `json:"spend"`
	Revenue     string `json:"revenue"`
	Clicks      string `json:"clicks"`
	Conversions string `json:"conversions"`
}

// AuditOptions tunes the flags raised by the auditor.
type AuditOptions struct {
	TargetCPA float64      `json:"target_cpa"`
	Mapping   FieldMapping `json:"mapping"`
}

// Default keys probed when no mapping is supplied. Common export aliases.
var (
	defaultNameKeys        = []string{"name", "campaign", "campaign_name"}
	defaultSpendKeys       = []string{"spend", "cost", "amount_spent"}
	defaultRevenueKeys     = []string{"revenue", "conversion_value", "purchase_value"}
	defaultClicksKeys      = []string{"clicks", "link_clicks"}
	defaultConversionsKeys = []string{"conversions", "purchases", "results"}
)

// AuditAdSpend parses a campaign export document and computes per-campaign
// performance plus audit flags. The document may be a bare array or carry the
// campaign list under "campaigns" or "data".
func (s *Service) AuditAdSpend(_ context.Context, document []byte, opts AuditOptions) (insight.AuditReport, error) {
	if len(document) == 0 {
		return insight.AuditReport{}, fmt.Errorf("document is required")
	}
	if !gjson.ValidBytes(document) {
		return insight.AuditReport{}, fmt.Errorf("document is not valid JSON")
	}
	if opts.TargetCPA < 0 {
		return insight.AuditReport{}, fmt.Errorf("target_cpa must not be negative")
	}

	root := gjson.ParseBytes(document)
	list := root
	if !root.IsArray() {
		for _, key := range []string{"campaigns", "data"} {
			if candidate := root.Get(key); candidate.IsArray() {
				list = candidate
				break
			}
		}
	}
	if !list.IsArray() {
		return insight.AuditReport{}, fmt.Errorf("no campaign array found in document")
	}

	report := insight.AuditReport{}
	var parseErr error
	list.ForEach(func(_, item gjson.Result) bool {
		analysis, err := s.analyzeCampaign(item, opts)
		if err != nil {
			parseErr = err
			return false
		}
		report.Campaigns = append(report.Campaigns, analysis)
		report.TotalSpend += analysis.Spend
		report.TotalRevenue += analysis.Revenue
		if len(analysis.Flags) > 0 {
			report.FlaggedCampaigns = append(report.FlaggedCampaigns, analysis.Name)
		}
		return true
	})
	if parseErr != nil {
		return insight.AuditReport{}, parseErr
	}
	if len(report.Campaigns) == 0 {
		return insight.AuditReport{}, fmt.Errorf("document contains no campaigns")
	}

	report.TotalSpend = round2(report.TotalSpend)
	report.TotalRevenue = round2(report.TotalRevenue)
	report.TotalProfit = round2(report.TotalRevenue - report.TotalSpend)
	if report.TotalSpend > 0 {
		report.OverallROAS = round2(report.TotalRevenue / report.TotalSpend)
	}
	return report, nil
}

func (s *Service) analyzeCampaign(item gjson.Result, opts AuditOptions) (insight.CampaignAnalysis, error) {
	name, err := extractString(item, opts.Mapping.Name, defaultNameKeys)
	if err != nil {
		return insight.CampaignAnalysis{}, err
	}
	if name == "" {
		name = "(unnamed)"
	}

	spend, err := extractNumber(item, opts.Mapping.Spend, defaultSpendKeys)
	if err != nil {
		return insight.CampaignAnalysis{}, fmt.Errorf("campaign %s: %w", name, err)
	}
	revenue, err := extractNumber(item, opts.Mapping.Revenue, defaultRevenueKeys)
	if err != nil {
		return insight.CampaignAnalysis{}, fmt.Errorf("campaign %s: %w", name, err)
	}
	clicks, err := extractNumber(item, opts.Mapping.Clicks, defaultClicksKeys)
	if err != nil {
		return insight.CampaignAnalysis{}, fmt.Errorf("campaign %s: %w", name, err)
	}
	conversions, err := extractNumber(item, opts.Mapping.Conversions, defaultConversionsKeys)
	if err != nil {
		return insight.CampaignAnalysis{}, fmt.Errorf("campaign %s: %w", name, err)
	}

	analysis := insight.CampaignAnalysis{
		Name:        name,
		Spend:       round2(spend),
		Revenue:     round2(revenue),
		Clicks:      clicks,
		Conversions: conversions,
		Profit:      round2(revenue - spend),
	}
	if spend > 0 {
		analysis.ROAS = round2(revenue / spend)
	}
	if conversions > 0 {
		analysis.CPA = round2(spend / conversions)
	}
	if clicks > 0 {
		analysis.CPC = round2(spend / clicks)
	}

	if spend > 0 && conversions == 0 {
		analysis.Flags = append(analysis.Flags, insight.FlagZeroConversions)
	}
	if spend > 0 && analysis.ROAS < 1 {
		analysis.Flags = append(analysis.Flags, insight.FlagUnprofitable)
	}
	if opts.TargetCPA > 0 && analysis.CPA > opts.TargetCPA {
		analysis.Flags = append(analysis.Flags, insight.FlagCPAOverTarget)
	}
	return analysis, nil
}

func extractString(item gjson.Result, path string, defaults []string) (string, error) {
	if path != "" {
		v, err := evalPath(item, path)
		if err != nil {
			return "", err
		}
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprintf("%v", v), nil
	}
	for _, key := range defaults {
		if v := item.Get(key); v.Exists() {
			return v.String(), nil
		}
	}
	return "", nil
}

func extractNumber(item gjson.Result, path string, defaults []string) (float64, error) {
	if path != "" {
		v, err := evalPath(item, path)
		if err != nil {
			return 0, err
		}
		return coerceNumber(v)
	}
	for _, key := range defaults {
		if v := item.Get(key); v.Exists() {
			return v.Float(), nil
		}
	}
	return 0, nil
}

func evalPath(item gjson.Result, path string) (interface{}, error) {
	var obj interface{}
	if err := json.Unmarshal([]byte(item.Raw), &obj); err != nil {
		return nil, fmt.Errorf("decode campaign object: %w", err)
	}
	v, err := jsonpath.Get(path, obj)
	if err != nil {
		return nil, fmt.Errorf("evaluate %q: %w", path, err)
	}
	return v, nil
}

func coerceNumber(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("value %v is not numeric", v)
	}
}
