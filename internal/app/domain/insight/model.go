// Package insight defines result types for the analyzer tools.
package insight

// CampaignAnalysis is the computed performance of one ad campaign.
type CampaignAnalysis struct {
	Name        string   `json:"name"`
	Spend       float64  `json:"spend"`
	Revenue     float64  `json:"revenue"`
	Clicks      float64  `json:"clicks"`
	Conversions float64  `json:"conversions"`
	Profit      float64  `json:"profit"`
	ROAS        float64  `json:"roas"`
	CPA         float64  `json:"cpa"`
	CPC         float64  `json:"cpc"`
	Flags       []string `json:"flags,omitempty"`
}

// Campaign flags raised by the auditor.
const (
	FlagZeroConversions = "spend_without_conversions"
	FlagUnprofitable    = "roas_below_breakeven"
	FlagCPAOverTarget   = "cpa_above_target"
)

// AuditReport summarises an ad spend audit across all campaigns.
type AuditReport struct {
	Campaigns        []CampaignAnalysis `json:"campaigns"`
	TotalSpend       float64            `json:"total_spend"`
	TotalRevenue     float64            `json:"total_revenue"`
	TotalProfit      float64            `json:"total_profit"`
	OverallROAS      float64            `json:"overall_roas"`
	FlaggedCampaigns []string           `json:"flagged_campaigns"`
}

// ReviewScore is the sentiment outcome for one review text.
type ReviewScore struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// SentimentReport aggregates sentiment across a batch of reviews.
type SentimentReport struct {
	Reviews        []ReviewScore  `json:"reviews"`
	Distribution   map[string]int `json:"distribution"`
	AverageScore   float64        `json:"average_score"`
	TopPositive    []string       `json:"top_positive_terms"`
	TopNegative    []string       `json:"top_negative_terms"`
	ScoredRemotely bool           `json:"scored_remotely"`
}
