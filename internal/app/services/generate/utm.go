package generate

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/generate"
)

// UTMParams are the campaign attribution parameters to append to a URL.
type UTMParams struct {
	Source   string `json:"source"`
	Medium   string `json:"medium"`
	Campaign string `json:"campaign"`
	Term     string `json:"term"`
	Content  string `json:"content"`
}

// UTMLink appends UTM parameters to a base URL. The base URL's scheme, host,
// path and existing query parameters are preserved; parameter values are
// percent-encoded by the query encoder.
func (s *Service) UTMLink(_ context.Context, baseURL string, params UTMParams) (generate.UTMLink, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return generate.UTMLink{}, fmt.Errorf("url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return generate.UTMLink{}, fmt.Errorf("parse url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return generate.UTMLink{}, fmt.Errorf("url must be absolute http or https")
	}
	if parsed.Host == "" {
		return generate.UTMLink{}, fmt.Errorf("url must include a host")
	}

	if strings.TrimSpace(params.Source) == "" {
		return generate.UTMLink{}, fmt.Errorf("source is required")
	}
	if strings.TrimSpace(params.Medium) == "" {
		return generate.UTMLink{}, fmt.Errorf("medium is required")
	}
	if strings.TrimSpace(params.Campaign) == "" {
		return generate.UTMLink{}, fmt.Errorf("campaign is required")
	}

	q := parsed.Query()
	q.Set("utm_source", params.Source)
	q.Set("utm_medium", params.Medium)
	q.Set("utm_campaign", params.Campaign)
	if params.Term != "" {
		q.Set("utm_term", params.Term)
	}
	if params.Content != "" {
		q.Set("utm_content", params.Content)
	}
	parsed.RawQuery = q.Encode()

	return generate.UTMLink{
		URL:      parsed.String(),
		Source:   params.Source,
		Medium:   params.Medium,
		Campaign: params.Campaign,
		Term:     params.Term,
		Content:  params.Content,
	}, nil
}
