// Package validate implements the robots.txt validator.
package validate

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/robots"
	"github.com/D-dracula/MicroTools-sub001/pkg/logger"
)

// Service validates robots.txt documents.
type Service struct {
	log *logger.Logger
}

// New constructs a validate service.
func New(log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("validate")
	}
	return &Service{log: log}
}

const maxRobotsBytes = 512 * 1024

// Robots parses and validates a robots.txt document.
func (s *Service) Robots(_ context.Context, content string) (robots.Report, error) {
	if strings.TrimSpace(content) == "" {
		return robots.Report{}, fmt.Errorf("content is required")
	}
	if len(content) > maxRobotsBytes {
		return robots.Report{}, fmt.Errorf("content exceeds %d bytes", maxRobotsBytes)
	}

	report := robots.Report{}
	var current *robots.Group
	// Consecutive User-agent lines extend the same group until a rule closes it.
	agentRun := false

	for i, raw := range strings.Split(content, "\n") {
		lineNo := i + 1
		line := raw
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		field, value, ok := strings.Cut(line, ":")
		if !ok {
			report.Errors = append(report.Errors, robots.Issue{Line: lineNo, Message: "missing ':' separator"})
			continue
		}
		field = strings.ToLower(strings.TrimSpace(field))
		value = strings.TrimSpace(value)

		switch field {
		case "user-agent":
			if value == "" {
				report.Errors = append(report.Errors, robots.Issue{Line: lineNo, Message: "empty user-agent"})
				continue
			}
			if current == nil || !agentRun {
				report.Groups = append(report.Groups, robots.Group{})
				current = &report.Groups[len(report.Groups)-1]
			}
			current.UserAgents = append(current.UserAgents, value)
			agentRun = true

		case "allow", "disallow":
			agentRun = false
			if current == nil {
				report.Errors = append(report.Errors, robots.Issue{Line: lineNo, Message: fmt.Sprintf("%s before any user-agent", field)})
				continue
			}
			if value == "" && field == "disallow" {
				// Empty disallow means "allow everything"; flag the ambiguity.
				report.Warnings = append(report.Warnings, robots.Issue{Line: lineNo, Message: "empty disallow allows all paths"})
			}
			if value != "" && !strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "*") {
				report.Warnings = append(report.Warnings, robots.Issue{Line: lineNo, Message: "rule path should start with '/'"})
			}
			current.Rules = append(current.Rules, robots.Rule{Allow: field == "allow", Path: value, Line: lineNo})

		case "crawl-delay":
			agentRun = false
			if current == nil {
				report.Errors = append(report.Errors, robots.Issue{Line: lineNo, Message: "crawl-delay before any user-agent"})
				continue
			}
			delay, err := strconv.ParseFloat(value, 64)
			if err != nil || delay < 0 {
				report.Errors = append(report.Errors, robots.Issue{Line: lineNo, Message: fmt.Sprintf("invalid crawl-delay %q", value)})
				continue
			}
			current.CrawlDelay = delay

		case "sitemap":
			agentRun = false
			parsed, err := url.Parse(value)
			if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
				report.Errors = append(report.Errors, robots.Issue{Line: lineNo, Message: fmt.Sprintf("sitemap must be an absolute url, got %q", value)})
				continue
			}
			report.Sitemaps = append(report.Sitemaps, value)

		case "host":
			agentRun = false
			report.Host = value

		default:
			report.Warnings = append(report.Warnings, robots.Issue{Line: lineNo, Message: fmt.Sprintf("unknown directive %q", field)})
		}
	}

	s.warnWildcardShadowing(&report)
	report.Valid = len(report.Errors) == 0
	return report, nil
}

// warnWildcardShadowing flags named user-agent groups appearing after a '*'
// group with identical rules, which most crawlers treat as redundant.
func (s *Service) warnWildcardShadowing(report *robots.Report) {
	var wildcard *robots.Group
	for i := range report.Groups {
		for _, ua := range report.Groups[i].UserAgents {
			if ua == "*" {
				wildcard = &report.Groups[i]
			}
		}
	}
	if wildcard == nil {
		return
	}
	for i := range report.Groups {
		g := &report.Groups[i]
		if g == wildcard || len(g.Rules) > 0 {
			continue
		}
		for _, ua := range g.UserAgents {
			if ua != "*" {
				report.Warnings = append(report.Warnings, robots.Issue{
					Message: fmt.Sprintf("group for %q has no rules and falls back to the wildcard group", ua),
				})
			}
		}
	}
}

// IsAllowed reports whether a path is crawlable for the given agent using
// longest-match precedence, with Allow winning ties.
func (s *Service) IsAllowed(_ context.Context, report robots.Report, agent, path string) bool {
	if path == "" {
		path = "/"
	}
	group := matchGroup(report, agent)
	if group == nil {
		return true
	}

	bestLen := -1
	allowed := true
	for _, rule := range group.Rules {
		if rule.Path == "" {
			continue
		}
		if !pathMatches(rule.Path, path) {
			continue
		}
		l := len(rule.Path)
		if l > bestLen || (l == bestLen && rule.Allow) {
			bestLen = l
			allowed = rule.Allow
		}
	}
	return allowed
}

func matchGroup(report robots.Report, agent string) *robots.Group {
	agent = strings.ToLower(agent)
	var wildcard *robots.Group
	for i := range report.Groups {
		for _, ua := range report.Groups[i].UserAgents {
			if ua == "*" {
				if wildcard == nil {
					wildcard = &report.Groups[i]
				}
				continue
			}
			if strings.Contains(agent, strings.ToLower(ua)) {
				return &report.Groups[i]
			}
		}
	}
	return wildcard
}

// pathMatches supports the '*' wildcard and '$' end anchor.
func pathMatches(pattern, path string) bool {
	anchored := strings.HasSuffix(pattern, "$")
	if anchored {
		pattern = strings.TrimSuffix(pattern, "$")
	}

	parts := strings.Split(pattern, "*")
	pos := 0
	for i, part := range parts {
		if part == "" {
			continue
		}
		idx := strings.Index(path[pos:], part)
		if idx < 0 {
			return false
		}
		if i == 0 && idx != 0 {
			return false
		}
		pos += idx + len(part)
	}
	if anchored && pos != len(path) {
		return false
	}
	return true
}
