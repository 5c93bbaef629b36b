package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/admin"
)

// ReportErrorInput carries a captured application error.
type ReportErrorInput struct {
	Severity   string `json:"severity"`
	Source     string `json:"source"`
	Message    string `json:"message"`
	StackTrace string `json:"stack_trace"`
}

// ListErrorsQuery filters the error listing. Severity selects a class:
// requesting "error" also returns fatal and critical records, and "warning"
// matches both warning spellings.
type ListErrorsQuery struct {
	Severity string
	Source   string
	Resolved *bool
	Since    time.Time
	Limit    int
}

// severityClasses maps a requested severity to the record severities it
// covers, ordered from most to least severe.
var severityClasses = map[string][]string{
	admin.SeverityFatal:    {admin.SeverityFatal},
	admin.SeverityCritical: {admin.SeverityFatal, admin.SeverityCritical},
	admin.SeverityError:    {admin.SeverityFatal, admin.SeverityCritical, admin.SeverityError},
	admin.SeverityWarning:  {admin.SeverityWarning, admin.SeverityWarn},
	admin.SeverityWarn:     {admin.SeverityWarning, admin.SeverityWarn},
	admin.SeverityInfo:     {admin.SeverityInfo},
}

// ReportError records a captured error.
func (s *Service) ReportError(ctx context.Context, input ReportErrorInput) (admin.ErrorRecord, error) {
	severity := strings.ToLower(strings.TrimSpace(input.Severity))
	if severity == "" {
		severity = admin.SeverityError
	}
	if _, ok := severityClasses[severity]; !ok {
		return admin.ErrorRecord{}, fmt.Errorf("invalid severity %q", input.Severity)
	}
	if strings.TrimSpace(input.Message) == "" {
		return admin.ErrorRecord{}, fmt.Errorf("message is required")
	}

	rec := admin.ErrorRecord{
		Severity:   severity,
		Source:     strings.TrimSpace(input.Source),
		Message:    strings.TrimSpace(input.Message),
		StackTrace: input.StackTrace,
		OccurredAt: time.Now().UTC(),
	}
	created, err := s.errors.CreateError(ctx, rec)
	if err != nil {
		return admin.ErrorRecord{}, err
	}
	if severity == admin.SeverityFatal || severity == admin.SeverityCritical {
		s.log.WithField("error_id", created.ID).Warnf("%s error reported from %s", severity, created.Source)
	}
	return created, nil
}

// ListErrors returns captured errors matching the query, newest first.
func (s *Service) ListErrors(ctx context.Context, q ListErrorsQuery) ([]admin.ErrorRecord, error) {
	var allowed map[string]bool
	if q.Severity != "" {
		class, ok := severityClasses[strings.ToLower(q.Severity)]
		if !ok {
			return nil, fmt.Errorf("invalid severity %q", q.Severity)
		}
		allowed = make(map[string]bool, len(class))
		for _, sev := range class {
			allowed[sev] = true
		}
	}
	if q.Limit <= 0 {
		q.Limit = 100
	}

	records, err := s.errors.ListErrors(ctx, q.Since)
	if err != nil {
		return nil, err
	}

	matched := make([]admin.ErrorRecord, 0, len(records))
	for _, rec := range records {
		if allowed != nil && !allowed[rec.Severity] {
			continue
		}
		if q.Source != "" && rec.Source != q.Source {
			continue
		}
		if q.Resolved != nil && rec.Resolved != *q.Resolved {
			continue
		}
		matched = append(matched, rec)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].OccurredAt.After(matched[j].OccurredAt)
	})
	if len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

// CountErrors aggregates captured errors since the given time by severity and
// by UTC day.
func (s *Service) CountErrors(ctx context.Context, since time.Time) (admin.ErrorCounts, error) {
	records, err := s.errors.ListErrors(ctx, since)
	if err != nil {
		return admin.ErrorCounts{}, err
	}

	counts := admin.ErrorCounts{BySeverity: make(map[string]int)}
	byDay := make(map[string]int)
	for _, rec := range records {
		counts.Total++
		if !rec.Resolved {
			counts.Unresolved++
		}
		counts.BySeverity[rec.Severity]++
		byDay[rec.OccurredAt.UTC().Format("2006-01-02")]++
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	counts.ByDay = make([]admin.DayCount, 0, len(days))
	for _, day := range days {
		counts.ByDay = append(counts.ByDay, admin.DayCount{Date: day, Count: byDay[day]})
	}
	return counts, nil
}

// ResolveError marks an error record resolved.
func (s *Service) ResolveError(ctx context.Context, id string) (admin.ErrorRecord, error) {
	rec, err := s.errors.GetError(ctx, id)
	if err != nil {
		return admin.ErrorRecord{}, err
	}
	if rec.Resolved {
		return rec, nil
	}
	rec.Resolved = true
	rec.ResolvedAt = time.Now().UTC()
	return s.errors.UpdateError(ctx, rec)
}

// ReopenError clears the resolved flag on an error record.
func (s *Service) ReopenError(ctx context.Context, id string) (admin.ErrorRecord, error) {
	rec, err := s.errors.GetError(ctx, id)
	if err != nil {
		return admin.ErrorRecord{}, err
	}
	if !rec.Resolved {
		return rec, nil
	}
	rec.Resolved = false
	rec.ResolvedAt = time.Time{}
	return s.errors.UpdateError(ctx, rec)
}
