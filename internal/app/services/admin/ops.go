package admin

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/admin"
	"github.com/D-dracula/MicroTools-sub001/internal/platform/migrations"
)

// Migrations reports the schema migration ledger for the dashboard.
func (s *Service) Migrations(ctx context.Context) (admin.MigrationStatus, error) {
	if s.db == nil {
		// Memory-backed deployment, nothing to migrate.
		return admin.MigrationStatus{Applied: []admin.AppliedMigration{}, Pending: []string{}}, nil
	}
	applied, pending, err := migrations.Status(ctx, s.db)
	if err != nil {
		return admin.MigrationStatus{}, fmt.Errorf("read migration status: %w", err)
	}
	status := admin.MigrationStatus{
		Applied: make([]admin.AppliedMigration, 0, len(applied)),
		Pending: pending,
	}
	for _, a := range applied {
		status.Applied = append(status.Applied, admin.AppliedMigration{
			Version:   a.Version,
			AppliedAt: a.AppliedAt,
		})
	}
	if status.Pending == nil {
		status.Pending = []string{}
	}
	return status, nil
}

// Health collects a host and process snapshot.
func (s *Service) Health(ctx context.Context) (admin.SystemHealth, error) {
	snapshot := admin.SystemHealth{
		Goroutines:  runtime.NumGoroutine(),
		CollectedAt: time.Now().UTC(),
	}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		snapshot.CPUPercent = percents[0]
	} else if err != nil {
		s.log.WithError(err).Warn("cpu sample failed")
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		snapshot.MemUsedPercent = vm.UsedPercent
		snapshot.MemUsedBytes = vm.Used
		snapshot.MemTotalBytes = vm.Total
	} else {
		s.log.WithError(err).Warn("memory sample failed")
	}

	if uptime, err := host.UptimeWithContext(ctx); err == nil {
		snapshot.UptimeSeconds = uptime
	}

	return snapshot, nil
}

// RecordUsage stores one tool invocation event.
func (s *Service) RecordUsage(ctx context.Context, tool, clientKey string, succeeded bool, duration time.Duration) error {
	tool = strings.TrimSpace(tool)
	if tool == "" {
		return fmt.Errorf("tool is required")
	}
	_, err := s.usage.RecordUsage(ctx, admin.UsageEvent{
		Tool:       tool,
		ClientKey:  clientKey,
		Succeeded:  succeeded,
		DurationMs: duration.Milliseconds(),
		OccurredAt: time.Now().UTC(),
	})
	return err
}

// TopTools aggregates usage since the given time, most used first.
func (s *Service) TopTools(ctx context.Context, since time.Time, limit int) ([]admin.ToolUsage, error) {
	if limit <= 0 {
		limit = 10
	}
	events, err := s.usage.ListUsage(ctx, since)
	if err != nil {
		return nil, err
	}

	byTool := map[string]*admin.ToolUsage{}
	for _, ev := range events {
		agg, ok := byTool[ev.Tool]
		if !ok {
			agg = &admin.ToolUsage{Tool: ev.Tool}
			byTool[ev.Tool] = agg
		}
		agg.Count++
		if !ev.Succeeded {
			agg.Failures++
		}
	}

	usage := make([]admin.ToolUsage, 0, len(byTool))
	for _, agg := range byTool {
		usage = append(usage, *agg)
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Count != usage[j].Count {
			return usage[i].Count > usage[j].Count
		}
		return usage[i].Tool < usage[j].Tool
	})
	if len(usage) > limit {
		usage = usage[:limit]
	}
	return usage, nil
}

// UsageByDay aggregates tool invocations per UTC day since the given time,
// oldest day first.
func (s *Service) UsageByDay(ctx context.Context, since time.Time) ([]admin.DayUsage, error) {
	events, err := s.usage.ListUsage(ctx, since)
	if err != nil {
		return nil, err
	}

	byDay := map[string]*admin.DayUsage{}
	for _, ev := range events {
		day := ev.OccurredAt.UTC().Format("2006-01-02")
		agg, ok := byDay[day]
		if !ok {
			agg = &admin.DayUsage{Date: day}
			byDay[day] = agg
		}
		agg.Count++
		if !ev.Succeeded {
			agg.Failures++
		}
	}

	usage := make([]admin.DayUsage, 0, len(byDay))
	for _, agg := range byDay {
		usage = append(usage, *agg)
	}
	sort.Slice(usage, func(i, j int) bool { return usage[i].Date < usage[j].Date })
	return usage, nil
}

// PruneUsage deletes usage events older than the retention window.
func (s *Service) PruneUsage(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("retention must be positive")
	}
	removed, err := s.usage.PruneUsage(ctx, time.Now().Add(-retention))
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Infof("pruned %d usage events", removed)
	}
	return removed, nil
}
