package admin

import (
	"context"
	"testing"
	"time"
)

func TestRecordUsageAndTopTools(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	record := func(tool string, succeeded bool, n int) {
		for i := 0; i < n; i++ {
			if err := svc.RecordUsage(ctx, tool, "client-1", succeeded, 12*time.Millisecond); err != nil {
				t.Fatalf("RecordUsage(%s): %v", tool, err)
			}
		}
	}
	record("profit-margin", true, 5)
	record("password", true, 3)
	record("password", false, 1)
	record("utm", true, 4)

	top, err := svc.TopTools(ctx, time.Now().Add(-time.Hour), 0)
	if err != nil {
		t.Fatalf("TopTools: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(top))
	}
	if top[0].Tool != "profit-margin" || top[0].Count != 5 {
		t.Fatalf("unexpected leader: %+v", top[0])
	}
	if top[1].Tool != "password" || top[1].Count != 4 || top[1].Failures != 1 {
		t.Fatalf("unexpected runner-up: %+v", top[1])
	}

	limited, err := svc.TopTools(ctx, time.Now().Add(-time.Hour), 1)
	if err != nil {
		t.Fatalf("TopTools: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit not applied: %+v", limited)
	}

	if err := svc.RecordUsage(ctx, "  ", "client-1", true, 0); err == nil {
		t.Fatal("expected error for empty tool name")
	}
}

func TestUsageByDay(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.RecordUsage(ctx, "password", "client-1", true, time.Millisecond); err != nil {
		t.Fatalf("RecordUsage: %v", err)
	}
	if err := svc.RecordUsage(ctx, "utm", "client-2", false, time.Millisecond); err != nil {
		t.Fatalf("RecordUsage: %v", err)
	}

	daily, err := svc.UsageByDay(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("UsageByDay: %v", err)
	}
	if len(daily) != 1 {
		t.Fatalf("expected one day bucket, got %+v", daily)
	}
	today := time.Now().UTC().Format("2006-01-02")
	if daily[0].Date != today || daily[0].Count != 2 || daily[0].Failures != 1 {
		t.Fatalf("unexpected day bucket: %+v", daily[0])
	}
}

func TestPruneUsage(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.RecordUsage(ctx, "case", "client-1", true, time.Millisecond); err != nil {
		t.Fatalf("RecordUsage: %v", err)
	}

	// Fresh events stay inside the retention window.
	removed, err := svc.PruneUsage(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("PruneUsage: %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected nothing pruned, got %d", removed)
	}

	if _, err := svc.PruneUsage(ctx, 0); err == nil {
		t.Fatal("expected error for non-positive retention")
	}
}

func TestMigrationsWithoutDatabase(t *testing.T) {
	svc := newTestService()

	status, err := svc.Migrations(context.Background())
	if err != nil {
		t.Fatalf("Migrations: %v", err)
	}
	if len(status.Applied) != 0 || len(status.Pending) != 0 {
		t.Fatalf("memory deployment must report empty status: %+v", status)
	}
}

func TestHealthSnapshot(t *testing.T) {
	svc := newTestService()

	snapshot, err := svc.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if snapshot.Goroutines <= 0 {
		t.Fatalf("expected goroutine count, got %d", snapshot.Goroutines)
	}
	if snapshot.CollectedAt.IsZero() {
		t.Fatal("expected collection timestamp")
	}
}
