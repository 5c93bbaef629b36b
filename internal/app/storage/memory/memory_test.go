package memory

import (
	"context"
	"testing"
	"time"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/admin"
)

func TestUserLifecycle(t *testing.T) {
	store := New()
	ctx := context.Background()

	created, err := store.CreateUser(ctx, admin.User{
		Email:    "owner@example.com",
		Name:     "Owner",
		Role:     admin.RoleAdmin,
		Status:   admin.StatusActive,
		Metadata: map[string]string{"plan": "pro"},
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("missing generated fields: %+v", created)
	}

	// Duplicate emails are rejected case-insensitively.
	if _, err := store.CreateUser(ctx, admin.User{Email: "OWNER@example.com"}); err == nil {
		t.Fatal("expected duplicate email error")
	}

	byEmail, err := store.GetUserByEmail(ctx, "Owner@Example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("lookup returned wrong user: %q", byEmail.ID)
	}

	// Mutating a returned clone must not touch the stored copy.
	byEmail.Metadata["plan"] = "free"
	fresh, err := store.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if fresh.Metadata["plan"] != "pro" {
		t.Fatal("stored metadata mutated through a returned clone")
	}

	fresh.Name = "Renamed"
	updated, err := store.UpdateUser(ctx, fresh)
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("update lost name: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("update must preserve creation time")
	}

	if err := store.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := store.GetUser(ctx, created.ID); err == nil {
		t.Fatal("expected error after delete")
	}
	if err := store.DeleteUser(ctx, created.ID); err == nil {
		t.Fatal("expected error deleting missing user")
	}
}

func TestErrorRecordsSinceFilter(t *testing.T) {
	store := New()
	ctx := context.Background()

	old, err := store.CreateError(ctx, admin.ErrorRecord{
		Severity:   admin.SeverityError,
		Message:    "old",
		OccurredAt: time.Now().UTC().Add(-48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateError: %v", err)
	}
	recent, err := store.CreateError(ctx, admin.ErrorRecord{
		Severity: admin.SeverityWarning,
		Message:  "recent",
	})
	if err != nil {
		t.Fatalf("CreateError: %v", err)
	}

	all, err := store.ListErrors(ctx, time.Time{})
	if err != nil {
		t.Fatalf("ListErrors: %v", err)
	}
	if len(all) != 2 || all[0].ID != recent.ID {
		t.Fatalf("expected newest first, got %+v", all)
	}

	fresh, err := store.ListErrors(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("ListErrors: %v", err)
	}
	if len(fresh) != 1 || fresh[0].ID != recent.ID {
		t.Fatalf("since filter failed: %+v", fresh)
	}

	// Updates keep the original occurrence time.
	old.Resolved = true
	updated, err := store.UpdateError(ctx, old)
	if err != nil {
		t.Fatalf("UpdateError: %v", err)
	}
	if !updated.OccurredAt.Equal(old.OccurredAt) {
		t.Fatal("update must preserve occurrence time")
	}
}

func TestContentSlugUniquePerLocale(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.CreateContent(ctx, admin.ContentEntry{Slug: "about", Locale: admin.LocaleArabic, Title: "عن"}); err != nil {
		t.Fatalf("CreateContent: %v", err)
	}
	// Same slug is fine in the other locale.
	if _, err := store.CreateContent(ctx, admin.ContentEntry{Slug: "about", Locale: admin.LocaleEnglish, Title: "About"}); err != nil {
		t.Fatalf("CreateContent (en): %v", err)
	}
	if _, err := store.CreateContent(ctx, admin.ContentEntry{Slug: "about", Locale: admin.LocaleArabic, Title: "dup"}); err == nil {
		t.Fatal("expected duplicate slug/locale error")
	}

	entry, err := store.GetContentBySlug(ctx, "about", admin.LocaleEnglish)
	if err != nil {
		t.Fatalf("GetContentBySlug: %v", err)
	}
	if entry.Title != "About" {
		t.Fatalf("wrong entry: %+v", entry)
	}

	arabic, err := store.ListContent(ctx, admin.LocaleArabic)
	if err != nil {
		t.Fatalf("ListContent: %v", err)
	}
	if len(arabic) != 1 {
		t.Fatalf("locale filter failed: %+v", arabic)
	}
}

func TestUsagePrune(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.RecordUsage(ctx, admin.UsageEvent{
		Tool:       "case",
		OccurredAt: time.Now().UTC().Add(-96 * time.Hour),
	}); err != nil {
		t.Fatalf("RecordUsage: %v", err)
	}
	if _, err := store.RecordUsage(ctx, admin.UsageEvent{Tool: "utm", Succeeded: true}); err != nil {
		t.Fatalf("RecordUsage: %v", err)
	}

	pruned, err := store.PruneUsage(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("PruneUsage: %v", err)
	}
	if pruned != 1 {
		t.Fatalf("expected 1 pruned event, got %d", pruned)
	}

	left, err := store.ListUsage(ctx, time.Time{})
	if err != nil {
		t.Fatalf("ListUsage: %v", err)
	}
	if len(left) != 1 || left[0].Tool != "utm" {
		t.Fatalf("unexpected survivors: %+v", left)
	}
}
