package httpapi

import (
	"fmt"
	"testing"
	"time"
)

func TestAuditLogListsNewestFirst(t *testing.T) {
	log := newAuditLog(10, nil)
	for i, path := range []string{"/admin/first", "/admin/second", "/admin/third"} {
		log.add(auditEntry{
			Time: time.Now().Add(time.Duration(i) * time.Second),
			Path: path,
		})
	}

	entries := log.list()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Path != "/admin/third" || entries[2].Path != "/admin/first" {
		t.Fatalf("entries not newest first: %+v", entries)
	}

	limited := log.listLimit(2)
	if len(limited) != 2 {
		t.Fatalf("limit not applied: %+v", limited)
	}
	if limited[0].Path != "/admin/third" || limited[1].Path != "/admin/second" {
		t.Fatalf("limited listing not newest first: %+v", limited)
	}
}

func TestAuditLogCapsEntries(t *testing.T) {
	log := newAuditLog(5, nil)
	for i := 0; i < 12; i++ {
		log.add(auditEntry{Path: fmt.Sprintf("/admin/%d", i)})
	}

	entries := log.list()
	if len(entries) != 5 {
		t.Fatalf("expected cap of 5, got %d", len(entries))
	}
	// Oldest entries are evicted; the newest survives at the front.
	if entries[0].Path != "/admin/11" || entries[4].Path != "/admin/7" {
		t.Fatalf("unexpected window after eviction: %+v", entries)
	}
}
