// Package admin defines the records managed through the admin dashboard.
package admin

import "time"

// User is a registered end user visible to administrators.
type User struct {
	ID         string            `json:"id"`
	Email      string            `json:"email"`
	Name       string            `json:"name"`
	Role       string            `json:"role"`
	Status     string            `json:"status"`
	APIKeyHash string            `json:"-"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	LastSeenAt time.Time         `json:"last_seen_at"`
}

// User statuses and roles.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusPending   = "pending"

	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleUser   = "user"
)

// ErrorRecord is one captured application error.
type ErrorRecord struct {
	ID         string    `json:"id"`
	Severity   string    `json:"severity"`
	Source     string    `json:"source"`
	Message    string    `json:"message"`
	StackTrace string    `json:"stack_trace,omitempty"`
	Resolved   bool      `json:"resolved"`
	OccurredAt time.Time `json:"occurred_at"`
	ResolvedAt time.Time `json:"resolved_at,omitempty"`
}

// Severities recorded on error records.
const (
	SeverityFatal    = "fatal"
	SeverityCritical = "critical"
	SeverityError    = "error"
	SeverityWarning  = "warning"
	SeverityWarn     = "warn"
	SeverityInfo     = "info"
)

// ContentEntry is a localized piece of site content.
type ContentEntry struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Locale      string    `json:"locale"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Published   bool      `json:"published"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Supported content locales.
const (
	LocaleArabic  = "ar"
	LocaleEnglish = "en"
)

// UsageEvent records one tool invocation.
type UsageEvent struct {
	ID         string    `json:"id"`
	Tool       string    `json:"tool"`
	ClientKey  string    `json:"client_key,omitempty"`
	Succeeded  bool      `json:"succeeded"`
	DurationMs int64     `json:"duration_ms"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToolUsage aggregates invocations of one tool.
type ToolUsage struct {
	Tool     string `json:"tool"`
	Count    int    `json:"count"`
	Failures int    `json:"failures"`
}

// DayUsage aggregates tool invocations for one UTC day.
type DayUsage struct {
	Date     string `json:"date"`
	Count    int    `json:"count"`
	Failures int    `json:"failures"`
}

// ErrorCounts aggregates error records for the dashboard.
type ErrorCounts struct {
	Total      int            `json:"total"`
	Unresolved int            `json:"unresolved"`
	BySeverity map[string]int `json:"by_severity"`
	ByDay      []DayCount     `json:"by_day"`
}

// DayCount is a per-UTC-day record count.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// MigrationStatus reports schema migration state for the dashboard.
type MigrationStatus struct {
	Applied []AppliedMigration `json:"applied"`
	Pending []string           `json:"pending"`
}

// AppliedMigration is one row from the schema migrations ledger.
type AppliedMigration struct {
	Version   string    `json:"version"`
	AppliedAt time.Time `json:"applied_at"`
}

// SystemHealth is a point-in-time host and process snapshot.
type SystemHealth struct {
	CPUPercent     float64   `json:"cpu_percent"`
	MemUsedPercent float64   `json:"mem_used_percent"`
	MemUsedBytes   uint64    `json:"mem_used_bytes"`
	MemTotalBytes  uint64    `json:"mem_total_bytes"`
	Goroutines     int       `json:"goroutines"`
	UptimeSeconds  uint64    `json:"uptime_seconds"`
	CollectedAt    time.Time `json:"collected_at"`
}

// UserCounts aggregates users by predicate for the dashboard header.
type UserCounts struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	Suspended   int `json:"suspended"`
	Admins      int `json:"admins"`
	NewThisWeek int `json:"new_this_week"`
}
