// Package postgres implements the storage interfaces backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/admin"
	"github.com/D-dracula/MicroTools-sub001/internal/app/storage"
)

// Store implements the storage interfaces on top of an sqlx handle.
type Store struct {
	db *sqlx.DB
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.ErrorStore = (*Store)(nil)
var _ storage.ContentStore = (*Store)(nil)
var _ storage.UsageStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

type userRow struct {
	ID         string       `db:"id"`
	Email      string       `db:"email"`
	Name       string       `db:"name"`
	Role       string       `db:"role"`
	Status     string       `db:"status"`
	APIKeyHash string       `db:"api_key_hash"`
	Metadata   []byte       `db:"metadata"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
	LastSeenAt sql.NullTime `db:"last_seen_at"`
}

func (r userRow) toDomain() admin.User {
	u := admin.User{
		ID:         r.ID,
		Email:      r.Email,
		Name:       r.Name,
		Role:       r.Role,
		Status:     r.Status,
		APIKeyHash: r.APIKeyHash,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.LastSeenAt.Valid {
		u.LastSeenAt = r.LastSeenAt.Time
	}
	if len(r.Metadata) > 0 {
		_ = json.Unmarshal(r.Metadata, &u.Metadata)
	}
	return u
}

// --- UserStore --------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u admin.User) (admin.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	metadataJSON, err := json.Marshal(u.Metadata)
	if err != nil {
		return admin.User{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO mt_users (id, email, name, role, status, api_key_hash, metadata, created_at, updated_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, u.ID, u.Email, u.Name, u.Role, u.Status, u.APIKeyHash, metadataJSON, u.CreatedAt, u.UpdatedAt, nullTime(u.LastSeenAt))
	if err != nil {
		return admin.User{}, err
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u admin.User) (admin.User, error) {
	existing, err := s.GetUser(ctx, u.ID)
	if err != nil {
		return admin.User{}, err
	}

	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now().UTC()

	metadataJSON, err := json.Marshal(u.Metadata)
	if err != nil {
		return admin.User{}, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE mt_users
		SET email = $2, name = $3, role = $4, status = $5, api_key_hash = $6,
		    metadata = $7, updated_at = $8, last_seen_at = $9
		WHERE id = $1
	`, u.ID, u.Email, u.Name, u.Role, u.Status, u.APIKeyHash, metadataJSON, u.UpdatedAt, nullTime(u.LastSeenAt))
	if err != nil {
		return admin.User{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return admin.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (admin.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, email, name, role, status, api_key_hash, metadata, created_at, updated_at, last_seen_at
		FROM mt_users
		WHERE id = $1
	`, id)
	if err != nil {
		return admin.User{}, err
	}
	return row.toDomain(), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (admin.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, email, name, role, status, api_key_hash, metadata, created_at, updated_at, last_seen_at
		FROM mt_users
		WHERE lower(email) = lower($1)
	`, email)
	if err != nil {
		return admin.User{}, err
	}
	return row.toDomain(), nil
}

func (s *Store) ListUsers(ctx context.Context) ([]admin.User, error) {
	var rows []userRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, email, name, role, status, api_key_hash, metadata, created_at, updated_at, last_seen_at
		FROM mt_users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	result := make([]admin.User, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM mt_users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// --- ErrorStore -------------------------------------------------------------

type errorRow struct {
	ID         string       `db:"id"`
	Severity   string       `db:"severity"`
	Source     string       `db:"source"`
	Message    string       `db:"message"`
	StackTrace string       `db:"stack_trace"`
	Resolved   bool         `db:"resolved"`
	OccurredAt time.Time    `db:"occurred_at"`
	ResolvedAt sql.NullTime `db:"resolved_at"`
}

func (r errorRow) toDomain() admin.ErrorRecord {
	rec := admin.ErrorRecord{
		ID:         r.ID,
		Severity:   r.Severity,
		Source:     r.Source,
		Message:    r.Message,
		StackTrace: r.StackTrace,
		Resolved:   r.Resolved,
		OccurredAt: r.OccurredAt,
	}
	if r.ResolvedAt.Valid {
		rec.ResolvedAt = r.ResolvedAt.Time
	}
	return rec
}

func (s *Store) CreateError(ctx context.Context, rec admin.ErrorRecord) (admin.ErrorRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mt_error_records (id, severity, source, message, stack_trace, resolved, occurred_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rec.ID, rec.Severity, rec.Source, rec.Message, rec.StackTrace, rec.Resolved, rec.OccurredAt, nullTime(rec.ResolvedAt))
	if err != nil {
		return admin.ErrorRecord{}, err
	}
	return rec, nil
}

func (s *Store) UpdateError(ctx context.Context, rec admin.ErrorRecord) (admin.ErrorRecord, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE mt_error_records
		SET severity = $2, source = $3, message = $4, stack_trace = $5, resolved = $6, resolved_at = $7
		WHERE id = $1
	`, rec.ID, rec.Severity, rec.Source, rec.Message, rec.StackTrace, rec.Resolved, nullTime(rec.ResolvedAt))
	if err != nil {
		return admin.ErrorRecord{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return admin.ErrorRecord{}, sql.ErrNoRows
	}
	return rec, nil
}

func (s *Store) GetError(ctx context.Context, id string) (admin.ErrorRecord, error) {
	var row errorRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, severity, source, message, stack_trace, resolved, occurred_at, resolved_at
		FROM mt_error_records
		WHERE id = $1
	`, id)
	if err != nil {
		return admin.ErrorRecord{}, err
	}
	return row.toDomain(), nil
}

func (s *Store) ListErrors(ctx context.Context, since time.Time) ([]admin.ErrorRecord, error) {
	var rows []errorRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, severity, source, message, stack_trace, resolved, occurred_at, resolved_at
		FROM mt_error_records
		WHERE occurred_at >= $1
		ORDER BY occurred_at DESC
	`, since)
	if err != nil {
		return nil, err
	}
	result := make([]admin.ErrorRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}

// --- ContentStore -----------------------------------------------------------

type contentRow struct {
	ID          string       `db:"id"`
	Slug        string       `db:"slug"`
	Locale      string       `db:"locale"`
	Title       string       `db:"title"`
	Body        string       `db:"body"`
	Published   bool         `db:"published"`
	PublishedAt sql.NullTime `db:"published_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

func (r contentRow) toDomain() admin.ContentEntry {
	entry := admin.ContentEntry{
		ID:        r.ID,
		Slug:      r.Slug,
		Locale:    r.Locale,
		Title:     r.Title,
		Body:      r.Body,
		Published: r.Published,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.PublishedAt.Valid {
		entry.PublishedAt = r.PublishedAt.Time
	}
	return entry
}

func (s *Store) CreateContent(ctx context.Context, entry admin.ContentEntry) (admin.ContentEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mt_content_entries (id, slug, locale, title, body, published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, entry.ID, entry.Slug, entry.Locale, entry.Title, entry.Body, entry.Published, nullTime(entry.PublishedAt), entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return admin.ContentEntry{}, err
	}
	return entry, nil
}

func (s *Store) UpdateContent(ctx context.Context, entry admin.ContentEntry) (admin.ContentEntry, error) {
	existing, err := s.GetContent(ctx, entry.ID)
	if err != nil {
		return admin.ContentEntry{}, err
	}

	entry.CreatedAt = existing.CreatedAt
	entry.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE mt_content_entries
		SET slug = $2, locale = $3, title = $4, body = $5, published = $6, published_at = $7, updated_at = $8
		WHERE id = $1
	`, entry.ID, entry.Slug, entry.Locale, entry.Title, entry.Body, entry.Published, nullTime(entry.PublishedAt), entry.UpdatedAt)
	if err != nil {
		return admin.ContentEntry{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return admin.ContentEntry{}, sql.ErrNoRows
	}
	return entry, nil
}

func (s *Store) GetContent(ctx context.Context, id string) (admin.ContentEntry, error) {
	var row contentRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, slug, locale, title, body, published, published_at, created_at, updated_at
		FROM mt_content_entries
		WHERE id = $1
	`, id)
	if err != nil {
		return admin.ContentEntry{}, err
	}
	return row.toDomain(), nil
}

func (s *Store) GetContentBySlug(ctx context.Context, slug, locale string) (admin.ContentEntry, error) {
	var row contentRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, slug, locale, title, body, published, published_at, created_at, updated_at
		FROM mt_content_entries
		WHERE slug = $1 AND locale = $2
	`, slug, locale)
	if err != nil {
		return admin.ContentEntry{}, err
	}
	return row.toDomain(), nil
}

func (s *Store) ListContent(ctx context.Context, locale string) ([]admin.ContentEntry, error) {
	query := `
		SELECT id, slug, locale, title, body, published, published_at, created_at, updated_at
		FROM mt_content_entries
	`
	args := []interface{}{}
	if locale != "" {
		query += ` WHERE locale = $1`
		args = append(args, locale)
	}
	query += ` ORDER BY slug`

	var rows []contentRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	result := make([]admin.ContentEntry, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}

func (s *Store) DeleteContent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM mt_content_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// --- UsageStore -------------------------------------------------------------

type usageRow struct {
	ID         string    `db:"id"`
	Tool       string    `db:"tool"`
	ClientKey  string    `db:"client_key"`
	Succeeded  bool      `db:"succeeded"`
	DurationMs int64     `db:"duration_ms"`
	OccurredAt time.Time `db:"occurred_at"`
}

func (s *Store) RecordUsage(ctx context.Context, ev admin.UsageEvent) (admin.UsageEvent, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mt_usage_events (id, tool, client_key, succeeded, duration_ms, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, ev.ID, ev.Tool, ev.ClientKey, ev.Succeeded, ev.DurationMs, ev.OccurredAt)
	if err != nil {
		return admin.UsageEvent{}, err
	}
	return ev, nil
}

func (s *Store) ListUsage(ctx context.Context, since time.Time) ([]admin.UsageEvent, error) {
	var rows []usageRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, tool, client_key, succeeded, duration_ms, occurred_at
		FROM mt_usage_events
		WHERE occurred_at >= $1
		ORDER BY occurred_at
	`, since)
	if err != nil {
		return nil, err
	}
	result := make([]admin.UsageEvent, 0, len(rows))
	for _, row := range rows {
		result = append(result, admin.UsageEvent(row))
	}
	return result, nil
}

func (s *Store) PruneUsage(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM mt_usage_events WHERE occurred_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
