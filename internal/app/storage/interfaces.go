package storage

import (
	"context"
	"time"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/admin"
)

// UserStore persists user records.
type UserStore interface {
	CreateUser(ctx context.Context, u admin.User) (admin.User, error)
	UpdateUser(ctx context.Context, u admin.User) (admin.User, error)
	GetUser(ctx context.Context, id string) (admin.User, error)
	GetUserByEmail(ctx context.Context, email string) (admin.User, error)
	ListUsers(ctx context.Context) ([]admin.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// ErrorStore persists captured error records.
type ErrorStore interface {
	CreateError(ctx context.Context, rec admin.ErrorRecord) (admin.ErrorRecord, error)
	UpdateError(ctx context.Context, rec admin.ErrorRecord) (admin.ErrorRecord, error)
	GetError(ctx context.Context, id string) (admin.ErrorRecord, error)
	ListErrors(ctx context.Context, since time.Time) ([]admin.ErrorRecord, error)
}

// ContentStore persists localized content entries.
type ContentStore interface {
	CreateContent(ctx context.Context, entry admin.ContentEntry) (admin.ContentEntry, error)
	UpdateContent(ctx context.Context, entry admin.ContentEntry) (admin.ContentEntry, error)
	GetContent(ctx context.Context, id string) (admin.ContentEntry, error)
	GetContentBySlug(ctx context.Context, slug, locale string) (admin.ContentEntry, error)
	ListContent(ctx context.Context, locale string) ([]admin.ContentEntry, error)
	DeleteContent(ctx context.Context, id string) error
}

// UsageStore persists tool usage events.
type UsageStore interface {
	RecordUsage(ctx context.Context, ev admin.UsageEvent) (admin.UsageEvent, error)
	ListUsage(ctx context.Context, since time.Time) ([]admin.UsageEvent, error)
	PruneUsage(ctx context.Context, before time.Time) (int64, error)
}
