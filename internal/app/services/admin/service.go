// Package admin implements the dashboard operations: user management, error
// tracking, localized content, usage reporting and operational status.
package admin

import (
	"database/sql"

	"github.com/D-dracula/MicroTools-sub001/internal/app/storage"
	"github.com/D-dracula/MicroTools-sub001/pkg/logger"
)

// Service hosts the admin dashboard operations.
type Service struct {
	users   storage.UserStore
	errors  storage.ErrorStore
	content storage.ContentStore
	usage   storage.UsageStore
	db      *sql.DB
	log     *logger.Logger
}

// New constructs an admin service. db is optional; when nil the migration
// status endpoint reports the store as non-relational.
func New(users storage.UserStore, errs storage.ErrorStore, content storage.ContentStore, usage storage.UsageStore, db *sql.DB, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("admin")
	}
	return &Service{
		users:   users,
		errors:  errs,
		content: content,
		usage:   usage,
		db:      db,
		log:     log,
	}
}
