// Package memory provides a thread-safe in-memory persistence layer
// implementing the storage interfaces. It is intended for tests and local
// development and deliberately keeps the implementation simple.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/admin"
)

// Store is the in-memory implementation of every storage interface.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	users   map[string]admin.User
	errors  map[string]admin.ErrorRecord
	content map[string]admin.ContentEntry
	usage   []admin.UsageEvent
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		nextID:  1,
		users:   make(map[string]admin.User),
		errors:  make(map[string]admin.ErrorRecord),
		content: make(map[string]admin.ContentEntry),
	}
}

func (s *Store) nextIDLocked() string {
	id := s.nextID
	s.nextID++
	return fmt.Sprintf("%d", id)
}

// UserStore implementation --------------------------------------------------

func (s *Store) CreateUser(_ context.Context, u admin.User) (admin.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = s.nextIDLocked()
	} else if _, exists := s.users[u.ID]; exists {
		return admin.User{}, fmt.Errorf("user %s already exists", u.ID)
	}
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return admin.User{}, fmt.Errorf("email %s already registered", u.Email)
		}
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	u.Metadata = copyMap(u.Metadata)

	s.users[u.ID] = u
	return cloneUser(u), nil
}

func (s *Store) UpdateUser(_ context.Context, u admin.User) (admin.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.users[u.ID]
	if !ok {
		return admin.User{}, fmt.Errorf("user %s not found", u.ID)
	}

	u.CreatedAt = original.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	u.Metadata = copyMap(u.Metadata)

	s.users[u.ID] = u
	return cloneUser(u), nil
}

func (s *Store) GetUser(_ context.Context, id string) (admin.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return admin.User{}, fmt.Errorf("user %s not found", id)
	}
	return cloneUser(u), nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (admin.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return admin.User{}, fmt.Errorf("user with email %s not found", email)
}

func (s *Store) ListUsers(_ context.Context) ([]admin.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]admin.User, 0, len(s.users))
	for _, u := range s.users {
		result = append(result, cloneUser(u))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("user %s not found", id)
	}
	delete(s.users, id)
	return nil
}

// ErrorStore implementation -------------------------------------------------

func (s *Store) CreateError(_ context.Context, rec admin.ErrorRecord) (admin.ErrorRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = s.nextIDLocked()
	} else if _, exists := s.errors[rec.ID]; exists {
		return admin.ErrorRecord{}, fmt.Errorf("error record %s already exists", rec.ID)
	}
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = time.Now().UTC()
	}

	s.errors[rec.ID] = rec
	return rec, nil
}

func (s *Store) UpdateError(_ context.Context, rec admin.ErrorRecord) (admin.ErrorRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.errors[rec.ID]
	if !ok {
		return admin.ErrorRecord{}, fmt.Errorf("error record %s not found", rec.ID)
	}
	rec.OccurredAt = original.OccurredAt

	s.errors[rec.ID] = rec
	return rec, nil
}

func (s *Store) GetError(_ context.Context, id string) (admin.ErrorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.errors[id]
	if !ok {
		return admin.ErrorRecord{}, fmt.Errorf("error record %s not found", id)
	}
	return rec, nil
}

func (s *Store) ListErrors(_ context.Context, since time.Time) ([]admin.ErrorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]admin.ErrorRecord, 0, len(s.errors))
	for _, rec := range s.errors {
		if !since.IsZero() && rec.OccurredAt.Before(since) {
			continue
		}
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OccurredAt.After(result[j].OccurredAt) })
	return result, nil
}

// ContentStore implementation -----------------------------------------------

func (s *Store) CreateContent(_ context.Context, entry admin.ContentEntry) (admin.ContentEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = s.nextIDLocked()
	} else if _, exists := s.content[entry.ID]; exists {
		return admin.ContentEntry{}, fmt.Errorf("content %s already exists", entry.ID)
	}
	for _, existing := range s.content {
		if existing.Slug == entry.Slug && existing.Locale == entry.Locale {
			return admin.ContentEntry{}, fmt.Errorf("content %s/%s already exists", entry.Slug, entry.Locale)
		}
	}

	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	s.content[entry.ID] = entry
	return entry, nil
}

func (s *Store) UpdateContent(_ context.Context, entry admin.ContentEntry) (admin.ContentEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.content[entry.ID]
	if !ok {
		return admin.ContentEntry{}, fmt.Errorf("content %s not found", entry.ID)
	}

	entry.CreatedAt = original.CreatedAt
	entry.UpdatedAt = time.Now().UTC()

	s.content[entry.ID] = entry
	return entry, nil
}

func (s *Store) GetContent(_ context.Context, id string) (admin.ContentEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.content[id]
	if !ok {
		return admin.ContentEntry{}, fmt.Errorf("content %s not found", id)
	}
	return entry, nil
}

func (s *Store) GetContentBySlug(_ context.Context, slug, locale string) (admin.ContentEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.content {
		if entry.Slug == slug && entry.Locale == locale {
			return entry, nil
		}
	}
	return admin.ContentEntry{}, fmt.Errorf("content %s/%s not found", slug, locale)
}

func (s *Store) ListContent(_ context.Context, locale string) ([]admin.ContentEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]admin.ContentEntry, 0)
	for _, entry := range s.content {
		if locale == "" || entry.Locale == locale {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Slug < result[j].Slug })
	return result, nil
}

func (s *Store) DeleteContent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.content[id]; !ok {
		return fmt.Errorf("content %s not found", id)
	}
	delete(s.content, id)
	return nil
}

// UsageStore implementation -------------------------------------------------

func (s *Store) RecordUsage(_ context.Context, ev admin.UsageEvent) (admin.UsageEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.ID == "" {
		ev.ID = s.nextIDLocked()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	s.usage = append(s.usage, ev)
	return ev, nil
}

func (s *Store) ListUsage(_ context.Context, since time.Time) ([]admin.UsageEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]admin.UsageEvent, 0, len(s.usage))
	for _, ev := range s.usage {
		if !since.IsZero() && ev.OccurredAt.Before(since) {
			continue
		}
		result = append(result, ev)
	}
	return result, nil
}

func (s *Store) PruneUsage(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.usage[:0]
	var pruned int64
	for _, ev := range s.usage {
		if ev.OccurredAt.Before(before) {
			pruned++
			continue
		}
		kept = append(kept, ev)
	}
	s.usage = kept
	return pruned, nil
}

// Helpers ---------------------------------------------------------------------

func copyMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func cloneUser(u admin.User) admin.User {
	u.Metadata = copyMap(u.Metadata)
	return u
}
