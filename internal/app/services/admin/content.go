package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/admin"
)

// ContentInput carries the editable fields of a content entry.
type ContentInput struct {
	Slug   string `json:"slug"`
	Locale string `json:"locale"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

var validLocales = map[string]bool{
	admin.LocaleArabic:  true,
	admin.LocaleEnglish: true,
}

func validateContent(input ContentInput) error {
	if strings.TrimSpace(input.Slug) == "" {
		return fmt.Errorf("slug is required")
	}
	if !validLocales[input.Locale] {
		return fmt.Errorf("invalid locale %q, must be %s or %s", input.Locale, admin.LocaleArabic, admin.LocaleEnglish)
	}
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// CreateContent stores a new draft entry. Entries start unpublished.
func (s *Service) CreateContent(ctx context.Context, input ContentInput) (admin.ContentEntry, error) {
	if err := validateContent(input); err != nil {
		return admin.ContentEntry{}, err
	}
	entry := admin.ContentEntry{
		Slug:   strings.TrimSpace(input.Slug),
		Locale: input.Locale,
		Title:  strings.TrimSpace(input.Title),
		Body:   input.Body,
	}
	return s.content.CreateContent(ctx, entry)
}

// UpdateContent replaces the editable fields of an entry.
func (s *Service) UpdateContent(ctx context.Context, id string, input ContentInput) (admin.ContentEntry, error) {
	if err := validateContent(input); err != nil {
		return admin.ContentEntry{}, err
	}
	entry, err := s.content.GetContent(ctx, id)
	if err != nil {
		return admin.ContentEntry{}, err
	}
	entry.Slug = strings.TrimSpace(input.Slug)
	entry.Locale = input.Locale
	entry.Title = strings.TrimSpace(input.Title)
	entry.Body = input.Body
	return s.content.UpdateContent(ctx, entry)
}

// PublishContent marks an entry live, stamping the publish time on the first
// publish only.
func (s *Service) PublishContent(ctx context.Context, id string) (admin.ContentEntry, error) {
	entry, err := s.content.GetContent(ctx, id)
	if err != nil {
		return admin.ContentEntry{}, err
	}
	if entry.Published {
		return entry, nil
	}
	entry.Published = true
	if entry.PublishedAt.IsZero() {
		entry.PublishedAt = time.Now().UTC()
	}
	return s.content.UpdateContent(ctx, entry)
}

// UnpublishContent takes an entry offline without discarding it.
func (s *Service) UnpublishContent(ctx context.Context, id string) (admin.ContentEntry, error) {
	entry, err := s.content.GetContent(ctx, id)
	if err != nil {
		return admin.ContentEntry{}, err
	}
	entry.Published = false
	return s.content.UpdateContent(ctx, entry)
}

// GetContent fetches one entry by ID.
func (s *Service) GetContent(ctx context.Context, id string) (admin.ContentEntry, error) {
	return s.content.GetContent(ctx, id)
}

// GetPublishedContent fetches a published entry by slug and locale, for the
// public site. Unpublished entries are not visible here.
func (s *Service) GetPublishedContent(ctx context.Context, slug, locale string) (admin.ContentEntry, error) {
	if !validLocales[locale] {
		return admin.ContentEntry{}, fmt.Errorf("invalid locale %q", locale)
	}
	entry, err := s.content.GetContentBySlug(ctx, slug, locale)
	if err != nil {
		return admin.ContentEntry{}, err
	}
	if !entry.Published {
		return admin.ContentEntry{}, fmt.Errorf("content %s/%s is not published", slug, locale)
	}
	return entry, nil
}

// ListContent returns entries, optionally filtered by locale, ordered by slug
// then locale.
func (s *Service) ListContent(ctx context.Context, locale string) ([]admin.ContentEntry, error) {
	if locale != "" && !validLocales[locale] {
		return nil, fmt.Errorf("invalid locale %q", locale)
	}
	entries, err := s.content.ListContent(ctx, locale)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Slug != entries[j].Slug {
			return entries[i].Slug < entries[j].Slug
		}
		return entries[i].Locale < entries[j].Locale
	})
	return entries, nil
}

// DeleteContent removes an entry.
func (s *Service) DeleteContent(ctx context.Context, id string) error {
	return s.content.DeleteContent(ctx, id)
}
