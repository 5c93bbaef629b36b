package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/admin"
)

// CreateUserInput carries the fields accepted when registering a user.
type CreateUserInput struct {
	Email    string            `json:"email"`
	Name     string            `json:"name"`
	Role     string            `json:"role"`
	Metadata map[string]string `json:"metadata"`
}

// UpdateUserInput carries optional field updates. Nil pointers leave the
// current value unchanged.
type UpdateUserInput struct {
	Name     *string           `json:"name"`
	Role     *string           `json:"role"`
	Status   *string           `json:"status"`
	Metadata map[string]string `json:"metadata"`
}

// ListUsersQuery filters and pages the user listing.
type ListUsersQuery struct {
	Status string
	Role   string
	Search string
	Offset int
	Limit  int
}

var validRoles = map[string]bool{
	admin.RoleAdmin:  true,
	admin.RoleEditor: true,
	admin.RoleUser:   true,
}

var validStatuses = map[string]bool{
	admin.StatusActive:    true,
	admin.StatusSuspended: true,
	admin.StatusPending:   true,
}

// CreateUser registers a user and issues its API key. The plaintext key is
// returned exactly once; only its bcrypt hash is stored.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (admin.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return admin.User{}, "", fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return admin.User{}, "", fmt.Errorf("invalid email %q", email)
	}
	role := input.Role
	if role == "" {
		role = admin.RoleUser
	}
	if !validRoles[role] {
		return admin.User{}, "", fmt.Errorf("invalid role %q", role)
	}

	apiKey := "mt_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return admin.User{}, "", fmt.Errorf("hash api key: %w", err)
	}

	user := admin.User{
		Email:      email,
		Name:       strings.TrimSpace(input.Name),
		Role:       role,
		Status:     admin.StatusActive,
		APIKeyHash: string(hash),
		Metadata:   input.Metadata,
	}
	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return admin.User{}, "", err
	}
	s.log.WithField("user_id", created.ID).Infof("user %s created", created.Email)
	return created, apiKey, nil
}

// UpdateUser applies partial updates to a user record.
func (s *Service) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (admin.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return admin.User{}, err
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		if !validRoles[*input.Role] {
			return admin.User{}, fmt.Errorf("invalid role %q", *input.Role)
		}
		user.Role = *input.Role
	}
	if input.Status != nil {
		if !validStatuses[*input.Status] {
			return admin.User{}, fmt.Errorf("invalid status %q", *input.Status)
		}
		user.Status = *input.Status
	}
	if input.Metadata != nil {
		user.Metadata = input.Metadata
	}
	return s.users.UpdateUser(ctx, user)
}

// GetUser fetches one user by ID.
func (s *Service) GetUser(ctx context.Context, id string) (admin.User, error) {
	return s.users.GetUser(ctx, id)
}

// DeleteUser removes a user record.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.WithField("user_id", id).Info("user deleted")
	return nil
}

// ListUsers returns users matching the query, newest first, plus the total
// match count before paging.
func (s *Service) ListUsers(ctx context.Context, q ListUsersQuery) ([]admin.User, int, error) {
	if q.Status != "" && !validStatuses[q.Status] {
		return nil, 0, fmt.Errorf("invalid status %q", q.Status)
	}
	if q.Role != "" && !validRoles[q.Role] {
		return nil, 0, fmt.Errorf("invalid role %q", q.Role)
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 200 {
		q.Limit = 200
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	all, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, 0, err
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	matched := make([]admin.User, 0, len(all))
	for _, u := range all {
		if q.Status != "" && u.Status != q.Status {
			continue
		}
		if q.Role != "" && u.Role != q.Role {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(strings.ToLower(u.Name), search) {
			continue
		}
		matched = append(matched, u)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if q.Offset >= total {
		return []admin.User{}, total, nil
	}
	end := q.Offset + q.Limit
	if end > total {
		end = total
	}
	return matched[q.Offset:end], total, nil
}

// CountUsers aggregates the dashboard header counts.
func (s *Service) CountUsers(ctx context.Context) (admin.UserCounts, error) {
	all, err := s.users.ListUsers(ctx)
	if err != nil {
		return admin.UserCounts{}, err
	}
	counts := admin.UserCounts{Total: len(all)}
	weekAgo := time.Now().AddDate(0, 0, -7)
	for _, u := range all {
		switch u.Status {
		case admin.StatusActive:
			counts.Active++
		case admin.StatusSuspended:
			counts.Suspended++
		}
		if u.Role == admin.RoleAdmin {
			counts.Admins++
		}
		if u.CreatedAt.After(weekAgo) {
			counts.NewThisWeek++
		}
	}
	return counts, nil
}

// VerifyAPIKey checks a presented key against a user's stored hash and, on
// success, stamps the user's last-seen time.
func (s *Service) VerifyAPIKey(ctx context.Context, email, apiKey string) (admin.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return admin.User{}, fmt.Errorf("invalid credentials")
		}
		return admin.User{}, err
	}
	if user.Status != admin.StatusActive {
		return admin.User{}, fmt.Errorf("user is %s", user.Status)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.APIKeyHash), []byte(apiKey)) != nil {
		return admin.User{}, fmt.Errorf("invalid credentials")
	}
	user.LastSeenAt = time.Now().UTC()
	if updated, err := s.users.UpdateUser(ctx, user); err == nil {
		return updated, nil
	}
	return user, nil
}

// RotateAPIKey issues a new API key for a user, invalidating the old one.
func (s *Service) RotateAPIKey(ctx context.Context, id string) (string, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return "", err
	}
	apiKey := "mt_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash api key: %w", err)
	}
	user.APIKeyHash = string(hash)
	if _, err := s.users.UpdateUser(ctx, user); err != nil {
		return "", err
	}
	s.log.WithField("user_id", id).Info("api key rotated")
	return apiKey, nil
}
