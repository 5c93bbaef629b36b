package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/admin"
	adminsvc "github.com/D-dracula/MicroTools-sub001/internal/app/services/admin"
	"github.com/D-dracula/MicroTools-sub001/internal/httputil"
	"github.com/D-dracula/MicroTools-sub001/internal/middleware"
)

const sessionTTL = 12 * time.Hour

func (h *Handler) registerAdminRoutes(r *mux.Router) {
	r.HandleFunc("/users", h.listUsers).Methods(http.MethodGet)
	r.HandleFunc("/users", h.createUser).Methods(http.MethodPost)
	r.HandleFunc("/users/counts", h.userCounts).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.getUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.updateUser).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", h.deleteUser).Methods(http.MethodDelete)
	r.HandleFunc("/users/{id}/rotate-key", h.rotateKey).Methods(http.MethodPost)

	r.HandleFunc("/errors", h.listErrors).Methods(http.MethodGet)
	r.HandleFunc("/errors", h.reportError).Methods(http.MethodPost)
	r.HandleFunc("/errors/counts", h.errorCounts).Methods(http.MethodGet)
	r.HandleFunc("/errors/{id}/resolve", h.resolveError).Methods(http.MethodPost)
	r.HandleFunc("/errors/{id}/reopen", h.reopenError).Methods(http.MethodPost)

	r.HandleFunc("/content", h.listContent).Methods(http.MethodGet)
	r.HandleFunc("/content", h.createContent).Methods(http.MethodPost)
	r.HandleFunc("/content/{id}", h.getContent).Methods(http.MethodGet)
	r.HandleFunc("/content/{id}", h.updateContent).Methods(http.MethodPut)
	r.HandleFunc("/content/{id}", h.deleteContent).Methods(http.MethodDelete)
	r.HandleFunc("/content/{id}/publish", h.publishContent).Methods(http.MethodPost)
	r.HandleFunc("/content/{id}/unpublish", h.unpublishContent).Methods(http.MethodPost)

	r.HandleFunc("/migrations", h.migrations).Methods(http.MethodGet)
	r.HandleFunc("/system", h.systemHealth).Methods(http.MethodGet)
	r.HandleFunc("/usage/top", h.topTools).Methods(http.MethodGet)
	r.HandleFunc("/usage/daily", h.dailyUsage).Methods(http.MethodGet)
	r.HandleFunc("/audit", h.auditEntries).Methods(http.MethodGet)
}

// adminLogin exchanges an email plus API key for a session token. Only admin
// and editor roles may open dashboard sessions.
func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email  string `json:"email"`
		APIKey string `json:"api_key"`
	}
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidRequest, err.Error())
		return
	}

	user, err := h.app.Admin.VerifyAPIKey(r.Context(), payload.Email, payload.APIKey)
	if err != nil {
		httputil.WriteError(w, http.StatusUnauthorized, httputil.CodeUnauthorized, "invalid credentials")
		return
	}
	if user.Role != admin.RoleAdmin && user.Role != admin.RoleEditor {
		httputil.WriteError(w, http.StatusForbidden, httputil.CodeForbidden, "dashboard access requires admin or editor role")
		return
	}

	now := time.Now()
	token, err := h.auth.IssueToken(middleware.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	})
	if err != nil {
		h.log.WithError(err).Warn("issue session token")
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, "could not issue token")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"token":      token,
		"expires_at": now.Add(sessionTTL).UTC(),
		"user":       user,
	})
}

// publicContent serves published content to the site. Locale defaults to
// Arabic, the primary locale.
func (h *Handler) publicContent(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = admin.LocaleArabic
	}
	entry, err := h.app.Admin.GetPublishedContent(r.Context(), slug, locale)
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, httputil.CodeNotFound, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, entry)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, total, err := h.app.Admin.ListUsers(r.Context(), adminsvc.ListUsersQuery{
		Status: q.Get("status"),
		Role:   q.Get("role"),
		Search: q.Get("search"),
		Offset: intQuery(q.Get("offset"), 0),
		Limit:  intQuery(q.Get("limit"), 0),
	})
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidRequest, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"total": total,
	})
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var input adminsvc.CreateUserInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidRequest, err.Error())
		return
	}
	user, apiKey, err := h.app.Admin.CreateUser(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidRequest, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"user":    user,
		"api_key": apiKey,
	})
}

func (h *Handler) userCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.app.Admin.CountUsers(r.Context())
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, counts)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.app.Admin.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, httputil.CodeNotFound, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, user)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var input adminsvc.UpdateUserInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidRequest, err.Error())
		return
	}
	user, err := h.app.Admin.UpdateUser(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidRequest, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Admin.DeleteUser(r.Context(), mux.Vars(r)["id"]); err != nil {
		httputil.WriteError(w, http.StatusNotFound, httputil.CodeNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) rotateKey(w http.ResponseWriter, r *http.Request) {
	apiKey, err := h.app.Admin.RotateAPIKey(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, httputil.CodeNotFound, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, map[string]string{"api_key": apiKey})
}

func (h *Handler) listErrors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := adminsvc.ListErrorsQuery{
		Severity: q.Get("severity"),
		Source:   q.Get("source"),
		Limit:    intQuery(q.Get("limit"), 0),
	}
	if v := q.Get("resolved"); v != "" {
		resolved := v == "true"
		query.Resolved = &resolved
	}
	if hours := intQuery(q.Get("hours"), 0); hours > 0 {
		query.Since = time.Now().Add(-time.Duration(hours) * time.Hour)
	}

	records, err := h.app.Admin.ListErrors(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidRequest, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, records)
}

func (h *Handler) reportError(w http.ResponseWriter, r *http.Request) {
	var input adminsvc.ReportErrorInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidRequest, err.Error())
		return
	}
	rec, err := h.app.Admin.ReportError(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidRequest, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, rec)
}

func (h *Handler) errorCounts(w http.ResponseWriter, r *http.Request) {
	var since time.Time
	if hours := intQuery(r.URL.Query().Get("hours"), 0); hours > 0 {
		since = time.Now().Add(-time.Duration(hours) * time.Hour)
	}
	counts, err := h.app.Admin.CountErrors(r.Context(), since)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, counts)
}

func (h *Handler) resolveError(w http.ResponseWriter, r *http.Request) {
	rec, err := h.app.Admin.ResolveError(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, httputil.CodeNotFound, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, rec)
}

func (h *Handler) reopenError(w http.ResponseWriter, r *http.Request) {
	rec, err := h.app.Admin.ReopenError(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, httputil.CodeNotFound, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, rec)
}

func (h *Handler) listContent(w http.ResponseWriter, r *http.Request) {
	entries, err := h.app.Admin.ListContent(r.Context(), r.URL.Query().Get("locale"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidRequest, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, entries)
}

func (h *Handler) createContent(w http.ResponseWriter, r *http.Request) {
	var input adminsvc.ContentInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidRequest, err.Error())
		return
	}
	entry, err := h.app.Admin.CreateContent(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidRequest, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, entry)
}

func (h *Handler) getContent(w http.ResponseWriter, r *http.Request) {
	entry, err := h.app.Admin.GetContent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, httputil.CodeNotFound, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, entry)
}

func (h *Handler) updateContent(w http.ResponseWriter, r *http.Request) {
	var input adminsvc.ContentInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidRequest, err.Error())
		return
	}
	entry, err := h.app.Admin.UpdateContent(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidRequest, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, entry)
}

func (h *Handler) deleteContent(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Admin.DeleteContent(r.Context(), mux.Vars(r)["id"]); err != nil {
		httputil.WriteError(w, http.StatusNotFound, httputil.CodeNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) publishContent(w http.ResponseWriter, r *http.Request) {
	entry, err := h.app.Admin.PublishContent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, httputil.CodeNotFound, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, entry)
}

func (h *Handler) unpublishContent(w http.ResponseWriter, r *http.Request) {
	entry, err := h.app.Admin.UnpublishContent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, httputil.CodeNotFound, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, entry)
}

func (h *Handler) migrations(w http.ResponseWriter, r *http.Request) {
	status, err := h.app.Admin.Migrations(r.Context())
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, status)
}

func (h *Handler) systemHealth(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.app.Admin.Health(r.Context())
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, snapshot)
}

func (h *Handler) topTools(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	hours := intQuery(q.Get("hours"), 24)
	usage, err := h.app.Admin.TopTools(r.Context(), time.Now().Add(-time.Duration(hours)*time.Hour), intQuery(q.Get("limit"), 0))
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, usage)
}

func (h *Handler) dailyUsage(w http.ResponseWriter, r *http.Request) {
	days := intQuery(r.URL.Query().Get("days"), 7)
	usage, err := h.app.Admin.UsageByDay(r.Context(), time.Now().Add(-time.Duration(days)*24*time.Hour))
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, err.Error())
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, usage)
}

func (h *Handler) auditEntries(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r.URL.Query().Get("limit"), 0)
	httputil.WriteSuccess(w, http.StatusOK, h.audit.listLimit(limit))
}

func intQuery(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
