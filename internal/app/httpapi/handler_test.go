package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	app "github.com/D-dracula/MicroTools-sub001/internal/app"
	"github.com/D-dracula/MicroTools-sub001/internal/app/domain/admin"
	adminsvc "github.com/D-dracula/MicroTools-sub001/internal/app/services/admin"
	"github.com/D-dracula/MicroTools-sub001/internal/middleware"
)

func newTestServer(t *testing.T) (*app.Application, http.Handler) {
	t.Helper()

	application, err := app.New(app.Stores{}, app.Options{}, nil)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	auth := middleware.NewAuthMiddleware("test-secret", nil, []string{"/admin/login"})
	handler, err := New(application, auth, Options{}, nil)
	if err != nil {
		t.Fatalf("httpapi.New: %v", err)
	}
	return application, handler
}

func postJSON(t *testing.T, handler http.Handler, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v\n%s", err, w.Body.String())
	}
	if !envelope.Success {
		t.Fatalf("expected success envelope, got %s", w.Body.String())
	}
	return envelope.Data
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Success bool `json:"success"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v\n%s", err, w.Body.String())
	}
	if envelope.Success || envelope.Error == nil {
		t.Fatalf("expected error envelope, got %s", w.Body.String())
	}
	return envelope.Error.Code
}

func TestHealthz(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	data := decodeEnvelope(t, w)
	if data["status"] != "ok" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestToolEndpointEnvelope(t *testing.T) {
	_, handler := newTestServer(t)

	w := postJSON(t, handler, "/api/tools/profit-margin", "", map[string]interface{}{
		"revenue": 1000,
		"cost":    600,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := decodeEnvelope(t, w)
	if data["net_profit"].(float64) != 400 {
		t.Fatalf("unexpected net profit: %v", data["net_profit"])
	}

	// Validation failures come back as invalid_request envelopes.
	w = postJSON(t, handler, "/api/tools/profit-margin", "", map[string]interface{}{
		"revenue": -5,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if code := decodeErrorCode(t, w); code != "invalid_request" {
		t.Fatalf("expected invalid_request, got %q", code)
	}
}

func TestGatewayFeesWithoutIDQuotesAllGateways(t *testing.T) {
	_, handler := newTestServer(t)

	w := postJSON(t, handler, "/api/tools/gateway-fees", "", map[string]interface{}{
		"amount": 100,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    []struct {
			Gateway   string  `json:"gateway"`
			NetAmount float64 `json:"net_amount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v\n%s", err, w.Body.String())
	}
	if !envelope.Success || len(envelope.Data) != 5 {
		t.Fatalf("expected quotes for all 5 default gateways: %s", w.Body.String())
	}
	// Highest net amount first; mada's 1% + 1.00 beats the rest at 100.
	if envelope.Data[0].Gateway != "mada" {
		t.Fatalf("expected mada first, got %q", envelope.Data[0].Gateway)
	}
	for i := 1; i < len(envelope.Data); i++ {
		if envelope.Data[i].NetAmount > envelope.Data[i-1].NetAmount {
			t.Fatalf("quotes not sorted by net descending: %+v", envelope.Data)
		}
	}
}

func TestToolEndpointRejectsUnknownFields(t *testing.T) {
	_, handler := newTestServer(t)

	w := postJSON(t, handler, "/api/tools/case", "", map[string]interface{}{
		"text":    "hello world",
		"style":   "snake",
		"bogus":   true,
		"another": 1,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown fields, got %d: %s", w.Code, w.Body.String())
	}
}

func TestToolUsageIsRecorded(t *testing.T) {
	application, handler := newTestServer(t)

	w := postJSON(t, handler, "/api/tools/case", "", map[string]interface{}{
		"text":  "hello world",
		"style": "kebab",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	top, err := application.Admin.TopTools(httptest.NewRequest(http.MethodGet, "/", nil).Context(), time.Now().Add(-time.Hour), 0)
	if err != nil {
		t.Fatalf("TopTools: %v", err)
	}
	if len(top) != 1 || top[0].Tool != "case" || top[0].Count != 1 {
		t.Fatalf("usage not recorded: %+v", top)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if code := decodeErrorCode(t, w); code != "unauthorized" {
		t.Fatalf("expected unauthorized, got %q", code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", w.Code)
	}
}

func TestAdminLoginFlow(t *testing.T) {
	application, handler := newTestServer(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	_, apiKey, err := application.Admin.CreateUser(ctx, adminsvc.CreateUserInput{Email: "boss@example.com", Role: admin.RoleAdmin})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	// Wrong key is rejected.
	w := postJSON(t, handler, "/admin/login", "", map[string]string{
		"email":   "boss@example.com",
		"api_key": "mt_nope",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = postJSON(t, handler, "/admin/login", "", map[string]string{
		"email":   "boss@example.com",
		"api_key": apiKey,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	data := decodeEnvelope(t, w)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("no token in response: %s", w.Body.String())
	}

	// The issued token opens the dashboard.
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard rejected issued token: %d %s", rec.Code, rec.Body.String())
	}
}

func TestAdminLoginRejectsPlainUsers(t *testing.T) {
	application, handler := newTestServer(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	_, apiKey, err := application.Admin.CreateUser(ctx, adminsvc.CreateUserInput{Email: "user@example.com", Role: admin.RoleUser})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	w := postJSON(t, handler, "/admin/login", "", map[string]string{
		"email":   "user@example.com",
		"api_key": apiKey,
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", w.Code)
	}
}

func TestAdminRequestsAreAudited(t *testing.T) {
	application, handler := newTestServer(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	_, apiKey, err := application.Admin.CreateUser(ctx, adminsvc.CreateUserInput{Email: "aud@example.com", Role: admin.RoleAdmin})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	w := postJSON(t, handler, "/admin/login", "", map[string]string{
		"email":   "aud@example.com",
		"api_key": apiKey,
	})
	token := decodeEnvelope(t, w)["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/admin/users/counts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("counts failed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/audit", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("audit listing failed: %d", rec.Code)
	}

	var envelope struct {
		Data []auditEntry `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode audit: %v", err)
	}
	if len(envelope.Data) == 0 {
		t.Fatal("expected audit entries for admin requests")
	}
	found := false
	for _, entry := range envelope.Data {
		if entry.Path == "/admin/users/counts" && entry.Status == http.StatusOK {
			found = true
		}
	}
	if !found {
		t.Fatalf("counts request not audited: %+v", envelope.Data)
	}
}

func TestPublicContentDefaultsToArabic(t *testing.T) {
	application, handler := newTestServer(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	entry, err := application.Admin.CreateContent(ctx, adminsvc.ContentInput{
		Slug:   "about",
		Locale: admin.LocaleArabic,
		Title:  "عن الموقع",
		Body:   "تعريف بالموقع",
	})
	if err != nil {
		t.Fatalf("CreateContent: %v", err)
	}
	if _, err := application.Admin.PublishContent(ctx, entry.ID); err != nil {
		t.Fatalf("PublishContent: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/content/about", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := decodeEnvelope(t, w)
	if data["title"] != "عن الموقع" {
		t.Fatalf("unexpected content: %v", data)
	}

	// Unknown slugs 404.
	req = httptest.NewRequest(http.MethodGet, "/api/content/missing", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestRobotsEndpointWithCheck(t *testing.T) {
	_, handler := newTestServer(t)

	w := postJSON(t, handler, "/api/tools/robots", "", map[string]interface{}{
		"content": "User-agent: *\nDisallow: /admin/\n",
		"check":   map[string]string{"agent": "bot", "path": "/admin/settings"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := decodeEnvelope(t, w)
	if allowed, ok := data["allowed"].(bool); !ok || allowed {
		t.Fatalf("expected allowed=false, got %v", data["allowed"])
	}
}
