// Package httpapi exposes the tool and admin REST API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	app "github.com/D-dracula/MicroTools-sub001/internal/app"
	"github.com/D-dracula/MicroTools-sub001/internal/app/metrics"
	"github.com/D-dracula/MicroTools-sub001/internal/httputil"
	"github.com/D-dracula/MicroTools-sub001/internal/middleware"
	"github.com/D-dracula/MicroTools-sub001/pkg/logger"
)

// Handler bundles HTTP endpoints for the application services.
type Handler struct {
	app   *app.Application
	auth  *middleware.AuthMiddleware
	audit *auditLog
	log   *logger.Logger
}

// Options configures the HTTP API.
type Options struct {
	// AuditFile mirrors admin audit entries to a JSONL file when set.
	AuditFile string
	// AuditMax caps the in-memory audit buffer.
	AuditMax int
}

// New returns a router exposing the tool and admin REST API.
func New(application *app.Application, auth *middleware.AuthMiddleware, opts Options, log *logger.Logger) (http.Handler, error) {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	sink, err := newFileAuditSink(opts.AuditFile)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		app:   application,
		auth:  auth,
		audit: newAuditLog(opts.AuditMax, sink),
		log:   log,
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	tools := r.PathPrefix("/api/tools").Subrouter()
	tools.HandleFunc("/profit-margin", h.tool("profit-margin", h.profitMargin)).Methods(http.MethodPost)
	tools.HandleFunc("/shipping", h.tool("shipping", h.shipping)).Methods(http.MethodPost)
	tools.HandleFunc("/ltv", h.tool("ltv", h.ltv)).Methods(http.MethodPost)
	tools.HandleFunc("/gateway-fees", h.tool("gateway-fees", h.gatewayFees)).Methods(http.MethodPost)
	tools.HandleFunc("/gateway-compare", h.tool("gateway-compare", h.gatewayCompare)).Methods(http.MethodPost)
	tools.HandleFunc("/case", h.tool("case", h.caseConvert)).Methods(http.MethodPost)
	tools.HandleFunc("/color", h.tool("color", h.colorConvert)).Methods(http.MethodPost)
	tools.HandleFunc("/units", h.tool("units", h.unitConvert)).Methods(http.MethodPost)
	tools.HandleFunc("/password", h.tool("password", h.password)).Methods(http.MethodPost)
	tools.HandleFunc("/business-names", h.tool("business-names", h.businessNames)).Methods(http.MethodPost)
	tools.HandleFunc("/utm", h.tool("utm", h.utmLink)).Methods(http.MethodPost)
	tools.HandleFunc("/sitemap", h.tool("sitemap", h.sitemap)).Methods(http.MethodPost)
	tools.HandleFunc("/robots", h.tool("robots", h.robotsValidate)).Methods(http.MethodPost)
	tools.HandleFunc("/ad-audit", h.tool("ad-audit", h.adAudit)).Methods(http.MethodPost)
	tools.HandleFunc("/sentiment", h.tool("sentiment", h.sentiment)).Methods(http.MethodPost)

	r.HandleFunc("/api/content/{slug}", h.publicContent).Methods(http.MethodGet)

	r.HandleFunc("/admin/login", h.adminLogin).Methods(http.MethodPost)

	adminRouter := r.PathPrefix("/admin").Subrouter()
	adminRouter.Use(auth.Handler, h.auditMiddleware)
	h.registerAdminRoutes(adminRouter)

	return r, nil
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// tool wraps a tool handler with usage recording and execution metrics. The
// handler reports whether the invocation succeeded.
func (h *Handler) tool(name string, fn func(http.ResponseWriter, *http.Request) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ok := fn(w, r)
		duration := time.Since(start)

		metrics.RecordToolExecution(name, duration, ok)
		clientKey := middleware.GetUserID(r.Context())
		if err := h.app.Admin.RecordUsage(r.Context(), name, clientKey, ok, duration); err != nil {
			h.log.WithError(err).Debugf("record usage for %s", name)
		}
	}
}

// auditMiddleware records every authenticated admin request.
func (h *Handler) auditMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.audit.add(auditEntry{
			Time:       time.Now().UTC(),
			User:       middleware.GetUserID(r.Context()),
			Role:       middleware.GetUserRole(r.Context()),
			Path:       r.URL.Path,
			Method:     r.Method,
			Status:     rec.status,
			RemoteAddr: r.RemoteAddr,
			UserAgent:  r.UserAgent(),
		})
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func badRequest(w http.ResponseWriter, err error) bool {
	httputil.WriteError(w, http.StatusBadRequest, httputil.CodeInvalidRequest, err.Error())
	return false
}

func ok(w http.ResponseWriter, data interface{}) bool {
	httputil.WriteSuccess(w, http.StatusOK, data)
	return true
}
