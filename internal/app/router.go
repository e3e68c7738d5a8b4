package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taxdesk-erp/taxdesk/internal/crm"
	"github.com/taxdesk-erp/taxdesk/internal/export"
	"github.com/taxdesk-erp/taxdesk/internal/observability"
	"github.com/taxdesk-erp/taxdesk/internal/users"
	"github.com/taxdesk-erp/taxdesk/internal/workflow"
	"github.com/taxdesk-erp/taxdesk/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	WorkflowHandler *workflow.Handler
	CRMHandler      *crm.Handler
	ExportHandler   *export.Handler
	UserHandler     *users.Handler
	JobHandler      *jobs.Handler
	Metrics         *observability.Metrics
	HealthChecks    []HealthCheck
}

// HealthCheck probes a single downstream dependency.
type HealthCheck struct {
	Name  string
	Probe func() error
}

// NewRouter constructs the chi.Router with TaxDesk defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	if params.Metrics != nil {
		r.Use(params.Metrics.Middleware)
		r.Get("/metrics", params.Metrics.Handler().ServeHTTP)
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		for _, check := range params.HealthChecks {
			if check.Probe == nil {
				continue
			}
			if err := check.Probe(); err != nil {
				logger.Warn("health check failed", slog.String("check", check.Name), slog.Any("error", err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"degraded","failed":"` + check.Name + `"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.WorkflowHandler != nil {
		params.WorkflowHandler.MountRoutes(r)
	}
	if params.ExportHandler != nil {
		params.ExportHandler.MountRoutes(r)
	}
	if params.CRMHandler != nil {
		params.CRMHandler.MountRoutes(r)
	}
	if params.UserHandler != nil {
		params.UserHandler.MountRoutes(r)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", func(r chi.Router) {
			params.JobHandler.MountRoutes(r)
		})
	}

	return r
}
