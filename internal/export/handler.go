package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/taxdesk-erp/taxdesk/internal/rbac"
	"github.com/taxdesk-erp/taxdesk/internal/workflow"
)

// PDFRenderer converts HTML into PDF bytes.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Handler wires export endpoints.
type Handler struct {
	logger  *slog.Logger
	service *workflow.Service
	pdf     PDFRenderer
	rbac    rbac.Middleware
}

// NewHandler constructs the handler. pdf may be nil when Gotenberg is not
// configured; PDF routes then return 503.
func NewHandler(logger *slog.Logger, service *workflow.Service, pdf PDFRenderer, guard rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, pdf: pdf, rbac: guard}
}

// MountRoutes registers routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/workflows/{id}/export", func(r chi.Router) {
		r.Use(h.rbac.RequireAny(rbac.PermExportRun, rbac.PermWorkflowManage))
		r.Get("/{step}/csv", h.exportCSV)
		r.Get("/{step}/notes/csv", h.exportNotesCSV)
		r.Get("/pdf", h.exportPDF)
	})
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	id, step, ok := h.params(w, r)
	if !ok {
		return
	}
	state, err := h.service.StepState(r.Context(), id, step)
	if err != nil {
		h.fail(w, "load step for csv export", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_statement.csv", step))
	if err := WriteStatementCSV(w, StatementRows(state.Statement)); err != nil && h.logger != nil {
		h.logger.Error("write statement csv", slog.Any("error", err))
	}
}

func (h *Handler) exportNotesCSV(w http.ResponseWriter, r *http.Request) {
	id, step, ok := h.params(w, r)
	if !ok {
		return
	}
	state, err := h.service.StepState(r.Context(), id, step)
	if err != nil {
		h.fail(w, "load step for notes export", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_working_notes.csv", step))
	if err := WriteWorkingNotesCSV(w, NoteRows(state.Statement)); err != nil && h.logger != nil {
		h.logger.Error("write notes csv", slog.Any("error", err))
	}
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request) {
	if h.pdf == nil {
		http.Error(w, "pdf rendering not configured", http.StatusServiceUnavailable)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid workflow id", http.StatusBadRequest)
		return
	}

	wf, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, "load workflow for pdf export", err)
		return
	}

	var pnl, bs workflow.StepState
	group, ctx := errgroup.WithContext(r.Context())
	group.Go(func() error {
		var err error
		pnl, err = h.service.StepState(ctx, id, workflow.StepProfitLoss)
		return err
	})
	group.Go(func() error {
		var err error
		bs, err = h.service.StepState(ctx, id, workflow.StepBalanceSheet)
		return err
	})
	if err := group.Wait(); err != nil {
		h.fail(w, "load steps for pdf export", err)
		return
	}

	html := RenderStatementHTML("Statement of Comprehensive Income", wf.ClientName, wf.TaxYear,
		StatementRows(pnl.Statement), NoteRows(pnl.Statement))
	html += RenderStatementHTML("Statement of Financial Position", wf.ClientName, wf.TaxYear,
		StatementRows(bs.Statement), NoteRows(bs.Statement))

	pdf, err := h.pdf.RenderHTML(r.Context(), html)
	if err != nil {
		h.fail(w, "render pdf", err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=financial_statements.pdf")
	_, _ = w.Write(pdf)
}

func (h *Handler) params(w http.ResponseWriter, r *http.Request) (uuid.UUID, workflow.StepKey, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid workflow id", http.StatusBadRequest)
		return uuid.Nil, "", false
	}
	return id, workflow.StepKey(chi.URLParam(r, "step")), true
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, workflow.ErrWorkflowNotFound) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	if errors.Is(err, workflow.ErrUnknownStep) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.logger != nil {
		h.logger.Error(msg, slog.Any("error", err))
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
