package workflow

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taxdesk-erp/taxdesk/internal/rbac"
	"github.com/taxdesk-erp/taxdesk/internal/shared"
)

// Handler wires workflow JSON endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	rbac     rbac.Middleware
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service *Service, guard rbac.Middleware) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		rbac:     guard,
	}
}

// MountRoutes registers routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/workflows", func(r chi.Router) {
		r.With(h.rbac.RequireAny(rbac.PermWorkflowView, rbac.PermWorkflowManage)).Group(func(r chi.Router) {
			r.Get("/", h.list)
			r.Get("/{id}", h.get)
			r.Get("/{id}/steps/{step}", h.getStep)
		})
		r.With(h.rbac.RequireAny(rbac.PermWorkflowManage)).Group(func(r chi.Router) {
			r.Post("/", h.create)
			r.Put("/{id}/status", h.updateStatus)
			r.Put("/{id}/steps/{step}/items/{item}", h.editLineItem)
			r.Put("/{id}/steps/{step}/notes/{item}", h.editWorkingNotes)
			r.Post("/{id}/steps/{step}/items", h.addLineItem)
			r.Put("/{id}/steps/{step}/currency", h.setCurrency)
			r.Post("/{id}/steps/{step}/extract", h.requestExtraction)
		})
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !h.decode(w, r, &req) {
		return
	}
	wf, err := h.service.Create(r.Context(), CreateInput{
		ClientName: req.ClientName,
		TaxYear:    req.TaxYear,
		Kind:       Kind(req.Kind),
		ActorID:    shared.ActorFromContext(r.Context()),
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, wf)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{
		Kind:    Kind(r.URL.Query().Get("kind")),
		Status:  Status(r.URL.Query().Get("status")),
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "perPage"),
	}
	workflows, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"workflows":  workflows,
		"pagination": shared.NewPagination(filters.Page, filters.PerPage, total),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workflowID(w, r)
	if !ok {
		return
	}
	wf, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, wf)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workflowID(w, r)
	if !ok {
		return
	}
	var req StatusRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.service.UpdateStatus(r.Context(), id, Status(req.Status)); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getStep(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workflowID(w, r)
	if !ok {
		return
	}
	state, err := h.service.StepState(r.Context(), id, StepKey(chi.URLParam(r, "step")))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, state)
}

func (h *Handler) editLineItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workflowID(w, r)
	if !ok {
		return
	}
	var req LineItemEditRequest
	if !h.decode(w, r, &req) {
		return
	}
	state, err := h.service.EditLineItem(r.Context(), id, StepKey(chi.URLParam(r, "step")), chi.URLParam(r, "item"),
		statementValue(req.CurrentYear, req.PreviousYear))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, state)
}

func (h *Handler) editWorkingNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workflowID(w, r)
	if !ok {
		return
	}
	var req WorkingNotesEditRequest
	if !h.decode(w, r, &req) {
		return
	}
	state, err := h.service.EditWorkingNotes(r.Context(), id, StepKey(chi.URLParam(r, "step")), chi.URLParam(r, "item"), req.toNotes())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, state)
}

func (h *Handler) addLineItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workflowID(w, r)
	if !ok {
		return
	}
	var req AddLineItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	state, err := h.service.AddLineItem(r.Context(), id, StepKey(chi.URLParam(r, "step")), req.AnchorID, req.ID, req.Label)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, state)
}

func (h *Handler) setCurrency(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workflowID(w, r)
	if !ok {
		return
	}
	var req CurrencyRequest
	if !h.decode(w, r, &req) {
		return
	}
	state, err := h.service.SetCurrency(r.Context(), id, StepKey(chi.URLParam(r, "step")), req.toConfig())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, state)
}

func (h *Handler) requestExtraction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workflowID(w, r)
	if !ok {
		return
	}
	var req ExtractionRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.service.RequestExtraction(r.Context(), id, StepKey(chi.URLParam(r, "step")), req.DocumentID, req.Force); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (h *Handler) workflowID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid workflow id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(dest); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return false
	}
	return true
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && h.logger != nil {
		h.logger.Error("encode response", slog.Any("error", err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrWorkflowNotFound), errors.Is(err, shared.ErrNotFound):
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	case errors.Is(err, ErrUnknownStep):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, shared.ErrAlreadyExists):
		http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
	default:
		if h.logger != nil {
			h.logger.Error("workflow request failed", slog.Any("error", err))
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
