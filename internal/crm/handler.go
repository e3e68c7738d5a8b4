package crm

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

// CreateLeadRequest is the JSON body for lead creation.
type CreateLeadRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=200"`
	Company string `json:"company" validate:"max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=40"`
	Source  string `json:"source" validate:"max=80"`
}

// LeadStatusRequest moves a lead through its lifecycle.
type LeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=NEW CONTACTED QUALIFIED LOST"`
}

// CreateDealRequest is the JSON body for deal creation.
type CreateDealRequest struct {
	Title     string  `json:"title" validate:"required,min=2,max=200"`
	AmountAED float64 `json:"amountAed" validate:"gte=0"`
}

// DealStageRequest moves a deal between pipeline stages.
type DealStageRequest struct {
	Stage string `json:"stage" validate:"required,oneof=PROSPECT PROPOSAL NEGOTIATION WON LOST"`
}

// Handler wires CRM JSON endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	rbac     rbac.Middleware
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service *Service, guard rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New(), rbac: guard}
}

// MountRoutes registers routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/crm", func(r chi.Router) {
		r.With(h.rbac.RequireAny(rbac.PermCRMView, rbac.PermCRMManage)).Group(func(r chi.Router) {
			r.Get("/leads", h.listLeads)
			r.Get("/leads/{id}", h.getLead)
			r.Get("/leads/{id}/deals", h.listDeals)
		})
		r.With(h.rbac.RequireAny(rbac.PermCRMManage)).Group(func(r chi.Router) {
			r.Post("/leads", h.createLead)
			r.Put("/leads/{id}/status", h.updateLeadStatus)
			r.Post("/leads/{id}/deals", h.createDeal)
			r.Put("/deals/{id}/stage", h.moveDealStage)
		})
	})
}

func (h *Handler) createLead(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if !h.decode(w, r, &req) {
		return
	}
	lead, err := h.service.CreateLead(r.Context(), CreateLeadInput{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Source:  req.Source,
		ActorID: shared.ActorFromContext(r.Context()),
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, lead)
}

func (h *Handler) listLeads(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))
	leads, total, err := h.service.ListLeads(r.Context(), LeadStatus(r.URL.Query().Get("status")), page, perPage)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"leads":      leads,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) getLead(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	lead, err := h.service.GetLead(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, lead)
}

func (h *Handler) updateLeadStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req LeadStatusRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.service.UpdateLeadStatus(r.Context(), id, LeadStatus(req.Status)); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createDeal(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req CreateDealRequest
	if !h.decode(w, r, &req) {
		return
	}
	deal, err := h.service.CreateDeal(r.Context(), CreateDealInput{
		LeadID:    id,
		Title:     req.Title,
		AmountAED: req.AmountAED,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, deal)
}

func (h *Handler) listDeals(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	deals, err := h.service.ListDeals(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"deals": deals})
}

func (h *Handler) moveDealStage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req DealStageRequest
	if !h.decode(w, r, &req) {
		return
	}
	deal, err := h.service.MoveDealStage(r.Context(), id, DealStage(req.Stage))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, deal)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
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
	case errors.Is(err, ErrLeadNotFound), errors.Is(err, ErrDealNotFound):
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		if h.logger != nil {
			h.logger.Error("crm request failed", slog.Any("error", err))
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
