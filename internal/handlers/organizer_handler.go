package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"lummy/internal/services"
	"lummy/internal/session"
	"lummy/internal/status"
	"lummy/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type OrganizerHandler struct {
	service *services.OrganizerService
}

func NewOrganizerHandler(service *services.OrganizerService) *OrganizerHandler {
	return &OrganizerHandler{service: service}
}

// SubmitRequest - Submit an organizer application
func (h *OrganizerHandler) SubmitRequest(e *core.RequestEvent) error {
	var req models.OrganizerRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	created, err := h.service.Submit(e.Request.Context(), &req)
	if err != nil {
		return organizerError(err)
	}
	return e.JSON(http.StatusCreated, created)
}

// ListRequests - Admin list with search and status filter
func (h *OrganizerHandler) ListRequests(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}
	q := e.Request.URL.Query()
	filter := models.OrganizerRequestFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
	}

	requests, err := h.service.List(e.Request.Context(), filter)
	if err != nil {
		return organizerError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{
		"items": requests,
		"total": len(requests),
	})
}

// Stats - Admin dashboard counters
func (h *OrganizerHandler) Stats(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}
	stats, err := h.service.Stats(e.Request.Context())
	if err != nil {
		return organizerError(err)
	}
	return e.JSON(http.StatusOK, stats)
}

// UpdateStatus - Move an application through review
func (h *OrganizerHandler) UpdateStatus(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	id := e.Request.PathValue("id")
	updated, err := h.service.UpdateStatus(e.Request.Context(), id, models.OrganizerRequestStatus(req.Status), req.Note)
	if err != nil {
		return organizerError(err)
	}
	slog.Info("Organizer request reviewed", "request_id", id, "status", updated.Status)
	return e.JSON(http.StatusOK, updated)
}

// SendMessage - Send a reviewer note to the applicant
func (h *OrganizerHandler) SendMessage(e *core.RequestEvent) error {
	if err := requireAdmin(e); err != nil {
		return err
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.service.SendMessage(e.Request.Context(), e.Request.PathValue("id"), req.Message); err != nil {
		return organizerError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{"message": "Message sent"})
}

func requireAdmin(e *core.RequestEvent) error {
	if session.ParseRole(e.Request.Header.Get(RoleHeader)) != session.RoleAdmin {
		return apis.NewForbiddenError("Admin access required", nil)
	}
	return nil
}

func organizerError(err error) error {
	switch {
	case errors.Is(err, status.ErrRequestNotFound):
		return apis.NewNotFoundError("Organizer request not found", nil)
	case errors.Is(err, status.ErrIncompleteStep),
		errors.Is(err, status.ErrAgreementsRequired),
		errors.Is(err, status.ErrInvalidTransition),
		errors.Is(err, status.ErrEmptyMessage):
		return apis.NewBadRequestError(err.Error(), nil)
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return apis.NewBadRequestError("Invalid organizer request", fieldErrs)
	}

	slog.Error("Organizer request failed", "error", err)
	return apis.NewInternalServerError("Failed to process organizer request", nil)
}
