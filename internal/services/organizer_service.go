package services

import (
	"context"
	"fmt"
	"log/slog"
	"lummy/internal/status"
	"lummy/models"
	"lummy/utils"
	"strings"
	"time"
)

const organizerSteps = 4

// OrganizerStore persists organizer applications.
type OrganizerStore interface {
	Create(ctx context.Context, req *models.OrganizerRequest) error
	Get(ctx context.Context, id string) (*models.OrganizerRequest, error)
	List(ctx context.Context, filter models.OrganizerRequestFilter) ([]models.OrganizerRequest, error)
	UpdateStatus(ctx context.Context, id string, newStatus models.OrganizerRequestStatus, note string, at time.Time) error
}

type OrganizerService struct {
	store    OrganizerStore
	notifier ApplicantNotifier
	now      func() time.Time
}

func NewOrganizerService(store OrganizerStore, notifier ApplicantNotifier) *OrganizerService {
	return &OrganizerService{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// ValidateStep checks the required fields of one application step (1-4).
func ValidateStep(req *models.OrganizerRequest, step int) error {
	var missing []string
	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}

	switch step {
	case 1:
		require("full_name", req.FullName)
		require("email", req.Email)
		require("phone", req.Phone)
		require("address", req.Address)
	case 2:
		require("organizer_type", req.OrganizerType)
		if len(req.EventCategories) == 0 {
			missing = append(missing, "event_categories")
		}
		require("experience", req.Experience)
	case 3:
		require("description", req.Description)
		require("estimated_budget", req.EstimatedBudget)
	case 4:
		require("bank_name", req.BankName)
		require("account_number", req.AccountNumber)
		require("account_holder", req.AccountHolder)
	default:
		return fmt.Errorf("%w: unknown step %d", status.ErrIncompleteStep, step)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: step %d: %s", status.ErrIncompleteStep, step, strings.Join(missing, ", "))
	}
	return nil
}

// Submit validates every step and the agreements, then stores the request
// as submitted.
func (s *OrganizerService) Submit(ctx context.Context, req *models.OrganizerRequest) (*models.OrganizerRequest, error) {
	for step := 1; step <= organizerSteps; step++ {
		if err := ValidateStep(req, step); err != nil {
			return nil, err
		}
	}
	if !req.AgreeTerms || !req.AgreePrivacy || !req.AgreeFee {
		return nil, status.ErrAgreementsRequired
	}

	code, err := utils.ReferenceCode("ORG")
	if err != nil {
		return nil, fmt.Errorf("generate reference code: %w", err)
	}

	now := s.now()
	req.ReferenceCode = code
	req.Status = models.RequestSubmitted
	req.ReviewNote = ""
	req.SubmittedAt = now
	req.UpdatedAt = now

	if err := s.store.Create(ctx, req); err != nil {
		slog.Error("Failed to store organizer request", "email", req.Email, "error", err)
		return nil, err
	}

	slog.Info("Organizer request submitted", "request_id", req.ID, "reference_code", code)
	return req, nil
}

func (s *OrganizerService) Get(ctx context.Context, id string) (*models.OrganizerRequest, error) {
	return s.store.Get(ctx, id)
}

func (s *OrganizerService) List(ctx context.Context, filter models.OrganizerRequestFilter) ([]models.OrganizerRequest, error) {
	return s.store.List(ctx, filter)
}

// UpdateStatus moves a request through review. Approved and rejected are
// final, and nothing moves back to submitted.
func (s *OrganizerService) UpdateStatus(ctx context.Context, id string, newStatus models.OrganizerRequestStatus, note string) (*models.OrganizerRequest, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", status.ErrInvalidTransition, newStatus)
	}

	req, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := checkTransition(req.Status, newStatus); err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.store.UpdateStatus(ctx, id, newStatus, note, now); err != nil {
		return nil, err
	}
	req.Status = newStatus
	req.ReviewNote = note
	req.UpdatedAt = now

	s.notify(ctx, id, map[string]any{
		"type":   "status_update",
		"status": string(newStatus),
		"label":  newStatus.Label(),
		"note":   note,
	})
	return req, nil
}

func checkTransition(from, to models.OrganizerRequestStatus) error {
	switch {
	case from.Terminal():
		return fmt.Errorf("%w: request already %s", status.ErrInvalidTransition, from)
	case to == models.RequestSubmitted:
		return fmt.Errorf("%w: cannot return to %s", status.ErrInvalidTransition, to)
	case from == to:
		return fmt.Errorf("%w: request is already %s", status.ErrInvalidTransition, to)
	}
	return nil
}

// SendMessage delivers a reviewer note to the applicant without changing status.
func (s *OrganizerService) SendMessage(ctx context.Context, id, message string) error {
	if strings.TrimSpace(message) == "" {
		return status.ErrEmptyMessage
	}
	req, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if s.notifier == nil {
		slog.Warn("No applicant notifier configured, message dropped", "request_id", id)
		return nil
	}
	return s.notifier.NotifyApplicant(ctx, id, map[string]any{
		"type":    "review_message",
		"to":      req.FullName,
		"message": message,
	})
}

func (s *OrganizerService) Stats(ctx context.Context) (*models.OrganizerRequestStats, error) {
	requests, err := s.store.List(ctx, models.OrganizerRequestFilter{})
	if err != nil {
		return nil, err
	}
	stats := &models.OrganizerRequestStats{
		Total:    len(requests),
		ByStatus: make(map[models.OrganizerRequestStatus]int, len(models.OrganizerRequestStatuses)),
	}
	for _, st := range models.OrganizerRequestStatuses {
		stats.ByStatus[st] = 0
	}
	for _, req := range requests {
		stats.ByStatus[req.Status]++
	}
	return stats, nil
}

func (s *OrganizerService) notify(ctx context.Context, id string, message map[string]any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyApplicant(ctx, id, message); err != nil {
		slog.Warn("Failed to notify applicant", "request_id", id, "error", err)
	}
}
