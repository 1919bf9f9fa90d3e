package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"lummy/internal/status"
	"lummy/models"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

const OrganizerRequestsCollection = "organizer_requests"

// PocketBaseOrganizerStore keeps organizer applications in a pocketbase collection.
type PocketBaseOrganizerStore struct {
	app core.App
}

func NewPocketBaseOrganizerStore(app core.App) *PocketBaseOrganizerStore {
	return &PocketBaseOrganizerStore{app: app}
}

func (s *PocketBaseOrganizerStore) Create(ctx context.Context, req *models.OrganizerRequest) error {
	collection, err := s.app.FindCollectionByNameOrId(OrganizerRequestsCollection)
	if err != nil {
		return fmt.Errorf("find %s collection: %w", OrganizerRequestsCollection, err)
	}

	record := core.NewRecord(collection)
	record.Load(map[string]any{
		"full_name":                 req.FullName,
		"email":                     req.Email,
		"phone":                     req.Phone,
		"address":                   req.Address,
		"website":                   req.Website,
		"organizer_type":            req.OrganizerType,
		"event_categories":          req.EventCategories,
		"experience":                req.Experience,
		"estimated_events_per_year": req.EstimatedEventsPerYear,
		"description":               req.Description,
		"previous_events":           req.PreviousEvents,
		"reference_contacts":        req.References,
		"estimated_budget":          req.EstimatedBudget,
		"bank_name":                 req.BankName,
		"account_number":            req.AccountNumber,
		"account_holder":            req.AccountHolder,
		"agree_terms":               req.AgreeTerms,
		"agree_privacy":             req.AgreePrivacy,
		"agree_fee":                 req.AgreeFee,
		"reference_code":            req.ReferenceCode,
		"status":                    string(req.Status),
		"review_note":               req.ReviewNote,
		"submitted_at":              req.SubmittedAt,
		"updated_at":                req.UpdatedAt,
	})

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return fmt.Errorf("save organizer request: %w", err)
	}
	req.ID = record.Id
	return nil
}

func (s *PocketBaseOrganizerStore) Get(ctx context.Context, id string) (*models.OrganizerRequest, error) {
	record, err := s.find(id)
	if err != nil {
		return nil, err
	}
	req, err := recordToRequest(record)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *PocketBaseOrganizerStore) List(ctx context.Context, filter models.OrganizerRequestFilter) ([]models.OrganizerRequest, error) {
	query := s.app.RecordQuery(OrganizerRequestsCollection).WithContext(ctx)

	if filter.Status != "" && filter.Status != "all" {
		query = query.AndWhere(dbx.HashExp{"status": filter.Status})
	}
	if filter.Search != "" {
		query = query.AndWhere(dbx.Or(
			dbx.Like("full_name", filter.Search),
			dbx.Like("email", filter.Search),
			dbx.Like("organizer_type", filter.Search),
		))
	}

	records := []*core.Record{}
	if err := query.OrderBy("submitted_at DESC").All(&records); err != nil {
		return nil, fmt.Errorf("list organizer requests: %w", err)
	}

	requests := make([]models.OrganizerRequest, 0, len(records))
	for _, record := range records {
		req, err := recordToRequest(record)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, nil
}

func (s *PocketBaseOrganizerStore) UpdateStatus(ctx context.Context, id string, newStatus models.OrganizerRequestStatus, note string, at time.Time) error {
	record, err := s.find(id)
	if err != nil {
		return err
	}

	record.Set("status", string(newStatus))
	record.Set("review_note", note)
	record.Set("updated_at", at)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return fmt.Errorf("update organizer request %s: %w", id, err)
	}
	return nil
}

func (s *PocketBaseOrganizerStore) find(id string) (*core.Record, error) {
	record, err := s.app.FindRecordById(OrganizerRequestsCollection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, status.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find organizer request %s: %w", id, err)
	}
	return record, nil
}

func recordToRequest(record *core.Record) (*models.OrganizerRequest, error) {
	var categories []string
	if raw := record.GetString("event_categories"); raw != "" && raw != "null" {
		if err := json.Unmarshal([]byte(raw), &categories); err != nil {
			return nil, fmt.Errorf("organizer request %s: event_categories: %w", record.Id, err)
		}
	}

	return &models.OrganizerRequest{
		ID:                     record.Id,
		FullName:               record.GetString("full_name"),
		Email:                  record.GetString("email"),
		Phone:                  record.GetString("phone"),
		Address:                record.GetString("address"),
		Website:                record.GetString("website"),
		OrganizerType:          record.GetString("organizer_type"),
		EventCategories:        categories,
		Experience:             record.GetString("experience"),
		EstimatedEventsPerYear: record.GetString("estimated_events_per_year"),
		Description:            record.GetString("description"),
		PreviousEvents:         record.GetString("previous_events"),
		References:             record.GetString("reference_contacts"),
		EstimatedBudget:        record.GetString("estimated_budget"),
		BankName:               record.GetString("bank_name"),
		AccountNumber:          record.GetString("account_number"),
		AccountHolder:          record.GetString("account_holder"),
		AgreeTerms:             record.GetBool("agree_terms"),
		AgreePrivacy:           record.GetBool("agree_privacy"),
		AgreeFee:               record.GetBool("agree_fee"),
		ReferenceCode:          record.GetString("reference_code"),
		Status:                 models.OrganizerRequestStatus(record.GetString("status")),
		ReviewNote:             record.GetString("review_note"),
		SubmittedAt:            record.GetDateTime("submitted_at").Time(),
		UpdatedAt:              record.GetDateTime("updated_at").Time(),
	}, nil
}
