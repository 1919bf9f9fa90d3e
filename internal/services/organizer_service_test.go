package services

import (
	"context"
	"errors"
	"fmt"
	"lummy/internal/status"
	"lummy/models"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryOrganizerStore struct {
	mu       sync.Mutex
	seq      int
	requests map[string]models.OrganizerRequest
}

func newMemoryOrganizerStore() *memoryOrganizerStore {
	return &memoryOrganizerStore{requests: make(map[string]models.OrganizerRequest)}
}

func (m *memoryOrganizerStore) Create(ctx context.Context, req *models.OrganizerRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	req.ID = fmt.Sprintf("org-req-%d", m.seq)
	m.requests[req.ID] = *req
	return nil
}

func (m *memoryOrganizerStore) Get(ctx context.Context, id string) (*models.OrganizerRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, status.ErrRequestNotFound
	}
	return &req, nil
}

func (m *memoryOrganizerStore) List(ctx context.Context, filter models.OrganizerRequestFilter) ([]models.OrganizerRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]models.OrganizerRequest, 0, len(m.requests))
	for i := 1; i <= m.seq; i++ {
		if req, ok := m.requests[fmt.Sprintf("org-req-%d", i)]; ok {
			all = append(all, req)
		}
	}
	return filterRequests(all, filter), nil
}

func (m *memoryOrganizerStore) UpdateStatus(ctx context.Context, id string, newStatus models.OrganizerRequestStatus, note string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return status.ErrRequestNotFound
	}
	req.Status = newStatus
	req.ReviewNote = note
	req.UpdatedAt = at
	m.requests[id] = req
	return nil
}

// filterRequests mirrors the store query: search over name, email and
// organizer type, exact status unless "all" or empty.
func filterRequests(requests []models.OrganizerRequest, filter models.OrganizerRequestFilter) []models.OrganizerRequest {
	query := strings.ToLower(strings.TrimSpace(filter.Search))
	filtered := make([]models.OrganizerRequest, 0, len(requests))
	for _, req := range requests {
		if query != "" &&
			!strings.Contains(strings.ToLower(req.FullName), query) &&
			!strings.Contains(strings.ToLower(req.Email), query) &&
			!strings.Contains(strings.ToLower(req.OrganizerType), query) {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && string(req.Status) != filter.Status {
			continue
		}
		filtered = append(filtered, req)
	}
	return filtered
}

type recordingApplicantNotifier struct {
	mu       sync.Mutex
	messages map[string][]map[string]any
	err      error
}

func (n *recordingApplicantNotifier) NotifyApplicant(ctx context.Context, requestID string, message map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.messages == nil {
		n.messages = make(map[string][]map[string]any)
	}
	n.messages[requestID] = append(n.messages[requestID], message)
	return n.err
}

func completeRequest() *models.OrganizerRequest {
	return &models.OrganizerRequest{
		FullName:        "Jakarta Music Productions",
		Email:           "info@jakartamusic.com",
		Phone:           "+62 821 1234 5678",
		Address:         "Jl. Sudirman No. 123, Jakarta Pusat",
		OrganizerType:   "PT",
		EventCategories: []string{"Music", "Art"},
		Experience:      "3-5 years",
		Description:     "Live concerts and music festivals.",
		EstimatedBudget: "100M - 500M",
		BankName:        "Bank BCA",
		AccountNumber:   "1234567890",
		AccountHolder:   "Jakarta Music Productions PT",
		AgreeTerms:      true,
		AgreePrivacy:    true,
		AgreeFee:        true,
	}
}

func setupOrganizerService() (*OrganizerService, *memoryOrganizerStore, *recordingApplicantNotifier) {
	store := newMemoryOrganizerStore()
	notifier := &recordingApplicantNotifier{}
	service := NewOrganizerService(store, notifier)
	service.now = func() time.Time { return time.Date(2025, time.January, 10, 9, 30, 0, 0, time.UTC) }
	return service, store, notifier
}

func TestValidateStep(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.OrganizerRequest)
		step    int
		missing string
	}{
		{"Step 1 complete", func(r *models.OrganizerRequest) {}, 1, ""},
		{"Step 1 missing email", func(r *models.OrganizerRequest) { r.Email = "" }, 1, "email"},
		{"Step 2 no categories", func(r *models.OrganizerRequest) { r.EventCategories = nil }, 2, "event_categories"},
		{"Step 3 blank budget", func(r *models.OrganizerRequest) { r.EstimatedBudget = "   " }, 3, "estimated_budget"},
		{"Step 4 missing holder", func(r *models.OrganizerRequest) { r.AccountHolder = "" }, 4, "account_holder"},
		{"Unknown step", func(r *models.OrganizerRequest) {}, 5, "unknown step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := completeRequest()
			tt.mutate(req)

			err := ValidateStep(req, tt.step)
			if tt.missing == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, status.ErrIncompleteStep)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestOrganizerService_Submit(t *testing.T) {
	service, store, _ := setupOrganizerService()

	req, err := service.Submit(context.Background(), completeRequest())
	require.NoError(t, err)

	assert.Equal(t, "org-req-1", req.ID)
	assert.Equal(t, models.RequestSubmitted, req.Status)
	assert.Regexp(t, `^ORG-[0-9A-F]{8}$`, req.ReferenceCode)
	assert.Equal(t, service.now(), req.SubmittedAt)

	stored, err := store.Get(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.ReferenceCode, stored.ReferenceCode)
}

func TestOrganizerService_SubmitRequiresAgreements(t *testing.T) {
	service, store, _ := setupOrganizerService()

	req := completeRequest()
	req.AgreeFee = false

	_, err := service.Submit(context.Background(), req)
	assert.ErrorIs(t, err, status.ErrAgreementsRequired)
	assert.Empty(t, store.requests)
}

func TestOrganizerService_SubmitIncomplete(t *testing.T) {
	service, _, _ := setupOrganizerService()

	req := completeRequest()
	req.Experience = ""

	_, err := service.Submit(context.Background(), req)
	assert.ErrorIs(t, err, status.ErrIncompleteStep)
	assert.Contains(t, err.Error(), "step 2")
}

func TestOrganizerService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		from      models.OrganizerRequestStatus
		to        models.OrganizerRequestStatus
		expectErr bool
	}{
		{"Submitted to under review", models.RequestSubmitted, models.RequestUnderReview, false},
		{"Under review to need more info", models.RequestUnderReview, models.RequestNeedMoreInfo, false},
		{"Need more info to approved", models.RequestNeedMoreInfo, models.RequestApproved, false},
		{"Submitted to rejected", models.RequestSubmitted, models.RequestRejected, false},
		{"Approved is final", models.RequestApproved, models.RequestRejected, true},
		{"Rejected is final", models.RequestRejected, models.RequestUnderReview, true},
		{"Never back to submitted", models.RequestUnderReview, models.RequestSubmitted, true},
		{"Same status", models.RequestUnderReview, models.RequestUnderReview, true},
		{"Unknown status", models.RequestSubmitted, models.OrganizerRequestStatus("archived"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store, notifier := setupOrganizerService()
			req, err := service.Submit(context.Background(), completeRequest())
			require.NoError(t, err)
			require.NoError(t, store.UpdateStatus(context.Background(), req.ID, tt.from, "", time.Now()))

			updated, err := service.UpdateStatus(context.Background(), req.ID, tt.to, "checked documents")
			if tt.expectErr {
				assert.ErrorIs(t, err, status.ErrInvalidTransition)
				assert.Empty(t, notifier.messages[req.ID])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
			assert.Equal(t, "checked documents", updated.ReviewNote)

			require.Len(t, notifier.messages[req.ID], 1)
			assert.Equal(t, tt.to.Label(), notifier.messages[req.ID][0]["label"])
		})
	}
}

func TestOrganizerService_UpdateStatus_NotFound(t *testing.T) {
	service, _, _ := setupOrganizerService()

	_, err := service.UpdateStatus(context.Background(), "missing", models.RequestApproved, "")
	assert.ErrorIs(t, err, status.ErrRequestNotFound)
}

func TestOrganizerService_UpdateStatus_NotifierFailureIgnored(t *testing.T) {
	service, _, notifier := setupOrganizerService()
	notifier.err = errors.New("pubnub unavailable")

	req, err := service.Submit(context.Background(), completeRequest())
	require.NoError(t, err)

	updated, err := service.UpdateStatus(context.Background(), req.ID, models.RequestUnderReview, "")
	assert.NoError(t, err)
	assert.Equal(t, models.RequestUnderReview, updated.Status)
}

func TestOrganizerService_SendMessage(t *testing.T) {
	service, _, notifier := setupOrganizerService()
	req, err := service.Submit(context.Background(), completeRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, service.SendMessage(context.Background(), req.ID, "  "), status.ErrEmptyMessage)
	assert.ErrorIs(t, service.SendMessage(context.Background(), "missing", "hello"), status.ErrRequestNotFound)

	require.NoError(t, service.SendMessage(context.Background(), req.ID, "Please upload your company deed"))
	require.Len(t, notifier.messages[req.ID], 1)
	assert.Equal(t, "review_message", notifier.messages[req.ID][0]["type"])
	assert.Equal(t, "Jakarta Music Productions", notifier.messages[req.ID][0]["to"])
}

func TestOrganizerService_ListAndStats(t *testing.T) {
	service, _, _ := setupOrganizerService()
	ctx := context.Background()

	first, err := service.Submit(ctx, completeRequest())
	require.NoError(t, err)

	second := completeRequest()
	second.FullName = "TechHub Indonesia"
	second.Email = "organizer@techhub.id"
	second.OrganizerType = "CV"
	_, err = service.Submit(ctx, second)
	require.NoError(t, err)

	third := completeRequest()
	third.FullName = "Sarah Wijaya"
	third.Email = "sarah.wijaya@email.com"
	third.OrganizerType = "Individual"
	_, err = service.Submit(ctx, third)
	require.NoError(t, err)

	_, err = service.UpdateStatus(ctx, first.ID, models.RequestApproved, "")
	require.NoError(t, err)

	listed, err := service.List(ctx, models.OrganizerRequestFilter{Search: "techhub"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "TechHub Indonesia", listed[0].FullName)

	listed, err = service.List(ctx, models.OrganizerRequestFilter{Search: "individual", Status: "all"})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	listed, err = service.List(ctx, models.OrganizerRequestFilter{Status: string(models.RequestSubmitted)})
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByStatus[models.RequestSubmitted])
	assert.Equal(t, 1, stats.ByStatus[models.RequestApproved])
	assert.Equal(t, 0, stats.ByStatus[models.RequestRejected])
}

func TestOrganizerRequestStatus_Labels(t *testing.T) {
	assert.Equal(t, "Under Review", models.RequestUnderReview.Label())
	assert.Equal(t, "Need More Info", models.RequestNeedMoreInfo.Label())
	assert.Equal(t, "archived", models.OrganizerRequestStatus("archived").Label())
	assert.True(t, models.RequestApproved.Terminal())
	assert.False(t, models.RequestNeedMoreInfo.Terminal())
}
