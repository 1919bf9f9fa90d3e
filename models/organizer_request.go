package models

import (
	"time"
)

type OrganizerRequestStatus string

const (
	RequestSubmitted    OrganizerRequestStatus = "submitted"
	RequestUnderReview  OrganizerRequestStatus = "under_review"
	RequestNeedMoreInfo OrganizerRequestStatus = "need_more_info"
	RequestApproved     OrganizerRequestStatus = "approved"
	RequestRejected     OrganizerRequestStatus = "rejected"
)

// OrganizerRequestStatuses is the review pipeline in display order.
var OrganizerRequestStatuses = []OrganizerRequestStatus{
	RequestSubmitted,
	RequestUnderReview,
	RequestNeedMoreInfo,
	RequestApproved,
	RequestRejected,
}

func (s OrganizerRequestStatus) Label() string {
	switch s {
	case RequestSubmitted:
		return "Submitted"
	case RequestUnderReview:
		return "Under Review"
	case RequestNeedMoreInfo:
		return "Need More Info"
	case RequestApproved:
		return "Approved"
	case RequestRejected:
		return "Rejected"
	default:
		return string(s)
	}
}

func (s OrganizerRequestStatus) Valid() bool {
	for _, v := range OrganizerRequestStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Terminal reports whether a review decision has been made.
func (s OrganizerRequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected
}

type OrganizerRequest struct {
	ID string `json:"id"`

	// contact
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Website  string `json:"website,omitempty"`

	// business
	OrganizerType          string   `json:"organizer_type"` // Individual, CV, PT, ...
	EventCategories        []string `json:"event_categories"`
	Experience             string   `json:"experience"`
	EstimatedEventsPerYear string   `json:"estimated_events_per_year,omitempty"`

	// portfolio
	Description     string `json:"description"`
	PreviousEvents  string `json:"previous_events,omitempty"`
	References      string `json:"references,omitempty"`
	EstimatedBudget string `json:"estimated_budget"`

	// finance
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountHolder string `json:"account_holder"`

	AgreeTerms   bool `json:"agree_terms"`
	AgreePrivacy bool `json:"agree_privacy"`
	AgreeFee     bool `json:"agree_fee"`

	ReferenceCode string                 `json:"reference_code"`
	Status        OrganizerRequestStatus `json:"status"`
	ReviewNote    string                 `json:"review_note,omitempty"`
	SubmittedAt   time.Time              `json:"submitted_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

type OrganizerRequestFilter struct {
	Search string `json:"search"`
	Status string `json:"status"` // empty or "all" matches every status
}

type OrganizerRequestStats struct {
	Total    int                            `json:"total"`
	ByStatus map[OrganizerRequestStatus]int `json:"by_status"`
}
