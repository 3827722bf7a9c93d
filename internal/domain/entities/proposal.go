package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimelineEntry records one status transition of a proposal.
// Entries are append-only: they are never edited nor removed.
type TimelineEntry struct {
	ID        string         `json:"id"`
	Status    ProposalStatus `json:"status"`
	UpdatedAt time.Time      `json:"updated_at"`
	UpdatedBy string         `json:"updated_by"`
	Comments  string         `json:"comments"`
}

// ProposalDetails holds the commercial terms of the offer.
type ProposalDetails struct {
	EstimatedValue     decimal.Decimal `json:"estimated_value"`
	ServiceDescription string          `json:"service_description"`
	PeriodStart        time.Time       `json:"period_start"`
	PeriodEnd          time.Time       `json:"period_end"`
	Notes              string          `json:"notes"`
}

// Proposal is a commercial offer for recovering tax credits of a client.
//
// Storage model (DynamoDB):
//   - PK: id
//   - client_id is used as a filter attribute for client scoped listings
//
// Status is always the status of the last timeline entry.
type Proposal struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	Client      ClientSnapshot  `json:"client"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	TotalValue  decimal.Decimal `json:"total_value"`
	ValidUntil  time.Time       `json:"valid_until"`
	Details     ProposalDetails `json:"details"`
	Status      ProposalStatus  `json:"status"`
	Timeline    []TimelineEntry `json:"timeline"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LastEntry returns the most recent timeline entry, if any.
func (p Proposal) LastEntry() (TimelineEntry, bool) {
	if len(p.Timeline) == 0 {
		return TimelineEntry{}, false
	}
	return p.Timeline[len(p.Timeline)-1], true
}

// ProposalPatch carries the editable fields of a proposal.
// Status and timeline only change through status transitions.
type ProposalPatch struct {
	Title       *string
	Description *string
	TotalValue  *decimal.Decimal
	ValidUntil  *time.Time
	Details     *ProposalDetails
}

func (p ProposalPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.TotalValue == nil && p.ValidUntil == nil && p.Details == nil
}

func (p ProposalPatch) Apply(pr *Proposal) {
	if p.Title != nil {
		pr.Title = *p.Title
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.TotalValue != nil {
		pr.TotalValue = *p.TotalValue
	}
	if p.ValidUntil != nil {
		pr.ValidUntil = *p.ValidUntil
	}
	if p.Details != nil {
		pr.Details = *p.Details
	}
}

// ProposalSummary aggregates proposals for dashboards.
type ProposalSummary struct {
	ClientID      string                 `json:"client_id,omitempty"`
	Total         int                    `json:"total"`
	ByStatus      map[ProposalStatus]int `json:"by_status"`
	TotalValue    decimal.Decimal        `json:"total_value"`
	ApprovedValue decimal.Decimal        `json:"approved_value"`
}
