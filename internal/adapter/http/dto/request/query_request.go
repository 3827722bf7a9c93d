package request

import (
	"time"

	"credito_tributario/internal/domain/entities"
)

// ListQuery holds the query string parameters shared by every listing.
type ListQuery struct {
	Search string    `form:"search"`
	Status string    `form:"status"`
	Page   int       `form:"page" binding:"omitempty,min=1"`
	Limit  int       `form:"limit" binding:"omitempty,min=1,max=100"`
	From   time.Time `form:"from" time_format:"2006-01-02"`
	To     time.Time `form:"to" time_format:"2006-01-02"`
}

func (q ListQuery) pagination() entities.Pagination {
	return entities.Pagination{Page: q.Page, Limit: q.Limit}
}

// dateRange makes To inclusive of the whole day.
func (q ListQuery) dateRange() entities.DateRange {
	r := entities.DateRange{From: q.From}
	if !q.To.IsZero() {
		r.To = q.To.Add(24*time.Hour - time.Nanosecond)
	}
	return r
}

type ClientListQuery struct {
	ListQuery
	Type    string `form:"type"`
	Segment string `form:"segment"`
}

func (q ClientListQuery) ToFilter() entities.ClientFilter {
	return entities.ClientFilter{
		Search:     q.Search,
		Status:     entities.ClientStatus(q.Status),
		Type:       entities.ClientType(q.Type),
		Segment:    q.Segment,
		DateRange:  q.dateRange(),
		Pagination: q.pagination(),
	}
}

type ProposalListQuery struct {
	ListQuery
	ClientID string `form:"client_id"`
}

// ToFilter accepts legacy status names. An unknown status is kept as is so
// that the listing comes back empty instead of unfiltered.
func (q ProposalListQuery) ToFilter() entities.ProposalFilter {
	status := entities.ProposalStatus(q.Status)
	if s, ok := entities.ParseProposalStatus(q.Status); ok {
		status = s
	}
	return entities.ProposalFilter{
		Search:     q.Search,
		Status:     status,
		ClientID:   q.ClientID,
		DateRange:  q.dateRange(),
		Pagination: q.pagination(),
	}
}

type ContractListQuery struct {
	ListQuery
	ClientID   string `form:"client_id"`
	ProposalID string `form:"proposal_id"`
}

func (q ContractListQuery) ToFilter() entities.ContractFilter {
	return entities.ContractFilter{
		Search:     q.Search,
		Status:     entities.ContractStatus(q.Status),
		ClientID:   q.ClientID,
		ProposalID: q.ProposalID,
		DateRange:  q.dateRange(),
		Pagination: q.pagination(),
	}
}

// SummaryQuery scopes the proposal summary to one client.
type SummaryQuery struct {
	ClientID string `form:"client_id"`
}
