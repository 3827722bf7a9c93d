package response

import (
	"time"

	"credito_tributario/internal/domain/entities"
)

type TimelineEntryResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"`
	Comments  string    `json:"comments"`
}

type ProposalDetailsResponse struct {
	EstimatedValue     string    `json:"estimated_value"`
	ServiceDescription string    `json:"service_description"`
	PeriodStart        time.Time `json:"period_start"`
	PeriodEnd          time.Time `json:"period_end"`
	Notes              string    `json:"notes"`
}

// ProposalResponse carries the actions enabled by the proposal status. They
// are not gated by the operator permissions; the session endpoint exposes
// those separately.
type ProposalResponse struct {
	ID          string                   `json:"id"`
	ClientID    string                   `json:"client_id"`
	Client      entities.ClientSnapshot  `json:"client"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	TotalValue  string                   `json:"total_value"`
	ValidUntil  time.Time                `json:"valid_until"`
	Details     ProposalDetailsResponse  `json:"details"`
	Status      string                   `json:"status"`
	Timeline    []TimelineEntryResponse  `json:"timeline"`
	Actions     entities.ProposalActions `json:"actions"`
	CreatedBy   string                   `json:"created_by"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

func FromProposal(p entities.Proposal) ProposalResponse {
	timeline := make([]TimelineEntryResponse, 0, len(p.Timeline))
	for _, e := range p.Timeline {
		timeline = append(timeline, TimelineEntryResponse{
			ID:        e.ID,
			Status:    string(e.Status),
			UpdatedAt: e.UpdatedAt,
			UpdatedBy: e.UpdatedBy,
			Comments:  e.Comments,
		})
	}
	return ProposalResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Client:      p.Client,
		Title:       p.Title,
		Description: p.Description,
		TotalValue:  p.TotalValue.StringFixed(2),
		ValidUntil:  p.ValidUntil,
		Details: ProposalDetailsResponse{
			EstimatedValue:     p.Details.EstimatedValue.StringFixed(2),
			ServiceDescription: p.Details.ServiceDescription,
			PeriodStart:        p.Details.PeriodStart,
			PeriodEnd:          p.Details.PeriodEnd,
			Notes:              p.Details.Notes,
		},
		Status:    string(p.Status),
		Timeline:  timeline,
		Actions:   entities.ActionsFor(p.Status),
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type ProposalSummaryResponse struct {
	ClientID      string         `json:"client_id,omitempty"`
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"by_status"`
	TotalValue    string         `json:"total_value"`
	ApprovedValue string         `json:"approved_value"`
}

func FromProposalSummary(s entities.ProposalSummary) ProposalSummaryResponse {
	by := make(map[string]int, len(s.ByStatus))
	for st, n := range s.ByStatus {
		by[string(st)] = n
	}
	return ProposalSummaryResponse{
		ClientID:      s.ClientID,
		Total:         s.Total,
		ByStatus:      by,
		TotalValue:    s.TotalValue.StringFixed(2),
		ApprovedValue: s.ApprovedValue.StringFixed(2),
	}
}
