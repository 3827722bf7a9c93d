package request

import (
	"strings"
	"time"

	"credito_tributario/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type ProposalDetailsRequest struct {
	EstimatedValue     decimal.Decimal `json:"estimated_value" swaggertype:"string"`
	ServiceDescription string          `json:"service_description"`
	PeriodStart        time.Time       `json:"period_start"`
	PeriodEnd          time.Time       `json:"period_end"`
	Notes              string          `json:"notes"`
}

func (r ProposalDetailsRequest) toEntity() entities.ProposalDetails {
	return entities.ProposalDetails{
		EstimatedValue:     r.EstimatedValue,
		ServiceDescription: r.ServiceDescription,
		PeriodStart:        r.PeriodStart,
		PeriodEnd:          r.PeriodEnd,
		Notes:              r.Notes,
	}
}

type CreateProposalRequest struct {
	ClientID    string                 `json:"client_id" binding:"required"`
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description"`
	TotalValue  decimal.Decimal        `json:"total_value" swaggertype:"string"`
	ValidUntil  time.Time              `json:"valid_until"`
	Details     ProposalDetailsRequest `json:"details"`
}

func (r CreateProposalRequest) ToEntity() entities.Proposal {
	return entities.Proposal{
		ClientID:    r.ClientID,
		Title:       r.Title,
		Description: r.Description,
		TotalValue:  r.TotalValue,
		ValidUntil:  r.ValidUntil,
		Details:     r.Details.toEntity(),
	}
}

type UpdateProposalRequest struct {
	Title       *string                 `json:"title"`
	Description *string                 `json:"description"`
	TotalValue  *decimal.Decimal        `json:"total_value" swaggertype:"string"`
	ValidUntil  *time.Time              `json:"valid_until"`
	Details     *ProposalDetailsRequest `json:"details"`
}

func (r UpdateProposalRequest) ToPatch() entities.ProposalPatch {
	p := entities.ProposalPatch{
		Title:       r.Title,
		Description: r.Description,
		TotalValue:  r.TotalValue,
		ValidUntil:  r.ValidUntil,
	}
	if r.Details != nil {
		d := r.Details.toEntity()
		p.Details = &d
	}
	return p
}

// StatusRequest moves a proposal to any status of the workflow.
type StatusRequest struct {
	Status   string `json:"status" binding:"required"`
	Comments string `json:"comments"`
}

// ResolveStatus accepts legacy names (PENDING, CONTRACT).
func (r StatusRequest) ResolveStatus() (entities.ProposalStatus, bool) {
	return entities.ParseProposalStatus(r.Status)
}

// CommentRequest is the optional body of the approve/reject/convert/cancel/submit shortcuts.
type CommentRequest struct {
	Comments string `json:"comments"`
}

func (r CommentRequest) ResolveComments() string {
	return strings.TrimSpace(r.Comments)
}
