package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractStatus represents the lifecycle of a service contract.
type ContractStatus string

const (
	ContractStatusDraft    ContractStatus = "DRAFT"
	ContractStatusActive   ContractStatus = "ACTIVE"
	ContractStatusInactive ContractStatus = "INACTIVE"
	ContractStatusExpired  ContractStatus = "EXPIRED"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractStatusDraft, ContractStatusActive, ContractStatusInactive, ContractStatusExpired:
		return true
	}
	return false
}

// PaymentTerms describes how the recovery service is paid.
//
//   - SuccessFeePercent: share (0-1) of the recovered credits
//   - UpfrontPercent: share (0-1) of Value paid on signature
//   - MonthlyFee: fixed monthly amount, paid over Installments months
type PaymentTerms struct {
	SuccessFeePercent decimal.Decimal `json:"success_fee_percent"`
	UpfrontPercent    decimal.Decimal `json:"upfront_percent"`
	MonthlyFee        decimal.Decimal `json:"monthly_fee"`
	Installments      int             `json:"installments"`
}

// Contract is created when a proposal is converted.
//
// Storage model (DynamoDB):
//   - PK: id
//   - proposal_id / client_id are filter attributes
type Contract struct {
	ID           string          `json:"id"`
	ProposalID   string          `json:"proposal_id"`
	ClientID     string          `json:"client_id"`
	Status       ContractStatus  `json:"status"`
	Value        decimal.Decimal `json:"value"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	PaymentTerms PaymentTerms    `json:"payment_terms"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ContractPatch carries a partial contract update.
type ContractPatch struct {
	Status       *ContractStatus
	Value        *decimal.Decimal
	StartDate    *time.Time
	EndDate      *time.Time
	PaymentTerms *PaymentTerms
}

func (p ContractPatch) IsEmpty() bool {
	return p.Status == nil && p.Value == nil && p.StartDate == nil && p.EndDate == nil && p.PaymentTerms == nil
}

func (p ContractPatch) Apply(c *Contract) {
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Value != nil {
		c.Value = *p.Value
	}
	if p.StartDate != nil {
		c.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		c.EndDate = *p.EndDate
	}
	if p.PaymentTerms != nil {
		c.PaymentTerms = *p.PaymentTerms
	}
}
