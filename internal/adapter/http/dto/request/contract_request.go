package request

import (
	"time"

	"credito_tributario/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type PaymentTermsRequest struct {
	SuccessFeePercent decimal.Decimal `json:"success_fee_percent" swaggertype:"string"`
	UpfrontPercent    decimal.Decimal `json:"upfront_percent" swaggertype:"string"`
	MonthlyFee        decimal.Decimal `json:"monthly_fee" swaggertype:"string"`
	Installments      int             `json:"installments" binding:"min=0"`
}

type UpdateContractRequest struct {
	Status       *string              `json:"status" binding:"omitempty,oneof=DRAFT ACTIVE INACTIVE EXPIRED"`
	Value        *decimal.Decimal     `json:"value" swaggertype:"string"`
	StartDate    *time.Time           `json:"start_date"`
	EndDate      *time.Time           `json:"end_date"`
	PaymentTerms *PaymentTermsRequest `json:"payment_terms"`
}

func (r UpdateContractRequest) ToPatch() entities.ContractPatch {
	p := entities.ContractPatch{
		Value:     r.Value,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
	if r.Status != nil {
		s := entities.ContractStatus(*r.Status)
		p.Status = &s
	}
	if r.PaymentTerms != nil {
		p.PaymentTerms = &entities.PaymentTerms{
			SuccessFeePercent: r.PaymentTerms.SuccessFeePercent,
			UpfrontPercent:    r.PaymentTerms.UpfrontPercent,
			MonthlyFee:        r.PaymentTerms.MonthlyFee,
			Installments:      r.PaymentTerms.Installments,
		}
	}
	return p
}
