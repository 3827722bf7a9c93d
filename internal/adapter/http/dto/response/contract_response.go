package response

import (
	"time"

	"credito_tributario/internal/domain/entities"
)

type PaymentTermsResponse struct {
	SuccessFeePercent string `json:"success_fee_percent"`
	UpfrontPercent    string `json:"upfront_percent"`
	MonthlyFee        string `json:"monthly_fee"`
	Installments      int    `json:"installments"`
}

type ContractResponse struct {
	ID           string               `json:"id"`
	ProposalID   string               `json:"proposal_id"`
	ClientID     string               `json:"client_id"`
	Status       string               `json:"status"`
	Value        string               `json:"value"`
	StartDate    time.Time            `json:"start_date"`
	EndDate      time.Time            `json:"end_date"`
	PaymentTerms PaymentTermsResponse `json:"payment_terms"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func FromContract(c entities.Contract) ContractResponse {
	return ContractResponse{
		ID:         c.ID,
		ProposalID: c.ProposalID,
		ClientID:   c.ClientID,
		Status:     string(c.Status),
		Value:      c.Value.StringFixed(2),
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
		PaymentTerms: PaymentTermsResponse{
			SuccessFeePercent: c.PaymentTerms.SuccessFeePercent.String(),
			UpfrontPercent:    c.PaymentTerms.UpfrontPercent.String(),
			MonthlyFee:        c.PaymentTerms.MonthlyFee.StringFixed(2),
			Installments:      c.PaymentTerms.Installments,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
