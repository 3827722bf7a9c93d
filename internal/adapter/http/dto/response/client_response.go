package response

import (
	"time"

	"credito_tributario/internal/domain/entities"
)

type ClientResponse struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	DocumentNumber string                `json:"document_number"`
	Type           string                `json:"type"`
	Segment        string                `json:"segment"`
	Status         string                `json:"status"`
	ContactName    string                `json:"contact_name"`
	ContactEmail   string                `json:"contact_email"`
	ContactPhone   string                `json:"contact_phone"`
	Street         string                `json:"street"`
	City           string                `json:"city"`
	State          string                `json:"state"`
	Roles          entities.Capabilities `json:"user_roles"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

func FromClient(c entities.Client) ClientResponse {
	return ClientResponse{
		ID:             c.ID,
		Name:           c.Name,
		DocumentNumber: c.DocumentNumber,
		Type:           string(c.Type),
		Segment:        c.Segment,
		Status:         string(c.Status),
		ContactName:    c.ContactName,
		ContactEmail:   c.ContactEmail,
		ContactPhone:   c.ContactPhone,
		Street:         c.Street,
		City:           c.City,
		State:          c.State,
		Roles:          c.Roles,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func FromClients(cs []entities.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromClient(c))
	}
	return out
}
