package request

import (
	"credito_tributario/internal/domain/entities"
)

type CapabilitiesRequest struct {
	CanViewOperations    bool `json:"can_view_operations"`
	CanEditOperations    bool `json:"can_edit_operations"`
	CanApproveOperations bool `json:"can_approve_operations"`
	IsAdmin              bool `json:"is_admin"`
	IsRepresentative     bool `json:"is_representative"`
}

func (r CapabilitiesRequest) toEntity() entities.Capabilities {
	return entities.Capabilities{
		CanViewOperations:    r.CanViewOperations,
		CanEditOperations:    r.CanEditOperations,
		CanApproveOperations: r.CanApproveOperations,
		IsAdmin:              r.IsAdmin,
		IsRepresentative:     r.IsRepresentative,
	}
}

type CreateClientRequest struct {
	Name           string              `json:"name" binding:"required"`
	DocumentNumber string              `json:"document_number" binding:"required,cnpj"`
	Type           string              `json:"type" binding:"required,oneof=PUBLIC PRIVATE"`
	Segment        string              `json:"segment"`
	Status         string              `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE PROSPECT"`
	ContactName    string              `json:"contact_name"`
	ContactEmail   string              `json:"contact_email" binding:"omitempty,email"`
	ContactPhone   string              `json:"contact_phone"`
	Street         string              `json:"street"`
	City           string              `json:"city"`
	State          string              `json:"state" binding:"omitempty,len=2"`
	Roles          CapabilitiesRequest `json:"user_roles"`
}

// ToEntity builds the client to create. A missing status means PROSPECT.
func (r CreateClientRequest) ToEntity() entities.Client {
	status := entities.ClientStatus(r.Status)
	if status == "" {
		status = entities.ClientStatusProspect
	}
	return entities.Client{
		Name:           r.Name,
		DocumentNumber: r.DocumentNumber,
		Type:           entities.ClientType(r.Type),
		Segment:        r.Segment,
		Status:         status,
		ContactName:    r.ContactName,
		ContactEmail:   r.ContactEmail,
		ContactPhone:   r.ContactPhone,
		Street:         r.Street,
		City:           r.City,
		State:          r.State,
		Roles:          r.Roles.toEntity(),
	}
}

type UpdateClientRequest struct {
	Name           *string              `json:"name" binding:"omitempty,min=1"`
	DocumentNumber *string              `json:"document_number" binding:"omitempty,cnpj"`
	Type           *string              `json:"type" binding:"omitempty,oneof=PUBLIC PRIVATE"`
	Segment        *string              `json:"segment"`
	Status         *string              `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE PROSPECT"`
	ContactName    *string              `json:"contact_name"`
	ContactEmail   *string              `json:"contact_email" binding:"omitempty,email"`
	ContactPhone   *string              `json:"contact_phone"`
	Street         *string              `json:"street"`
	City           *string              `json:"city"`
	State          *string              `json:"state" binding:"omitempty,len=2"`
	Roles          *CapabilitiesRequest `json:"user_roles"`
}

func (r UpdateClientRequest) ToPatch() entities.ClientPatch {
	p := entities.ClientPatch{
		Name:           r.Name,
		DocumentNumber: r.DocumentNumber,
		Segment:        r.Segment,
		ContactName:    r.ContactName,
		ContactEmail:   r.ContactEmail,
		ContactPhone:   r.ContactPhone,
		Street:         r.Street,
		City:           r.City,
		State:          r.State,
	}
	if r.Type != nil {
		t := entities.ClientType(*r.Type)
		p.Type = &t
	}
	if r.Status != nil {
		s := entities.ClientStatus(*r.Status)
		p.Status = &s
	}
	if r.Roles != nil {
		roles := r.Roles.toEntity()
		p.Roles = &roles
	}
	return p
}
