package entities

import (
	"strings"
	"time"
)

// ClientType classifies the taxpayer organization.
type ClientType string

const (
	ClientTypePublic  ClientType = "PUBLIC"
	ClientTypePrivate ClientType = "PRIVATE"
)

// ClientStatus represents the commercial lifecycle of a client.
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusInactive ClientStatus = "INACTIVE"
	ClientStatusProspect ClientStatus = "PROSPECT"
)

func (t ClientType) Valid() bool {
	return t == ClientTypePublic || t == ClientTypePrivate
}

func (s ClientStatus) Valid() bool {
	switch s {
	case ClientStatusActive, ClientStatusInactive, ClientStatusProspect:
		return true
	}
	return false
}

// Capabilities is the operations bundle attached to a client.
//
// It only drives which actions are offered to the operator; it is not an
// authorization boundary. The zero value grants nothing.
type Capabilities struct {
	CanViewOperations    bool `json:"can_view_operations"`
	CanEditOperations    bool `json:"can_edit_operations"`
	CanApproveOperations bool `json:"can_approve_operations"`
	IsAdmin              bool `json:"is_admin"`
	IsRepresentative     bool `json:"is_representative"`
}

// Client is a taxpayer organization served by the back office.
//
// Storage model (DynamoDB):
//   - PK: id
type Client struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	DocumentNumber string       `json:"document_number"`
	Type           ClientType   `json:"type"`
	Segment        string       `json:"segment"`
	Status         ClientStatus `json:"status"`

	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`

	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`

	Roles Capabilities `json:"user_roles"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientPatch carries a partial update. Nil fields are left untouched.
type ClientPatch struct {
	Name           *string
	DocumentNumber *string
	Type           *ClientType
	Segment        *string
	Status         *ClientStatus
	ContactName    *string
	ContactEmail   *string
	ContactPhone   *string
	Street         *string
	City           *string
	State          *string
	Roles          *Capabilities
}

// IsEmpty reports whether the patch changes nothing.
func (p ClientPatch) IsEmpty() bool {
	return p.Name == nil && p.DocumentNumber == nil && p.Type == nil && p.Segment == nil &&
		p.Status == nil && p.ContactName == nil && p.ContactEmail == nil && p.ContactPhone == nil &&
		p.Street == nil && p.City == nil && p.State == nil && p.Roles == nil
}

// Apply merges the patch into c. ID and CreatedAt are never modified.
func (p ClientPatch) Apply(c *Client) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.DocumentNumber != nil {
		c.DocumentNumber = strings.TrimSpace(*p.DocumentNumber)
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Segment != nil {
		c.Segment = *p.Segment
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.ContactName != nil {
		c.ContactName = *p.ContactName
	}
	if p.ContactEmail != nil {
		c.ContactEmail = *p.ContactEmail
	}
	if p.ContactPhone != nil {
		c.ContactPhone = *p.ContactPhone
	}
	if p.Street != nil {
		c.Street = *p.Street
	}
	if p.City != nil {
		c.City = *p.City
	}
	if p.State != nil {
		c.State = *p.State
	}
	if p.Roles != nil {
		c.Roles = *p.Roles
	}
}

// ClientSnapshot is the client data embedded into proposals.
type ClientSnapshot struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DocumentNumber string `json:"document_number"`
}

func (c Client) Snapshot() ClientSnapshot {
	return ClientSnapshot{ID: c.ID, Name: c.Name, DocumentNumber: c.DocumentNumber}
}

// ValidDocumentNumber checks a CNPJ, formatted ("12.345.678/0001-95") or not.
func ValidDocumentNumber(cnpj string) bool {
	digits := make([]int, 0, 14)
	for _, r := range cnpj {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r == '.' || r == '/' || r == '-' || r == ' ':
		default:
			return false
		}
	}
	if len(digits) != 14 {
		return false
	}

	allEqual := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	return checkDigit(digits[:12], []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}) == digits[12] &&
		checkDigit(digits[:13], []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}) == digits[13]
}

// DocumentDigits strips the CNPJ punctuation.
func DocumentDigits(cnpj string) string {
	var b strings.Builder
	for _, r := range cnpj {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func checkDigit(digits, weights []int) int {
	sum := 0
	for i, d := range digits {
		sum += d * weights[i]
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

// Permissions are the flags derived from the active client's capabilities.
type Permissions struct {
	HasViewAccess     bool `json:"has_view_access"`
	HasEditAccess     bool `json:"has_edit_access"`
	HasApprovalAccess bool `json:"has_approval_access"`
	IsClientAdmin     bool `json:"is_client_admin"`
	IsRepresentative  bool `json:"is_representative"`
}

func (c Capabilities) Permissions() Permissions {
	return Permissions{
		HasViewAccess:     c.CanViewOperations,
		HasEditAccess:     c.CanEditOperations,
		HasApprovalAccess: c.CanApproveOperations,
		IsClientAdmin:     c.IsAdmin,
		IsRepresentative:  c.IsRepresentative,
	}
}
