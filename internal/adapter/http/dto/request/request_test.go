package request

import (
	"testing"
	"time"

	"credito_tributario/internal/domain/entities"

	"github.com/go-playground/validator/v10"
)

func newBindingValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterValidations(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v
}

func TestCreateClientRequest_Validation(t *testing.T) {
	v := newBindingValidator(t)

	ok := CreateClientRequest{Name: "ACME", DocumentNumber: "12.345.678/0001-95", Type: "PRIVATE"}
	if err := v.Struct(ok); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	badDoc := ok
	badDoc.DocumentNumber = "12.345.678/0001-90"
	if err := v.Struct(badDoc); err == nil {
		t.Fatalf("expected invalid cnpj to fail")
	}

	badType := ok
	badType.Type = "NGO"
	if err := v.Struct(badType); err == nil {
		t.Fatalf("expected invalid type to fail")
	}

	badEmail := ok
	badEmail.ContactEmail = "not-an-email"
	if err := v.Struct(badEmail); err == nil {
		t.Fatalf("expected invalid email to fail")
	}
}

func TestCreateClientRequest_ToEntity(t *testing.T) {
	c := CreateClientRequest{
		Name:           "ACME",
		DocumentNumber: "12.345.678/0001-95",
		Type:           "PUBLIC",
		Roles:          CapabilitiesRequest{CanApproveOperations: true},
	}.ToEntity()

	if c.Status != entities.ClientStatusProspect {
		t.Fatalf("expected default status PROSPECT, got %s", c.Status)
	}
	if c.Type != entities.ClientTypePublic || !c.Roles.CanApproveOperations {
		t.Fatalf("unexpected client: %+v", c)
	}
}

func TestUpdateClientRequest_ToPatch(t *testing.T) {
	status := "ACTIVE"
	p := UpdateClientRequest{Status: &status, Roles: &CapabilitiesRequest{IsAdmin: true}}.ToPatch()
	if p.Status == nil || *p.Status != entities.ClientStatusActive {
		t.Fatalf("unexpected status: %+v", p.Status)
	}
	if p.Roles == nil || !p.Roles.IsAdmin {
		t.Fatalf("unexpected roles: %+v", p.Roles)
	}
	if p.Name != nil || p.Type != nil {
		t.Fatalf("expected untouched fields to stay nil")
	}
	if !(UpdateClientRequest{}).ToPatch().IsEmpty() {
		t.Fatalf("expected empty patch")
	}
}

func TestStatusRequest_ResolveStatus(t *testing.T) {
	s, ok := StatusRequest{Status: "pending"}.ResolveStatus()
	if !ok || s != entities.ProposalStatusAnalysis {
		t.Fatalf("expected ANALYSIS, got %s ok=%v", s, ok)
	}
	if _, ok := (StatusRequest{Status: "SIGNED"}).ResolveStatus(); ok {
		t.Fatalf("expected unknown status to be rejected")
	}
}

func TestListQuery_ToFilter(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	f := ProposalListQuery{
		ListQuery: ListQuery{Status: "CONTRACT", Page: 2, Limit: 20, From: from, To: to},
		ClientID:  "c1",
	}.ToFilter()

	if f.Status != entities.ProposalStatusConverted {
		t.Fatalf("expected CONVERTED, got %s", f.Status)
	}
	if f.Page != 2 || f.Limit != 20 || f.ClientID != "c1" {
		t.Fatalf("unexpected filter: %+v", f)
	}
	if !f.Contains(time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected the whole last day to be included")
	}
	if f.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected next day to be excluded")
	}

	cf := ContractListQuery{ProposalID: "p1"}.ToFilter()
	if cf.ProposalID != "p1" || !cf.From.IsZero() || !cf.To.IsZero() {
		t.Fatalf("unexpected contract filter: %+v", cf)
	}
}

func TestUpdateContractRequest_ToPatch(t *testing.T) {
	status := "ACTIVE"
	p := UpdateContractRequest{Status: &status, PaymentTerms: &PaymentTermsRequest{Installments: 6}}.ToPatch()
	if p.Status == nil || *p.Status != entities.ContractStatusActive {
		t.Fatalf("unexpected status")
	}
	if p.PaymentTerms == nil || p.PaymentTerms.Installments != 6 {
		t.Fatalf("unexpected payment terms: %+v", p.PaymentTerms)
	}
}
