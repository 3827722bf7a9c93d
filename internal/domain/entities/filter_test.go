package entities

import (
	"testing"
	"time"
)

func TestProposalFilter_Normalize(t *testing.T) {
	f := ProposalFilter{Search: "  acme ", Pagination: Pagination{Page: 0, Limit: 500}}.Normalize()
	if f.Search != "acme" || f.Page != 1 || f.Limit != MaxPageLimit {
		t.Fatalf("unexpected filter: %+v", f)
	}

	f = ProposalFilter{}.Normalize()
	if f.Page != 1 || f.Limit != DefaultPageLimit {
		t.Fatalf("expected defaults, got %+v", f)
	}
}

func TestPaginate(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	p := Paginate(all, Pagination{Page: 2, Limit: 2})
	if p.Total != 5 || len(p.Items) != 2 || p.Items[0] != 3 || p.Items[1] != 4 {
		t.Fatalf("unexpected page: %+v", p)
	}

	p = Paginate(all, Pagination{Page: 9, Limit: 2})
	if p.Total != 5 || len(p.Items) != 0 || p.Page != 9 {
		t.Fatalf("expected empty page past the end, got %+v", p)
	}
}

func TestDateRange_Contains(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	r := DateRange{From: from, To: to}

	if !r.Contains(from) || !r.Contains(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected dates within range")
	}
	if r.Contains(from.Add(-time.Second)) || r.Contains(to.Add(time.Second)) {
		t.Fatalf("expected dates outside range")
	}
	if !(DateRange{}).Contains(time.Now()) {
		t.Fatalf("open range must contain everything")
	}
}

func TestMatchesSearch(t *testing.T) {
	if !MatchesSearch("", "anything") {
		t.Fatalf("empty search must match")
	}
	if !MatchesSearch("acme", "Grupo ACME S/A", "x") {
		t.Fatalf("expected case-insensitive match")
	}
	if MatchesSearch("globex", "ACME", "12.345.678/0001-95") {
		t.Fatalf("unexpected match")
	}
}

func TestActor_Label(t *testing.T) {
	if (Actor{}).Label() != SystemActor || (Actor{}).Authenticated() {
		t.Fatalf("expected system placeholder")
	}
	if (Actor{ID: "u-1"}).Label() != "u-1" {
		t.Fatalf("expected id fallback")
	}
	if (Actor{ID: "u-1", Name: "Maria"}).Label() != "Maria" {
		t.Fatalf("expected name")
	}
}
