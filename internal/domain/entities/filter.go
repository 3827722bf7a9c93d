package entities

import (
	"strings"
	"time"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Pagination is shared by every collection filter.
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// DateRange filters on created_at; zero bounds are open.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

type ClientFilter struct {
	Search  string
	Status  ClientStatus
	Type    ClientType
	Segment string
	DateRange
	Pagination
}

func (f ClientFilter) Normalize() ClientFilter {
	f.Search = strings.TrimSpace(f.Search)
	f.Segment = strings.TrimSpace(f.Segment)
	f.Pagination = f.Pagination.normalize()
	return f
}

type ProposalFilter struct {
	Search   string
	Status   ProposalStatus
	ClientID string
	DateRange
	Pagination
}

func (f ProposalFilter) Normalize() ProposalFilter {
	f.Search = strings.TrimSpace(f.Search)
	f.ClientID = strings.TrimSpace(f.ClientID)
	f.Pagination = f.Pagination.normalize()
	return f
}

type ContractFilter struct {
	Search     string
	Status     ContractStatus
	ClientID   string
	ProposalID string
	DateRange
	Pagination
}

func (f ContractFilter) Normalize() ContractFilter {
	f.Search = strings.TrimSpace(f.Search)
	f.ClientID = strings.TrimSpace(f.ClientID)
	f.ProposalID = strings.TrimSpace(f.ProposalID)
	f.Pagination = f.Pagination.normalize()
	return f
}

// Page is one page of a collection listing.
type Page[T any] struct {
	Items []T
	Total int
	Page  int
	Limit int
}

// Paginate slices an already filtered and ordered result set.
func Paginate[T any](all []T, p Pagination) Page[T] {
	p = p.normalize()
	start := (p.Page - 1) * p.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	items := make([]T, end-start)
	copy(items, all[start:end])
	return Page[T]{Items: items, Total: len(all), Page: p.Page, Limit: p.Limit}
}

// MatchesSearch is a case-insensitive "contains" over the given fields.
func MatchesSearch(search string, fields ...string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}
