package entities

import "strings"

// ProposalStatus is the canonical proposal lifecycle.
//
// Legacy vocabularies are mapped by ParseProposalStatus:
//   - PENDING  => ANALYSIS
//   - CONTRACT => CONVERTED
type ProposalStatus string

const (
	ProposalStatusDraft     ProposalStatus = "DRAFT"
	ProposalStatusAnalysis  ProposalStatus = "ANALYSIS"
	ProposalStatusApproved  ProposalStatus = "APPROVED"
	ProposalStatusRejected  ProposalStatus = "REJECTED"
	ProposalStatusConverted ProposalStatus = "CONVERTED"
	ProposalStatusCanceled  ProposalStatus = "CANCELED"
)

var proposalTransitions = map[ProposalStatus][]ProposalStatus{
	ProposalStatusDraft:     {ProposalStatusAnalysis, ProposalStatusApproved, ProposalStatusRejected, ProposalStatusCanceled},
	ProposalStatusAnalysis:  {ProposalStatusApproved, ProposalStatusRejected, ProposalStatusCanceled},
	ProposalStatusApproved:  {ProposalStatusConverted, ProposalStatusCanceled},
	ProposalStatusRejected:  nil,
	ProposalStatusConverted: nil,
	ProposalStatusCanceled:  nil,
}

// ParseProposalStatus normalizes a status coming from any producer.
func ParseProposalStatus(raw string) (ProposalStatus, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch s {
	case "PENDING":
		return ProposalStatusAnalysis, true
	case "CONTRACT":
		return ProposalStatusConverted, true
	case "CANCELLED":
		return ProposalStatusCanceled, true
	}
	st := ProposalStatus(s)
	if _, ok := proposalTransitions[st]; !ok {
		return "", false
	}
	return st, true
}

func (s ProposalStatus) Valid() bool {
	_, ok := proposalTransitions[s]
	return ok
}

// IsTerminal reports statuses that accept no further transition.
func (s ProposalStatus) IsTerminal() bool {
	next, ok := proposalTransitions[s]
	return ok && len(next) == 0
}

func (s ProposalStatus) isPreDecision() bool {
	return s == ProposalStatusDraft || s == ProposalStatusAnalysis
}

// CanTransition reports whether from -> to is allowed by the workflow.
func CanTransition(from, to ProposalStatus) bool {
	for _, next := range proposalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func CanSubmit(s ProposalStatus) bool  { return s == ProposalStatusDraft }
func CanApprove(s ProposalStatus) bool { return s.isPreDecision() }
func CanReject(s ProposalStatus) bool  { return s.isPreDecision() }
func CanConvert(s ProposalStatus) bool { return s == ProposalStatusApproved }

// CanCancel is true for every non-terminal status.
func CanCancel(s ProposalStatus) bool {
	return s.Valid() && !s.IsTerminal()
}

// RequiresComment reports target statuses that need a reason.
func RequiresComment(to ProposalStatus) bool {
	return to == ProposalStatusRejected || to == ProposalStatusCanceled
}

// ProposalActions is the set of actions enabled for a proposal.
type ProposalActions struct {
	CanSubmit  bool `json:"can_submit"`
	CanApprove bool `json:"can_approve"`
	CanReject  bool `json:"can_reject"`
	CanConvert bool `json:"can_convert"`
	CanCancel  bool `json:"can_cancel"`
}

func ActionsFor(s ProposalStatus) ProposalActions {
	return ProposalActions{
		CanSubmit:  CanSubmit(s),
		CanApprove: CanApprove(s),
		CanReject:  CanReject(s),
		CanConvert: CanConvert(s),
		CanCancel:  CanCancel(s),
	}
}

// Gate masks the actions the operator's permissions do not allow.
// Decisions (approve, reject, convert) need approval access; submit and
// cancel need edit access.
func (a ProposalActions) Gate(p Permissions) ProposalActions {
	if !p.HasApprovalAccess {
		a.CanApprove, a.CanReject, a.CanConvert = false, false, false
	}
	if !p.HasEditAccess {
		a.CanSubmit, a.CanCancel = false, false
	}
	return a
}
