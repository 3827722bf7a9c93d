package request

import "strings"

type SelectClientRequest struct {
	ClientID string `json:"client_id" binding:"required"`
}

func (r SelectClientRequest) ResolveClientID() string {
	return strings.TrimSpace(r.ClientID)
}

// PendingProposalsRequest sets the pending proposals badge. Negative counts
// are stored as zero.
type PendingProposalsRequest struct {
	Count *int `json:"count" binding:"required"`
}
