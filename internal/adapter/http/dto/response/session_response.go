package response

import (
	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/usecase"
)

type SessionResponse struct {
	ActiveClient     *ClientResponse      `json:"active_client"`
	RecentClients    []ClientResponse     `json:"recent_clients"`
	PendingProposals int                  `json:"pending_proposals"`
	Permissions      entities.Permissions `json:"permissions"`
}

func FromSession(v usecase.SessionView) SessionResponse {
	res := SessionResponse{
		RecentClients:    FromClients(v.RecentClients),
		PendingProposals: v.PendingProposals,
		Permissions:      v.Permissions,
	}
	if v.ActiveClient != nil {
		c := FromClient(*v.ActiveClient)
		res.ActiveClient = &c
	}
	return res
}
