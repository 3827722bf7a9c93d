package usecase

import (
	"context"
	"strings"

	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/session"
	"credito_tributario/internal/usecase/interfaces"
)

// SessionView is what an operator sees of their session.
type SessionView struct {
	ActiveClient     *entities.Client
	RecentClients    []entities.Client
	PendingProposals int
	Permissions      entities.Permissions
}

// ISessionUseCase drives the active client selection of each user.
type ISessionUseCase interface {
	GetState(ctx context.Context, userID string) (SessionView, error)
	SelectClient(ctx context.Context, userID, clientID string) (SessionView, error)
	ClearActiveClient(ctx context.Context, userID string) (SessionView, error)
	SetPendingProposals(ctx context.Context, userID string, count int) (SessionView, error)
}

type SessionUseCase struct {
	sessions *session.Registry
	clients  interfaces.IClientRepository
}

var _ ISessionUseCase = (*SessionUseCase)(nil)

func NewSessionUseCase(sessions *session.Registry, clients interfaces.IClientRepository) *SessionUseCase {
	return &SessionUseCase{sessions: sessions, clients: clients}
}

func (u *SessionUseCase) GetState(ctx context.Context, userID string) (SessionView, error) {
	sel, err := u.sessions.Selection(ctx, userID)
	if err != nil {
		return SessionView{}, err
	}
	return viewOf(sel), nil
}

// SelectClient activates clientID. Clients unknown to the session are
// fetched from the backend first.
func (u *SessionUseCase) SelectClient(ctx context.Context, userID, clientID string) (SessionView, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return SessionView{}, ErrInvalidClientID
	}
	sel, err := u.sessions.Selection(ctx, userID)
	if err != nil {
		return SessionView{}, err
	}

	if _, ok := sel.Store().FindClient(clientID); !ok {
		c, err := u.clients.GetByID(ctx, clientID)
		if err != nil {
			return SessionView{}, err
		}
		if c.ID == "" {
			return SessionView{}, ErrClientNotFound
		}
		if err := sel.Store().AddClient(c); err != nil {
			return SessionView{}, err
		}
	}

	if _, err := sel.HandleSelectClient(ctx, clientID); err != nil {
		return SessionView{}, err
	}
	return viewOf(sel), nil
}

func (u *SessionUseCase) ClearActiveClient(ctx context.Context, userID string) (SessionView, error) {
	sel, err := u.sessions.Selection(ctx, userID)
	if err != nil {
		return SessionView{}, err
	}
	sel.ClearActiveClient(ctx)
	return viewOf(sel), nil
}

func (u *SessionUseCase) SetPendingProposals(ctx context.Context, userID string, count int) (SessionView, error) {
	sel, err := u.sessions.Selection(ctx, userID)
	if err != nil {
		return SessionView{}, err
	}
	sel.Store().SetPendingProposals(count)
	return viewOf(sel), nil
}

func viewOf(sel *session.Selection) SessionView {
	st := sel.Store().Snapshot()
	return SessionView{
		ActiveClient:     st.ActiveClient,
		RecentClients:    st.RecentClients,
		PendingProposals: st.PendingProposals,
		Permissions:      sel.Permissions(),
	}
}
