package session

import (
	"context"
	"strings"

	"credito_tributario/internal/domain/entities"
)

// Selection is the read/write facade used by the session endpoints. It adds
// derived permission flags on top of the Store.
type Selection struct {
	store *Store
}

func NewSelection(store *Store) *Selection {
	return &Selection{store: store}
}

func (s *Selection) Store() *Store {
	return s.store
}

func (s *Selection) ActiveClient() (entities.Client, bool) {
	return s.store.ActiveClient()
}

// Permissions derives the operator flags from the active client's
// capabilities. Every flag is false when no client is active.
func (s *Selection) Permissions() entities.Permissions {
	c, ok := s.store.ActiveClient()
	if !ok {
		return entities.Permissions{}
	}
	return c.Roles.Permissions()
}

// HandleSelectClient activates the collection entry with the given id.
// An unknown id leaves the state unchanged and returns ErrClientNotFound.
func (s *Selection) HandleSelectClient(ctx context.Context, id string) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, ErrInvalidClientID
	}
	c, ok := s.store.FindClient(id)
	if !ok {
		return entities.Client{}, ErrClientNotFound
	}
	if err := s.store.SetActiveClient(ctx, c); err != nil {
		return entities.Client{}, err
	}
	return c, nil
}

func (s *Selection) ClearActiveClient(ctx context.Context) {
	s.store.ClearActiveClient(ctx)
}
