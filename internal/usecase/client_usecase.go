package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/session"
	"credito_tributario/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidClientID       = session.ErrInvalidClientID
	ErrClientNotFound        = session.ErrClientNotFound
	ErrClientAlreadyExists   = errors.New("client already exists")
	ErrInvalidClientName     = errors.New("invalid client name")
	ErrInvalidDocumentNumber = errors.New("invalid document number")
	ErrInvalidClientType     = errors.New("invalid client type")
	ErrInvalidClientStatus   = errors.New("invalid client status")
	ErrEmptyPatch            = errors.New("nothing to update")
)

// IClientUseCase exposes the client collection.
type IClientUseCase interface {
	List(ctx context.Context, filter entities.ClientFilter) (entities.Page[entities.Client], error)
	GetByID(ctx context.Context, id string) (entities.Client, error)
	Create(ctx context.Context, c entities.Client) (entities.Client, error)
	Update(ctx context.Context, id string, patch entities.ClientPatch) (entities.Client, error)
	Delete(ctx context.Context, id string) error
}

type ClientUseCase struct {
	collection
	repo     interfaces.IClientRepository
	sessions interfaces.IClientSessionSync
}

var _ IClientUseCase = (*ClientUseCase)(nil)

// NewClientUseCase builds the use case. cache, notifier and sessions may be nil.
func NewClientUseCase(
	repo interfaces.IClientRepository,
	sessions interfaces.IClientSessionSync,
	cache interfaces.IQueryCache,
	notifier interfaces.INotifier,
) *ClientUseCase {
	return &ClientUseCase{
		collection: collection{name: "clients", prefix: clientsCacheKey, cache: cache, notifier: notifier},
		repo:       repo,
		sessions:   sessions,
	}
}

func (u *ClientUseCase) List(ctx context.Context, filter entities.ClientFilter) (entities.Page[entities.Client], error) {
	filter = filter.Normalize()
	key := clientListKey(filter)
	if v, ok := u.cached(key); ok {
		if page, ok := v.(entities.Page[entities.Client]); ok {
			return page, nil
		}
	}

	gen := u.generation()
	all, err := u.repo.Search(ctx, filter)
	if err != nil {
		return entities.Page[entities.Client]{}, err
	}
	page := entities.Paginate(all, filter.Pagination)
	u.store(key, page, gen)
	return page, nil
}

func (u *ClientUseCase) GetByID(ctx context.Context, id string) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, ErrInvalidClientID
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}
	if c.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	return c, nil
}

func (u *ClientUseCase) Create(ctx context.Context, c entities.Client) (entities.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.DocumentNumber = strings.TrimSpace(c.DocumentNumber)
	if c.Status == "" {
		c.Status = entities.ClientStatusProspect
	}
	if err := validateClient(c); err != nil {
		return entities.Client{}, err
	}

	const title = "Erro ao cadastrar cliente"
	if err := u.ensureUniqueDocument(ctx, c.DocumentNumber, ""); err != nil {
		return entities.Client{}, u.fail(ctx, title, err)
	}

	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now

	created, err := u.repo.Create(ctx, c)
	if err != nil {
		return entities.Client{}, u.fail(ctx, title, err)
	}
	u.succeed(ctx, "Cliente cadastrado", fmt.Sprintf("%s (%s) foi cadastrado.", created.Name, created.DocumentNumber), clientsCacheKey)
	return created, nil
}

func (u *ClientUseCase) Update(ctx context.Context, id string, patch entities.ClientPatch) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, ErrInvalidClientID
	}
	if patch.IsEmpty() {
		return entities.Client{}, ErrEmptyPatch
	}

	const title = "Erro ao atualizar cliente"
	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, u.fail(ctx, title, err)
	}
	if current.ID == "" {
		return entities.Client{}, u.fail(ctx, title, ErrClientNotFound)
	}

	patch.Apply(&current)
	if err := validateClient(current); err != nil {
		return entities.Client{}, err
	}
	if patch.DocumentNumber != nil {
		if err := u.ensureUniqueDocument(ctx, current.DocumentNumber, current.ID); err != nil {
			return entities.Client{}, u.fail(ctx, title, err)
		}
	}
	current.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.Update(ctx, current)
	if err != nil {
		return entities.Client{}, u.fail(ctx, title, err)
	}
	if updated.ID == "" {
		return entities.Client{}, u.fail(ctx, title, ErrClientNotFound)
	}

	if u.sessions != nil {
		u.sessions.UpdateClient(ctx, id, patch)
	}
	u.succeed(ctx, "Cliente atualizado", fmt.Sprintf("%s foi atualizado.", updated.Name), clientsCacheKey)
	return updated, nil
}

func (u *ClientUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidClientID
	}

	const title = "Erro ao remover cliente"
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return u.fail(ctx, title, err)
	}
	if !deleted {
		return u.fail(ctx, title, ErrClientNotFound)
	}

	if u.sessions != nil {
		u.sessions.RemoveClient(ctx, id)
	}
	u.succeed(ctx, "Cliente removido", "O cliente foi removido.", clientsCacheKey)
	return nil
}

// ensureUniqueDocument compares CNPJ digits so that formatted and bare
// numbers collide. selfID is ignored.
func (u *ClientUseCase) ensureUniqueDocument(ctx context.Context, document, selfID string) error {
	all, err := u.repo.Search(ctx, entities.ClientFilter{})
	if err != nil {
		return err
	}
	digits := entities.DocumentDigits(document)
	for _, e := range all {
		if e.ID != selfID && entities.DocumentDigits(e.DocumentNumber) == digits {
			return fmt.Errorf("%w: %s", ErrClientAlreadyExists, document)
		}
	}
	return nil
}

func validateClient(c entities.Client) error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return ErrInvalidClientName
	case strings.TrimSpace(c.DocumentNumber) == "":
		return ErrInvalidDocumentNumber
	case !c.Type.Valid():
		return ErrInvalidClientType
	case !c.Status.Valid():
		return ErrInvalidClientStatus
	}
	return nil
}
