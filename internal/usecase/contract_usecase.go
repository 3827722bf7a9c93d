package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultContractTermMonths is the term of contracts created by conversion.
const DefaultContractTermMonths = 12

var (
	ErrInvalidContractID     = errors.New("invalid contract id")
	ErrContractNotFound      = errors.New("contract not found")
	ErrInvalidContractStatus = errors.New("invalid contract status")
	ErrInvalidContractValue  = errors.New("invalid contract value")
	ErrInvalidContractPeriod = errors.New("contract end date must be after start date")
)

// IContractUseCase exposes the contract collection. Contracts are created
// by proposal conversion only.
type IContractUseCase interface {
	List(ctx context.Context, filter entities.ContractFilter) (entities.Page[entities.Contract], error)
	GetByID(ctx context.Context, id string) (entities.Contract, error)
	Update(ctx context.Context, id string, patch entities.ContractPatch) (entities.Contract, error)
	Delete(ctx context.Context, id string) error
}

type ContractUseCase struct {
	collection
	repo interfaces.IContractRepository
}

var _ IContractUseCase = (*ContractUseCase)(nil)

func NewContractUseCase(repo interfaces.IContractRepository, cache interfaces.IQueryCache, notifier interfaces.INotifier) *ContractUseCase {
	return &ContractUseCase{
		collection: collection{name: "contracts", prefix: contractsCacheKey, cache: cache, notifier: notifier},
		repo:       repo,
	}
}

func (u *ContractUseCase) List(ctx context.Context, filter entities.ContractFilter) (entities.Page[entities.Contract], error) {
	filter = filter.Normalize()
	key := contractListKey(filter)
	if v, ok := u.cached(key); ok {
		if page, ok := v.(entities.Page[entities.Contract]); ok {
			return page, nil
		}
	}

	gen := u.generation()
	all, err := u.repo.Search(ctx, filter)
	if err != nil {
		return entities.Page[entities.Contract]{}, err
	}
	page := entities.Paginate(all, filter.Pagination)
	u.store(key, page, gen)
	return page, nil
}

func (u *ContractUseCase) GetByID(ctx context.Context, id string) (entities.Contract, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Contract{}, ErrInvalidContractID
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Contract{}, err
	}
	if c.ID == "" {
		return entities.Contract{}, ErrContractNotFound
	}
	return c, nil
}

func (u *ContractUseCase) Update(ctx context.Context, id string, patch entities.ContractPatch) (entities.Contract, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Contract{}, ErrInvalidContractID
	}
	if patch.IsEmpty() {
		return entities.Contract{}, ErrEmptyPatch
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return entities.Contract{}, ErrInvalidContractStatus
	}
	if patch.Value != nil && patch.Value.IsNegative() {
		return entities.Contract{}, ErrInvalidContractValue
	}

	const title = "Erro ao atualizar contrato"
	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Contract{}, u.fail(ctx, title, err)
	}
	if current.ID == "" {
		return entities.Contract{}, u.fail(ctx, title, ErrContractNotFound)
	}

	patch.Apply(&current)
	if !current.StartDate.IsZero() && !current.EndDate.IsZero() && !current.EndDate.After(current.StartDate) {
		return entities.Contract{}, ErrInvalidContractPeriod
	}
	current.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.Update(ctx, current)
	if err != nil {
		return entities.Contract{}, u.fail(ctx, title, err)
	}
	if updated.ID == "" {
		return entities.Contract{}, u.fail(ctx, title, ErrContractNotFound)
	}
	u.succeed(ctx, "Contrato atualizado", fmt.Sprintf("Contrato %s está %s.", updated.ID, updated.Status), contractsCacheKey)
	return updated, nil
}

func (u *ContractUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidContractID
	}

	const title = "Erro ao remover contrato"
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return u.fail(ctx, title, err)
	}
	if !deleted {
		return u.fail(ctx, title, ErrContractNotFound)
	}
	u.succeed(ctx, "Contrato removido", "O contrato foi removido.", contractsCacheKey)
	return nil
}

// contractFromProposal drafts the contract created when p is converted.
func contractFromProposal(p entities.Proposal, now time.Time) entities.Contract {
	start := now.Truncate(24 * time.Hour)
	return entities.Contract{
		ID:         uuid.NewString(),
		ProposalID: p.ID,
		ClientID:   p.ClientID,
		Status:     entities.ContractStatusDraft,
		Value:      p.TotalValue,
		StartDate:  start,
		EndDate:    start.AddDate(0, DefaultContractTermMonths, 0),
		PaymentTerms: entities.PaymentTerms{
			MonthlyFee:   p.TotalValue.Div(decimal.NewFromInt(DefaultContractTermMonths)).Round(2),
			Installments: DefaultContractTermMonths,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
