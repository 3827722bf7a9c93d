package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProposalID       = errors.New("invalid proposal id")
	ErrProposalNotFound        = errors.New("proposal not found")
	ErrInvalidProposalTitle    = errors.New("invalid proposal title")
	ErrInvalidProposalValue    = errors.New("invalid proposal value")
	ErrInvalidProposalStatus   = errors.New("invalid proposal status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrCommentsRequired        = errors.New("comments are required for this status")
	ErrProposalStatusConflict  = errors.New("proposal status changed concurrently")
	ErrProposalLocked          = errors.New("proposal can no longer be edited")
)

// IProposalUseCase exposes the proposal collection and its workflow.
//
// Status changes never overwrite history: every successful UpdateStatus
// appends exactly one timeline entry.
type IProposalUseCase interface {
	List(ctx context.Context, filter entities.ProposalFilter) (entities.Page[entities.Proposal], error)
	GetByID(ctx context.Context, id string) (entities.Proposal, error)
	Create(ctx context.Context, p entities.Proposal, actor entities.Actor) (entities.Proposal, error)
	Update(ctx context.Context, id string, patch entities.ProposalPatch) (entities.Proposal, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status entities.ProposalStatus, comments string, actor entities.Actor) (entities.Proposal, error)
	Summary(ctx context.Context, clientID string) (entities.ProposalSummary, error)
}

type ProposalUseCase struct {
	collection
	repo      interfaces.IProposalRepository
	clients   interfaces.IClientRepository
	contracts interfaces.IContractRepository
}

var _ IProposalUseCase = (*ProposalUseCase)(nil)

func NewProposalUseCase(
	repo interfaces.IProposalRepository,
	clients interfaces.IClientRepository,
	contracts interfaces.IContractRepository,
	cache interfaces.IQueryCache,
	notifier interfaces.INotifier,
) *ProposalUseCase {
	return &ProposalUseCase{
		collection: collection{name: "proposals", prefix: proposalsCacheKey, cache: cache, notifier: notifier},
		repo:       repo,
		clients:    clients,
		contracts:  contracts,
	}
}

func (u *ProposalUseCase) List(ctx context.Context, filter entities.ProposalFilter) (entities.Page[entities.Proposal], error) {
	filter = filter.Normalize()
	key := proposalListKey(filter)
	if v, ok := u.cached(key); ok {
		if page, ok := v.(entities.Page[entities.Proposal]); ok {
			return page, nil
		}
	}

	gen := u.generation()
	all, err := u.repo.Search(ctx, filter)
	if err != nil {
		return entities.Page[entities.Proposal]{}, err
	}
	page := entities.Paginate(all, filter.Pagination)
	u.store(key, page, gen)
	return page, nil
}

func (u *ProposalUseCase) GetByID(ctx context.Context, id string) (entities.Proposal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Proposal{}, ErrInvalidProposalID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.ID == "" {
		return entities.Proposal{}, ErrProposalNotFound
	}
	return p, nil
}

func (u *ProposalUseCase) Create(ctx context.Context, p entities.Proposal, actor entities.Actor) (entities.Proposal, error) {
	p.ClientID = strings.TrimSpace(p.ClientID)
	p.Title = strings.TrimSpace(p.Title)
	if p.ClientID == "" {
		return entities.Proposal{}, ErrInvalidClientID
	}
	if p.Title == "" {
		return entities.Proposal{}, ErrInvalidProposalTitle
	}
	if !p.TotalValue.IsPositive() {
		return entities.Proposal{}, ErrInvalidProposalValue
	}

	const title = "Erro ao criar proposta"
	client, err := u.clients.GetByID(ctx, p.ClientID)
	if err != nil {
		return entities.Proposal{}, u.fail(ctx, title, err)
	}
	if client.ID == "" {
		return entities.Proposal{}, u.fail(ctx, title, ErrClientNotFound)
	}

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.Client = client.Snapshot()
	p.Status = entities.ProposalStatusDraft
	p.Timeline = []entities.TimelineEntry{{
		ID:        uuid.NewString(),
		Status:    entities.ProposalStatusDraft,
		UpdatedAt: now,
		UpdatedBy: actor.Label(),
		Comments:  "Proposta criada",
	}}
	p.CreatedBy = actor.Label()
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		return entities.Proposal{}, u.fail(ctx, title, err)
	}
	u.succeed(ctx, "Proposta criada", fmt.Sprintf("%q criada para %s.", created.Title, client.Name), proposalsCacheKey)
	return created, nil
}

func (u *ProposalUseCase) Update(ctx context.Context, id string, patch entities.ProposalPatch) (entities.Proposal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Proposal{}, ErrInvalidProposalID
	}
	if patch.IsEmpty() {
		return entities.Proposal{}, ErrEmptyPatch
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return entities.Proposal{}, ErrInvalidProposalTitle
	}
	if patch.TotalValue != nil && !patch.TotalValue.IsPositive() {
		return entities.Proposal{}, ErrInvalidProposalValue
	}

	const title = "Erro ao atualizar proposta"
	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, u.fail(ctx, title, err)
	}
	if current.ID == "" {
		return entities.Proposal{}, u.fail(ctx, title, ErrProposalNotFound)
	}
	if current.Status.IsTerminal() {
		return entities.Proposal{}, u.fail(ctx, title, ErrProposalLocked)
	}

	patch.Apply(&current)
	current.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.Update(ctx, current)
	if err != nil {
		return entities.Proposal{}, u.fail(ctx, title, err)
	}
	if updated.ID == "" {
		return entities.Proposal{}, u.fail(ctx, title, ErrProposalNotFound)
	}
	u.succeed(ctx, "Proposta atualizada", fmt.Sprintf("%q foi atualizada.", updated.Title), proposalsCacheKey)
	return updated, nil
}

func (u *ProposalUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidProposalID
	}

	const title = "Erro ao remover proposta"
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return u.fail(ctx, title, err)
	}
	if !deleted {
		return u.fail(ctx, title, ErrProposalNotFound)
	}
	u.succeed(ctx, "Proposta removida", "A proposta foi removida.", proposalsCacheKey)
	return nil
}

// UpdateStatus moves a proposal to status, appending one timeline entry.
//
// REJECTED and CANCELED need a comment; the call fails before reaching the
// backend otherwise. CONVERTED also creates the contract, which is removed
// again when the transition cannot be written.
func (u *ProposalUseCase) UpdateStatus(
	ctx context.Context,
	id string,
	status entities.ProposalStatus,
	comments string,
	actor entities.Actor,
) (entities.Proposal, error) {
	id = strings.TrimSpace(id)
	comments = strings.TrimSpace(comments)
	if id == "" {
		return entities.Proposal{}, ErrInvalidProposalID
	}
	if !status.Valid() {
		return entities.Proposal{}, ErrInvalidProposalStatus
	}
	if entities.RequiresComment(status) && comments == "" {
		return entities.Proposal{}, ErrCommentsRequired
	}

	const title = "Erro ao atualizar status da proposta"
	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, u.fail(ctx, title, err)
	}
	if current.ID == "" {
		return entities.Proposal{}, u.fail(ctx, title, ErrProposalNotFound)
	}
	if !entities.CanTransition(current.Status, status) {
		return entities.Proposal{}, u.fail(ctx, title,
			fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, status))
	}

	now := time.Now().UTC()
	entry := entities.TimelineEntry{
		ID:        uuid.NewString(),
		Status:    status,
		UpdatedAt: now,
		UpdatedBy: actor.Label(),
		Comments:  comments,
	}

	var contract entities.Contract
	if status == entities.ProposalStatusConverted {
		contract, err = u.contracts.Create(ctx, contractFromProposal(current, now))
		if err != nil {
			return entities.Proposal{}, u.fail(ctx, title, err)
		}
	}

	updated, err := u.repo.AppendStatus(ctx, id, current.Status, entry)
	if err == nil && updated.ID == "" {
		err = ErrProposalStatusConflict
	}
	if err != nil {
		if contract.ID != "" {
			u.discardContract(ctx, contract.ID)
		}
		return entities.Proposal{}, u.fail(ctx, title, err)
	}

	prefixes := []string{proposalsCacheKey}
	description := fmt.Sprintf("%q agora está %s.", updated.Title, updated.Status)
	if contract.ID != "" {
		prefixes = append(prefixes, contractsCacheKey)
		description = fmt.Sprintf("%q convertida no contrato %s.", updated.Title, contract.ID)
	}
	u.succeed(ctx, "Status da proposta atualizado", description, prefixes...)
	return updated, nil
}

func (u *ProposalUseCase) discardContract(ctx context.Context, id string) {
	if _, err := u.contracts.Delete(context.WithoutCancel(ctx), id); err != nil {
		log.Printf("[proposals][usecase] orphan contract left behind contract_id=%s err=%v", id, err)
	}
}

// Summary aggregates the proposals of a client, or of every client when
// clientID is empty.
func (u *ProposalUseCase) Summary(ctx context.Context, clientID string) (entities.ProposalSummary, error) {
	clientID = strings.TrimSpace(clientID)
	key := proposalsCacheKey + "summary|client=" + clientID
	if v, ok := u.cached(key); ok {
		if s, ok := v.(entities.ProposalSummary); ok {
			return s, nil
		}
	}

	gen := u.generation()
	all, err := u.repo.Search(ctx, entities.ProposalFilter{ClientID: clientID})
	if err != nil {
		return entities.ProposalSummary{}, err
	}

	s := entities.ProposalSummary{
		ClientID:      clientID,
		ByStatus:      make(map[entities.ProposalStatus]int),
		TotalValue:    decimal.Zero,
		ApprovedValue: decimal.Zero,
	}
	for _, p := range all {
		s.Total++
		s.ByStatus[p.Status]++
		s.TotalValue = s.TotalValue.Add(p.TotalValue)
		if p.Status == entities.ProposalStatusApproved || p.Status == entities.ProposalStatusConverted {
			s.ApprovedValue = s.ApprovedValue.Add(p.TotalValue)
		}
	}
	u.store(key, s, gen)
	return s, nil
}
