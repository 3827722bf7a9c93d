package interfaces

import (
	"context"
	"credito_tributario/internal/domain/entities"
)

// IProposalRepository abstracts DynamoDB persistence for Proposal.
//
// The timeline is append-only: the only write that touches it after creation
// is AppendStatus.

type IProposalRepository interface {
	Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error)
	GetByID(ctx context.Context, id string) (entities.Proposal, error)
	Search(ctx context.Context, filter entities.ProposalFilter) ([]entities.Proposal, error)
	// Update writes the editable fields only.
	Update(ctx context.Context, p entities.Proposal) (entities.Proposal, error)
	// AppendStatus appends entry to the timeline and sets status to
	// entry.Status, provided the stored status still equals expected.
	// It returns an empty Proposal when the condition does not hold.
	AppendStatus(ctx context.Context, id string, expected entities.ProposalStatus, entry entities.TimelineEntry) (entities.Proposal, error)
	Delete(ctx context.Context, id string) (bool, error)
}
