package interfaces

import (
	"context"
	"credito_tributario/internal/domain/entities"
)

// IClientRepository abstracts DynamoDB persistence for Client.
//
// Lookups return an empty Client (ID == "") when nothing matches.

type IClientRepository interface {
	Create(ctx context.Context, c entities.Client) (entities.Client, error)
	GetByID(ctx context.Context, id string) (entities.Client, error)
	// Search returns every client matching the filter, newest first.
	// Pagination fields of the filter are ignored.
	Search(ctx context.Context, filter entities.ClientFilter) ([]entities.Client, error)
	Update(ctx context.Context, c entities.Client) (entities.Client, error)
	Delete(ctx context.Context, id string) (bool, error)
}
