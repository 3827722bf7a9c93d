package interfaces

import (
	"context"
	"credito_tributario/internal/domain/entities"
)

// IClientSessionSync keeps the client views held by user sessions in line
// with backend writes.
type IClientSessionSync interface {
	UpdateClient(ctx context.Context, id string, patch entities.ClientPatch)
	RemoveClient(ctx context.Context, id string)
}
