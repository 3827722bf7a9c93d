package interfaces

import (
	"context"
	"credito_tributario/internal/domain/entities"
)

type IContractRepository interface {
	Create(ctx context.Context, c entities.Contract) (entities.Contract, error)
	GetByID(ctx context.Context, id string) (entities.Contract, error)
	Search(ctx context.Context, filter entities.ContractFilter) ([]entities.Contract, error)
	Update(ctx context.Context, c entities.Contract) (entities.Contract, error)
	Delete(ctx context.Context, id string) (bool, error)
}
