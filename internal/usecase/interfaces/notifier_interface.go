package interfaces

import (
	"context"
	"credito_tributario/internal/domain/entities"
)

// INotifier is the fire-and-forget notification channel used by every
// mutation. Implementations must not block nor panic.
type INotifier interface {
	Notify(ctx context.Context, n entities.Notification)
}
