package notification

import (
	"context"
	"log"

	"credito_tributario/internal/domain/entities"
)

// LogSink writes notifications to the standard logger.
type LogSink struct{}

func (LogSink) Send(_ context.Context, n entities.Notification) error {
	log.Printf("[notification][%s] title=%q description=%q actor=%q", n.Variant, n.Title, n.Description, n.Actor)
	return nil
}
