package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/usecase/interfaces"
)

// Cache key prefixes, one per collection.
const (
	clientsCacheKey   = "clients:"
	proposalsCacheKey = "proposals:"
	contractsCacheKey = "contracts:"
)

// collection holds what every collection use case shares: the listing cache
// and the notification channel. Both are optional.
type collection struct {
	name     string
	prefix   string
	cache    interfaces.IQueryCache
	notifier interfaces.INotifier
}

func (c collection) cached(key string) (any, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

// generation must be read before querying the backend; store skips the
// write when the collection was invalidated in between.
func (c collection) generation() uint64 {
	if c.cache == nil {
		return 0
	}
	return c.cache.Generation(c.prefix)
}

func (c collection) store(key string, v any, gen uint64) {
	if c.cache == nil {
		return
	}
	if !c.cache.SetIfGeneration(key, v, c.prefix, gen) {
		log.Printf("[%s][usecase] listing changed while loading, not cached key=%s", c.name, key)
	}
}

// succeed invalidates the given cache prefixes and emits a success
// notification.
func (c collection) succeed(ctx context.Context, title, description string, prefixes ...string) {
	if c.cache != nil {
		for _, p := range prefixes {
			c.cache.Invalidate(p)
		}
	}
	c.notify(ctx, entities.NotificationSuccess, title, description)
}

// fail emits an error notification and returns err unchanged.
func (c collection) fail(ctx context.Context, title string, err error) error {
	log.Printf("[%s][usecase] %s: %v", c.name, title, err)
	c.notify(ctx, entities.NotificationError, title, err.Error())
	return err
}

func (c collection) notify(ctx context.Context, variant entities.NotificationVariant, title, description string) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(ctx, entities.Notification{
		Title:       title,
		Description: description,
		Variant:     variant,
		Actor:       entities.ActorFromContext(ctx).Label(),
		EmittedAt:   time.Now().UTC(),
	})
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func clientListKey(f entities.ClientFilter) string {
	return clientsCacheKey + strings.Join([]string{
		"q=" + strings.ToLower(f.Search),
		"status=" + string(f.Status),
		"type=" + string(f.Type),
		"segment=" + strings.ToLower(f.Segment),
		"from=" + formatTime(f.From),
		"to=" + formatTime(f.To),
		fmt.Sprintf("page=%d", f.Page),
		fmt.Sprintf("limit=%d", f.Limit),
	}, "|")
}

func proposalListKey(f entities.ProposalFilter) string {
	return proposalsCacheKey + strings.Join([]string{
		"q=" + strings.ToLower(f.Search),
		"status=" + string(f.Status),
		"client=" + f.ClientID,
		"from=" + formatTime(f.From),
		"to=" + formatTime(f.To),
		fmt.Sprintf("page=%d", f.Page),
		fmt.Sprintf("limit=%d", f.Limit),
	}, "|")
}

func contractListKey(f entities.ContractFilter) string {
	return contractsCacheKey + strings.Join([]string{
		"q=" + strings.ToLower(f.Search),
		"status=" + string(f.Status),
		"client=" + f.ClientID,
		"proposal=" + f.ProposalID,
		"from=" + formatTime(f.From),
		"to=" + formatTime(f.To),
		fmt.Sprintf("page=%d", f.Page),
		fmt.Sprintf("limit=%d", f.Limit),
	}, "|")
}
