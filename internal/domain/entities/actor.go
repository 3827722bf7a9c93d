package entities

import (
	"context"
	"strings"
)

// SystemActor is recorded when no authenticated user is available.
const SystemActor = "system"

// Actor is the user performing an operation.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (a Actor) Authenticated() bool {
	return strings.TrimSpace(a.ID) != ""
}

// Label is the identity written into audit fields such as updated_by.
func (a Actor) Label() string {
	if n := strings.TrimSpace(a.Name); n != "" {
		return n
	}
	if id := strings.TrimSpace(a.ID); id != "" {
		return id
	}
	return SystemActor
}

type actorKey struct{}

// WithActor attaches the acting user to ctx.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFromContext returns the acting user, or the zero Actor (labelled
// "system") when none was attached.
func ActorFromContext(ctx context.Context) Actor {
	a, _ := ctx.Value(actorKey{}).(Actor)
	return a
}
