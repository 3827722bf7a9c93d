package entities

import (
	"context"
	"testing"
)

func TestActorFromContext(t *testing.T) {
	if ActorFromContext(context.Background()).Label() != SystemActor {
		t.Fatalf("expected system placeholder")
	}
	ctx := WithActor(context.Background(), Actor{ID: "u-1", Name: "Maria"})
	if a := ActorFromContext(ctx); a.ID != "u-1" || a.Label() != "Maria" {
		t.Fatalf("unexpected actor: %+v", a)
	}
	if a := ActorFromContext(WithActor(context.Background(), Actor{ID: "u-2"})); a.Label() != "u-2" {
		t.Fatalf("expected id as label, got %q", a.Label())
	}
}
