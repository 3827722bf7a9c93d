package usecase

import (
	"context"
	"errors"
	"testing"

	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/session"
	mock_interfaces "credito_tributario/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestSessionUseCase_SelectClient(t *testing.T) {
	ctx := context.Background()

	t.Run("loads unknown client from the backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewSessionUseCase(session.NewRegistry(nil, nil, nil), repo)

		repo.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Client{
			ID: "c-1", Name: "ACME", DocumentNumber: "12.345.678/0001-90",
			Roles: entities.Capabilities{CanViewOperations: true, CanEditOperations: true},
		}, nil)

		view, err := uc.SelectClient(ctx, "u-1", "c-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.ActiveClient == nil || view.ActiveClient.Name != "ACME" {
			t.Fatalf("expected ACME active, got %+v", view.ActiveClient)
		}
		if !view.Permissions.HasEditAccess || view.Permissions.HasApprovalAccess {
			t.Fatalf("unexpected permissions: %+v", view.Permissions)
		}

		// second selection is served by the session
		if _, err := uc.SelectClient(ctx, "u-1", "c-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown everywhere", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewSessionUseCase(session.NewRegistry(nil, nil, nil), repo)

		repo.EXPECT().GetByID(gomock.Any(), "c-9").Return(entities.Client{}, nil)
		if _, err := uc.SelectClient(ctx, "u-1", "c-9"); !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
		view, _ := uc.GetState(ctx, "u-1")
		if view.ActiveClient != nil {
			t.Fatalf("expected no active client")
		}
	})

	t.Run("empty id", func(t *testing.T) {
		uc := NewSessionUseCase(session.NewRegistry(nil, nil, nil), nil)
		if _, err := uc.SelectClient(ctx, "u-1", " "); !errors.Is(err, ErrInvalidClientID) {
			t.Fatalf("expected ErrInvalidClientID, got %v", err)
		}
	})
}

func TestSessionUseCase_ClearAndPending(t *testing.T) {
	ctx := context.Background()
	registry := session.NewRegistry(nil, nil, nil)
	uc := NewSessionUseCase(registry, nil)

	st, _ := registry.Session(ctx, "u-1")
	_ = st.AddClient(entities.Client{ID: "c-1", Name: "ACME"})
	_ = st.SetActiveClient(ctx, entities.Client{ID: "c-1", Name: "ACME"})

	view, err := uc.ClearActiveClient(ctx, "u-1")
	if err != nil || view.ActiveClient != nil || len(view.RecentClients) != 1 {
		t.Fatalf("unexpected view: %+v %v", view, err)
	}
	if view.Permissions != (entities.Permissions{}) {
		t.Fatalf("expected no permissions without an active client")
	}

	view, err = uc.SetPendingProposals(ctx, "u-1", 5)
	if err != nil || view.PendingProposals != 5 {
		t.Fatalf("unexpected view: %+v %v", view, err)
	}

	other, _ := uc.GetState(ctx, "u-2")
	if other.PendingProposals != 0 || len(other.RecentClients) != 0 {
		t.Fatalf("expected isolated session, got %+v", other)
	}
}
