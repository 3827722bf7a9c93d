package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"credito_tributario/internal/domain/entities"
	mock_interfaces "credito_tributario/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []entities.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, msg entities.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

func (n *recordingNotifier) last() entities.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return entities.Notification{}
	}
	return n.sent[len(n.sent)-1]
}

func client(id string) entities.Client {
	return entities.Client{ID: id, Name: "Client " + id, DocumentNumber: "doc-" + id}
}

func recentIDs(s *Store) []string {
	var ids []string
	for _, c := range s.RecentClients() {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestStore_SetActiveClient_NotifiesWithDocumentNumber(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	notifier := mock_interfaces.NewMockINotifier(ctrl)
	s := NewStore(notifier, nil)

	acme := entities.Client{ID: "c-acme", Name: "ACME", DocumentNumber: "12.345.678/0001-90"}
	if err := s.AddClient(acme); err != nil {
		t.Fatalf("add client: %v", err)
	}

	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Do(func(_ context.Context, n entities.Notification) {
		if n.Variant != entities.NotificationSuccess {
			t.Fatalf("expected success variant, got %s", n.Variant)
		}
		if !strings.Contains(n.Description, "12.345.678/0001-90") || !strings.Contains(n.Description, "ACME") {
			t.Fatalf("expected name and document number in notification, got %q", n.Description)
		}
	})

	if err := s.SetActiveClient(context.Background(), acme); err != nil {
		t.Fatalf("set active client: %v", err)
	}
	active, ok := s.ActiveClient()
	if !ok || active.Name != "ACME" {
		t.Fatalf("expected ACME to be active, got %+v", active)
	}
}

func TestStore_SetActiveClient_InvalidID(t *testing.T) {
	n := &recordingNotifier{}
	s := NewStore(n, nil)
	if err := s.SetActiveClient(context.Background(), entities.Client{Name: "no id"}); !errors.Is(err, ErrInvalidClientID) {
		t.Fatalf("expected ErrInvalidClientID, got %v", err)
	}
	if _, ok := s.ActiveClient(); ok || len(n.sent) != 0 {
		t.Fatalf("expected no change and no notification")
	}
}

func TestStore_RecentClients(t *testing.T) {
	ctx := context.Background()

	t.Run("A..E then A moves A to the front", func(t *testing.T) {
		s := NewStore(&recordingNotifier{}, nil)
		for _, id := range []string{"A", "B", "C", "D", "E"} {
			_ = s.SetActiveClient(ctx, client(id))
		}
		_ = s.SetActiveClient(ctx, client("A"))

		got := strings.Join(recentIDs(s), ",")
		if got != "A,E,D,C,B" {
			t.Fatalf("expected A,E,D,C,B, got %s", got)
		}
	})

	t.Run("bounded and without duplicates", func(t *testing.T) {
		s := NewStore(&recordingNotifier{}, nil)
		seq := []string{"1", "2", "1", "3", "4", "5", "6", "7", "2", "2", "8", "3"}
		for i, id := range seq {
			_ = s.SetActiveClient(ctx, client(id))

			ids := recentIDs(s)
			if len(ids) > MaxRecentClients {
				t.Fatalf("step %d: recency list too long: %v", i, ids)
			}
			if ids[0] != id {
				t.Fatalf("step %d: expected %s first, got %v", i, id, ids)
			}
			seen := map[string]bool{}
			for _, r := range ids {
				if seen[r] {
					t.Fatalf("step %d: duplicate id %s in %v", i, r, ids)
				}
				seen[r] = true
			}
		}
	})
}

func TestStore_ClearActiveClient(t *testing.T) {
	ctx := context.Background()
	n := &recordingNotifier{}
	s := NewStore(n, nil)
	c := client("A")

	_ = s.SetActiveClient(ctx, c)
	s.ClearActiveClient(ctx)
	if _, ok := s.ActiveClient(); ok {
		t.Fatalf("expected no active client")
	}
	if n.last().Variant != entities.NotificationInfo {
		t.Fatalf("expected info notification, got %+v", n.last())
	}

	before := s.Snapshot()
	s.ClearActiveClient(ctx)
	after := s.Snapshot()
	if after.ActiveClient != nil || len(after.RecentClients) != len(before.RecentClients) {
		t.Fatalf("expected second clear to be a no-op: %+v", after)
	}

	_ = s.SetActiveClient(ctx, c)
	active, ok := s.ActiveClient()
	if !ok || active != c {
		t.Fatalf("expected %+v to be active, got %+v", c, active)
	}
}

func TestStore_AddClient(t *testing.T) {
	ctx := context.Background()
	s := NewStore(&recordingNotifier{}, nil)

	_ = s.SetActiveClient(ctx, client("A"))
	_ = s.AddClient(client("B"))
	replaced := client("B")
	replaced.Name = "Renamed"
	_ = s.AddClient(replaced)

	clients := s.Clients()
	if len(clients) != 1 || clients[0].Name != "Renamed" {
		t.Fatalf("expected single replaced entry, got %+v", clients)
	}
	if active, _ := s.ActiveClient(); active.ID != "A" {
		t.Fatalf("expected active client untouched, got %+v", active)
	}
	if ids := recentIDs(s); len(ids) != 1 || ids[0] != "A" {
		t.Fatalf("expected recents untouched, got %v", ids)
	}
	if err := s.AddClient(entities.Client{}); !errors.Is(err, ErrInvalidClientID) {
		t.Fatalf("expected ErrInvalidClientID, got %v", err)
	}
}

func TestStore_UpdateClient(t *testing.T) {
	ctx := context.Background()

	t.Run("propagates to active and recents", func(t *testing.T) {
		s := NewStore(&recordingNotifier{}, nil)
		a := client("A")
		_ = s.AddClient(a)
		_ = s.SetActiveClient(ctx, a)

		name := "ACME Ltda"
		if err := s.UpdateClient("A", entities.ClientPatch{Name: &name}); err != nil {
			t.Fatalf("update: %v", err)
		}

		active, _ := s.ActiveClient()
		stored, _ := s.FindClient("A")
		recent := s.RecentClients()[0]
		if active.Name != name || stored.Name != name || recent.Name != name {
			t.Fatalf("views diverged: active=%q stored=%q recent=%q", active.Name, stored.Name, recent.Name)
		}
	})

	t.Run("unknown id leaves state unchanged", func(t *testing.T) {
		calls := 0
		s := NewStore(&recordingNotifier{}, func(State) { calls++ })
		_ = s.AddClient(client("A"))
		before := s.Snapshot()

		name := "x"
		if err := s.UpdateClient("missing", entities.ClientPatch{Name: &name}); !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
		after := s.Snapshot()
		if len(after.Clients) != 1 || after.Clients[0] != before.Clients[0] {
			t.Fatalf("state changed: %+v", after)
		}
		if calls != 1 {
			t.Fatalf("expected no persistence for a failed update, got %d calls", calls)
		}
	})
}

func TestStore_RemoveClient(t *testing.T) {
	ctx := context.Background()
	s := NewStore(&recordingNotifier{}, nil)
	a, b := client("A"), client("B")
	_ = s.AddClient(a)
	_ = s.AddClient(b)
	_ = s.SetActiveClient(ctx, b)
	_ = s.SetActiveClient(ctx, a)

	if err := s.RemoveClient("A"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := s.ActiveClient(); ok {
		t.Fatalf("expected active client to be reset")
	}
	if _, ok := s.FindClient("A"); ok {
		t.Fatalf("expected A removed from collection")
	}
	if ids := recentIDs(s); len(ids) != 1 || ids[0] != "B" {
		t.Fatalf("expected only B in recents, got %v", ids)
	}

	if err := s.RemoveClient("B"); err != nil {
		t.Fatalf("remove B: %v", err)
	}
	if err := s.RemoveClient("B"); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestStore_SetPendingProposals(t *testing.T) {
	s := NewStore(nil, nil)
	s.SetPendingProposals(7)
	if s.PendingProposals() != 7 {
		t.Fatalf("expected 7, got %d", s.PendingProposals())
	}
	s.SetPendingProposals(-3)
	if s.PendingProposals() != 0 {
		t.Fatalf("expected negative count clamped to 0, got %d", s.PendingProposals())
	}
}

func TestStore_SerializeAndInit(t *testing.T) {
	ctx := context.Background()
	var persisted State
	s := NewStore(&recordingNotifier{}, func(st State) { persisted = st })

	a := client("A")
	a.Roles = entities.Capabilities{CanEditOperations: true}
	_ = s.AddClient(a)
	_ = s.SetActiveClient(ctx, a)
	s.SetPendingProposals(3)

	if persisted.PendingProposals != 3 || persisted.ActiveClient == nil || persisted.ActiveClient.ID != "A" {
		t.Fatalf("expected persistence hook to see the latest state, got %+v", persisted)
	}

	raw, err := s.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	restored := NewStore(nil, nil)
	if err := restored.Init(raw); err != nil {
		t.Fatalf("init: %v", err)
	}
	active, ok := restored.ActiveClient()
	if !ok || active.ID != "A" || !active.Roles.CanEditOperations {
		t.Fatalf("unexpected restored active client: %+v", active)
	}
	if restored.PendingProposals() != 3 || len(restored.Clients()) != 1 {
		t.Fatalf("unexpected restored state: %+v", restored.Snapshot())
	}

	if err := restored.Init(nil); err != nil {
		t.Fatalf("init empty: %v", err)
	}
	if _, ok := restored.ActiveClient(); ok {
		t.Fatalf("expected empty snapshot to reset the store")
	}
	if err := restored.Init([]byte("{")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestStore_InitRepairsRecents(t *testing.T) {
	raw := []byte(`{"recent_clients":[{"id":"A"},{"id":"A"},{"id":"B"},{"id":"C"},{"id":"D"},{"id":"E"},{"id":"F"}],"pending_proposals":-1}`)
	s := NewStore(nil, nil)
	if err := s.Init(raw); err != nil {
		t.Fatalf("init: %v", err)
	}
	if got := strings.Join(recentIDs(s), ","); got != "A,B,C,D,E" {
		t.Fatalf("expected A,B,C,D,E, got %s", got)
	}
	if s.PendingProposals() != 0 {
		t.Fatalf("expected clamped counter")
	}
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := NewStore(nil, nil)
	_ = s.AddClient(client("A"))
	snap := s.Snapshot()
	snap.Clients[0].Name = "mutated"
	if c, _ := s.FindClient("A"); c.Name == "mutated" {
		t.Fatalf("snapshot must not alias store state")
	}
}

func TestStore_NotificationsCarryActor(t *testing.T) {
	n := &recordingNotifier{}
	s := NewStore(n, nil)

	ctx := entities.WithActor(context.Background(), entities.Actor{ID: "u-1", Name: "Maria"})
	if err := s.SetActiveClient(ctx, client("A")); err != nil {
		t.Fatalf("set active client: %v", err)
	}
	if got := n.last().Actor; got != "Maria" {
		t.Fatalf("expected actor Maria on selection notification, got %q", got)
	}

	s.ClearActiveClient(context.Background())
	if got := n.last().Actor; got != entities.SystemActor {
		t.Fatalf("expected system actor without an authenticated user, got %q", got)
	}
}
