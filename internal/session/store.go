package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/usecase/interfaces"
)

// MaxRecentClients bounds the recency list.
const MaxRecentClients = 5

var (
	ErrInvalidClientID = errors.New("invalid client id")
	ErrClientNotFound  = errors.New("client not found")
)

// State is the serializable content of a Store.
type State struct {
	ActiveClient     *entities.Client  `json:"active_client"`
	RecentClients    []entities.Client `json:"recent_clients"`
	Clients          []entities.Client `json:"clients"`
	PendingProposals int               `json:"pending_proposals"`
}

func (s State) clone() State {
	out := State{PendingProposals: s.PendingProposals}
	if s.ActiveClient != nil {
		c := *s.ActiveClient
		out.ActiveClient = &c
	}
	out.RecentClients = append([]entities.Client(nil), s.RecentClients...)
	out.Clients = append([]entities.Client(nil), s.Clients...)
	return out
}

// PersistFunc receives the new state after every change. It is called while
// the store is locked, so it must not call back into the Store.
type PersistFunc func(State)

// Store holds the known clients of one operator session, the active client
// pointer and the recency list.
//
// Invariants:
//   - client ids are unique in Clients
//   - RecentClients has at most MaxRecentClients entries, no duplicate ids,
//     most recently activated first
type Store struct {
	mu       sync.RWMutex
	state    State
	notifier interfaces.INotifier
	onChange PersistFunc
}

// NewStore builds an empty store. notifier and onChange may be nil.
func NewStore(notifier interfaces.INotifier, onChange PersistFunc) *Store {
	return &Store{notifier: notifier, onChange: onChange}
}

// Init replaces the state with a serialized snapshot. An empty snapshot
// resets the store. Snapshots written by older builds are repaired so the
// invariants hold.
func (s *Store) Init(snapshot []byte) error {
	var st State
	if len(snapshot) > 0 {
		if err := json.Unmarshal(snapshot, &st); err != nil {
			return fmt.Errorf("decode session snapshot: %w", err)
		}
	}

	st.Clients = dedupeClients(st.Clients)
	st.RecentClients = dedupeClients(st.RecentClients)
	if len(st.RecentClients) > MaxRecentClients {
		st.RecentClients = st.RecentClients[:MaxRecentClients]
	}
	if st.PendingProposals < 0 {
		st.PendingProposals = 0
	}

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return nil
}

// Serialize encodes the current state.
func (s *Store) Serialize() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) ActiveClient() (entities.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.ActiveClient == nil {
		return entities.Client{}, false
	}
	return *s.state.ActiveClient, true
}

func (s *Store) RecentClients() []entities.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Client(nil), s.state.RecentClients...)
}

func (s *Store) Clients() []entities.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Client(nil), s.state.Clients...)
}

func (s *Store) PendingProposals() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.PendingProposals
}

// FindClient looks id up in the client collection.
func (s *Store) FindClient(id string) (entities.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.state.Clients, id); i >= 0 {
		return s.state.Clients[i], true
	}
	return entities.Client{}, false
}

// SetActiveClient makes c the active client and moves it to the front of the
// recency list.
func (s *Store) SetActiveClient(ctx context.Context, c entities.Client) error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidClientID
	}

	s.mutate(func(st *State) {
		active := c
		st.ActiveClient = &active

		recent := make([]entities.Client, 0, MaxRecentClients)
		recent = append(recent, c)
		for _, r := range st.RecentClients {
			if r.ID != c.ID {
				recent = append(recent, r)
			}
		}
		if len(recent) > MaxRecentClients {
			recent = recent[:MaxRecentClients]
		}
		st.RecentClients = recent
	})

	s.notify(ctx, entities.NotificationSuccess, "Cliente selecionado",
		fmt.Sprintf("%s (%s) agora é o cliente ativo.", c.Name, c.DocumentNumber))
	return nil
}

// ClearActiveClient drops the active pointer. Calling it with no active
// client is harmless.
func (s *Store) ClearActiveClient(ctx context.Context) {
	s.mutate(func(st *State) {
		st.ActiveClient = nil
	})
	s.notify(ctx, entities.NotificationInfo, "Seleção removida", "Nenhum cliente ativo no momento.")
}

// AddClient inserts c into the collection, replacing an entry with the same
// id. The active pointer and the recency list are left untouched.
func (s *Store) AddClient(c entities.Client) error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidClientID
	}
	s.mutate(func(st *State) {
		if i := indexOf(st.Clients, c.ID); i >= 0 {
			st.Clients[i] = c
			return
		}
		st.Clients = append(st.Clients, c)
	})
	return nil
}

// UpdateClient merges patch into the collection entry and into the active
// client and recency views holding the same id.
func (s *Store) UpdateClient(id string, patch entities.ClientPatch) error {
	s.mu.Lock()
	i := indexOf(s.state.Clients, id)
	if i < 0 {
		s.mu.Unlock()
		return ErrClientNotFound
	}

	patch.Apply(&s.state.Clients[i])
	if s.state.ActiveClient != nil && s.state.ActiveClient.ID == id {
		patch.Apply(s.state.ActiveClient)
	}
	if j := indexOf(s.state.RecentClients, id); j >= 0 {
		patch.Apply(&s.state.RecentClients[j])
	}
	s.persistLocked()
	s.mu.Unlock()
	return nil
}

// RemoveClient deletes id from the collection and the recency list and resets
// the active pointer when it referenced the removed client.
func (s *Store) RemoveClient(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	if i := indexOf(s.state.Clients, id); i >= 0 {
		s.state.Clients = append(s.state.Clients[:i], s.state.Clients[i+1:]...)
		found = true
	}
	if j := indexOf(s.state.RecentClients, id); j >= 0 {
		s.state.RecentClients = append(s.state.RecentClients[:j], s.state.RecentClients[j+1:]...)
		found = true
	}
	if s.state.ActiveClient != nil && s.state.ActiveClient.ID == id {
		s.state.ActiveClient = nil
		found = true
	}
	if !found {
		return ErrClientNotFound
	}
	s.persistLocked()
	return nil
}

// SetPendingProposals stores the denormalized pending proposal counter.
// Negative values are stored as zero.
func (s *Store) SetPendingProposals(count int) {
	if count < 0 {
		count = 0
	}
	s.mutate(func(st *State) {
		st.PendingProposals = count
	})
}

// clientIDs lists the distinct ids held by any view, active client first.
func (s *Store) clientIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if s.state.ActiveClient != nil {
		add(s.state.ActiveClient.ID)
	}
	for _, c := range s.state.RecentClients {
		add(c.ID)
	}
	for _, c := range s.state.Clients {
		add(c.ID)
	}
	return ids
}

// reconcile replaces every view with the copy found in current and drops the
// ids missing from it. It returns how many distinct ids were dropped.
func (s *Store) reconcile(current map[string]entities.Client) int {
	dropped := make(map[string]struct{})
	keep := func(in []entities.Client) []entities.Client {
		out := make([]entities.Client, 0, len(in))
		for _, c := range in {
			fresh, ok := current[c.ID]
			if !ok {
				dropped[c.ID] = struct{}{}
				continue
			}
			out = append(out, fresh)
		}
		return out
	}

	s.mutate(func(st *State) {
		st.Clients = keep(st.Clients)
		st.RecentClients = keep(st.RecentClients)
		if st.ActiveClient != nil {
			if fresh, ok := current[st.ActiveClient.ID]; ok {
				st.ActiveClient = &fresh
			} else {
				dropped[st.ActiveClient.ID] = struct{}{}
				st.ActiveClient = nil
			}
		}
	})
	return len(dropped)
}

func (s *Store) mutate(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	s.persistLocked()
}

func (s *Store) persistLocked() {
	if s.onChange != nil {
		s.onChange(s.state.clone())
	}
}

func (s *Store) notify(ctx context.Context, variant entities.NotificationVariant, title, description string) {
	if s.notifier == nil {
		log.Printf("[session][store] notification without notifier title=%q", title)
		return
	}
	s.notifier.Notify(ctx, entities.Notification{
		Title:       title,
		Description: description,
		Variant:     variant,
		Actor:       entities.ActorFromContext(ctx).Label(),
		EmittedAt:   time.Now().UTC(),
	})
}

func indexOf(clients []entities.Client, id string) int {
	for i, c := range clients {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func dedupeClients(in []entities.Client) []entities.Client {
	seen := make(map[string]struct{}, len(in))
	out := make([]entities.Client, 0, len(in))
	for _, c := range in {
		if c.ID == "" {
			continue
		}
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
