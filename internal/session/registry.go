package session

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/usecase/interfaces"
)

const (
	// AnonymousUser owns the session shared by unauthenticated requests.
	AnonymousUser = "anonymous"

	storageKeyPrefix = "client-storage:"
	persistTimeout   = 5 * time.Second
)

// StorageKey is the snapshot entry holding the session of userID.
func StorageKey(userID string) string {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = AnonymousUser
	}
	return storageKeyPrefix + userID
}

// Registry keeps one Store per user. Stores are rehydrated from the snapshot
// storage on first access and written back after every change.
//
// A rehydrated store is reconciled with the client repository: clients
// deleted while the session was not loaded are dropped and the others are
// refreshed. Client events fanned out while a load is in flight are replayed
// on the loaded store before it becomes visible.
type Registry struct {
	mu       sync.Mutex
	storage  interfaces.ISnapshotStorage
	clients  interfaces.IClientRepository
	notifier interfaces.INotifier
	stores   map[string]*Store

	loading int
	events  []clientEvent
}

// clientEvent is a fan-out recorded during loads. A nil patch is a removal.
type clientEvent struct {
	id    string
	patch *entities.ClientPatch
}

func (e clientEvent) apply(st *Store) {
	if e.patch == nil {
		_ = st.RemoveClient(e.id)
		return
	}
	_ = st.UpdateClient(e.id, *e.patch)
}

var _ interfaces.IClientSessionSync = (*Registry)(nil)

// NewRegistry builds a registry. storage, clients and notifier may be nil;
// without clients rehydrated sessions are used as stored.
func NewRegistry(storage interfaces.ISnapshotStorage, clients interfaces.IClientRepository, notifier interfaces.INotifier) *Registry {
	return &Registry{
		storage:  storage,
		clients:  clients,
		notifier: notifier,
		stores:   make(map[string]*Store),
	}
}

// Session returns the store of userID, loading it when needed. Storage and
// repository calls run without holding the registry lock.
func (r *Registry) Session(ctx context.Context, userID string) (*Store, error) {
	key := StorageKey(userID)

	r.mu.Lock()
	if st, ok := r.stores[key]; ok {
		r.mu.Unlock()
		return st, nil
	}
	r.loading++
	from := len(r.events)
	r.mu.Unlock()

	st, err := r.load(ctx, key)

	r.mu.Lock()
	defer r.mu.Unlock()
	missed := append([]clientEvent(nil), r.events[from:]...)
	r.loading--
	if r.loading == 0 {
		r.events = nil
	}
	if err != nil {
		return nil, err
	}
	if existing, ok := r.stores[key]; ok {
		return existing, nil
	}
	for _, e := range missed {
		e.apply(st)
	}
	r.stores[key] = st
	return st, nil
}

// Selection is a shortcut for NewSelection over the user's store.
func (r *Registry) Selection(ctx context.Context, userID string) (*Selection, error) {
	st, err := r.Session(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewSelection(st), nil
}

// UpdateClient propagates a backend client update to every loaded session.
func (r *Registry) UpdateClient(_ context.Context, id string, patch entities.ClientPatch) {
	e := clientEvent{id: id, patch: &patch}
	for _, st := range r.fanOut(e) {
		e.apply(st)
	}
}

// RemoveClient drops a deleted client from every loaded session.
func (r *Registry) RemoveClient(_ context.Context, id string) {
	e := clientEvent{id: id}
	for _, st := range r.fanOut(e) {
		e.apply(st)
	}
}

// fanOut returns the loaded stores and records e for the loads in flight.
func (r *Registry) fanOut(e clientEvent) []*Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loading > 0 {
		r.events = append(r.events, e)
	}
	out := make([]*Store, 0, len(r.stores))
	for _, st := range r.stores {
		out = append(out, st)
	}
	return out
}

func (r *Registry) load(ctx context.Context, key string) (*Store, error) {
	st := NewStore(r.notifier, r.persist(key))
	if r.storage == nil {
		return st, nil
	}

	payload, err := r.storage.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return st, nil
	}
	if err := st.Init(payload); err != nil {
		// corrupt entry: start from an empty session
		log.Printf("[session][registry] discarding snapshot key=%s err=%v", key, err)
		return st, nil
	}
	r.reconcile(ctx, key, st)
	return st, nil
}

// reconcile checks every client held by a rehydrated store against the
// repository. On a repository error the snapshot is kept as stored.
func (r *Registry) reconcile(ctx context.Context, key string, st *Store) {
	if r.clients == nil {
		return
	}
	ids := st.clientIDs()
	if len(ids) == 0 {
		return
	}

	current := make(map[string]entities.Client, len(ids))
	for _, id := range ids {
		c, err := r.clients.GetByID(ctx, id)
		if err != nil {
			log.Printf("[session][registry] reconcile skipped key=%s client_id=%s err=%v", key, id, err)
			return
		}
		if c.ID != "" {
			current[c.ID] = c
		}
	}
	if dropped := st.reconcile(current); dropped > 0 {
		log.Printf("[session][registry] dropped deleted clients key=%s count=%d", key, dropped)
	}
}

func (r *Registry) persist(key string) PersistFunc {
	if r.storage == nil {
		return nil
	}
	return func(state State) {
		payload, err := json.Marshal(state)
		if err != nil {
			log.Printf("[session][registry] encode failed key=%s err=%v", key, err)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := r.storage.Save(ctx, key, payload); err != nil {
			log.Printf("[session][registry] save failed key=%s err=%v", key, err)
		}
	}
}
