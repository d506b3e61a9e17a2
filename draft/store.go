package draft

import (
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"github.com/CreativVentures-hub/focus-group-ai/catalog"
	"github.com/CreativVentures-hub/focus-group-ai/log"
)

var ErrNotFound = errors.New("draft not found")

// Store keeps live drafts in memory, keyed by UUID. Abandoned drafts are
// swept out after the TTL; nothing is persisted.
type Store struct {
	mu     sync.RWMutex
	drafts map[string]*Draft

	cat  *catalog.Catalog
	ttl  time.Duration
	stop chan struct{}
}

func NewStore(cat *catalog.Catalog, ttl time.Duration) *Store {
	store := &Store{
		drafts: map[string]*Draft{},
		cat:    cat,
		ttl:    ttl,
		stop:   make(chan struct{}),
	}
	go store.sweep()
	return store
}

func (store *Store) Create() (*Draft, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, errors.Wrap(err, "draft.id")
	}

	d := newDraft(id.String(), store.cat, time.Now())

	store.mu.Lock()
	store.drafts[d.ID] = d
	store.mu.Unlock()
	return d, nil
}

func (store *Store) Get(id string) (*Draft, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	d, ok := store.drafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (store *Store) Delete(id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.drafts[id]; !ok {
		return ErrNotFound
	}
	delete(store.drafts, id)
	return nil
}

func (store *Store) Close() {
	close(store.stop)
}

func (store *Store) sweep() {
	ticker := time.NewTicker(store.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-store.stop:
			return
		case now := <-ticker.C:
			store.expire(now)
		}
	}
}

func (store *Store) expire(now time.Time) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for id, d := range store.drafts {
		d.mu.Lock()
		stale := now.Sub(d.updatedAt) > store.ttl
		d.mu.Unlock()

		// a draft with a request in flight is not stale
		if stale && !d.Submitting() {
			delete(store.drafts, id)
			log.Debugf("draft.expire: %s", id)
		}
	}
}
