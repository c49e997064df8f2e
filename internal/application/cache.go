package application

import (
	"errors"
	"sync"
	"time"

	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
	"github.com/google/uuid"
)

var ErrNotCached = errors.New("entity not in cache")

const DefaultStaleAfter = 3 * DefaultPollInterval

type StaleMutation[K comparable] struct {
	Key        K
	MutationID string
	Age        time.Duration
}

type ReconcileReport struct {
	Updated   int
	Removed   int
	Confirmed int
	Expired   int
}

type CacheOptions[K comparable] struct {
	Clock      ports.Clock
	StaleAfter time.Duration
	OnStale    func(StaleMutation[K])
}

// Cache mirrors server-held entities keyed by identity. Each entry keeps the
// last server-confirmed value plus the local mutations the server has not
// reflected yet; readers see the confirmed value with pending mutations applied.
type Cache[K comparable, V comparable] struct {
	mu         sync.RWMutex
	key        func(V) K
	clock      ports.Clock
	staleAfter time.Duration
	onStale    func(StaleMutation[K])
	entries    map[K]*cacheEntry[V]
	order      []K
}

type cacheEntry[V comparable] struct {
	confirmed V
	pending   []pendingMutation[V]
}

type pendingMutation[V comparable] struct {
	id        string
	mutation  domain.Mutation[V]
	createdAt time.Time
}

func NewCache[K comparable, V comparable](key func(V) K, opts CacheOptions[K]) *Cache[K, V] {
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = DefaultStaleAfter
	}

	return &Cache[K, V]{
		key:        key,
		clock:      opts.Clock,
		staleAfter: opts.StaleAfter,
		onStale:    opts.OnStale,
		entries:    map[K]*cacheEntry[V]{},
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return entry.view(), true
}

func (c *Cache[K, V]) List() []V {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]V, 0, len(c.order))
	for _, key := range c.order {
		if entry, ok := c.entries[key]; ok {
			out = append(out, entry.view())
		}
	}
	return out
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func (c *Cache[K, V]) Pending(key K) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if entry, ok := c.entries[key]; ok {
		return len(entry.pending)
	}
	return 0
}

// Upsert records a server-confirmed value for one entity, typically the
// body of a mutation response. Pending mutations stay until a polled
// snapshot reflects them, since a poll fetched before the mutation landed
// may still be merged after this call.
func (c *Cache[K, V]) Upsert(value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.key(value)
	entry, ok := c.entries[key]
	if !ok {
		entry = &cacheEntry[V]{}
		c.entries[key] = entry
		c.order = append(c.order, key)
	}
	entry.confirmed = value
}

// ApplyLocal layers an optimistic mutation over a cached entity and returns
// the mutation id used to discard it if the server rejects the edit.
func (c *Cache[K, V]) ApplyLocal(key K, mutation domain.Mutation[V]) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", ErrNotCached
	}

	id := uuid.NewString()
	entry.pending = append(entry.pending, pendingMutation[V]{
		id:        id,
		mutation:  mutation,
		createdAt: c.clock.Now(),
	})
	return id, nil
}

func (c *Cache[K, V]) Discard(key K, mutationID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return false
	}
	for i, pending := range entry.pending {
		if pending.id == mutationID {
			entry.pending = append(entry.pending[:i], entry.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Reconcile merges a full server snapshot. Fields covered by a pending
// mutation keep their local value until the snapshot reflects the mutation
// or the mutation outlives the stale bound. Entities missing from the
// snapshot are dropped unless they still carry pending mutations.
// Applying the same snapshot twice leaves the cache unchanged.
func (c *Cache[K, V]) Reconcile(snapshot []V) ReconcileReport {
	c.mu.Lock()

	now := c.clock.Now()
	var report ReconcileReport
	var stale []StaleMutation[K]

	seen := make(map[K]struct{}, len(snapshot))
	order := make([]K, 0, len(snapshot))
	for _, value := range snapshot {
		key := c.key(value)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			order = append(order, key)
		}

		entry, ok := c.entries[key]
		if !ok {
			entry = &cacheEntry[V]{confirmed: value}
			c.entries[key] = entry
			report.Updated++
		} else if entry.confirmed != value {
			entry.confirmed = value
			report.Updated++
		}
		stale = append(stale, c.settle(key, entry, now, &report)...)
	}

	for _, key := range c.order {
		if _, ok := seen[key]; ok {
			continue
		}
		entry, ok := c.entries[key]
		if !ok {
			continue
		}
		if len(entry.pending) > 0 {
			order = append(order, key)
			continue
		}
		delete(c.entries, key)
		report.Removed++
	}
	c.order = order
	c.mu.Unlock()

	c.reportStale(stale)
	return report
}

// settle drops the pending mutations the confirmed value reflects. An older
// mutation loses the fields a reflected newer one also wrote, and goes away
// once none are left.
func (c *Cache[K, V]) settle(key K, entry *cacheEntry[V], now time.Time, report *ReconcileReport) []StaleMutation[K] {
	if len(entry.pending) == 0 {
		return nil
	}

	reflected := make([]bool, len(entry.pending))
	for i, pending := range entry.pending {
		reflected[i] = pending.mutation.Reflected(entry.confirmed)
	}

	var stale []StaleMutation[K]
	kept := make([]pendingMutation[V], 0, len(entry.pending))
	for i, pending := range entry.pending {
		if reflected[i] {
			report.Confirmed++
			continue
		}

		superseded := false
		for j := i + 1; j < len(entry.pending); j++ {
			if !reflected[j] {
				continue
			}
			rest, ok := pending.mutation.Without(entry.pending[j].mutation)
			if !ok {
				superseded = true
				break
			}
			pending.mutation = rest
		}

		age := now.Sub(pending.createdAt)
		switch {
		case superseded:
			report.Confirmed++
		case age >= c.staleAfter:
			report.Expired++
			stale = append(stale, StaleMutation[K]{Key: key, MutationID: pending.id, Age: age})
		default:
			kept = append(kept, pending)
		}
	}
	entry.pending = kept
	return stale
}

func (c *Cache[K, V]) reportStale(stale []StaleMutation[K]) {
	if c.onStale == nil {
		return
	}
	for _, s := range stale {
		c.onStale(s)
	}
}

func (e *cacheEntry[V]) view() V {
	value := e.confirmed
	for _, pending := range e.pending {
		value = pending.mutation.Apply(value)
	}
	return value
}
