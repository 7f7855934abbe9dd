package store

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/LovationAdmin/wealth-sync/client"
	"github.com/LovationAdmin/wealth-sync/utils"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Resource describes one list endpoint family.
type Resource[T, A any] struct {
	Name   string
	Path   string
	ID     func(T) string
	Totals func([]T) A
}

// ListState is a point-in-time copy of a store.
type ListState[T, A any] struct {
	Items  []T    `json:"items"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
	Totals A      `json:"totals"`
}

// ListStore is the fetch -> decode -> validate -> merge -> derive pipeline
// shared by every list resource. T is the entity, In its form input, P its
// patch and A its derived totals.
//
// Operations may overlap; the mutex guards state only and is never held
// across a network call. Each operation takes a sequence number: status and
// error change only while the operation is the latest issued. A fetch result
// is dropped only when a newer fetch was issued after it; create/update/remove
// results that land while it is in flight are replayed on top of it, since
// merging by id is idempotent. Reset bumps the epoch so nothing from before
// it lands.
type ListStore[T, In, P, A any] struct {
	api client.API
	res Resource[T, A]

	mu     sync.Mutex
	items  []T
	status Status
	errMsg string
	totals A
	seq    uint64
	epoch  uint64

	// fetchSeq is the latest fetch issued. While it is in flight, deltas
	// collects every committed mutation so the fetched list can replay them.
	fetchSeq uint64
	fetching bool
	deltas   []func([]T) []T

	subs notifier
}

func NewListStore[T, In, P, A any](api client.API, res Resource[T, A]) *ListStore[T, In, P, A] {
	return &ListStore[T, In, P, A]{
		api:    api,
		res:    res,
		items:  []T{},
		status: StatusIdle,
		totals: res.Totals(nil),
	}
}

func (s *ListStore[T, In, P, A]) Name() string { return s.res.Name }

func (s *ListStore[T, In, P, A]) State() ListState[T, A] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ListState[T, A]{
		Items:  append([]T(nil), s.items...),
		Status: s.status,
		Error:  s.errMsg,
		Totals: s.totals,
	}
}

func (s *ListStore[T, In, P, A]) Items() []T { return s.State().Items }

func (s *ListStore[T, In, P, A]) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err returns the user-displayable message of the last failure, if any.
func (s *ListStore[T, In, P, A]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *ListStore[T, In, P, A]) Totals() A {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

func (s *ListStore[T, In, P, A]) Find(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if s.res.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Subscribe registers fn to run after every state change.
func (s *ListStore[T, In, P, A]) Subscribe(fn func()) (cancel func()) {
	return s.subs.subscribe(fn)
}

// Reset returns the store to idle and drops any in-flight results.
func (s *ListStore[T, In, P, A]) Reset() {
	s.mu.Lock()
	s.epoch++
	s.items = []T{}
	s.status = StatusIdle
	s.errMsg = ""
	s.totals = s.res.Totals(nil)
	s.fetching = false
	s.deltas = nil
	s.mu.Unlock()
	s.subs.notify()
}

// FetchAll replaces the list with the owner's records. On failure the
// previous items are kept.
func (s *ListStore[T, In, P, A]) FetchAll(ctx context.Context, ownerID string) ([]T, error) {
	if fe := utils.Required("owner_id", ownerID); fe != nil {
		return nil, client.NewValidationError(fe)
	}

	op := s.begin("fetchAll", true)
	data, err := s.api.Do(ctx, http.MethodGet, s.res.Path, client.OwnerQuery(ownerID), nil)
	if err != nil {
		return nil, s.fail(op, err)
	}
	items, err := client.DecodeData[[]T](data)
	if err != nil {
		return nil, s.fail(op, err)
	}
	if fe := utils.ValidateEach(items); fe != nil {
		return nil, s.fail(op, client.NewInvalidDataError(fe))
	}

	s.commit(op, func([]T) []T { return append([]T(nil), items...) })
	return append([]T(nil), items...), nil
}

// Create validates in locally, submits it and appends the server's canonical
// entity. Local validation failures never reach the network.
func (s *ListStore[T, In, P, A]) Create(ctx context.Context, ownerID string, in In) (T, error) {
	var zero T
	in, fe := utils.ValidateInput(in)
	if owner := utils.Required("owner_id", ownerID); owner != nil {
		fe = mergeFieldErrors(fe, owner)
	}
	if fe != nil {
		return zero, client.NewValidationError(fe)
	}

	op := s.begin("create", false)
	data, err := s.api.Do(ctx, http.MethodPost, s.res.Path, client.OwnerQuery(ownerID), in)
	if err != nil {
		return zero, s.fail(op, err)
	}
	created, err := s.decodeOne(data)
	if err != nil {
		return zero, s.fail(op, err)
	}

	s.commit(op, func(items []T) []T { return s.upsert(items, created, true) })
	return created, nil
}

// Update applies a partial patch. An id missing locally is not an error;
// the next fetch will carry the change.
func (s *ListStore[T, In, P, A]) Update(ctx context.Context, id string, patch P) (T, error) {
	var zero T
	fe := utils.Validate(patch)
	if missing := utils.Required("id", id); missing != nil {
		fe = mergeFieldErrors(fe, missing)
	}
	if fe != nil {
		return zero, client.NewValidationError(fe)
	}

	op := s.begin("update", false)
	data, err := s.api.Do(ctx, http.MethodPut, s.itemPath(id), nil, patch)
	if err != nil {
		return zero, s.fail(op, err)
	}
	updated, err := s.decodeOne(data)
	if err != nil {
		return zero, s.fail(op, err)
	}

	s.commit(op, func(items []T) []T { return s.upsert(items, updated, false) })
	return updated, nil
}

// Remove deletes id remotely and filters it out locally. Removing an id that
// is not in the list is fine as long as the remote call succeeds.
func (s *ListStore[T, In, P, A]) Remove(ctx context.Context, id string) error {
	if fe := utils.Required("id", id); fe != nil {
		return client.NewValidationError(fe)
	}

	op := s.begin("remove", false)
	if _, err := s.api.Do(ctx, http.MethodDelete, s.itemPath(id), nil, nil); err != nil {
		return s.fail(op, err)
	}

	s.commit(op, func(items []T) []T {
		out := make([]T, 0, len(items))
		for _, item := range items {
			if s.res.ID(item) != id {
				out = append(out, item)
			}
		}
		return out
	})
	return nil
}

// ============================================================================
// PIPELINE INTERNALS
// ============================================================================

type operation struct {
	name  string
	seq   uint64
	epoch uint64
	fetch bool
}

func (s *ListStore[T, In, P, A]) begin(name string, fetch bool) operation {
	s.mu.Lock()
	s.seq++
	op := operation{name: name, seq: s.seq, epoch: s.epoch, fetch: fetch}
	if fetch {
		s.fetchSeq = op.seq
		s.fetching = true
		s.deltas = nil
	}
	s.status = StatusPending
	s.mu.Unlock()

	utils.LogStoreTransition(s.res.Name, name, string(StatusPending), op.seq)
	s.subs.notify()
	return op
}

func (s *ListStore[T, In, P, A]) fail(op operation, err error) error {
	s.mu.Lock()
	latest := op.seq == s.seq && op.epoch == s.epoch
	if latest {
		s.status = StatusFailed
		s.errMsg = client.UserMessage(err)
	}
	if op.fetch && op.seq == s.fetchSeq && op.epoch == s.epoch {
		s.fetching = false
		s.deltas = nil
	}
	s.mu.Unlock()

	utils.SafeWarn("[Store] %s.%s failed (seq %d, latest=%t): %v", s.res.Name, op.name, op.seq, latest, err)
	if latest {
		s.subs.notify()
	}
	return err
}

// commit applies mutate to the list. For a fetch, mutate yields the fetched
// list and the deltas committed since the fetch was issued are replayed on it.
func (s *ListStore[T, In, P, A]) commit(op operation, mutate func([]T) []T) {
	s.mu.Lock()
	if op.epoch != s.epoch {
		s.mu.Unlock()
		utils.SafeDebug("[Store] %s.%s dropped after reset (seq %d)", s.res.Name, op.name, op.seq)
		return
	}
	if op.fetch && op.seq != s.fetchSeq {
		s.mu.Unlock()
		utils.SafeDebug("[Store] %s.%s superseded by a newer fetch (seq %d)", s.res.Name, op.name, op.seq)
		return
	}
	latest := op.seq == s.seq
	if op.fetch {
		items := mutate(s.items)
		for _, replay := range s.deltas {
			items = replay(items)
		}
		s.items = items
		s.fetching = false
		s.deltas = nil
	} else {
		s.items = mutate(s.items)
		if s.fetching {
			s.deltas = append(s.deltas, mutate)
		}
	}
	s.totals = s.res.Totals(s.items)
	if latest {
		s.status = StatusSucceeded
		s.errMsg = ""
	}
	s.mu.Unlock()

	if latest {
		utils.LogStoreTransition(s.res.Name, op.name, string(StatusSucceeded), op.seq)
	}
	s.subs.notify()
}

func (s *ListStore[T, In, P, A]) decodeOne(data []byte) (T, error) {
	item, err := client.DecodeData[T](data)
	if err != nil {
		return item, err
	}
	if fe := utils.Validate(item); fe != nil {
		var zero T
		return zero, client.NewInvalidDataError(fe)
	}
	return item, nil
}

// upsert replaces the item with the same id in place, or appends it when
// appendMissing is set. The input slice is never modified.
func (s *ListStore[T, In, P, A]) upsert(items []T, item T, appendMissing bool) []T {
	id := s.res.ID(item)
	out := append([]T(nil), items...)
	for i := range out {
		if s.res.ID(out[i]) == id {
			out[i] = item
			return out
		}
	}
	if appendMissing {
		out = append(out, item)
	}
	return out
}

func (s *ListStore[T, In, P, A]) itemPath(id string) string {
	return s.res.Path + "/" + url.PathEscape(id)
}

func mergeFieldErrors(a, b utils.FieldErrors) utils.FieldErrors {
	if a == nil {
		return b
	}
	for field, msgs := range b {
		a[field] = append(a[field], msgs...)
	}
	return a
}

// ============================================================================
// SUBSCRIPTIONS
// ============================================================================

type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

func (n *notifier) subscribe(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = map[int]func(){}
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

func (n *notifier) notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
