package admin

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/logging"
	"github.com/zirospace/zirospace-cms/pkg/interfaces"
)

// DefaultTimeout bounds every backend call made by a collection.
const DefaultTimeout = 15 * time.Second

// ErrReorderUnsupported is returned by Reorder when the backend has no
// ordering endpoint.
var ErrReorderUnsupported = errors.New("admin: backend does not support reordering")

// Backend is the server surface a collection talks to. Entity services and
// the HTTP client both satisfy it.
type Backend[T Entity, C any, U any] interface {
	List(ctx context.Context, locale domain.Locale) ([]T, error)
	Create(ctx context.Context, input C, locale domain.Locale) (*T, error)
	Update(ctx context.Context, id string, patch U, locale domain.Locale) (*T, error)
	Delete(ctx context.Context, id string, locale domain.Locale) error
}

// Orderer is implemented by backends of orderable entities.
type Orderer interface {
	UpdateOrder(ctx context.Context, orders []domain.OrderUpdate, locale domain.Locale) error
}

// Revalidator is told which entity/locale pair changed on the server so
// rendered pages can be refreshed.
type Revalidator func(entity string, locale domain.Locale)

type options struct {
	timeout    time.Duration
	logger     interfaces.Logger
	revalidate Revalidator
}

// Option configures collections and the pin coordinator.
type Option func(*options)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRevalidator sets the hook called after every successful mutation.
func WithRevalidator(fn Revalidator) Option {
	return func(o *options) {
		if fn != nil {
			o.revalidate = fn
		}
	}
}

func resolveOptions(opts []Option) options {
	o := options{
		timeout:    DefaultTimeout,
		logger:     logging.NoOp(),
		revalidate: func(string, domain.Locale) {},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Collection mirrors one entity type per locale for an admin surface. Every
// mutation follows request, call, success or failure; state only changes
// through dispatch.
type Collection[T Entity, C any, U any] struct {
	entity  string
	backend Backend[T, C, U]
	opts    options
	// ordered entities list by order index; the rest list newest first.
	ordered bool

	mu    sync.Mutex
	state state[T]
}

// NewCollection binds backend to a fresh, empty state.
func NewCollection[T Entity, C any, U any](entity string, backend Backend[T, C, U], opts ...Option) *Collection[T, C, U] {
	var zero T
	_, ordered := any(zero).(Orderable[T])
	return &Collection[T, C, U]{
		entity:  entity,
		backend: backend,
		opts:    resolveOptions(opts),
		ordered: ordered,
		state:   newState[T](),
	}
}

// Entity returns the entity name the collection was created for.
func (c *Collection[T, C, U]) Entity() string { return c.entity }

func (c *Collection[T, C, U]) dispatch(action Action[T]) {
	c.mu.Lock()
	c.state = reduce(c.state, action)
	c.mu.Unlock()
}

func (c *Collection[T, C, U]) snapshot(locale domain.Locale) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.state.items[locale])
}

func (c *Collection[T, C, U]) call(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.opts.timeout)
}

func (c *Collection[T, C, U]) fail(op string, locale domain.Locale, err error, stale bool) error {
	c.opts.logger.Warn("admin mutation failed",
		"entity", c.entity, "op", op, "locale", locale.String(), "kind", domain.KindOf(err).String(), "error", err)
	c.dispatch(Action[T]{Type: ActionFailure, Locale: locale, Err: err, Stale: stale})
	return err
}

func (c *Collection[T, C, U]) succeed(locale domain.Locale, mutation Mutation, items []T, id string) {
	c.dispatch(Action[T]{Type: ActionSuccess, Mutation: mutation, Locale: locale, Items: items, ID: id, Settled: true})
	c.opts.revalidate(c.entity, locale)
}

// Hydrate seeds locale with server-rendered items without a request.
func (c *Collection[T, C, U]) Hydrate(locale domain.Locale, items []T) {
	c.dispatch(Action[T]{Type: ActionSuccess, Mutation: MutationReplace, Locale: locale, Items: items})
}

// Refresh replaces locale with the server's current list.
func (c *Collection[T, C, U]) Refresh(ctx context.Context, locale domain.Locale) error {
	c.dispatch(Action[T]{Type: ActionRequest, Locale: locale})
	callCtx, cancel := c.call(ctx)
	defer cancel()

	items, err := c.backend.List(callCtx, locale)
	if err != nil {
		return c.fail("refresh", locale, err, false)
	}
	c.dispatch(Action[T]{Type: ActionSuccess, Mutation: MutationReplace, Locale: locale, Items: items, Settled: true})
	return nil
}

func (c *Collection[T, C, U]) Create(ctx context.Context, locale domain.Locale, input C) (*T, error) {
	c.dispatch(Action[T]{Type: ActionRequest, Locale: locale})
	callCtx, cancel := c.call(ctx)
	defer cancel()

	created, err := c.backend.Create(callCtx, input, locale)
	if err != nil {
		return nil, c.fail("create", locale, err, false)
	}
	mutation := MutationPrepend
	if c.ordered {
		mutation = MutationAppend
	}
	c.succeed(locale, mutation, []T{*created}, "")
	return created, nil
}

func (c *Collection[T, C, U]) Update(ctx context.Context, locale domain.Locale, id string, patch U) (*T, error) {
	c.dispatch(Action[T]{Type: ActionRequest, Locale: locale})
	callCtx, cancel := c.call(ctx)
	defer cancel()

	updated, err := c.backend.Update(callCtx, id, patch, locale)
	if err != nil {
		return nil, c.fail("update", locale, err, false)
	}
	c.succeed(locale, MutationUpsert, []T{*updated}, "")
	return updated, nil
}

func (c *Collection[T, C, U]) Delete(ctx context.Context, locale domain.Locale, id string) error {
	c.dispatch(Action[T]{Type: ActionRequest, Locale: locale})
	callCtx, cancel := c.call(ctx)
	defer cancel()

	if err := c.backend.Delete(callCtx, id, locale); err != nil {
		return c.fail("delete", locale, err, false)
	}
	c.succeed(locale, MutationRemove, nil, id)
	return nil
}

// Reorder applies ids as the new display order of locale. The new order is
// shown before the server confirms it and is kept when the call fails; the
// locale is then marked stale until the next Refresh.
func (c *Collection[T, C, U]) Reorder(ctx context.Context, locale domain.Locale, ids []string) error {
	orderer, ok := c.backend.(Orderer)
	if !ok {
		return ErrReorderUnsupported
	}
	c.dispatch(Action[T]{Type: ActionRequest, Locale: locale})
	c.dispatch(Action[T]{Type: ActionSuccess, Mutation: MutationReplace, Locale: locale,
		Items: arrange(c.snapshot(locale), ids)})

	callCtx, cancel := c.call(ctx)
	defer cancel()

	if err := orderer.UpdateOrder(callCtx, domain.OrderFromSlice(ids), locale); err != nil {
		return c.fail("reorder", locale, err, true)
	}
	c.dispatch(Action[T]{Type: ActionSuccess, Locale: locale, Settled: true})
	c.opts.revalidate(c.entity, locale)
	return nil
}

// Items returns a copy of locale's items.
func (c *Collection[T, C, U]) Items(locale domain.Locale) []T {
	return c.snapshot(locale)
}

// Loading reports whether any request is in flight.
func (c *Collection[T, C, U]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.inFlight > 0
}

// Stale reports whether locale may differ from the server.
func (c *Collection[T, C, U]) Stale(locale domain.Locale) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.stale[locale]
}

// Err returns the typed error of the last failed request, cleared by the
// next request.
func (c *Collection[T, C, U]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.err
}

// Message renders Err for display.
func (c *Collection[T, C, U]) Message() string {
	return domain.Describe(c.Err())
}

// arrange orders items by ids. Listed orderable items take their position in
// ids as order index, matching OrderFromSlice. Items not listed keep their
// relative order after the listed ones; unknown ids are ignored.
func arrange[T Entity](items []T, ids []string) []T {
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[item.EntityID()] = item
	}
	out := make([]T, 0, len(items))
	placed := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		item, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := placed[id]; dup {
			continue
		}
		placed[id] = struct{}{}
		if o, ok := any(item).(Orderable[T]); ok {
			item = o.WithOrder(i)
		}
		out = append(out, item)
	}
	for _, item := range items {
		if _, ok := placed[item.EntityID()]; !ok {
			out = append(out, item)
		}
	}
	return out
}
