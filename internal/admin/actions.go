package admin

import (
	"slices"

	"github.com/zirospace/zirospace-cms/internal/domain"
)

// Entity is anything the container can key by id.
type Entity interface {
	EntityID() string
}

// Pinnable is implemented by entities of which at most one per locale may
// be pinned.
type Pinnable[T any] interface {
	Pinned() bool
	WithPinned(pinned bool) T
}

// Orderable is implemented by entities listed by order index.
type Orderable[T any] interface {
	WithOrder(index int) T
}

// ActionType identifies a step of the mutation template.
type ActionType uint8

const (
	ActionRequest ActionType = iota
	ActionSuccess
	ActionFailure
	ActionRollback
)

func (t ActionType) String() string {
	switch t {
	case ActionRequest:
		return "request"
	case ActionSuccess:
		return "success"
	case ActionFailure:
		return "failure"
	case ActionRollback:
		return "rollback"
	default:
		return "unknown"
	}
}

// Mutation says how a successful action merges into a locale's items.
type Mutation uint8

const (
	MutationNone Mutation = iota
	MutationReplace
	MutationAppend
	MutationPrepend
	MutationUpsert
	MutationRemove
)

// Action is the only way state changes.
type Action[T Entity] struct {
	Type     ActionType
	Mutation Mutation
	Locale   domain.Locale
	Items    []T
	ID       string
	Err      error
	// Stale marks the locale as diverged from the server.
	Stale bool
	// Settled is false for optimistic updates that do not end a request.
	Settled bool
}

type state[T Entity] struct {
	items    map[domain.Locale][]T
	stale    map[domain.Locale]bool
	inFlight int
	err      error
}

func newState[T Entity]() state[T] {
	return state[T]{
		items: map[domain.Locale][]T{},
		stale: map[domain.Locale]bool{},
	}
}

func (s state[T]) clone() state[T] {
	out := state[T]{
		items:    make(map[domain.Locale][]T, len(s.items)),
		stale:    make(map[domain.Locale]bool, len(s.stale)),
		inFlight: s.inFlight,
		err:      s.err,
	}
	for locale, items := range s.items {
		out.items[locale] = slices.Clone(items)
	}
	for locale, stale := range s.stale {
		out.stale[locale] = stale
	}
	return out
}

// reduce returns the state that results from applying action to s. It never
// mutates s.
func reduce[T Entity](s state[T], action Action[T]) state[T] {
	next := s.clone()
	switch action.Type {
	case ActionRequest:
		next.inFlight++
		next.err = nil
	case ActionSuccess:
		next.items[action.Locale] = merge(next.items[action.Locale], action)
		if action.Mutation == MutationReplace {
			next.stale[action.Locale] = action.Stale
		}
		if action.Settled {
			next.settle()
		}
	case ActionFailure:
		next.err = action.Err
		if action.Stale {
			next.stale[action.Locale] = true
		}
		next.settle()
	case ActionRollback:
		next.items[action.Locale] = slices.Clone(action.Items)
	}
	return next
}

func (s *state[T]) settle() {
	if s.inFlight > 0 {
		s.inFlight--
	}
}

func merge[T Entity](items []T, action Action[T]) []T {
	switch action.Mutation {
	case MutationReplace:
		return slices.Clone(action.Items)
	case MutationAppend:
		return releasePins(append(items, action.Items...), action.Items)
	case MutationPrepend:
		return releasePins(append(slices.Clone(action.Items), items...), action.Items)
	case MutationUpsert:
		for _, item := range action.Items {
			idx := slices.IndexFunc(items, func(existing T) bool { return existing.EntityID() == item.EntityID() })
			if idx < 0 {
				items = append(items, item)
				continue
			}
			items[idx] = item
		}
		return releasePins(items, action.Items)
	case MutationRemove:
		return slices.DeleteFunc(items, func(existing T) bool { return existing.EntityID() == action.ID })
	default:
		return items
	}
}

// releasePins unpins every item except the last pinned one of merged. The
// server clears other pins when a post is saved pinned.
func releasePins[T Entity](items, merged []T) []T {
	var winner string
	for _, item := range merged {
		if p, ok := any(item).(Pinnable[T]); ok && p.Pinned() {
			winner = item.EntityID()
		}
	}
	if winner == "" {
		return items
	}
	for i, item := range items {
		if p, ok := any(item).(Pinnable[T]); ok && p.Pinned() && item.EntityID() != winner {
			items[i] = p.WithPinned(false)
		}
	}
	return items
}
