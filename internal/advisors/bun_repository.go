package advisors

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
)

// BunRepository implements Repository on a bun database.
type BunRepository struct {
	db       *bun.DB
	table    *store.Table[record]
	settings store.Settings
}

var _ Repository = (*BunRepository)(nil)

// NewRemoteRepository targets zirospace_advisors_{locale} on Postgres.
func NewRemoteRepository(db *bun.DB, opts ...store.Option) *BunRepository {
	return newRepository(db, store.RemoteLayout, opts...)
}

// NewLocalRepository targets advisors_{locale} on SQLite.
func NewLocalRepository(db *bun.DB, opts ...store.Option) *BunRepository {
	return newRepository(db, store.LocalLayout, opts...)
}

func newRepository(db *bun.DB, layout store.Layout, opts ...store.Option) *BunRepository {
	return &BunRepository{
		db:       db,
		table:    store.NewTable[record](db, layout, entityName, resourceName, store.ByOrderIndex),
		settings: store.ResolveSettings(opts...),
	}
}

func (r *BunRepository) List(ctx context.Context, locale domain.Locale) ([]Advisor, error) {
	rows, err := r.table.List(ctx, r.db, locale)
	if err != nil {
		return nil, r.fail("list", locale, "", err)
	}
	return store.MapRecords(r.settings.Logger, rows, toDomain), nil
}

func (r *BunRepository) GetByID(ctx context.Context, id string, locale domain.Locale) (*Advisor, error) {
	return r.get(ctx, r.db, id, locale)
}

func (r *BunRepository) Create(ctx context.Context, input CreateAdvisorInput, locale domain.Locale) (*Advisor, error) {
	var created Advisor
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		orderIndex := 0
		if input.OrderIndex != nil {
			orderIndex = *input.OrderIndex
		} else {
			next, err := r.table.NextOrderIndex(ctx, tx, locale)
			if err != nil {
				return err
			}
			orderIndex = next
		}
		created = newAdvisor(input, r.settings.NewID(), orderIndex, r.settings.Now())
		rec := toRecord(created)
		return r.table.Insert(ctx, tx, locale, &rec)
	})
	if err != nil {
		return nil, r.fail("create", locale, created.ID, err)
	}
	return &created, nil
}

func (r *BunRepository) Update(ctx context.Context, id string, patch AdvisorPatch, locale domain.Locale) (*Advisor, error) {
	var updated *Advisor
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		columns := patchColumns(patch)
		columns["updated_at"] = r.settings.Now()
		if err := r.table.Update(ctx, tx, locale, id, columns); err != nil {
			return err
		}
		found, err := r.get(ctx, tx, id, locale)
		updated = found
		return err
	})
	if err != nil {
		return nil, r.fail("update", locale, id, err)
	}
	return updated, nil
}

func (r *BunRepository) Delete(ctx context.Context, id string, locale domain.Locale) error {
	if err := r.table.Delete(ctx, r.db, locale, id); err != nil {
		return r.fail("delete", locale, id, err)
	}
	return nil
}

func (r *BunRepository) UpdateOrder(ctx context.Context, orders []domain.OrderUpdate, locale domain.Locale) error {
	if err := r.table.Reorder(ctx, locale, orders, map[string]any{"updated_at": r.settings.Now()}); err != nil {
		return r.fail("update_order", locale, "", err)
	}
	return nil
}

// EnsureSchema creates the locale's table when it does not exist yet.
func (r *BunRepository) EnsureSchema(ctx context.Context, locale domain.Locale) error {
	return r.table.CreateSchema(ctx, r.db, locale)
}

func (r *BunRepository) get(ctx context.Context, idb bun.IDB, id string, locale domain.Locale) (*Advisor, error) {
	rec, err := r.table.FindBy(ctx, idb, locale, "id", id)
	if err != nil || rec == nil {
		return nil, err
	}
	advisor, err := toDomain(*rec)
	if err != nil {
		return nil, r.fail("get", locale, id, err)
	}
	return &advisor, nil
}

func (r *BunRepository) fail(op string, locale domain.Locale, id string, err error) error {
	if domain.IsNotFound(err) {
		return err
	}
	r.settings.Logger.Error("advisor store operation failed",
		"op", op, "entity", entityName, "locale", locale.String(), "id", id, "error", err)
	return err
}
