package sliders

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
	images   store.Children[SliderImage]
	settings store.Settings
}

var _ Repository = (*BunRepository)(nil)

// NewRemoteRepository keeps slider images in
// zirospace_case_study_slider_images_{locale}.
func NewRemoteRepository(db *bun.DB, opts ...store.Option) *BunRepository {
	layout := store.RemoteLayout
	images := store.NewChildTable(layout, "case_study_slider_images", "slider_id", resourceName, imageToRow, imageFromRow)
	return newRepository(db, layout, images, opts...)
}

// NewLocalRepository keeps slider images as a JSON column on the row.
func NewLocalRepository(db *bun.DB, opts ...store.Option) *BunRepository {
	layout := store.LocalLayout
	images := store.NewJSONColumn[SliderImage](layout, entityName, "images", resourceName)
	return newRepository(db, layout, images, opts...)
}

func newRepository(db *bun.DB, layout store.Layout, images store.Children[SliderImage], opts ...store.Option) *BunRepository {
	return &BunRepository{
		db:       db,
		table:    store.NewTable[record](db, layout, entityName, resourceName, store.ByOrderIndex),
		images:   images,
		settings: store.ResolveSettings(opts...),
	}
}

func (r *BunRepository) List(ctx context.Context, locale domain.Locale) ([]Slider, error) {
	rows, err := r.table.List(ctx, r.db, locale)
	if err != nil {
		return nil, r.fail("list", locale, "", err)
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	images, err := r.images.Load(ctx, r.db, locale, ids)
	if err != nil {
		return nil, r.fail("list", locale, "", err)
	}
	return store.MapRecords(r.settings.Logger, rows, func(rec record) (Slider, error) {
		items, err := images.For(rec.ID)
		if err != nil {
			return Slider{}, err
		}
		return toDomain(rec, items)
	}), nil
}

func (r *BunRepository) GetByID(ctx context.Context, id string, locale domain.Locale) (*Slider, error) {
	return r.get(ctx, r.db, id, locale)
}

func (r *BunRepository) Create(ctx context.Context, input CreateSliderInput, locale domain.Locale) (*Slider, error) {
	var created Slider
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
		created = newSlider(input, r.settings.NewID(), orderIndex, r.settings.Now())
		rec := toRecord(created)
		if err := r.table.Insert(ctx, tx, locale, &rec); err != nil {
			return err
		}
		return r.images.Replace(ctx, tx, locale, created.ID, created.Images)
	})
	if err != nil {
		return nil, r.fail("create", locale, created.ID, err)
	}
	return &created, nil
}

func (r *BunRepository) Update(ctx context.Context, id string, patch SliderPatch, locale domain.Locale) (*Slider, error) {
	var updated *Slider
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		columns := patchColumns(patch)
		columns["updated_at"] = r.settings.Now()
		if err := r.table.Update(ctx, tx, locale, id, columns); err != nil {
			return err
		}
		if patch.Images != nil {
			if err := r.images.Replace(ctx, tx, locale, id, *patch.Images); err != nil {
				return err
			}
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
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := r.images.Purge(ctx, tx, locale, id); err != nil {
			return err
		}
		return r.table.Delete(ctx, tx, locale, id)
	})
	if err != nil {
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

func (r *BunRepository) EnsureSchema(ctx context.Context, locale domain.Locale) error {
	if err := r.table.CreateSchema(ctx, r.db, locale, r.images.ParentColumns()...); err != nil {
		return err
	}
	return r.images.CreateSchema(ctx, r.db, locale)
}

func (r *BunRepository) get(ctx context.Context, idb bun.IDB, id string, locale domain.Locale) (*Slider, error) {
	rec, err := r.table.FindBy(ctx, idb, locale, "id", id)
	if err != nil || rec == nil {
		return nil, err
	}
	loaded, err := r.images.Load(ctx, idb, locale, []string{rec.ID})
	if err != nil {
		return nil, r.fail("get", locale, id, err)
	}
	images, err := loaded.For(rec.ID)
	if err != nil {
		return nil, r.fail("get", locale, id, err)
	}
	slider, err := toDomain(*rec, images)
	if err != nil {
		return nil, r.fail("get", locale, id, err)
	}
	return &slider, nil
}

func (r *BunRepository) fail(op string, locale domain.Locale, id string, err error) error {
	if domain.IsNotFound(err) {
		return err
	}
	r.settings.Logger.Error("slider store operation failed",
		"op", op, "entity", entityName, "locale", locale.String(), "id", id, "error", err)
	return err
}
