package casestudies

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
)

// BunRepository implements Repository on a bun database. The same type
// serves both backing stores; only the table layout and the child
// collection discipline differ.
type BunRepository struct {
	db       *bun.DB
	table    *store.Table[record]
	images   store.Children[CaseStudyImage]
	tags     store.Children[Tag]
	settings store.Settings
}

var _ Repository = (*BunRepository)(nil)

// NewRemoteRepository targets the hosted Postgres tables
// (zirospace_case_studies_{locale}) with images and tags in child tables.
func NewRemoteRepository(db *bun.DB, opts ...store.Option) *BunRepository {
	layout := store.RemoteLayout
	return newRepository(db, layout,
		store.NewChildTable(layout, "case_study_images", "case_study_id", resourceName, imageToRow, imageFromRow),
		store.NewChildTable(layout, "case_study_tags", "case_study_id", resourceName, tagToRow, tagFromRow),
		opts...,
	)
}

// NewLocalRepository targets the SQLite tables (case_studies_{locale}) with
// images and tags stored as JSON columns on the row.
func NewLocalRepository(db *bun.DB, opts ...store.Option) *BunRepository {
	layout := store.LocalLayout
	return newRepository(db, layout,
		store.NewJSONColumn[CaseStudyImage](layout, entityName, "images", resourceName),
		store.NewJSONColumn[Tag](layout, entityName, "tags", resourceName),
		opts...,
	)
}

func newRepository(db *bun.DB, layout store.Layout, images store.Children[CaseStudyImage], tags store.Children[Tag], opts ...store.Option) *BunRepository {
	return &BunRepository{
		db:       db,
		table:    store.NewTable[record](db, layout, entityName, resourceName, store.ByOrderIndex),
		images:   images,
		tags:     tags,
		settings: store.ResolveSettings(opts...),
	}
}

func (r *BunRepository) List(ctx context.Context, locale domain.Locale) ([]CaseStudy, error) {
	rows, err := r.table.List(ctx, r.db, locale)
	if err != nil {
		return nil, r.fail("list", locale, "", err)
	}
	return r.hydrate(ctx, r.db, locale, rows)
}

func (r *BunRepository) GetByID(ctx context.Context, id string, locale domain.Locale) (*CaseStudy, error) {
	return r.findOne(ctx, r.db, locale, "id", id)
}

func (r *BunRepository) GetBySlug(ctx context.Context, slug string, locale domain.Locale) (*CaseStudy, error) {
	return r.findOne(ctx, r.db, locale, "slug", slug)
}

func (r *BunRepository) Create(ctx context.Context, input CreateCaseStudyInput, locale domain.Locale) (*CaseStudy, error) {
	var created CaseStudy
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		orderIndex, err := r.resolveOrderIndex(ctx, tx, locale, input.OrderIndex)
		if err != nil {
			return err
		}
		created = newCaseStudy(input, r.settings.NewID(), orderIndex, r.settings.Now())
		rec := toRecord(created)
		if err := r.table.Insert(ctx, tx, locale, &rec); err != nil {
			return err
		}
		if err := r.images.Replace(ctx, tx, locale, created.ID, created.Images); err != nil {
			return err
		}
		return r.tags.Replace(ctx, tx, locale, created.ID, created.Tags)
	})
	if err != nil {
		return nil, r.fail("create", locale, created.ID, err)
	}
	return &created, nil
}

func (r *BunRepository) Update(ctx context.Context, id string, patch CaseStudyPatch, locale domain.Locale) (*CaseStudy, error) {
	var updated *CaseStudy
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
		if patch.Tags != nil {
			if err := r.tags.Replace(ctx, tx, locale, id, *patch.Tags); err != nil {
				return err
			}
		}
		found, err := r.findOne(ctx, tx, locale, "id", id)
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
		if err := r.tags.Purge(ctx, tx, locale, id); err != nil {
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
	extra := map[string]any{"updated_at": r.settings.Now()}
	if err := r.table.Reorder(ctx, locale, orders, extra); err != nil {
		return r.fail("update_order", locale, "", err)
	}
	return nil
}

// EnsureSchema creates the locale's tables when they do not exist yet.
func (r *BunRepository) EnsureSchema(ctx context.Context, locale domain.Locale) error {
	extra := append(r.images.ParentColumns(), r.tags.ParentColumns()...)
	if err := r.table.CreateSchema(ctx, r.db, locale, extra...); err != nil {
		return err
	}
	if err := r.images.CreateSchema(ctx, r.db, locale); err != nil {
		return err
	}
	return r.tags.CreateSchema(ctx, r.db, locale)
}

func (r *BunRepository) findOne(ctx context.Context, idb bun.IDB, locale domain.Locale, column, value string) (*CaseStudy, error) {
	rec, err := r.table.FindBy(ctx, idb, locale, column, value)
	if err != nil {
		return nil, r.fail("get", locale, value, err)
	}
	if rec == nil {
		return nil, nil
	}
	images, err := r.images.Load(ctx, idb, locale, []string{rec.ID})
	if err != nil {
		return nil, r.fail("get", locale, rec.ID, err)
	}
	tags, err := r.tags.Load(ctx, idb, locale, []string{rec.ID})
	if err != nil {
		return nil, r.fail("get", locale, rec.ID, err)
	}
	cs, err := assemble(*rec, images, tags)
	if err != nil {
		return nil, r.fail("get", locale, rec.ID, err)
	}
	return &cs, nil
}

func (r *BunRepository) hydrate(ctx context.Context, idb bun.IDB, locale domain.Locale, rows []record) ([]CaseStudy, error) {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	images, err := r.images.Load(ctx, idb, locale, ids)
	if err != nil {
		return nil, r.fail("list", locale, "", err)
	}
	tags, err := r.tags.Load(ctx, idb, locale, ids)
	if err != nil {
		return nil, r.fail("list", locale, "", err)
	}
	return store.MapRecords(r.settings.Logger, rows, func(rec record) (CaseStudy, error) {
		return assemble(rec, images, tags)
	}), nil
}

func assemble(rec record, images store.Loaded[CaseStudyImage], tags store.Loaded[Tag]) (CaseStudy, error) {
	imageItems, err := images.For(rec.ID)
	if err != nil {
		return CaseStudy{}, err
	}
	tagItems, err := tags.For(rec.ID)
	if err != nil {
		return CaseStudy{}, err
	}
	return toDomain(rec, imageItems, tagItems)
}

func (r *BunRepository) resolveOrderIndex(ctx context.Context, idb bun.IDB, locale domain.Locale, requested *int) (int, error) {
	if requested != nil {
		return *requested, nil
	}
	return r.table.NextOrderIndex(ctx, idb, locale)
}

func (r *BunRepository) fail(op string, locale domain.Locale, id string, err error) error {
	if domain.IsNotFound(err) {
		return err
	}
	r.settings.Logger.Error("case study store operation failed",
		"op", op, "entity", entityName, "locale", locale.String(), "id", id, "error", err)
	return err
}
