package store

import (
	"context"
	"database/sql"
	"sort"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
)

// RowAlias is the alias every record model declares (`bun:"table:...,alias:r"`)
// so model columns resolve against the per-locale table expression.
const RowAlias = "r"

// Ordering selects how List sorts a partition.
type Ordering int

const (
	// ByCreatedDesc lists newest first.
	ByCreatedDesc Ordering = iota
	// ByOrderIndex lists by order_index ascending, ties by creation time.
	ByOrderIndex
)

func (o Ordering) apply(q *bun.SelectQuery) *bun.SelectQuery {
	if o == ByOrderIndex {
		return q.Order("order_index ASC", "created_at ASC", "id ASC")
	}
	return q.Order("created_at DESC", "id ASC")
}

// Table performs locale-partitioned CRUD for record type R on top of a
// go-repository-bun repository. Every call routes the model to the
// partition table of its locale. R must be a bun model struct with an `id`
// primary key and the RowAlias alias. Partitions may carry columns R does
// not map, so db must discard unknown columns as OpenRemote and OpenLocal do.
type Table[R any] struct {
	db       *bun.DB
	repo     repository.Repository[*R]
	layout   Layout
	entity   string
	resource string
	ordering Ordering
}

// presetID marks every record as already identified. Ids are assigned by
// the domain layer before insert, so the repository never mints one.
var presetID = uuid.NameSpaceOID

// NewTable binds record type R to the tables entity_{locale} of layout.
func NewTable[R any](db *bun.DB, layout Layout, entity, resource string, ordering Ordering) *Table[R] {
	return &Table[R]{
		db: db,
		repo: repository.NewRepository(db, repository.ModelHandlers[*R]{
			NewRecord: func() *R { return new(R) },
			GetID:     func(*R) uuid.UUID { return presetID },
			SetID:     func(*R, uuid.UUID) {},
		}),
		layout:   layout,
		entity:   entity,
		resource: resource,
		ordering: ordering,
	}
}

// DB exposes the underlying database for transactions.
func (t *Table[R]) DB() *bun.DB { return t.db }

// Layout returns the naming layout in use.
func (t *Table[R]) Layout() Layout { return t.layout }

// Resource returns the singular resource name used in errors.
func (t *Table[R]) Resource() string { return t.resource }

// Name resolves the physical table for locale.
func (t *Table[R]) Name(locale domain.Locale) string {
	return t.layout.TableName(t.entity, locale)
}

func (t *Table[R]) selectFrom(locale domain.Locale) repository.SelectCriteria {
	return repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.ModelTableExpr("? AS ?", bun.Ident(t.Name(locale)), bun.Ident(RowAlias))
	})
}

// List returns every row of the partition in the table's ordering.
func (t *Table[R]) List(ctx context.Context, idb bun.IDB, locale domain.Locale) ([]R, error) {
	records, _, err := t.repo.ListTx(ctx, idb,
		t.selectFrom(locale),
		repository.SelectRawProcessor(t.ordering.apply),
		repository.SelectPaginate(0, 0),
	)
	if err != nil {
		return nil, Classify(t.resource, "list", locale, err)
	}
	rows := make([]R, 0, len(records))
	for _, rec := range records {
		rows = append(rows, *rec)
	}
	return rows, nil
}

// FindBy returns the first row whose column equals value, or nil when none does.
func (t *Table[R]) FindBy(ctx context.Context, idb bun.IDB, locale domain.Locale, column string, value any) (*R, error) {
	rec, err := t.repo.GetTx(ctx, idb,
		t.selectFrom(locale),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.? = ?", bun.Ident(column), value)
		}),
	)
	if repository.IsRecordNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, Classify(t.resource, "get", locale, err)
	}
	return rec, nil
}

// Exists reports whether id is present in the partition.
func (t *Table[R]) Exists(ctx context.Context, idb bun.IDB, locale domain.Locale, id string) (bool, error) {
	n, err := t.repo.CountTx(ctx, idb, t.selectFrom(locale), repository.SelectByID(id))
	if err != nil {
		return false, Classify(t.resource, "exists", locale, err)
	}
	return n > 0, nil
}

// Insert writes a fully materialised row.
func (t *Table[R]) Insert(ctx context.Context, idb bun.IDB, locale domain.Locale, rec *R) error {
	_, err := t.repo.CreateTx(ctx, idb, rec, func(q *bun.InsertQuery) *bun.InsertQuery {
		return q.ModelTableExpr("?", bun.Ident(t.Name(locale)))
	})
	return Classify(t.resource, "insert", locale, err)
}

// Update sets only the supplied columns of row id. A missing row is a
// NotFoundError; an empty column set still checks existence.
func (t *Table[R]) Update(ctx context.Context, idb bun.IDB, locale domain.Locale, id string, columns map[string]any) error {
	current, err := t.repo.GetByIDTx(ctx, idb, id, t.selectFrom(locale))
	if repository.IsRecordNotFound(err) {
		return t.notFound(id, locale)
	}
	if err != nil {
		return Classify(t.resource, "update", locale, err)
	}
	if len(columns) == 0 {
		return nil
	}

	_, err = t.repo.UpdateTx(ctx, idb, current, func(q *bun.UpdateQuery) *bun.UpdateQuery {
		q = q.ModelTableExpr("? AS ?", bun.Ident(t.Name(locale)), bun.Ident(RowAlias))
		for _, key := range sortedKeys(columns) {
			q = q.Set("? = ?", bun.Ident(key), columns[key])
		}
		return q
	})
	if repository.IsSQLExpectedCountViolation(err) {
		return t.notFound(id, locale)
	}
	return Classify(t.resource, "update", locale, err)
}

// UpdateWhere sets columns on every row matching the where expression and
// returns the number of rows touched.
func (t *Table[R]) UpdateWhere(ctx context.Context, idb bun.IDB, locale domain.Locale, columns map[string]any, where string, args ...any) (int64, error) {
	q := idb.NewUpdate().Table(t.Name(locale))
	for _, key := range sortedKeys(columns) {
		q = q.Set("? = ?", bun.Ident(key), columns[key])
	}
	res, err := q.Where(where, args...).Exec(ctx)
	if err != nil {
		return 0, Classify(t.resource, "update", locale, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, Classify(t.resource, "update", locale, err)
	}
	return n, nil
}

// Delete removes row id. Deleting a missing row is a NotFoundError.
func (t *Table[R]) Delete(ctx context.Context, idb bun.IDB, locale domain.Locale, id string) error {
	ok, err := t.Exists(ctx, idb, locale, id)
	if err != nil {
		return err
	}
	if !ok {
		return t.notFound(id, locale)
	}
	err = t.repo.DeleteWhereTx(ctx, idb,
		func(q *bun.DeleteQuery) *bun.DeleteQuery {
			return q.ModelTableExpr("? AS ?", bun.Ident(t.Name(locale)), bun.Ident(RowAlias))
		},
		repository.DeleteByID(id),
	)
	return Classify(t.resource, "delete", locale, err)
}

// Reorder applies every order update inside one transaction, so a partition
// is never observed half reordered. Any missing id rolls the batch back.
func (t *Table[R]) Reorder(ctx context.Context, locale domain.Locale, updates []domain.OrderUpdate, extra map[string]any) error {
	if err := domain.ValidateOrderUpdates(t.resource, updates); err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}
	return t.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, update := range updates {
			columns := map[string]any{"order_index": update.Order}
			for key, value := range extra {
				columns[key] = value
			}
			if err := t.Update(ctx, tx, locale, update.ID, columns); err != nil {
				return err
			}
		}
		return nil
	})
}

// NextOrderIndex returns one past the highest order_index of the partition,
// or zero when it is empty.
func (t *Table[R]) NextOrderIndex(ctx context.Context, idb bun.IDB, locale domain.Locale) (int, error) {
	var highest sql.NullInt64
	err := idb.NewSelect().
		Table(t.Name(locale)).
		ColumnExpr("MAX(order_index)").
		Scan(ctx, &highest)
	if err != nil {
		return 0, Classify(t.resource, "next_order", locale, err)
	}
	if !highest.Valid {
		return 0, nil
	}
	return int(highest.Int64) + 1, nil
}

// CreateSchema creates the partition table when missing. extraColumns are
// raw column definitions appended to the model's own columns.
func (t *Table[R]) CreateSchema(ctx context.Context, idb bun.IDB, locale domain.Locale, extraColumns ...string) error {
	q := idb.NewCreateTable().
		Model((*R)(nil)).
		ModelTableExpr("?", bun.Ident(t.Name(locale))).
		IfNotExists()
	for _, column := range extraColumns {
		q = q.ColumnExpr(column)
	}
	_, err := q.Exec(ctx)
	return Classify(t.resource, "create_schema", locale, err)
}

func (t *Table[R]) notFound(id string, locale domain.Locale) error {
	return &domain.NotFoundError{Resource: t.resource, Key: id, Locale: locale}
}

func sortedKeys(columns map[string]any) []string {
	keys := make([]string, 0, len(columns))
	for key := range columns {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
