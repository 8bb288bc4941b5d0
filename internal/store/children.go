package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
)

// Children persists an ordered collection owned by a parent row. Replace
// always swaps the whole collection; callers never diff items.
type Children[C any] interface {
	Load(ctx context.Context, idb bun.IDB, locale domain.Locale, parentIDs []string) (Loaded[C], error)
	Replace(ctx context.Context, idb bun.IDB, locale domain.Locale, parentID string, items []C) error
	Purge(ctx context.Context, idb bun.IDB, locale domain.Locale, parentID string) error
	// ParentColumns lists column definitions the parent table must carry.
	ParentColumns() []string
	CreateSchema(ctx context.Context, idb bun.IDB, locale domain.Locale) error
}

// Loaded groups child items by parent id. Broken holds the parents whose
// stored collection could not be decoded.
type Loaded[C any] struct {
	Items  map[string][]C
	Broken map[string]error
}

func newLoaded[C any](size int) Loaded[C] {
	return Loaded[C]{Items: make(map[string][]C, size), Broken: map[string]error{}}
}

// For returns the collection of parentID, never nil, or the decode error
// recorded for it.
func (l Loaded[C]) For(parentID string) ([]C, error) {
	if err, ok := l.Broken[parentID]; ok {
		return nil, err
	}
	return OrEmpty(l.Items[parentID]), nil
}

// OrEmpty turns a nil slice into an empty one so JSON renders [] not null.
func OrEmpty[C any](items []C) []C {
	if items == nil {
		return []C{}
	}
	return items
}

// JSONColumn stores the collection as a JSON array in a TEXT column of the
// parent row. Used by the local SQLite layout.
type JSONColumn[C any] struct {
	layout   Layout
	parent   string
	column   string
	resource string
}

// NewJSONColumn binds the collection to column of the parent entity tables.
func NewJSONColumn[C any](layout Layout, parentEntity, column, resource string) *JSONColumn[C] {
	return &JSONColumn[C]{layout: layout, parent: parentEntity, column: column, resource: resource}
}

type jsonPayload struct {
	ID      string         `bun:"id"`
	Payload sql.NullString `bun:"payload"`
}

func (j *JSONColumn[C]) Load(ctx context.Context, idb bun.IDB, locale domain.Locale, parentIDs []string) (Loaded[C], error) {
	out := newLoaded[C](len(parentIDs))
	if len(parentIDs) == 0 {
		return out, nil
	}
	var rows []jsonPayload
	err := idb.NewSelect().
		Table(j.layout.TableName(j.parent, locale)).
		Column("id").
		ColumnExpr("? AS payload", bun.Ident(j.column)).
		Where("id IN (?)", bun.In(parentIDs)).
		Scan(ctx, &rows)
	if err != nil {
		return Loaded[C]{}, Classify(j.resource, "load_children", locale, err)
	}
	for _, row := range rows {
		if !row.Payload.Valid || row.Payload.String == "" {
			continue
		}
		var items []C
		if err := json.Unmarshal([]byte(row.Payload.String), &items); err != nil {
			out.Broken[row.ID] = &domain.MappingError{Resource: j.resource, ID: row.ID, Field: j.column}
			continue
		}
		out.Items[row.ID] = items
	}
	return out, nil
}

func (j *JSONColumn[C]) Replace(ctx context.Context, idb bun.IDB, locale domain.Locale, parentID string, items []C) error {
	if items == nil {
		items = []C{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return domain.NewValidationError(j.resource, fmt.Errorf("encode %s: %w", j.column, err))
	}
	_, err = idb.NewUpdate().
		Table(j.layout.TableName(j.parent, locale)).
		Set("? = ?", bun.Ident(j.column), string(encoded)).
		Where("id = ?", parentID).
		Exec(ctx)
	return Classify(j.resource, "replace_children", locale, err)
}

// Purge is a no-op: the column is removed with its parent row.
func (j *JSONColumn[C]) Purge(context.Context, bun.IDB, domain.Locale, string) error {
	return nil
}

func (j *JSONColumn[C]) ParentColumns() []string {
	return []string{j.column + " TEXT"}
}

func (j *JSONColumn[C]) CreateSchema(context.Context, bun.IDB, domain.Locale) error {
	return nil
}

// ChildTable stores the collection as rows of a separate per-locale table
// keyed by the parent id. Used by the remote Postgres layout. R is the child
// row model and must declare the RowAlias alias.
type ChildTable[C any, R any] struct {
	layout       Layout
	entity       string
	parentColumn string
	resource     string
	toRow        func(parentID string, position int, item C) R
	fromRow      func(row R) (string, C)
}

// NewChildTable binds the collection to the entity_{locale} child tables.
func NewChildTable[C any, R any](
	layout Layout,
	entity, parentColumn, resource string,
	toRow func(parentID string, position int, item C) R,
	fromRow func(row R) (string, C),
) *ChildTable[C, R] {
	return &ChildTable[C, R]{
		layout:       layout,
		entity:       entity,
		parentColumn: parentColumn,
		resource:     resource,
		toRow:        toRow,
		fromRow:      fromRow,
	}
}

func (c *ChildTable[C, R]) name(locale domain.Locale) string {
	return c.layout.TableName(c.entity, locale)
}

func (c *ChildTable[C, R]) Load(ctx context.Context, idb bun.IDB, locale domain.Locale, parentIDs []string) (Loaded[C], error) {
	out := newLoaded[C](len(parentIDs))
	if len(parentIDs) == 0 {
		return out, nil
	}
	var rows []R
	err := idb.NewSelect().
		Model(&rows).
		ModelTableExpr("? AS ?", bun.Ident(c.name(locale)), bun.Ident(RowAlias)).
		Where("? IN (?)", bun.Ident(c.parentColumn), bun.In(parentIDs)).
		Order(c.parentColumn+" ASC", "position ASC").
		Scan(ctx)
	if err != nil {
		return Loaded[C]{}, Classify(c.resource, "load_children", locale, err)
	}
	for _, row := range rows {
		parentID, item := c.fromRow(row)
		out.Items[parentID] = append(out.Items[parentID], item)
	}
	return out, nil
}

func (c *ChildTable[C, R]) Replace(ctx context.Context, idb bun.IDB, locale domain.Locale, parentID string, items []C) error {
	if err := c.Purge(ctx, idb, locale, parentID); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	rows := make([]R, len(items))
	for i, item := range items {
		rows[i] = c.toRow(parentID, i, item)
	}
	_, err := idb.NewInsert().
		Model(&rows).
		ModelTableExpr("?", bun.Ident(c.name(locale))).
		Exec(ctx)
	return Classify(c.resource, "insert_children", locale, err)
}

func (c *ChildTable[C, R]) Purge(ctx context.Context, idb bun.IDB, locale domain.Locale, parentID string) error {
	_, err := idb.NewDelete().
		Table(c.name(locale)).
		Where("? = ?", bun.Ident(c.parentColumn), parentID).
		Exec(ctx)
	return Classify(c.resource, "delete_children", locale, err)
}

func (c *ChildTable[C, R]) ParentColumns() []string { return nil }

func (c *ChildTable[C, R]) CreateSchema(ctx context.Context, idb bun.IDB, locale domain.Locale) error {
	_, err := idb.NewCreateTable().
		Model((*R)(nil)).
		ModelTableExpr("?", bun.Ident(c.name(locale))).
		IfNotExists().
		Exec(ctx)
	return Classify(c.resource, "create_schema", locale, err)
}
