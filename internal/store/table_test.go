package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
	"github.com/zirospace/zirospace-cms/pkg/testsupport"
)

type part struct {
	Label string `json:"label"`
}

type partRow struct {
	bun.BaseModel `bun:"table:widget_parts,alias:r"`

	ID       string `bun:"id,pk"`
	WidgetID string `bun:"widget_id,notnull"`
	Position int    `bun:"position,notnull"`
	Label    string `bun:"label"`
}

func newLocalTable(t *testing.T) (*store.Table[widgetRecord], *bun.DB) {
	t.Helper()
	db := testsupport.NewSQLiteDB(t)
	table := store.NewTable[widgetRecord](db, store.LocalLayout, "widgets", "widget", store.ByOrderIndex)
	for _, locale := range domain.SupportedLocales {
		if err := table.CreateSchema(context.Background(), db, locale, "parts TEXT"); err != nil {
			t.Fatalf("create schema %s: %v", locale, err)
		}
	}
	return table, db
}

func insertWidgets(t *testing.T, table *store.Table[widgetRecord], locale domain.Locale, names ...string) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range names {
		next, err := table.NextOrderIndex(ctx, table.DB(), locale)
		if err != nil {
			t.Fatalf("next order: %v", err)
		}
		rec := widgetRecord{ID: name, Name: name, OrderIndex: next, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := table.Insert(ctx, table.DB(), locale, &rec); err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}
}

func names(rows []widgetRecord) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Name
	}
	return out
}

func TestTablePartitionsByLocale(t *testing.T) {
	ctx := context.Background()
	table, db := newLocalTable(t)
	insertWidgets(t, table, domain.LocaleEN, "a", "b")

	en, err := table.List(ctx, db, domain.LocaleEN)
	if err != nil {
		t.Fatalf("list en: %v", err)
	}
	if got := names(en); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected en rows %v", got)
	}
	if en[1].OrderIndex != 1 {
		t.Fatalf("expected appended order index 1, got %d", en[1].OrderIndex)
	}

	pl, err := table.List(ctx, db, domain.LocalePL)
	if err != nil {
		t.Fatalf("list pl: %v", err)
	}
	if len(pl) != 0 {
		t.Fatalf("expected empty pl partition, got %#v", pl)
	}

	found, err := table.FindBy(ctx, db, domain.LocalePL, "id", "a")
	if err != nil || found != nil {
		t.Fatalf("expected no pl row for a, got %v (%v)", found, err)
	}
}

func TestTableInsertDuplicateIsConflict(t *testing.T) {
	table, db := newLocalTable(t)
	insertWidgets(t, table, domain.LocaleEN, "a")

	rec := widgetRecord{ID: "a", Name: "again", CreatedAt: time.Now()}
	err := table.Insert(context.Background(), db, domain.LocaleEN, &rec)
	if domain.KindOf(err) != domain.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestTableUpdateTouchesOnlyGivenColumns(t *testing.T) {
	ctx := context.Background()
	table, db := newLocalTable(t)
	insertWidgets(t, table, domain.LocaleEN, "a")

	if err := table.Update(ctx, db, domain.LocaleEN, "a", map[string]any{"name": "renamed"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := table.FindBy(ctx, db, domain.LocaleEN, "id", "a")
	if err != nil || got == nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "renamed" || got.OrderIndex != 0 {
		t.Fatalf("unexpected row %+v", got)
	}

	if err := table.Update(ctx, db, domain.LocaleEN, "ghost", nil); !domain.IsNotFound(err) {
		t.Fatalf("expected not found for empty update of ghost, got %v", err)
	}
	if err := table.Update(ctx, db, domain.LocaleEN, "a", nil); err != nil {
		t.Fatalf("expected empty update of existing row to succeed, got %v", err)
	}
}

func TestTableReorderIsAtomic(t *testing.T) {
	ctx := context.Background()
	table, db := newLocalTable(t)
	insertWidgets(t, table, domain.LocaleEN, "a", "b", "c")

	err := table.Reorder(ctx, domain.LocaleEN, []domain.OrderUpdate{
		{ID: "c", Order: 0},
		{ID: "ghost", Order: 1},
	}, nil)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	rows, _ := table.List(ctx, db, domain.LocaleEN)
	if got := names(rows); got[0] != "a" || got[2] != "c" {
		t.Fatalf("expected original order after rollback, got %v", got)
	}

	err = table.Reorder(ctx, domain.LocaleEN, domain.OrderFromSlice([]string{"c", "a", "b"}), nil)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	rows, _ = table.List(ctx, db, domain.LocaleEN)
	if got := names(rows); got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestUpdateWhereCountsRows(t *testing.T) {
	ctx := context.Background()
	table, db := newLocalTable(t)
	insertWidgets(t, table, domain.LocaleEN, "a", "b", "c")

	n, err := table.UpdateWhere(ctx, db, domain.LocaleEN, map[string]any{"name": "x"}, "order_index > ?", 0)
	if err != nil {
		t.Fatalf("update where: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected two rows touched, got %d", n)
	}
}

func TestJSONColumnChildren(t *testing.T) {
	ctx := context.Background()
	table, db := newLocalTable(t)
	insertWidgets(t, table, domain.LocaleEN, "a", "b")
	parts := store.NewJSONColumn[part](store.LocalLayout, "widgets", "parts", "widget")

	if err := parts.Replace(ctx, db, domain.LocaleEN, "a", []part{{Label: "x"}, {Label: "y"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, err := db.NewUpdate().Table("widgets_en").Set("parts = ?", "{broken").Where("id = ?", "b").Exec(ctx); err != nil {
		t.Fatalf("corrupt b: %v", err)
	}

	loaded, err := parts.Load(ctx, db, domain.LocaleEN, []string{"a", "b"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	items, err := loaded.For("a")
	if err != nil || len(items) != 2 || items[1].Label != "y" {
		t.Fatalf("unexpected children of a: %v (%v)", items, err)
	}
	if _, err := loaded.For("b"); domain.KindOf(err) != domain.KindMapping {
		t.Fatalf("expected mapping error for corrupt payload, got %v", err)
	}
}

func TestChildTableReplaceKeepsPosition(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewSQLiteDB(t)
	parts := store.NewChildTable(store.RemoteLayout, "widget_parts", "widget_id", "widget",
		func(parentID string, position int, item part) partRow {
			return partRow{ID: uuid.NewString(), WidgetID: parentID, Position: position, Label: item.Label}
		},
		func(row partRow) (string, part) {
			return row.WidgetID, part{Label: row.Label}
		},
	)
	if err := parts.CreateSchema(ctx, db, domain.LocaleEN); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	if err := parts.Replace(ctx, db, domain.LocaleEN, "w1", []part{{Label: "first"}, {Label: "second"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := parts.Replace(ctx, db, domain.LocaleEN, "w1", []part{{Label: "only"}}); err != nil {
		t.Fatalf("replace again: %v", err)
	}

	loaded, err := parts.Load(ctx, db, domain.LocaleEN, []string{"w1", "w2"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	items, _ := loaded.For("w1")
	if len(items) != 1 || items[0].Label != "only" {
		t.Fatalf("expected replaced children, got %v", items)
	}
	empty, err := loaded.For("w2")
	if err != nil || len(store.OrEmpty(empty)) != 0 || store.OrEmpty(empty) == nil {
		t.Fatalf("expected empty children for w2, got %#v (%v)", empty, err)
	}

	if err := parts.Purge(ctx, db, domain.LocaleEN, "w1"); err != nil {
		t.Fatalf("purge: %v", err)
	}
	loaded, _ = parts.Load(ctx, db, domain.LocaleEN, []string{"w1"})
	if items, _ := loaded.For("w1"); len(items) != 0 {
		t.Fatalf("expected purged children, got %v", items)
	}
}
