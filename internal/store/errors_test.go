package store_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/store"
)

type widgetRecord struct {
	bun.BaseModel `bun:"table:widgets,alias:r"`

	ID         string    `bun:"id,pk"`
	Name       string    `bun:"name,notnull"`
	OrderIndex int       `bun:"order_index,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

func newMockTable(t *testing.T) (*store.Table[widgetRecord], sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	db := bun.NewDB(sqldb, pgdialect.New(), bun.WithDiscardUnknownColumns())
	t.Cleanup(func() { _ = db.Close() })
	return store.NewTable[widgetRecord](db, store.RemoteLayout, "widgets", "widget", store.ByOrderIndex), mock
}

func TestClassifyUniqueViolationIsConflict(t *testing.T) {
	err := store.Classify("widget", "insert", domain.LocaleEN, &pgconn.PgError{Code: "23505", Message: "duplicate key"})

	var storeErr *domain.StoreError
	require.True(t, errors.As(err, &storeErr))
	require.True(t, storeErr.Conflict)
	require.Equal(t, "insert", storeErr.Op)
	require.Equal(t, domain.LocaleEN, storeErr.Locale)
	require.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestClassifyPassesThroughKnownErrors(t *testing.T) {
	require.NoError(t, store.Classify("widget", "get", domain.LocaleEN, nil))

	notFound := &domain.NotFoundError{Resource: "widget", Key: "w1", Locale: domain.LocalePL}
	require.Same(t, notFound, store.Classify("widget", "get", domain.LocalePL, notFound))

	err := store.Classify("widget", "list", domain.LocalePL, errors.New("connection reset"))
	require.Equal(t, domain.KindStore, domain.KindOf(err))
	require.False(t, store.IsUniqueViolation(err))
}

func TestTableInsertClassifiesDuplicateKey(t *testing.T) {
	table, mock := newMockTable(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "zirospace_widgets_en"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key"})

	rec := widgetRecord{ID: "w1", Name: "dup", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	err := table.Insert(context.Background(), table.DB(), domain.LocaleEN, &rec)
	require.Equal(t, domain.KindConflict, domain.KindOf(err))
	require.Equal(t, "w1", rec.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTableUpdateClassifiesPostgresErrors(t *testing.T) {
	table, mock := newMockTable(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "zirospace_widgets_en" AS "r"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "order_index", "created_at"}).
			AddRow("w1", "old", 0, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "zirospace_widgets_en" AS "r" SET "name" = 'dup'`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := table.Update(context.Background(), table.DB(), domain.LocaleEN, "w1", map[string]any{"name": "dup"})
	require.Equal(t, domain.KindConflict, domain.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTableUpdateMissingRowIsNotFound(t *testing.T) {
	table, mock := newMockTable(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "zirospace_widgets_en" AS "r"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "order_index", "created_at"}))

	err := table.Update(context.Background(), table.DB(), domain.LocaleEN, "ghost", map[string]any{"name": "x"})
	require.True(t, domain.IsNotFound(err), "expected not found, got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTableDeleteWithoutRowsIsNotFound(t *testing.T) {
	table, mock := newMockTable(t)

	mock.ExpectQuery(regexp.QuoteMeta(`count(*) FROM "zirospace_widgets_pl" AS "r"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := table.Delete(context.Background(), table.DB(), domain.LocalePL, "ghost")
	require.True(t, domain.IsNotFound(err), "expected not found, got %v", err)

	var notFound *domain.NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "ghost", notFound.Key)
	require.Equal(t, domain.LocalePL, notFound.Locale)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTableReorderRejectsInvalidBatchBeforeTouchingDatabase(t *testing.T) {
	table, mock := newMockTable(t)

	err := table.Reorder(context.Background(), domain.LocaleEN, []domain.OrderUpdate{
		{ID: "a", Order: 0},
		{ID: "a", Order: 1},
	}, nil)
	require.Equal(t, domain.KindValidation, domain.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
