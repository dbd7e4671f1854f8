package persistence_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"inn_ledger/internal/domain"
	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/value"
	"inn_ledger/internal/infrastructure/persistence"
	"inn_ledger/internal/port"
	"inn_ledger/pkg/errcodes"
)

func newMock(t *testing.T) (*persistence.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return persistence.NewStore(sqlx.NewDb(db, "pgx")), mock
}

func q(s string) string {
	return regexp.QuoteMeta(s)
}

var assetColumns = []string{"id", "name", "description", "material", "weight", "crown_value", "type", "amount"} //nolint:gochecknoglobals

func TestTraderGet(t *testing.T) {
	rq := require.New(t)
	store, mock := newMock(t)
	ctx := context.Background()
	id := value.NewID()

	mock.ExpectQuery(q("FROM traders WHERE id = $1")).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "location"}).
			AddRow(id.String(), "Hattori", "blacksmith", "Novigrad"))

	trader, err := store.Traders().Get(ctx, id)
	rq.NoError(err)
	rq.Equal(entity.Trader{ID: id, Name: "Hattori", Type: value.TraderTypeBlacksmith, Location: "Novigrad"}, trader)

	mock.ExpectQuery(q("FROM traders WHERE id = $1")).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "location"}))

	_, err = store.Traders().Get(ctx, id)
	rq.True(domain.HasCode(err, errcodes.NotFound))
}

func TestTraderCreateDuplicateName(t *testing.T) {
	rq := require.New(t)
	store, mock := newMock(t)

	mock.ExpectExec(q("INSERT INTO traders")).
		WithArgs(sqlmock.AnyArg(), "Hattori", "blacksmith", "Novigrad").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "traders_name_key"})

	err := store.Traders().Create(context.Background(), entity.Trader{
		ID: value.NewID(), Name: "Hattori", Type: value.TraderTypeBlacksmith, Location: "Novigrad",
	})
	rq.True(domain.HasCode(err, errcodes.NameAlreadyInUse))
}

func TestHunterFindByName(t *testing.T) {
	rq := require.New(t)
	store, mock := newMock(t)

	mock.ExpectQuery(q("FROM hunters WHERE $1 = '' OR name = $1")).
		WithArgs("Geralt").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "race", "location"}).
			AddRow("h1", "Geralt", "WITCH", "Kaer Morhen"))

	hunters, err := store.Hunters().FindByName(context.Background(), "Geralt")
	rq.NoError(err)
	rq.Len(hunters, 1)
	rq.Equal(value.RaceWitch, hunters[0].Race)
}

func TestAssetAdjustAmount(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name   string
		expect func(mock sqlmock.Sqlmock)
		amount int64
		code   string
	}{
		{
			name: "Adjusted",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(q("UPDATE assets SET amount = amount + $2 WHERE id = $1 AND amount + $2 >= 0")).
					WithArgs("a1", int64(-4)).
					WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow(int64(6)))
			},
			amount: 6,
		},
		{
			name: "Not enough stock",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(q("UPDATE assets")).
					WithArgs("a1", int64(-4)).
					WillReturnRows(sqlmock.NewRows([]string{"amount"}))
				mock.ExpectQuery(q("SELECT EXISTS")).
					WithArgs("a1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			code: errcodes.InsufficientStock.String(),
		},
		{
			name: "Missing asset",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(q("UPDATE assets")).
					WithArgs("a1", int64(-4)).
					WillReturnRows(sqlmock.NewRows([]string{"amount"}))
				mock.ExpectQuery(q("SELECT EXISTS")).
					WithArgs("a1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			code: errcodes.NotFound.String(),
		},
		{
			name: "Driver failure",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(q("UPDATE assets")).
					WithArgs("a1", int64(-4)).
					WillReturnError(errors.New("connection reset"))
			},
			code: errcodes.InternalServerError.String(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			store, mock := newMock(t)

			tc.expect(mock)

			amount, err := store.Assets().AdjustAmount(ctx, "a1", -4)
			if tc.code == "" {
				rq.NoError(err)
				rq.Equal(tc.amount, amount)

				return
			}

			code, ok := domain.GetCode(err)
			rq.True(ok)
			rq.Equal(tc.code, code.String())
		})
	}
}

func TestAssetLockByIDs(t *testing.T) {
	rq := require.New(t)
	store, mock := newMock(t)

	mock.ExpectQuery(q("FROM assets WHERE id IN ($1, $2) ORDER BY id FOR UPDATE")).
		WithArgs("a1", "a2").
		WillReturnRows(sqlmock.NewRows(assetColumns).
			AddRow("a1", "Silver sword", "For monsters", "silver", 3.0, "150.00", "weapon", int64(10)))

	locked, err := store.Assets().LockByIDs(context.Background(), []value.ID{"a1", "a2"})
	rq.NoError(err)
	rq.Len(locked, 1)
	rq.True(decimal.NewFromInt(150).Equal(locked["a1"].CrownValue))
}

func TestAssetDeleteInUse(t *testing.T) {
	rq := require.New(t)
	store, mock := newMock(t)

	mock.ExpectExec(q("DELETE FROM assets WHERE id = $1")).
		WithArgs("a1").
		WillReturnError(&pgconn.PgError{
			Code:           "23503",
			Message:        `update or delete on table "assets" violates foreign key constraint "transaction_items_asset_id_fkey" on table "transaction_items"`,
			ConstraintName: "transaction_items_asset_id_fkey",
		})

	err := store.Assets().Delete(context.Background(), "a1")
	rq.True(domain.HasCode(err, errcodes.AssetInUse))
}

func TestConstraintViolations(t *testing.T) {
	testCases := []struct {
		name  string
		pgErr *pgconn.PgError
		code  failure.ErrorCode
	}{
		{
			name: "Missing asset on line item",
			pgErr: &pgconn.PgError{
				Code:           "23503",
				Message:        `insert or update on table "transaction_items" violates foreign key constraint "transaction_items_asset_id_fkey"`,
				ConstraintName: "transaction_items_asset_id_fkey",
			},
			code: errcodes.AssetNotFound,
		},
		{
			name: "Other foreign key",
			pgErr: &pgconn.PgError{
				Code:           "23503",
				Message:        `insert or update on table "transaction_items" violates foreign key constraint "transaction_items_transaction_id_fkey"`,
				ConstraintName: "transaction_items_transaction_id_fkey",
			},
			code: errcodes.InternalServerError,
		},
		{
			name:  "Line item amount check",
			pgErr: &pgconn.PgError{Code: "23514", ConstraintName: "transaction_items_amount_check"},
			code:  errcodes.InternalServerError,
		},
		{
			name:  "Duplicate line item",
			pgErr: &pgconn.PgError{Code: "23505", ConstraintName: "transaction_items_pkey"},
			code:  errcodes.InternalServerError,
		},
		{
			name:  "Duplicate asset name",
			pgErr: &pgconn.PgError{Code: "23505", ConstraintName: "assets_name_key"},
			code:  errcodes.NameAlreadyInUse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			store, mock := newMock(t)

			mock.ExpectExec(q("INSERT INTO transactions")).
				WithArgs("t1", "hunter", "h1", sqlmock.AnyArg(), sqlmock.AnyArg(), false).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectExec(q("INSERT INTO transaction_items")).
				WithArgs("t1", 0, "a1", int64(2)).
				WillReturnError(tc.pgErr)

			err := store.Transactions().Create(context.Background(), entity.Transaction{
				ID:             "t1",
				CounterpartyID: "h1",
				Items:          []entity.LineItem{{AssetID: "a1", Amount: 2}},
			})
			rq.True(domain.HasCode(err, tc.code), err)
		})
	}
}

func TestAssetFind(t *testing.T) {
	rq := require.New(t)
	store, mock := newMock(t)

	mock.ExpectQuery(q("FROM assets WHERE ($1 = '' OR name = $1)")).
		WithArgs("", "silver", "weapon").
		WillReturnRows(sqlmock.NewRows(assetColumns).
			AddRow("a1", "Silver sword", "For monsters", "silver", 3.0, "150", "weapon", int64(10)))

	assets, err := store.Assets().Find(context.Background(), port.AssetFilter{Material: "silver", Type: value.AssetTypeWeapon})
	rq.NoError(err)
	rq.Len(assets, 1)
}

func TestTransactionCreateWithinTx(t *testing.T) {
	rq := require.New(t)
	store, mock := newMock(t)
	date := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	tx := entity.Transaction{
		ID:             "t1",
		CounterpartyID: "h1",
		Items:          []entity.LineItem{{AssetID: "a1", Amount: 2}, {AssetID: "a2", Amount: 1}},
		Date:           date,
		CrownValue:     decimal.NewFromInt(320),
	}

	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO transactions")).
		WithArgs("t1", "hunter", "h1", date, sqlmock.AnyArg(), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("INSERT INTO transaction_items")).
		WithArgs("t1", 0, "a1", int64(2), "t1", 1, "a2", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := store.WithinTx(context.Background(), func(ctx context.Context, repos port.Repositories) error {
		return repos.Transactions().Create(ctx, tx)
	})
	rq.NoError(err)
}

func TestWithinTxRollsBack(t *testing.T) {
	rq := require.New(t)
	store, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("UPDATE assets")).
		WithArgs("a1", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow(int64(15)))
	mock.ExpectQuery(q("UPDATE assets")).
		WithArgs("a2", int64(-5)).
		WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "assets_amount_check"})
	mock.ExpectRollback()

	err := store.WithinTx(context.Background(), func(ctx context.Context, repos port.Repositories) error {
		if _, err := repos.Assets().AdjustAmount(ctx, "a1", 5); err != nil {
			return err
		}

		_, err := repos.Assets().AdjustAmount(ctx, "a2", -5)

		return err
	})
	rq.True(domain.HasCode(err, errcodes.InsufficientStock))
}

func TestTransactionGet(t *testing.T) {
	rq := require.New(t)
	store, mock := newMock(t)
	date := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q("FROM transactions WHERE id = $1")).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "counterparty_kind", "counterparty_id", "date", "crown_value", "inn_buying"}).
			AddRow("t1", "trader", "tr1", date, "99.5", true))
	mock.ExpectQuery(q("FROM transaction_items WHERE transaction_id IN ($1) ORDER BY transaction_id, position")).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"transaction_id", "position", "asset_id", "amount"}).
			AddRow("t1", 0, "a2", int64(3)).
			AddRow("t1", 1, "a1", int64(1)))

	tx, err := store.Transactions().Get(context.Background(), "t1")
	rq.NoError(err)
	rq.Equal(entity.CounterpartyTrader, tx.CounterpartyKind)
	rq.Equal([]entity.LineItem{{AssetID: "a2", Amount: 3}, {AssetID: "a1", Amount: 1}}, tx.Items)
	rq.True(decimal.RequireFromString("99.5").Equal(tx.CrownValue))

	mock.ExpectQuery(q("FROM transactions WHERE id = $1")).
		WithArgs("t2").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = store.Transactions().Get(context.Background(), "t2")
	rq.True(domain.HasCode(err, errcodes.TransactionNotFound))
	rq.ErrorContains(err, "Transaction with id t2 not found")
}

func TestTransactionDeleteMissing(t *testing.T) {
	rq := require.New(t)
	store, mock := newMock(t)

	mock.ExpectExec(q("DELETE FROM transactions WHERE id = $1")).
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Transactions().Delete(context.Background(), "t1")
	rq.True(domain.HasCode(err, errcodes.TransactionNotFound))
}
