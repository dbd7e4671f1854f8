package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"inn_ledger/internal/domain"
	"inn_ledger/internal/domain/entity"
	"inn_ledger/internal/domain/value"
	"inn_ledger/pkg/errcodes"
)

type transactionRepo repositories

const transactionColumns = `id, counterparty_kind, counterparty_id, date, crown_value, inn_buying`

func (r transactionRepo) Create(ctx context.Context, transaction entity.Transaction) error {
	schema, items := fromTransaction(transaction)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES (:id, :counterparty_kind, :counterparty_id, :date, :crown_value, :inn_buying)`

	if _, err := sqlx.NamedExecContext(ctx, r.db, query, schema); err != nil {
		return wrapError(err, "failed to create transaction")
	}

	return r.insertItems(ctx, items)
}

func (r transactionRepo) Get(ctx context.Context, id value.ID) (entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	var schema transactionSchema
	if err := sqlx.GetContext(ctx, r.db, &schema, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Transaction{}, domain.NewError(
				errcodes.TransactionNotFound,
				fmt.Sprintf("Transaction with id %s not found", id),
			)
		}

		return entity.Transaction{}, wrapError(err, "failed to get transaction")
	}

	transactions, err := r.withItems(ctx, []transactionSchema{schema})
	if err != nil {
		return entity.Transaction{}, err
	}

	return transactions[0], nil
}

func (r transactionRepo) FindByCounterparties(ctx context.Context, ids []value.ID) ([]entity.Transaction, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	args := make([]string, len(ids))
	for i, id := range ids {
		args[i] = id.String()
	}

	query, params, err := sqlx.In(`
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE counterparty_id IN (?)
		ORDER BY date, id`, args)
	if err != nil {
		return nil, wrapError(err, "failed to build query")
	}

	var schemas []transactionSchema
	if err := sqlx.SelectContext(ctx, r.db, &schemas, r.db.Rebind(query), params...); err != nil {
		return nil, wrapError(err, "failed to find transactions")
	}

	return r.withItems(ctx, schemas)
}

func (r transactionRepo) FindByDateRange(ctx context.Context, from, to time.Time) ([]entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, id`

	var schemas []transactionSchema
	if err := sqlx.SelectContext(ctx, r.db, &schemas, query, from, to); err != nil {
		return nil, wrapError(err, "failed to find transactions")
	}

	return r.withItems(ctx, schemas)
}

// Update replaces the row and all line items of the transaction.
func (r transactionRepo) Update(ctx context.Context, transaction entity.Transaction) error {
	schema, items := fromTransaction(transaction)

	query := `
		UPDATE transactions
		SET counterparty_kind = :counterparty_kind, counterparty_id = :counterparty_id,
		    date = :date, crown_value = :crown_value, inn_buying = :inn_buying
		WHERE id = :id`

	result, err := sqlx.NamedExecContext(ctx, r.db, query, schema)
	if err != nil {
		return wrapError(err, "failed to update transaction")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return wrapError(err, "failed to get affected rows")
	}

	if rows == 0 {
		return domain.NewError(errcodes.TransactionNotFound, fmt.Sprintf("Transaction with id %s not found", transaction.ID))
	}

	if _, err = r.db.ExecContext(ctx, `DELETE FROM transaction_items WHERE transaction_id = $1`, schema.ID); err != nil {
		return wrapError(err, "failed to delete line items")
	}

	return r.insertItems(ctx, items)
}

// Delete removes the transaction, its line items go with it.
func (r transactionRepo) Delete(ctx context.Context, id value.ID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id.String())
	if err != nil {
		return wrapError(err, "failed to delete transaction")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return wrapError(err, "failed to get affected rows")
	}

	if rows == 0 {
		return domain.NewError(errcodes.TransactionNotFound, fmt.Sprintf("Transaction with id %s not found", id))
	}

	return nil
}

func (r transactionRepo) insertItems(ctx context.Context, items []lineItemSchema) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO transaction_items (transaction_id, position, asset_id, amount)
		VALUES (:transaction_id, :position, :asset_id, :amount)`

	if _, err := sqlx.NamedExecContext(ctx, r.db, query, items); err != nil {
		return wrapError(err, "failed to create line items")
	}

	return nil
}

func (r transactionRepo) withItems(ctx context.Context, schemas []transactionSchema) ([]entity.Transaction, error) {
	if len(schemas) == 0 {
		return []entity.Transaction{}, nil
	}

	ids := make([]string, len(schemas))
	for i, s := range schemas {
		ids[i] = s.ID
	}

	query, params, err := sqlx.In(`
		SELECT transaction_id, position, asset_id, amount
		FROM transaction_items
		WHERE transaction_id IN (?)
		ORDER BY transaction_id, position`, ids)
	if err != nil {
		return nil, wrapError(err, "failed to build query")
	}

	var items []lineItemSchema
	if err := sqlx.SelectContext(ctx, r.db, &items, r.db.Rebind(query), params...); err != nil {
		return nil, wrapError(err, "failed to get line items")
	}

	byTransaction := make(map[string][]lineItemSchema, len(schemas))
	for _, item := range items {
		byTransaction[item.TransactionID] = append(byTransaction[item.TransactionID], item)
	}

	transactions := make([]entity.Transaction, len(schemas))
	for i, s := range schemas {
		transactions[i] = s.toDomain(byTransaction[s.ID])
	}

	return transactions, nil
}
