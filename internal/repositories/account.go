package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-account-service/internal/logger"
	"github.com/sbilibin2017/gw-account-service/internal/models"
)

// TxGetter returns the transaction bound to ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

// executor picks the request transaction when there is one.
func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

func oneLine(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// AccountReadRepository handles account lookups.
type AccountReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewAccountReadRepository(db *sqlx.DB, txGetter TxGetter) *AccountReadRepository {
	return &AccountReadRepository{db: db, txGetter: txGetter}
}

// GetByIdentifier returns the live account with the given identifier.
// It returns nil without error when there is none; soft-deleted rows are never returned.
func (r *AccountReadRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.AccountDB, error) {
	const query = `
		SELECT id, identifier, display_name, secret_hash, note, deleted, created_at
		FROM accounts
		WHERE identifier = $1 AND deleted = FALSE
		LIMIT 1
	`

	var account models.AccountDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &account, query, identifier)

	found := err == nil
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}

	logger.Log.Infow(
		"query", oneLine(query),
		"args", []any{identifier},
		"found", found,
		"error", err,
	)

	if err != nil || !found {
		return nil, err
	}
	return &account, nil
}

// AccountWriteRepository handles account inserts and updates.
type AccountWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewAccountWriteRepository(db *sqlx.DB, txGetter TxGetter) *AccountWriteRepository {
	return &AccountWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new live account with an empty note and returns the stored row.
func (r *AccountWriteRepository) Save(ctx context.Context, identifier, displayName, secretHash string) (*models.AccountDB, error) {
	const query = `
		INSERT INTO accounts (identifier, display_name, secret_hash, note, deleted, created_at)
		VALUES ($1, $2, $3, '', FALSE, NOW())
		RETURNING id, identifier, display_name, secret_hash, note, deleted, created_at
	`

	var account models.AccountDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &account, query, identifier, displayName, secretHash)

	// args omit the secret hash
	logger.Log.Infow(
		"query", oneLine(query),
		"args", []any{identifier, displayName},
		"result", account.ID,
		"error", err,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateIdentifier
		}
		return nil, err
	}
	return &account, nil
}

// UpdateProfile sets display name and note of the live account with the given identifier.
func (r *AccountWriteRepository) UpdateProfile(ctx context.Context, identifier, displayName string, note *string) error {
	const query = `
		UPDATE accounts
		SET display_name = $2, note = $3
		WHERE identifier = $1 AND deleted = FALSE
	`
	args := []any{identifier, displayName, note}

	return r.exec(ctx, query, args)
}

// MarkDeleted soft-deletes the live account with the given identifier.
func (r *AccountWriteRepository) MarkDeleted(ctx context.Context, identifier string) error {
	const query = `
		UPDATE accounts
		SET deleted = TRUE
		WHERE identifier = $1 AND deleted = FALSE
	`
	args := []any{identifier}

	return r.exec(ctx, query, args)
}

func (r *AccountWriteRepository) exec(ctx context.Context, query string, args []any) error {
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", oneLine(query),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
