package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/premium-server/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ model.AccountStore = (*AccountRepository)(nil)

const accountColumns = `id, email, name, google_subject, picture, otp_code, otp_expires_at, created_at, updated_at`

type AccountRepository struct {
	db Querier
}

func NewAccountRepository(db Querier) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID, &a.Email, &a.Name, &a.GoogleSubject, &a.Picture,
		&a.PendingCode, &a.CodeExpiresAt, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, model.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

// SetPendingCode upserts by email so that concurrent first-time requests
// for the same address converge on a single account.
func (r *AccountRepository) SetPendingCode(ctx context.Context, shell model.Account, code string, expiresAt time.Time) (model.Account, error) {
	query := `
		INSERT INTO accounts (id, email, name, otp_code, otp_expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (email) DO UPDATE
		SET otp_code = EXCLUDED.otp_code,
		    otp_expires_at = EXCLUDED.otp_expires_at,
		    updated_at = EXCLUDED.updated_at
		RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRow(ctx, query,
		shell.ID, model.NormalizeEmail(shell.Email), shell.Name, code, expiresAt, shell.CreatedAt,
	))
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to set pending code: %w", err)
	}

	return account, nil
}

// ConsumeCode checks and clears the code in one statement, so a code can
// only be consumed by one caller.
func (r *AccountRepository) ConsumeCode(ctx context.Context, email, code string, now time.Time) (model.Account, error) {
	query := `
		UPDATE accounts
		SET otp_code = NULL, otp_expires_at = NULL, updated_at = $3
		WHERE email = $1 AND otp_code = $2 AND otp_expires_at > $3
		RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRow(ctx, query, model.NormalizeEmail(email), code, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrInvalidOrExpired
		}
		return model.Account{}, fmt.Errorf("failed to consume code: %w", err)
	}

	return account, nil
}

// ResolveGoogle inserts the candidate or, for an existing email, fills the
// Google subject and picture only where they are still empty.
func (r *AccountRepository) ResolveGoogle(ctx context.Context, candidate model.Account) (model.Account, error) {
	query := `
		INSERT INTO accounts (id, email, name, google_subject, picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (email) DO UPDATE
		SET google_subject = COALESCE(NULLIF(accounts.google_subject, ''), EXCLUDED.google_subject),
		    picture = CASE
		        WHEN NULLIF(accounts.google_subject, '') IS NULL AND NULLIF(accounts.picture, '') IS NULL
		        THEN EXCLUDED.picture
		        ELSE accounts.picture
		    END,
		    updated_at = CASE
		        WHEN NULLIF(accounts.google_subject, '') IS NULL THEN EXCLUDED.updated_at
		        ELSE accounts.updated_at
		    END
		RETURNING ` + accountColumns

	var picture *string
	if p := candidate.PictureURL(); p != "" {
		picture = &p
	}

	account, err := scanAccount(r.db.QueryRow(ctx, query,
		candidate.ID, model.NormalizeEmail(candidate.Email), candidate.Name,
		candidate.GoogleSubject, picture, candidate.CreatedAt,
	))
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to resolve google account: %w", err)
	}

	return account, nil
}
