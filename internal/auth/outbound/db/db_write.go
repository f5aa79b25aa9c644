package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mistauth/mist/internal/auth/entity"
	"github.com/mistauth/mist/internal/pkg/goerror"
)

const createUser = `
INSERT INTO users (id, email, password, first_name, last_name, birth_date, birth_place, role)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

const createOtp = `
INSERT INTO otps (user_id, code, created_at, expires_at)
VALUES ($1, $2, $3, $4)
`

func (s *DB) CreateUserWithOtp(ctx context.Context, user entity.User, code entity.Otp) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUserWithOtp")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	birthDate := pgtype.Date{}
	if user.BirthDate != nil {
		birthDate = pgtype.Date{Valid: true, Time: *user.BirthDate}
	}

	if _, err = tx.Exec(ctx, createUser,
		user.ID,
		user.Email,
		user.Password,
		user.FirstName,
		user.LastName,
		birthDate,
		pgtype.Text{Valid: user.BirthPlace != "", String: user.BirthPlace},
		int16(user.Role),
	); err != nil {
		return s.mapError(err)
	}

	if _, err = tx.Exec(ctx, createOtp, user.ID, code.Code, code.CreatedAt, code.ExpiresAt); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

const renewOtp = `
INSERT INTO otps (user_id, code, created_at, expires_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE
SET code = EXCLUDED.code, created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at
`

// RenewOtp replaces the user's live one-time code. The table keys on user_id
// so the upsert overwrites whatever code was pending before.
func (s *DB) RenewOtp(ctx context.Context, code entity.Otp) (err error) {
	ctx, span := s.startSpan(ctx, "RenewOtp")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, renewOtp, code.UserID, code.Code, code.CreatedAt, code.ExpiresAt)
	return s.mapError(err)
}

const revokeUserTokens = `
UPDATE tokens
SET expired = TRUE, revoked = TRUE
WHERE user_id = $1 AND expired = FALSE AND revoked = FALSE
`

const createToken = `
INSERT INTO tokens (id, user_id, token, token_type, expired, revoked)
VALUES ($1, $2, $3, $4, FALSE, FALSE)
`

// ReplaceUserTokens revokes every live token the user holds and stores the
// freshly issued one, atomically. Only rows with both flags still clear are
// touched so a rerun changes nothing.
func (s *DB) ReplaceUserTokens(ctx context.Context, userID int64, token entity.Token) (err error) {
	ctx, span := s.startSpan(ctx, "ReplaceUserTokens")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	if _, err = tx.Exec(ctx, revokeUserTokens, userID); err != nil {
		return s.mapError(err)
	}

	if _, err = tx.Exec(ctx, createToken, token.ID, userID, token.Token, int16(token.Type)); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *DB) RevokeAllUserTokens(ctx context.Context, userID int64) (err error) {
	ctx, span := s.startSpan(ctx, "RevokeAllUserTokens")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, revokeUserTokens, userID)
	return s.mapError(err)
}

const updateUserProfile = `
UPDATE users
SET first_name  = COALESCE($2, first_name),
	last_name   = COALESCE($3, last_name),
	birth_date  = COALESCE($4, birth_date),
	birth_place = COALESCE($5, birth_place),
	updated_at  = now()
WHERE id = $1
`

func (s *DB) UpdateUserProfile(ctx context.Context, patch entity.PatchUser) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserProfile")
	defer func() { s.endSpan(span, err) }()

	birthDate := pgtype.Date{}
	if patch.BirthDate != nil {
		birthDate = pgtype.Date{Valid: true, Time: *patch.BirthDate}
	}

	tag, err := s.conn.Exec(ctx, updateUserProfile,
		patch.ID,
		pgtype.Text{Valid: patch.FirstName != "", String: patch.FirstName},
		pgtype.Text{Valid: patch.LastName != "", String: patch.LastName},
		birthDate,
		pgtype.Text{Valid: patch.BirthPlace != "", String: patch.BirthPlace},
	)
	if err != nil {
		return s.mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
