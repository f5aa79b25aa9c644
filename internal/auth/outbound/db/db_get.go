package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mistauth/mist/internal/auth/entity"
)

const getUserByEmail = `
SELECT id, email, password, first_name, last_name, birth_date, birth_place, role, updated_at
FROM users
WHERE email = $1
`

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	var (
		user       entity.User
		role       int16
		birthDate  pgtype.Date
		birthPlace pgtype.Text
		updatedAt  pgtype.Timestamptz
	)
	err = s.conn.QueryRow(ctx, getUserByEmail, email).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&birthDate,
		&birthPlace,
		&role,
		&updatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	user.Role = entity.Role(role)
	if birthDate.Valid {
		user.BirthDate = &birthDate.Time
	}
	if birthPlace.Valid {
		user.BirthPlace = birthPlace.String
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	}

	return &user, nil
}

const getOtpByUserID = `
SELECT user_id, code, created_at, expires_at
FROM otps
WHERE user_id = $1
`

func (s *DB) GetOtpByUserID(ctx context.Context, userID int64) (_ *entity.Otp, err error) {
	ctx, span := s.startSpan(ctx, "GetOtpByUserID")
	defer func() { s.endSpan(span, err) }()

	var otp entity.Otp
	err = s.conn.QueryRow(ctx, getOtpByUserID, userID).Scan(
		&otp.UserID,
		&otp.Code,
		&otp.CreatedAt,
		&otp.ExpiresAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &otp, nil
}

const isTokenActive = `
SELECT EXISTS (
	SELECT 1
	FROM tokens
	WHERE token = $1 AND expired = FALSE AND revoked = FALSE
)
`

// IsTokenActive reports whether a bearer token is stored and still usable.
// A row counts only when neither the expired nor the revoked flag is set.
func (s *DB) IsTokenActive(ctx context.Context, token string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "IsTokenActive")
	defer func() { s.endSpan(span, err) }()

	var active bool
	if err = s.conn.QueryRow(ctx, isTokenActive, token).Scan(&active); err != nil {
		return false, s.mapError(err)
	}

	return active, nil
}
