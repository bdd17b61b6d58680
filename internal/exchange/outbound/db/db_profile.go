package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/asnswap/asnswap/internal/exchange/entity"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, email, name, nip, agency, position, grade,
	current_region, desired_region, is_subscribed, is_verified, created_at, updated_at`

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var p entity.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.Name, &p.NIP, &p.Agency, &p.Position, &p.Grade,
		&p.CurrentRegion, &p.DesiredRegion, &p.IsSubscribed, &p.IsVerified,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProfile inserts the profile or, when the email already has one,
// updates its swap details. Verification and subscription flags are not
// touched on update.
func (s *DB) UpsertProfile(ctx context.Context, p entity.Profile) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertProfile")
	defer func() { s.endSpan(span, err) }()

	const q = `
		INSERT INTO exchange_profiles
			(id, email, name, nip, agency, position, grade,
			 current_region, desired_region, is_subscribed, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			nip = EXCLUDED.nip,
			agency = EXCLUDED.agency,
			position = EXCLUDED.position,
			grade = EXCLUDED.grade,
			current_region = EXCLUDED.current_region,
			desired_region = EXCLUDED.desired_region,
			updated_at = EXCLUDED.updated_at`

	_, err = s.conn.Exec(ctx, q,
		p.ID, p.Email, p.Name, p.NIP, p.Agency, p.Position, p.Grade,
		p.CurrentRegion, p.DesiredRegion, p.IsSubscribed, p.IsVerified, p.UpdatedAt,
	)
	err = s.mapError(err)
	return err
}

func (s *DB) GetProfileByEmail(ctx context.Context, email string) (_ *entity.Profile, err error) {
	ctx, span := s.startSpan(ctx, "GetProfileByEmail")
	defer func() { s.endSpan(span, err) }()

	p, err := scanProfile(s.conn.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM exchange_profiles WHERE email = $1`, email))
	if err != nil {
		return nil, s.mapError(err)
	}

	return p, nil
}

// SearchProfiles returns profiles matching every set filter field as a
// case-insensitive substring.
func (s *DB) SearchProfiles(ctx context.Context, f entity.ProfileFilter) (_ []entity.Profile, err error) {
	ctx, span := s.startSpan(ctx, "SearchProfiles")
	defer func() { s.endSpan(span, err) }()

	q := `SELECT ` + profileColumns + ` FROM exchange_profiles WHERE 1=1`
	args := []any{}

	if f.DesiredRegion != "" {
		args = append(args, "%"+f.DesiredRegion+"%")
		q += ` AND desired_region ILIKE $` + itoa(len(args))
	}
	if f.CurrentRegion != "" {
		args = append(args, "%"+f.CurrentRegion+"%")
		q += ` AND current_region ILIKE $` + itoa(len(args))
	}
	if f.Agency != "" {
		args = append(args, "%"+f.Agency+"%")
		q += ` AND agency ILIKE $` + itoa(len(args))
	}
	q += ` ORDER BY updated_at DESC`

	rows, err := s.conn.Query(ctx, q, args...)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	profiles := []entity.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, s.mapError(err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return profiles, nil
}

func (s *DB) ListProfiles(ctx context.Context) (_ []entity.Profile, err error) {
	ctx, span := s.startSpan(ctx, "ListProfiles")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT `+profileColumns+` FROM exchange_profiles ORDER BY created_at ASC`)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	profiles := []entity.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, s.mapError(err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return profiles, nil
}

func (s *DB) SetProfileVerified(ctx context.Context, email string, verified bool) (err error) {
	ctx, span := s.startSpan(ctx, "SetProfileVerified")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE exchange_profiles SET is_verified = $2, updated_at = now() WHERE email = $1`,
		email, verified)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
		return s.mapError(err)
	}

	return nil
}

// DeleteProfileByEmail removes the profile and every chat message the email
// took part in, in one transaction.
func (s *DB) DeleteProfileByEmail(ctx context.Context, email string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteProfileByEmail")
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

	tag, err := tx.Exec(ctx, `DELETE FROM exchange_profiles WHERE email = $1`, email)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return s.mapError(pgx.ErrNoRows)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM exchange_messages WHERE from_email = $1 OR to_email = $1`, email); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

func itoa(n int) string {
	// argument positions never exceed single digits here
	return string(rune('0' + n))
}
