package db

import (
	"context"

	"github.com/asnswap/asnswap/internal/exchange/entity"
)

func (s *DB) CreateMatchRequest(ctx context.Context, m entity.MatchRequest) (err error) {
	ctx, span := s.startSpan(ctx, "CreateMatchRequest")
	defer func() { s.endSpan(span, err) }()

	const q = `
		INSERT INTO exchange_match_requests
			(id, requester_email, target_email, note, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = s.conn.Exec(ctx, q,
		m.ID, m.RequesterEmail, m.TargetEmail, m.Note, m.Status.String(), m.CreatedAt)
	err = s.mapError(err)
	return err
}

// GetMatchRequestsByEmail returns requests where the email is either the
// requester or the target, newest first.
func (s *DB) GetMatchRequestsByEmail(ctx context.Context, email string) (_ []entity.MatchRequest, err error) {
	ctx, span := s.startSpan(ctx, "GetMatchRequestsByEmail")
	defer func() { s.endSpan(span, err) }()

	const q = `
		SELECT id, requester_email, target_email, note, status, created_at
		FROM exchange_match_requests
		WHERE requester_email = $1 OR target_email = $1
		ORDER BY created_at DESC`

	rows, err := s.conn.Query(ctx, q, email)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	requests := []entity.MatchRequest{}
	for rows.Next() {
		var m entity.MatchRequest
		var status string
		if err := rows.Scan(&m.ID, &m.RequesterEmail, &m.TargetEmail, &m.Note,
			&status, &m.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		m.Status = entity.MatchStatus(status)
		requests = append(requests, m)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return requests, nil
}
