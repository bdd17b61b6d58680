package db

import (
	"context"

	"github.com/asnswap/asnswap/internal/exchange/entity"
)

func (s *DB) CreateMessage(ctx context.Context, m entity.Message) (err error) {
	ctx, span := s.startSpan(ctx, "CreateMessage")
	defer func() { s.endSpan(span, err) }()

	const q = `
		INSERT INTO exchange_messages
			(id, from_email, to_email, body, read, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.conn.Exec(ctx, q,
		m.ID, m.FromEmail, m.ToEmail, m.Body, m.Read, m.Metadata, m.CreatedAt)
	err = s.mapError(err)
	return err
}

// GetConversation returns every message exchanged between the two emails in
// either direction, oldest first.
func (s *DB) GetConversation(ctx context.Context, a, b string) (_ []entity.Message, err error) {
	ctx, span := s.startSpan(ctx, "GetConversation")
	defer func() { s.endSpan(span, err) }()

	const q = `
		SELECT id, from_email, to_email, body, read, metadata, created_at
		FROM exchange_messages
		WHERE (from_email = $1 AND to_email = $2)
		   OR (from_email = $2 AND to_email = $1)
		ORDER BY created_at ASC`

	rows, err := s.conn.Query(ctx, q, a, b)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	messages := []entity.Message{}
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.FromEmail, &m.ToEmail, &m.Body, &m.Read,
			&m.Metadata, &m.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return messages, nil
}
