package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/models"
)

const (
	defaultMessageListLimit = 50
	maxMessageListLimit     = 500
)

// CreateMessage stores msg, filling ID and CreatedAt when empty.
func (s *Store) CreateMessage(ctx context.Context, msg *models.ContactMessage) error {
	if msg == nil {
		return fmt.Errorf("message is required")
	}
	if strings.TrimSpace(msg.Name) == "" || strings.TrimSpace(msg.Email) == "" || strings.TrimSpace(msg.Message) == "" {
		return fmt.Errorf("name, email and message are required")
	}
	if msg.ID == "" {
		id, err := GenerateMessageID()
		if err != nil {
			return err
		}
		msg.ID = id
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	msg.CreatedAt = msg.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, name, email, company, budget, message, remote_addr, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, msg.ID, msg.Name, msg.Email, nullString(msg.Company), nullString(msg.Budget), msg.Message,
		nullString(msg.RemoteAddr), nullString(msg.UserAgent), dbFormatTime(msg.CreatedAt))
	return err
}

// GetMessage returns one message, or nil when it does not exist.
func (s *Store) GetMessage(ctx context.Context, id string) (*models.ContactMessage, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, company, budget, message, remote_addr, user_agent, created_at
		FROM messages
		WHERE id = ?
		LIMIT 1
	`, strings.TrimSpace(id))
	return scanMessage(row)
}

// ListMessages returns messages newest first.
func (s *Store) ListMessages(ctx context.Context, limit, offset int) ([]models.ContactMessage, error) {
	if limit <= 0 {
		limit = defaultMessageListLimit
	}
	if limit > maxMessageListLimit {
		limit = maxMessageListLimit
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, company, budget, message, remote_addr, user_agent, created_at
		FROM messages
		ORDER BY created_at DESC, id ASC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.ContactMessage, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		if msg == nil {
			continue
		}
		messages = append(messages, *msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// CountMessages returns the number of stored messages.
func (s *Store) CountMessages(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteMessage removes one message and reports whether it existed.
func (s *Store) DeleteMessage(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", strings.TrimSpace(id))
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanMessage(scanner interface {
	Scan(dest ...any) error
}) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	var company, budget, remoteAddr, userAgent sql.NullString
	var createdAt string
	if err := scanner.Scan(&msg.ID, &msg.Name, &msg.Email, &company, &budget, &msg.Message, &remoteAddr, &userAgent, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	msg.Company = company.String
	msg.Budget = budget.String
	msg.RemoteAddr = remoteAddr.String
	msg.UserAgent = userAgent.String

	parsed, err := dbParseTime(createdAt)
	if err != nil {
		return nil, err
	}
	msg.CreatedAt = parsed
	return &msg, nil
}

func nullString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	return sql.NullString{String: value, Valid: value != ""}
}
