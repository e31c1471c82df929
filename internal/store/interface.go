package store

import (
	"context"

	"inkwell/internal/models"
)

// MessageStore abstracts contact message storage.
type MessageStore interface {
	CreateMessage(ctx context.Context, msg *models.ContactMessage) error
	GetMessage(ctx context.Context, id string) (*models.ContactMessage, error)
	ListMessages(ctx context.Context, limit, offset int) ([]models.ContactMessage, error)
	CountMessages(ctx context.Context) (int, error)
	DeleteMessage(ctx context.Context, id string) (bool, error)
}

var _ MessageStore = (*Store)(nil)
