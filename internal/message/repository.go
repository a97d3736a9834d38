package message

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/rentora/rentora-api/internal/database"
)

// Repository handles message persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new message and fills in its generated fields
func (r *Repository) Create(ctx context.Context, msg *Message) error {
	dbMsg := &database.Message{
		Message:  msg.Message,
		SenderID: msg.SenderID,
		RentalID: msg.RentalID,
	}

	_, err := r.db.NewInsert().
		Model(dbMsg).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	msg.ID = dbMsg.ID
	msg.CreatedAt = dbMsg.CreatedAt
	return nil
}
