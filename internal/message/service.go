package message

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rentora/rentora-api/internal/rental"
)

var (
	// ErrSenderMismatch means the declared sender is not the caller
	ErrSenderMismatch = errors.New("sender does not match the authenticated user")

	ErrContentRequired = errors.New("message content is required")
	ErrContentTooLong  = errors.New("the message must not exceed 500 characters")
)

// Store is the slice of message persistence the service needs
type Store interface {
	Create(ctx context.Context, msg *Message) error
}

// RentalStore resolves the rental a message refers to
type RentalStore interface {
	GetByID(ctx context.Context, id int64) (*rental.Rental, error)
}

// Service handles message business logic
type Service struct {
	messages Store
	rentals  RentalStore
}

func NewService(messages Store, rentals RentalStore) *Service {
	return &Service{messages: messages, rentals: rentals}
}

// Create stores a message about a rental. The declared sender must be the
// authenticated caller; anything else is an authorization failure, not an
// authentication one.
func (s *Service) Create(ctx context.Context, actorID, senderID, rentalID int64, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}
	if len(content) > 500 {
		return nil, ErrContentTooLong
	}

	if senderID != actorID {
		return nil, ErrSenderMismatch
	}

	// The rental must exist; surfaces rental.ErrNotFound otherwise
	if _, err := s.rentals.GetByID(ctx, rentalID); err != nil {
		return nil, err
	}

	msg := &Message{
		Message:  content,
		SenderID: senderID,
		RentalID: rentalID,
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return msg, nil
}
