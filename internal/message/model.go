package message

import (
	"time"
)

// Message is a note from a user about a rental
type Message struct {
	ID        int64
	Message   string
	SenderID  int64
	RentalID  int64
	CreatedAt time.Time
}
