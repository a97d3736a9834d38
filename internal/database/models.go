package database

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the database model for the users table
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Name         string    `bun:"name,notnull"`
	TokenVersion int       `bun:"token_version,notnull,default:1"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Rental is the database model for the rentals table
type Rental struct {
	bun.BaseModel `bun:"table:rentals,alias:r"`

	ID          int64      `bun:"id,pk,autoincrement"`
	Name        string     `bun:"name,notnull"`
	Surface     float64    `bun:"surface,notnull"`
	Price       float64    `bun:"price,notnull"`
	Picture     string     `bun:"picture,notnull"`
	Description string     `bun:"description,notnull"`
	OwnerID     int64      `bun:"owner_id,notnull"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   *time.Time `bun:"updated_at"`
}

// Message is the database model for the messages table
type Message struct {
	bun.BaseModel `bun:"table:messages,alias:m"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Message   string    `bun:"message,notnull"`
	SenderID  int64     `bun:"user_id,notnull"`
	RentalID  int64     `bun:"rental_id,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
