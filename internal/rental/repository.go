package rental

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/rentora/rentora-api/internal/database"
)

var ErrNotFound = errors.New("rental not found")

// Repository handles rental persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// List returns all rentals, newest first
func (r *Repository) List(ctx context.Context) ([]*Rental, error) {
	var dbRentals []*database.Rental
	err := r.db.NewSelect().
		Model(&dbRentals).
		Order("id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}

	rentals := make([]*Rental, 0, len(dbRentals))
	for _, dbr := range dbRentals {
		rentals = append(rentals, mapDBRentalToModel(dbr))
	}
	return rentals, nil
}

// GetByID retrieves a rental by ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Rental, error) {
	dbRental := new(database.Rental)
	err := r.db.NewSelect().
		Model(dbRental).
		Where("r.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rental by id: %w", err)
	}

	return mapDBRentalToModel(dbRental), nil
}

// Create inserts a new rental and fills in its generated fields
func (r *Repository) Create(ctx context.Context, rental *Rental) error {
	dbRental := &database.Rental{
		Name:        rental.Name,
		Surface:     rental.Surface,
		Price:       rental.Price,
		Picture:     rental.Picture,
		Description: rental.Description,
		OwnerID:     rental.OwnerID,
	}

	_, err := r.db.NewInsert().
		Model(dbRental).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create rental: %w", err)
	}

	rental.ID = dbRental.ID
	rental.CreatedAt = dbRental.CreatedAt
	rental.UpdatedAt = dbRental.UpdatedAt
	return nil
}

// Update persists the mutable fields of a rental
func (r *Repository) Update(ctx context.Context, rental *Rental) error {
	now := time.Now()
	result, err := r.db.NewUpdate().
		Model((*database.Rental)(nil)).
		Set("name = ?", rental.Name).
		Set("surface = ?", rental.Surface).
		Set("price = ?", rental.Price).
		Set("picture = ?", rental.Picture).
		Set("description = ?", rental.Description).
		Set("updated_at = ?", now).
		Where("id = ?", rental.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update rental: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	rental.UpdatedAt = &now
	return nil
}

func mapDBRentalToModel(dbr *database.Rental) *Rental {
	return &Rental{
		ID:          dbr.ID,
		Name:        dbr.Name,
		Surface:     dbr.Surface,
		Price:       dbr.Price,
		Picture:     dbr.Picture,
		Description: dbr.Description,
		OwnerID:     dbr.OwnerID,
		CreatedAt:   dbr.CreatedAt,
		UpdatedAt:   dbr.UpdatedAt,
	}
}
