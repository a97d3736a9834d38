package rental

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotOwner means the caller is authenticated but does not own the rental
	ErrNotOwner = errors.New("not the rental owner")

	ErrNameRequired        = errors.New("the rental name is required")
	ErrNameTooLong         = errors.New("the rental name must not exceed 100 characters")
	ErrInvalidSurface      = errors.New("the surface must be a positive number")
	ErrInvalidPrice        = errors.New("the price must not be negative")
	ErrDescriptionRequired = errors.New("the description must be between 2 and 500 characters")
)

// Store is the slice of rental persistence the service needs.
// Implemented by Repository.
type Store interface {
	List(ctx context.Context) ([]*Rental, error)
	GetByID(ctx context.Context, id int64) (*Rental, error)
	Create(ctx context.Context, rental *Rental) error
	Update(ctx context.Context, rental *Rental) error
}

// Input carries the writable rental fields from a create or update request
type Input struct {
	Name        string
	Surface     float64
	Price       float64
	Description string
	// Picture is the stored picture URL; empty on update means keep the
	// existing picture
	Picture string
}

// Service handles rental business logic, including the ownership check
// on mutation.
type Service struct {
	rentals Store
}

func NewService(rentals Store) *Service {
	return &Service{rentals: rentals}
}

// List returns all rentals
func (s *Service) List(ctx context.Context) ([]*Rental, error) {
	return s.rentals.List(ctx)
}

// Get returns a single rental by ID
func (s *Service) Get(ctx context.Context, id int64) (*Rental, error) {
	return s.rentals.GetByID(ctx, id)
}

// Create persists a new rental owned by ownerID
func (s *Service) Create(ctx context.Context, ownerID int64, input Input) (*Rental, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	rental := &Rental{
		Name:        strings.TrimSpace(input.Name),
		Surface:     input.Surface,
		Price:       input.Price,
		Picture:     input.Picture,
		Description: strings.TrimSpace(input.Description),
		OwnerID:     ownerID,
	}

	if err := s.rentals.Create(ctx, rental); err != nil {
		return nil, fmt.Errorf("failed to create rental: %w", err)
	}

	return rental, nil
}

// Update mutates a rental after verifying the caller owns it. The
// ownership check is a pure comparison against the stored owner; on
// mismatch the rental is left untouched and ErrNotOwner is returned.
func (s *Service) Update(ctx context.Context, id, actorID int64, input Input) (*Rental, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	rental, err := s.rentals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rental.OwnerID != actorID {
		return nil, ErrNotOwner
	}

	rental.Name = strings.TrimSpace(input.Name)
	rental.Surface = input.Surface
	rental.Price = input.Price
	rental.Description = strings.TrimSpace(input.Description)
	if input.Picture != "" {
		rental.Picture = input.Picture
	}

	if err := s.rentals.Update(ctx, rental); err != nil {
		return nil, fmt.Errorf("failed to update rental: %w", err)
	}

	return rental, nil
}

func validateInput(input Input) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrNameRequired
	}
	if len(name) > 100 {
		return ErrNameTooLong
	}
	if input.Surface <= 0 {
		return ErrInvalidSurface
	}
	if input.Price < 0 {
		return ErrInvalidPrice
	}
	if descLen := len(strings.TrimSpace(input.Description)); descLen < 2 || descLen > 500 {
		return ErrDescriptionRequired
	}
	return nil
}
