package rental

import (
	"time"
)

// Rental is the domain model for a listing. OwnerID is compared against
// the authenticated identity before any mutation.
type Rental struct {
	ID          int64
	Name        string
	Surface     float64
	Price       float64
	Picture     string
	Description string
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Response is the API payload for a rental
type Response struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Surface     float64 `json:"surface"`
	Price       float64 `json:"price"`
	Picture     string  `json:"picture"`
	Description string  `json:"description"`
	OwnerID     int64   `json:"owner_id"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

const dateLayout = "2006/01/02"

// ToResponse maps a rental to its API payload
func ToResponse(r *Rental) Response {
	var updatedAt *string
	if r.UpdatedAt != nil {
		formatted := r.UpdatedAt.Format(dateLayout)
		updatedAt = &formatted
	}

	return Response{
		ID:          r.ID,
		Name:        r.Name,
		Surface:     r.Surface,
		Price:       r.Price,
		Picture:     r.Picture,
		Description: r.Description,
		OwnerID:     r.OwnerID,
		CreatedAt:   r.CreatedAt.Format(dateLayout),
		UpdatedAt:   updatedAt,
	}
}
