package rental

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store
type fakeStore struct {
	mu      sync.Mutex
	rentals map[int64]*Rental
	nextID  int64
	updates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rentals: make(map[int64]*Rental), nextID: 1}
}

func (s *fakeStore) List(_ context.Context) ([]*Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Rental, 0, len(s.rentals))
	for _, r := range s.rentals {
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rentals[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *fakeStore) Create(_ context.Context, rental *Rental) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rental.ID = s.nextID
	rental.CreatedAt = time.Now()
	s.nextID++

	copied := *rental
	s.rentals[rental.ID] = &copied
	return nil
}

func (s *fakeStore) Update(_ context.Context, rental *Rental) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rentals[rental.ID]; !ok {
		return ErrNotFound
	}
	s.updates++
	now := time.Now()
	rental.UpdatedAt = &now

	copied := *rental
	s.rentals[rental.ID] = &copied
	return nil
}

func validInput() Input {
	return Input{
		Name:        "Seaside flat",
		Surface:     42.5,
		Price:       1200,
		Description: "A bright two-room flat near the harbor.",
		Picture:     "http://localhost:8080/uploads/pic.jpg",
	}
}

func TestCreate_SetsOwner(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	created, err := svc.Create(context.Background(), 7, validInput())
	require.NoError(t, err)

	assert.Equal(t, int64(7), created.OwnerID)
	assert.NotZero(t, created.ID)

	stored, err := store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stored.OwnerID)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newFakeStore())

	tests := []struct {
		name    string
		mutate  func(*Input)
		wantErr error
	}{
		{"empty name", func(in *Input) { in.Name = "  " }, ErrNameRequired},
		{"long name", func(in *Input) { in.Name = strings.Repeat("x", 101) }, ErrNameTooLong},
		{"zero surface", func(in *Input) { in.Surface = 0 }, ErrInvalidSurface},
		{"negative surface", func(in *Input) { in.Surface = -3 }, ErrInvalidSurface},
		{"negative price", func(in *Input) { in.Price = -1 }, ErrInvalidPrice},
		{"short description", func(in *Input) { in.Description = "x" }, ErrDescriptionRequired},
		{"long description", func(in *Input) { in.Description = strings.Repeat("x", 501) }, ErrDescriptionRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			_, err := svc.Create(context.Background(), 1, input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdate_ByOwner(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	created, err := svc.Create(context.Background(), 7, validInput())
	require.NoError(t, err)

	input := validInput()
	input.Name = "Renamed flat"
	input.Price = 1500
	input.Picture = ""

	updated, err := svc.Update(context.Background(), created.ID, 7, input)
	require.NoError(t, err)

	assert.Equal(t, "Renamed flat", updated.Name)
	assert.Equal(t, float64(1500), updated.Price)
	// Empty picture on update keeps the stored one
	assert.Equal(t, created.Picture, updated.Picture)
	assert.NotNil(t, updated.UpdatedAt)
}

func TestUpdate_ByNonOwnerRejectedAndUnchanged(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	created, err := svc.Create(context.Background(), 7, validInput())
	require.NoError(t, err)

	input := validInput()
	input.Name = "Hijacked"

	_, err = svc.Update(context.Background(), created.ID, 8, input)
	assert.ErrorIs(t, err, ErrNotOwner)

	stored, err := store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seaside flat", stored.Name)
	assert.Zero(t, store.updates, "store must not be written on an ownership failure")
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Update(context.Background(), 999, 7, validInput())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Get(context.Background(), 123)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToResponse_DateFormatting(t *testing.T) {
	created := time.Date(2025, 3, 9, 15, 4, 5, 0, time.UTC)
	updated := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

	r := &Rental{
		ID:        1,
		Name:      "Flat",
		CreatedAt: created,
		UpdatedAt: &updated,
	}

	resp := ToResponse(r)
	assert.Equal(t, "2025/03/09", resp.CreatedAt)
	require.NotNil(t, resp.UpdatedAt)
	assert.Equal(t, "2025/04/01", *resp.UpdatedAt)

	r.UpdatedAt = nil
	assert.Nil(t, ToResponse(r).UpdatedAt)
}
