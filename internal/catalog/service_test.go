package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo is an in-memory Repository for exercising the service without a
// database.
type stubRepo struct {
	byID map[string]*Item
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: make(map[string]*Item)}
}

func (r *stubRepo) put(item *Item) {
	r.byID[item.ID] = item
}

func (r *stubRepo) Create(_ context.Context, item *Item) error {
	item.ID = "svc-1"
	r.byID[item.ID] = item
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*Item, error) {
	item, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return item, nil
}

func (r *stubRepo) List(_ context.Context, _ Filter) ([]*Item, int, error) {
	return nil, 0, nil
}

func (r *stubRepo) Update(_ context.Context, item *Item) error {
	if _, ok := r.byID[item.ID]; !ok {
		return ErrNotFound
	}
	r.byID[item.ID] = item
	return nil
}

func TestServiceCreate(t *testing.T) {
	t.Run("new items start active", func(t *testing.T) {
		svc := NewService(newStubRepo())

		item, err := svc.Create(context.Background(), CreateRequest{
			Name:            "Deep Clean",
			Category:        CategoryCleaning,
			BasePriceCents:  12000,
			DurationMinutes: 120,
		})
		require.NoError(t, err)
		assert.True(t, item.Active)
		assert.Equal(t, int64(12000), item.BasePriceCents)
	})

	t.Run("requires a name", func(t *testing.T) {
		svc := NewService(newStubRepo())

		_, err := svc.Create(context.Background(), CreateRequest{
			Name:     "  ",
			Category: CategoryCleaning,
		})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		svc := NewService(newStubRepo())

		_, err := svc.Create(context.Background(), CreateRequest{
			Name:     "Deep Clean",
			Category: "gardening",
		})
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("rejects a negative base price", func(t *testing.T) {
		svc := NewService(newStubRepo())

		_, err := svc.Create(context.Background(), CreateRequest{
			Name:           "Deep Clean",
			Category:       CategoryCleaning,
			BasePriceCents: -1,
		})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("a free item is allowed", func(t *testing.T) {
		svc := NewService(newStubRepo())

		item, err := svc.Create(context.Background(), CreateRequest{
			Name:     "Intro Consultation",
			Category: CategoryTraining,
		})
		require.NoError(t, err)
		assert.Zero(t, item.BasePriceCents)
	})
}

func TestServiceUpdate(t *testing.T) {
	seed := func() (*stubRepo, Service) {
		repo := newStubRepo()
		repo.put(&Item{ID: "svc-7", Name: "Deep Clean", Category: CategoryCleaning, BasePriceCents: 12000, Active: true})
		return repo, NewService(repo)
	}

	t.Run("changes only the provided fields", func(t *testing.T) {
		_, svc := seed()

		price := int64(13500)
		item, err := svc.Update(context.Background(), "svc-7", UpdateRequest{BasePriceCents: &price})
		require.NoError(t, err)
		assert.Equal(t, int64(13500), item.BasePriceCents)
		assert.Equal(t, "Deep Clean", item.Name)
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		_, svc := seed()

		cat := Category("gardening")
		_, err := svc.Update(context.Background(), "svc-7", UpdateRequest{Category: &cat})
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("rejects a negative base price", func(t *testing.T) {
		_, svc := seed()

		price := int64(-500)
		_, err := svc.Update(context.Background(), "svc-7", UpdateRequest{BasePriceCents: &price})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestServiceRetire(t *testing.T) {
	t.Run("marks the item inactive without deleting", func(t *testing.T) {
		repo := newStubRepo()
		repo.put(&Item{ID: "svc-7", Name: "Deep Clean", Category: CategoryCleaning, Active: true})
		svc := NewService(repo)

		require.NoError(t, svc.Retire(context.Background(), "svc-7"))

		item, err := svc.GetByID(context.Background(), "svc-7")
		require.NoError(t, err)
		assert.False(t, item.Active)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc := NewService(newStubRepo())
		assert.ErrorIs(t, svc.Retire(context.Background(), "svc-404"), ErrNotFound)
	})
}
