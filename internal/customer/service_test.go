package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo is an in-memory Repository for exercising the service without a
// database.
type stubRepo struct {
	byID     map[string]*Customer
	archived map[string]bool
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		byID:     make(map[string]*Customer),
		archived: make(map[string]bool),
	}
}

func (r *stubRepo) put(c *Customer) {
	r.byID[c.ID] = c
}

func (r *stubRepo) Create(_ context.Context, c *Customer) error {
	c.ID = "cus-1"
	r.byID[c.ID] = c
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *stubRepo) List(_ context.Context, _ Filter) ([]*Customer, int, error) {
	return nil, 0, nil
}

func (r *stubRepo) Update(_ context.Context, c *Customer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *stubRepo) SetArchived(_ context.Context, id string, archived bool) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	r.archived[id] = archived
	return nil
}

func TestServiceCreate(t *testing.T) {
	t.Run("creates a customer with the given details", func(t *testing.T) {
		svc := NewService(newStubRepo())

		c, err := svc.Create(context.Background(), CreateRequest{
			Name:  "Dana Wells",
			Email: "dana@example.com",
			Phone: "555-0101",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, "Dana Wells", c.Name)
		assert.Equal(t, "dana@example.com", c.Email)
	})

	t.Run("requires a name", func(t *testing.T) {
		svc := NewService(newStubRepo())

		_, err := svc.Create(context.Background(), CreateRequest{Name: ""})
		assert.ErrorIs(t, err, ErrNameRequired)

		// Whitespace alone does not count as a name.
		_, err = svc.Create(context.Background(), CreateRequest{Name: "   "})
		assert.ErrorIs(t, err, ErrNameRequired)
	})
}

func TestServiceUpdate(t *testing.T) {
	seed := func() (*stubRepo, Service) {
		repo := newStubRepo()
		repo.put(&Customer{ID: "cus-7", Name: "Dana Wells", Phone: "555-0101"})
		return repo, NewService(repo)
	}

	t.Run("changes only the provided fields", func(t *testing.T) {
		_, svc := seed()

		phone := "555-0199"
		c, err := svc.Update(context.Background(), "cus-7", UpdateRequest{Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, "555-0199", c.Phone)
		assert.Equal(t, "Dana Wells", c.Name)
	})

	t.Run("rejects blanking out the name", func(t *testing.T) {
		_, svc := seed()

		blank := "  "
		_, err := svc.Update(context.Background(), "cus-7", UpdateRequest{Name: &blank})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("unknown customer", func(t *testing.T) {
		_, svc := seed()

		name := "New Name"
		_, err := svc.Update(context.Background(), "cus-404", UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceArchiveRestore(t *testing.T) {
	repo := newStubRepo()
	repo.put(&Customer{ID: "cus-7", Name: "Dana Wells"})
	svc := NewService(repo)

	t.Run("archive sets the flag without deleting", func(t *testing.T) {
		require.NoError(t, svc.Archive(context.Background(), "cus-7"))
		assert.True(t, repo.archived["cus-7"])

		_, err := svc.GetByID(context.Background(), "cus-7")
		assert.NoError(t, err)
	})

	t.Run("restore clears the flag", func(t *testing.T) {
		require.NoError(t, svc.Restore(context.Background(), "cus-7"))
		assert.False(t, repo.archived["cus-7"])
	})

	t.Run("unknown customer", func(t *testing.T) {
		assert.ErrorIs(t, svc.Archive(context.Background(), "cus-404"), ErrNotFound)
	})
}
