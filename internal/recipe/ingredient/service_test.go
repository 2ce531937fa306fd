package ingredient_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savora/savora/internal/platform/apperr"
	"github.com/savora/savora/internal/recipe/ingredient"
)

// fakeRepository is an in-memory ingredient.Repository enforcing the
// per-owner name uniqueness the real table carries.
type fakeRepository struct {
	byID map[string]*ingredient.Ingredient
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: make(map[string]*ingredient.Ingredient)}
}

func (f *fakeRepository) List(_ context.Context, ownerID string, _, _ int) ([]*ingredient.Ingredient, int, error) {
	out := make([]*ingredient.Ingredient, 0)
	for _, i := range f.byID {
		if i.OwnerID == ownerID {
			copied := *i
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetByID(_ context.Context, ownerID, id string) (*ingredient.Ingredient, error) {
	i, ok := f.byID[id]
	if !ok || i.OwnerID != ownerID {
		return nil, apperr.NotFound("Ingredient")
	}
	copied := *i
	return &copied, nil
}

func (f *fakeRepository) Create(_ context.Context, i *ingredient.Ingredient) error {
	for _, existing := range f.byID {
		if existing.OwnerID == i.OwnerID && existing.Name == i.Name {
			return apperr.Conflict(fmt.Sprintf("Ingredient %q already exists", i.Name))
		}
	}
	copied := *i
	f.byID[i.ID] = &copied
	return nil
}

func (f *fakeRepository) Update(_ context.Context, updated *ingredient.Ingredient) error {
	i, ok := f.byID[updated.ID]
	if !ok || i.OwnerID != updated.OwnerID {
		return apperr.NotFound("Ingredient")
	}
	i.Name = updated.Name
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, ownerID, id string) error {
	i, ok := f.byID[id]
	if !ok || i.OwnerID != ownerID {
		return apperr.NotFound("Ingredient")
	}
	delete(f.byID, id)
	return nil
}

func newTestService(repo ingredient.Repository) *ingredient.Service {
	return ingredient.NewService(repo, slog.New(slog.DiscardHandler))
}

func TestCreate_CanonicalizesName(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), "owner-1", "  Soy   Sauce ")
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Soy Sauce", created.Name)
	assert.Equal(t, "owner-1", created.OwnerID)
}

func TestCreate_DuplicateNameConflicts(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	_, err := service.Create(ctx, "owner-1", "Salt")
	require.NoError(t, err)

	// Same canonical name for the same owner collides.
	_, err = service.Create(ctx, "owner-1", " Salt ")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// A different owner is free to use the name.
	_, err = service.Create(ctx, "owner-2", "Salt")
	assert.NoError(t, err)
}

func TestCreate_EmptyNameRejected(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	_, err := service.Create(context.Background(), "owner-1", "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestRename(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, "owner-1", "Coriander")
	require.NoError(t, err)

	renamed, err := service.Rename(ctx, "owner-1", created.ID, " Cilantro ")
	require.NoError(t, err)
	assert.Equal(t, "Cilantro", renamed.Name)
}

func TestRename_OtherOwnersIngredientIsNotFound(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, "owner-1", "Salt")
	require.NoError(t, err)

	_, err = service.Rename(ctx, "owner-2", created.ID, "Sea Salt")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDelete_OtherOwnersIngredientIsNotFound(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, "owner-1", "Salt")
	require.NoError(t, err)

	err = service.Delete(ctx, "owner-2", created.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.Get(ctx, "owner-1", created.ID)
	assert.NoError(t, err)
}
