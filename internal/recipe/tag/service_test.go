package tag_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savora/savora/internal/platform/apperr"
	"github.com/savora/savora/internal/recipe/tag"
)

// fakeRepository is an in-memory tag.Repository keyed by owner + name.
type fakeRepository struct {
	tags    map[string]*tag.Tag // key: ownerID + "/" + name
	byID    map[string]*tag.Tag
	created int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		tags: make(map[string]*tag.Tag),
		byID: make(map[string]*tag.Tag),
	}
}

func (f *fakeRepository) List(_ context.Context, ownerID string, _, _ int) ([]*tag.Tag, int, error) {
	out := make([]*tag.Tag, 0)
	for _, t := range f.byID {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetByID(_ context.Context, ownerID, id string) (*tag.Tag, error) {
	t, ok := f.byID[id]
	if !ok || t.OwnerID != ownerID {
		return nil, apperr.NotFound("Tag")
	}
	copied := *t
	return &copied, nil
}

func (f *fakeRepository) GetOrCreate(_ context.Context, ownerID, name string) (*tag.Tag, error) {
	key := ownerID + "/" + name
	if existing, ok := f.tags[key]; ok {
		copied := *existing
		return &copied, nil
	}

	f.created++
	t := &tag.Tag{ID: fmt.Sprintf("tag-%d", f.created), OwnerID: ownerID, Name: name}
	f.tags[key] = t
	f.byID[t.ID] = t
	copied := *t
	return &copied, nil
}

func (f *fakeRepository) Update(_ context.Context, updated *tag.Tag) error {
	t, ok := f.byID[updated.ID]
	if !ok || t.OwnerID != updated.OwnerID {
		return apperr.NotFound("Tag")
	}
	delete(f.tags, t.OwnerID+"/"+t.Name)
	t.Name = updated.Name
	f.tags[t.OwnerID+"/"+t.Name] = t
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, ownerID, id string) error {
	t, ok := f.byID[id]
	if !ok || t.OwnerID != ownerID {
		return apperr.NotFound("Tag")
	}
	delete(f.tags, t.OwnerID+"/"+t.Name)
	delete(f.byID, id)
	return nil
}

func newTestService(repo tag.Repository) *tag.Service {
	return tag.NewService(repo, slog.New(slog.DiscardHandler))
}

func TestReconcile_CanonicalizesAndDeduplicates(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	resolved, err := service.Reconcile(context.Background(), "owner-1", []string{
		"Vegan", " vegan ", "  Vegan", "Comfort  Food",
	})
	require.NoError(t, err)

	// " vegan " differs by case so it is a distinct tag; the duplicate
	// "  Vegan" collapses into the first.
	require.Len(t, resolved, 3)
	assert.Equal(t, 3, repo.created)
	assert.Equal(t, "Vegan", resolved[0].Name)
	assert.Equal(t, "vegan", resolved[1].Name)
	assert.Equal(t, "Comfort Food", resolved[2].Name)
}

func TestReconcile_SkipsEmptyNames(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	resolved, err := service.Reconcile(context.Background(), "owner-1", []string{"", "   ", "Dessert"})
	require.NoError(t, err)

	require.Len(t, resolved, 1)
	assert.Equal(t, "Dessert", resolved[0].Name)
}

func TestReconcile_ReusesExistingTags(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	first, err := service.Reconcile(ctx, "owner-1", []string{"Dinner"})
	require.NoError(t, err)

	second, err := service.Reconcile(ctx, "owner-1", []string{"Dinner", "Lunch"})
	require.NoError(t, err)

	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, 2, repo.created)
}

func TestReconcile_TagsAreOwnerScoped(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	mine, err := service.Reconcile(ctx, "owner-1", []string{"Dinner"})
	require.NoError(t, err)

	theirs, err := service.Reconcile(ctx, "owner-2", []string{"Dinner"})
	require.NoError(t, err)

	// Same name, different owners: two distinct rows.
	assert.NotEqual(t, mine[0].ID, theirs[0].ID)
}

func TestReconcile_RejectsOverlongNames(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	long := make([]byte, tag.MaxNameLength+1)
	for i := range long {
		long[i] = 'a'
	}

	_, err := service.Reconcile(context.Background(), "owner-1", []string{string(long)})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestRename(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	resolved, err := service.Reconcile(ctx, "owner-1", []string{"Deserts"})
	require.NoError(t, err)

	renamed, err := service.Rename(ctx, "owner-1", resolved[0].ID, "  Desserts ")
	require.NoError(t, err)
	assert.Equal(t, "Desserts", renamed.Name)

	fetched, err := service.Get(ctx, "owner-1", resolved[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Desserts", fetched.Name)
}

func TestRename_OtherOwnersTagIsNotFound(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	resolved, err := service.Reconcile(ctx, "owner-1", []string{"Dinner"})
	require.NoError(t, err)

	_, err = service.Rename(ctx, "owner-2", resolved[0].ID, "Supper")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRename_EmptyNameRejected(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	resolved, err := service.Reconcile(ctx, "owner-1", []string{"Dinner"})
	require.NoError(t, err)

	_, err = service.Rename(ctx, "owner-1", resolved[0].ID, "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestDelete_OtherOwnersTagIsNotFound(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	resolved, err := service.Reconcile(ctx, "owner-1", []string{"Dinner"})
	require.NoError(t, err)

	err = service.Delete(ctx, "owner-2", resolved[0].ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	// Still present for the real owner.
	_, err = service.Get(ctx, "owner-1", resolved[0].ID)
	assert.NoError(t, err)
}
