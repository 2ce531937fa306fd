package recipe_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savora/savora/internal/platform/apperr"
	"github.com/savora/savora/internal/recipe/recipe"
	"github.com/savora/savora/internal/recipe/tag"
)

// fakeRepository is an in-memory recipe.Repository. It records whether the
// last Update call asked for the tag links to be rewritten.
type fakeRepository struct {
	recipes         map[string]*recipe.Recipe
	lastReplaceTags bool
	updateCalls     int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{recipes: make(map[string]*recipe.Recipe)}
}

func (f *fakeRepository) List(_ context.Context, ownerID string, _, _ int) ([]*recipe.Recipe, int, error) {
	out := make([]*recipe.Recipe, 0)
	for _, r := range f.recipes {
		if r.OwnerID == ownerID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetByID(_ context.Context, ownerID, id string) (*recipe.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok || r.OwnerID != ownerID {
		return nil, apperr.NotFound("Recipe")
	}
	copied := *r
	copied.Tags = append([]tag.Tag(nil), r.Tags...)
	return &copied, nil
}

func (f *fakeRepository) Create(_ context.Context, r *recipe.Recipe) error {
	copied := *r
	copied.Tags = append([]tag.Tag(nil), r.Tags...)
	f.recipes[r.ID] = &copied
	return nil
}

func (f *fakeRepository) Update(_ context.Context, r *recipe.Recipe, replaceTags bool) error {
	stored, ok := f.recipes[r.ID]
	if !ok || stored.OwnerID != r.OwnerID {
		return apperr.NotFound("Recipe")
	}

	f.updateCalls++
	f.lastReplaceTags = replaceTags

	tags := stored.Tags
	if replaceTags {
		tags = append([]tag.Tag(nil), r.Tags...)
	}
	copied := *r
	copied.Tags = tags
	f.recipes[r.ID] = &copied
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, ownerID, id string) error {
	r, ok := f.recipes[id]
	if !ok || r.OwnerID != ownerID {
		return apperr.NotFound("Recipe")
	}
	delete(f.recipes, id)
	return nil
}

// fakeReconciler turns each distinct raw name into a deterministic tag row.
type fakeReconciler struct {
	calls [][]string
}

func (f *fakeReconciler) Reconcile(_ context.Context, ownerID string, rawNames []string) ([]tag.Tag, error) {
	f.calls = append(f.calls, rawNames)

	seen := make(map[string]struct{}, len(rawNames))
	out := make([]tag.Tag, 0, len(rawNames))
	for _, name := range rawNames {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, tag.Tag{
			ID:      fmt.Sprintf("tag-%s-%s", ownerID, name),
			OwnerID: ownerID,
			Name:    name,
		})
	}
	return out, nil
}

func newTestService(repo recipe.Repository, tags recipe.TagReconciler) *recipe.Service {
	return recipe.NewService(repo, tags, slog.New(slog.DiscardHandler))
}

func validCreateInput() recipe.CreateInput {
	return recipe.CreateInput{
		Title:       "Miso Ramen",
		TimeMinutes: 25,
		Price:       12.50,
		Description: "Rich broth with chashu.",
		Link:        "https://example.com/ramen.pdf",
		Tags:        []string{"Japanese", "Dinner"},
	}
}

func TestCreate(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeReconciler{})

	created, err := service.Create(context.Background(), "owner-1", validCreateInput())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "owner-1", created.OwnerID)
	assert.Equal(t, "Miso Ramen", created.Title)

	// Resolved tags come back alphabetical regardless of input order.
	require.Len(t, created.Tags, 2)
	assert.Equal(t, "Dinner", created.Tags[0].Name)
	assert.Equal(t, "Japanese", created.Tags[1].Name)
}

func TestCreate_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*recipe.CreateInput)
	}{
		{"missing_title", func(in *recipe.CreateInput) { in.Title = "" }},
		{"negative_time", func(in *recipe.CreateInput) { in.TimeMinutes = -1 }},
		{"negative_price", func(in *recipe.CreateInput) { in.Price = -0.01 }},
		{"subcent_price", func(in *recipe.CreateInput) { in.Price = 9.999 }},
		{"relative_link", func(in *recipe.CreateInput) { in.Link = "/ramen.pdf" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := newTestService(repo, &fakeReconciler{})

			input := validCreateInput()
			tt.mutate(&input)

			_, err := service.Create(context.Background(), "owner-1", input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
			assert.Empty(t, repo.recipes)
		})
	}
}

func TestCreate_EmptyLinkAllowed(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeReconciler{})

	input := validCreateInput()
	input.Link = ""

	_, err := service.Create(context.Background(), "owner-1", input)
	assert.NoError(t, err)
}

func TestUpdate_PartialMerge(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeReconciler{})
	ctx := context.Background()

	created, err := service.Create(ctx, "owner-1", validCreateInput())
	require.NoError(t, err)

	newTitle := "Tonkotsu Ramen"
	updated, err := service.Update(ctx, "owner-1", created.ID, recipe.UpdateInput{
		Title: &newTitle,
	})
	require.NoError(t, err)

	// Only the title changed; everything else kept its stored value.
	assert.Equal(t, "Tonkotsu Ramen", updated.Title)
	assert.Equal(t, created.TimeMinutes, updated.TimeMinutes)
	assert.Equal(t, created.Price, updated.Price)
	assert.Equal(t, created.Description, updated.Description)
}

func TestUpdate_UnchangedPayloadIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeReconciler{})
	ctx := context.Background()

	input := validCreateInput()
	created, err := service.Create(ctx, "owner-1", input)
	require.NoError(t, err)

	// Resubmit every field with its current value, as a full update.
	same := recipe.UpdateInput{
		Title:       &input.Title,
		TimeMinutes: &input.TimeMinutes,
		Price:       &input.Price,
		Description: &input.Description,
		Link:        &input.Link,
		Tags:        &input.Tags,
	}
	updated, err := service.Update(ctx, "owner-1", created.ID, same)
	require.NoError(t, err)

	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.TimeMinutes, updated.TimeMinutes)
	assert.Equal(t, created.Price, updated.Price)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Link, updated.Link)
	require.Len(t, updated.Tags, len(created.Tags))
	for i := range created.Tags {
		assert.Equal(t, created.Tags[i].Name, updated.Tags[i].Name)
	}
}

func TestUpdate_NilTagsLeavesLinksUntouched(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeReconciler{})
	ctx := context.Background()

	created, err := service.Create(ctx, "owner-1", validCreateInput())
	require.NoError(t, err)

	newTitle := "Shoyu Ramen"
	updated, err := service.Update(ctx, "owner-1", created.ID, recipe.UpdateInput{
		Title: &newTitle,
	})
	require.NoError(t, err)

	assert.False(t, repo.lastReplaceTags)
	assert.Len(t, updated.Tags, 2)
}

func TestUpdate_EmptyTagsDetachesAll(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeReconciler{})
	ctx := context.Background()

	created, err := service.Create(ctx, "owner-1", validCreateInput())
	require.NoError(t, err)

	empty := []string{}
	updated, err := service.Update(ctx, "owner-1", created.ID, recipe.UpdateInput{
		Tags: &empty,
	})
	require.NoError(t, err)

	// Tag links rewritten to nothing; scalar fields untouched.
	assert.True(t, repo.lastReplaceTags)
	assert.Empty(t, updated.Tags)
	assert.Equal(t, created.Title, updated.Title)

	stored, err := service.Get(ctx, "owner-1", created.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Tags)
}

func TestUpdate_ReplacesTags(t *testing.T) {
	repo := newFakeRepository()
	reconciler := &fakeReconciler{}
	service := newTestService(repo, reconciler)
	ctx := context.Background()

	created, err := service.Create(ctx, "owner-1", validCreateInput())
	require.NoError(t, err)

	newTags := []string{"Vegan", "Lunch"}
	updated, err := service.Update(ctx, "owner-1", created.ID, recipe.UpdateInput{
		Tags: &newTags,
	})
	require.NoError(t, err)

	assert.True(t, repo.lastReplaceTags)
	require.Len(t, updated.Tags, 2)
	assert.Equal(t, "Lunch", updated.Tags[0].Name)
	assert.Equal(t, "Vegan", updated.Tags[1].Name)
}

func TestUpdate_CrossOwnerIsNotFound(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeReconciler{})
	ctx := context.Background()

	created, err := service.Create(ctx, "owner-1", validCreateInput())
	require.NoError(t, err)

	newTitle := "Stolen Ramen"
	_, err = service.Update(ctx, "owner-2", created.ID, recipe.UpdateInput{Title: &newTitle})
	require.Error(t, err)

	// Another owner's recipe must be indistinguishable from a missing one.
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestUpdate_OwnerImmutable(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeReconciler{})
	ctx := context.Background()

	created, err := service.Create(ctx, "owner-1", validCreateInput())
	require.NoError(t, err)

	// UpdateInput has no owner field at all; verify the stored owner
	// survives a full update.
	newTitle := "Updated"
	updated, err := service.Update(ctx, "owner-1", created.ID, recipe.UpdateInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "owner-1", updated.OwnerID)
}

func TestUpdate_MergedStateIsValidated(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeReconciler{})
	ctx := context.Background()

	created, err := service.Create(ctx, "owner-1", validCreateInput())
	require.NoError(t, err)

	badPrice := -1.0
	_, err = service.Update(ctx, "owner-1", created.ID, recipe.UpdateInput{Price: &badPrice})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Zero(t, repo.updateCalls)
}

func TestDelete_CrossOwnerIsNotFound(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeReconciler{})
	ctx := context.Background()

	created, err := service.Create(ctx, "owner-1", validCreateInput())
	require.NoError(t, err)

	err = service.Delete(ctx, "owner-2", created.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	// Still retrievable by its owner.
	_, err = service.Get(ctx, "owner-1", created.ID)
	assert.NoError(t, err)
}
