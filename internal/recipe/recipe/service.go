package recipe

import (
	"context"
	"log/slog"
	"sort"

	"github.com/savora/savora/internal/platform/validate"
	"github.com/savora/savora/internal/recipe/tag"
	"github.com/savora/savora/pkg/uuid"
)

// TagReconciler resolves raw tag names into the owner's tag rows, creating
// missing ones. Satisfied by [tag.Service].
type TagReconciler interface {
	Reconcile(context context.Context, ownerID string, rawNames []string) ([]tag.Tag, error)
}

type Service struct {
	repo   Repository
	tags   TagReconciler
	logger *slog.Logger
}

func NewService(repo Repository, tags TagReconciler, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tags:   tags,
		logger: logger,
	}
}

func (service *Service) List(context context.Context, ownerID string, limit, offset int) ([]*Recipe, int, error) {
	return service.repo.List(context, ownerID, limit, offset)
}

func (service *Service) Get(context context.Context, ownerID, id string) (*Recipe, error) {
	return service.repo.GetByID(context, ownerID, id)
}

// CreateInput carries a new recipe. Tags are raw names; missing tags are
// created for the owner on the fly.
type CreateInput struct {
	Title       string
	TimeMinutes int
	Price       float64
	Description string
	Link        string
	Tags        []string
}

func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Recipe, error) {
	if err := validateFields(input.Title, input.TimeMinutes, input.Price, input.Link); err != nil {
		return nil, err
	}

	resolved, err := service.tags.Reconcile(context, ownerID, input.Tags)
	if err != nil {
		return nil, err
	}
	sortTags(resolved)

	r := &Recipe{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Description: input.Description,
		Link:        input.Link,
		Tags:        resolved,
	}

	if err := service.repo.Create(context, r); err != nil {
		return nil, err
	}

	service.logger.Info("recipe_created",
		slog.String("owner_id", ownerID),
		slog.String("recipe_id", r.ID),
	)
	return r, nil
}

// UpdateInput carries a partial recipe update. Nil pointers mean "leave
// unchanged"; a non-nil empty Tags slice detaches every tag. The owner can
// never be changed through an update.
type UpdateInput struct {
	Title       *string
	TimeMinutes *int
	Price       *float64
	Description *string
	Link        *string
	Tags        *[]string
}

func (service *Service) Update(context context.Context, ownerID, id string, input UpdateInput) (*Recipe, error) {

	// Owner-filtered fetch: another owner's recipe is indistinguishable
	// from a missing one.
	r, err := service.repo.GetByID(context, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		r.Title = *input.Title
	}
	if input.TimeMinutes != nil {
		r.TimeMinutes = *input.TimeMinutes
	}
	if input.Price != nil {
		r.Price = *input.Price
	}
	if input.Description != nil {
		r.Description = *input.Description
	}
	if input.Link != nil {
		r.Link = *input.Link
	}

	if err := validateFields(r.Title, r.TimeMinutes, r.Price, r.Link); err != nil {
		return nil, err
	}

	replaceTags := input.Tags != nil
	if replaceTags {
		resolved, err := service.tags.Reconcile(context, ownerID, *input.Tags)
		if err != nil {
			return nil, err
		}
		sortTags(resolved)
		r.Tags = resolved
	}

	if err := service.repo.Update(context, r, replaceTags); err != nil {
		return nil, err
	}

	return r, nil
}

func (service *Service) Delete(context context.Context, ownerID, id string) error {
	if err := service.repo.Delete(context, ownerID, id); err != nil {
		return err
	}

	service.logger.Info("recipe_deleted",
		slog.String("owner_id", ownerID),
		slog.String("recipe_id", id),
	)
	return nil
}

// validateFields checks the scalar constraints shared by create and update.
func validateFields(title string, timeMinutes int, price float64, link string) error {
	v := &validate.Validator{}
	v.Required("title", title).
		MaxLen("title", title, MaxTitleLength).
		MinInt("time_minutes", timeMinutes, 0).
		MinFloat("price", price, 0).
		MaxDecimals("price", price, 2)

	if link != "" {
		v.MaxLen("link", link, MaxLinkLength).URL("link", link)
	}

	return v.Err()
}

func sortTags(tags []tag.Tag) {
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
}
