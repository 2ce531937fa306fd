package ingredient

import (
	"context"
	"log/slog"

	"github.com/savora/savora/internal/platform/validate"
	"github.com/savora/savora/pkg/names"
	"github.com/savora/savora/pkg/uuid"
)

// MaxNameLength mirrors the database column constraint.
const MaxNameLength = 255

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context, ownerID string, limit, offset int) ([]*Ingredient, int, error) {
	return service.repo.List(context, ownerID, limit, offset)
}

func (service *Service) Get(context context.Context, ownerID, id string) (*Ingredient, error) {
	return service.repo.GetByID(context, ownerID, id)
}

// Create adds a new ingredient to the owner's pantry. The name is
// canonicalized; a duplicate surfaces as a Conflict.
func (service *Service) Create(context context.Context, ownerID, name string) (*Ingredient, error) {
	canonical := names.Canonical(name)

	v := &validate.Validator{}
	v.Required("name", canonical).MaxLen("name", canonical, MaxNameLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	i := &Ingredient{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Name:    canonical,
	}

	if err := service.repo.Create(context, i); err != nil {
		return nil, err
	}
	return i, nil
}

// Rename updates an ingredient's name, canonicalized before storage.
func (service *Service) Rename(context context.Context, ownerID, id, name string) (*Ingredient, error) {
	canonical := names.Canonical(name)

	v := &validate.Validator{}
	v.Required("name", canonical).MaxLen("name", canonical, MaxNameLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	i, err := service.repo.GetByID(context, ownerID, id)
	if err != nil {
		return nil, err
	}

	i.Name = canonical
	if err := service.repo.Update(context, i); err != nil {
		return nil, err
	}

	return i, nil
}

func (service *Service) Delete(context context.Context, ownerID, id string) error {
	if err := service.repo.Delete(context, ownerID, id); err != nil {
		return err
	}

	service.logger.Info("ingredient_deleted",
		slog.String("owner_id", ownerID),
		slog.String("ingredient_id", id),
	)
	return nil
}
