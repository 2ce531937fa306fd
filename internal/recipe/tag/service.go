package tag

import (
	"context"
	"log/slog"

	"github.com/savora/savora/internal/platform/validate"
	"github.com/savora/savora/pkg/names"
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

func (service *Service) List(context context.Context, ownerID string, limit, offset int) ([]*Tag, int, error) {
	return service.repo.List(context, ownerID, limit, offset)
}

func (service *Service) Get(context context.Context, ownerID, id string) (*Tag, error) {
	return service.repo.GetByID(context, ownerID, id)
}

// Rename updates a tag's name. The new name is canonicalized before storage,
// and a collision with another of the owner's tags surfaces as a Conflict.
func (service *Service) Rename(context context.Context, ownerID, id, name string) (*Tag, error) {
	canonical := names.Canonical(name)

	v := &validate.Validator{}
	v.Required("name", canonical).MaxLen("name", canonical, MaxNameLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	t, err := service.repo.GetByID(context, ownerID, id)
	if err != nil {
		return nil, err
	}

	t.Name = canonical
	if err := service.repo.Update(context, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (service *Service) Delete(context context.Context, ownerID, id string) error {
	if err := service.repo.Delete(context, ownerID, id); err != nil {
		return err
	}

	service.logger.Info("tag_deleted",
		slog.String("owner_id", ownerID),
		slog.String("tag_id", id),
	)
	return nil
}

// Reconcile resolves a list of raw tag names into the owner's tag rows,
// creating missing ones. Names are canonicalized and de-duplicated first,
// so ["Vegan", " vegan  "] yields a single tag.
func (service *Service) Reconcile(context context.Context, ownerID string, rawNames []string) ([]Tag, error) {
	seen := make(map[string]struct{}, len(rawNames))
	resolved := make([]Tag, 0, len(rawNames))

	for _, raw := range rawNames {
		canonical := names.Canonical(raw)
		if canonical == "" {
			continue
		}
		if _, duplicate := seen[canonical]; duplicate {
			continue
		}
		seen[canonical] = struct{}{}

		v := &validate.Validator{}
		v.MaxLen("tags", canonical, MaxNameLength)
		if err := v.Err(); err != nil {
			return nil, err
		}

		t, err := service.repo.GetOrCreate(context, ownerID, canonical)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *t)
	}

	return resolved, nil
}
