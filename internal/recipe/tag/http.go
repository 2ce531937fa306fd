package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/savora/savora/internal/platform/request"
	"github.com/savora/savora/internal/platform/respond"
	"github.com/savora/savora/internal/platform/validate"
	"github.com/savora/savora/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the tag endpoints. The parent router is expected to
// wrap them in RequireAuth; every operation is scoped to the caller.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTags)
	router.Get("/{id}", handler.getTag)
	router.Put("/{id}", handler.updateTag)
	router.Patch("/{id}", handler.updateTag)
	router.Delete("/{id}", handler.deleteTag)
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	tags, total, err := handler.service.List(request.Context(), ownerID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if tags == nil {
		tags = []*Tag{}
	}
	respond.Paginated(writer, request, tags, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getTag(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tagID, err := requestutil.ID(request, "Tag")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	t, err := handler.service.Get(request.Context(), ownerID, tagID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, request, t)
}

type updateTagRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) updateTag(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tagID, err := requestutil.ID(request, "Tag")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTagRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	t, err := handler.service.Rename(request.Context(), ownerID, tagID, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, request, t)
}

func (handler *Handler) deleteTag(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tagID, err := requestutil.ID(request, "Tag")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), ownerID, tagID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer, request)
}
