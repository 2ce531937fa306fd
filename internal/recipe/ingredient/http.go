package ingredient

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

// RegisterRoutes mounts the ingredient endpoints. The parent router is
// expected to wrap them in RequireAuth; every operation is scoped to the caller.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listIngredients)
	router.Post("/", handler.createIngredient)
	router.Get("/{id}", handler.getIngredient)
	router.Put("/{id}", handler.updateIngredient)
	router.Patch("/{id}", handler.updateIngredient)
	router.Delete("/{id}", handler.deleteIngredient)
}

func (handler *Handler) listIngredients(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	ingredients, total, err := handler.service.List(request.Context(), ownerID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if ingredients == nil {
		ingredients = []*Ingredient{}
	}
	respond.Paginated(writer, request, ingredients, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

type ingredientRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) createIngredient(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ingredientRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	i, err := handler.service.Create(request.Context(), ownerID, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, request, i)
}

func (handler *Handler) getIngredient(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ingredientID, err := requestutil.ID(request, "Ingredient")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	i, err := handler.service.Get(request.Context(), ownerID, ingredientID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, request, i)
}

func (handler *Handler) updateIngredient(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ingredientID, err := requestutil.ID(request, "Ingredient")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ingredientRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	i, err := handler.service.Rename(request.Context(), ownerID, ingredientID, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, request, i)
}

func (handler *Handler) deleteIngredient(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ingredientID, err := requestutil.ID(request, "Ingredient")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), ownerID, ingredientID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer, request)
}
