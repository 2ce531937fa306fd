package recipe

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/savora/savora/internal/platform/request"
	"github.com/savora/savora/internal/platform/respond"
	"github.com/savora/savora/internal/platform/validate"
	"github.com/savora/savora/internal/recipe/tag"
	"github.com/savora/savora/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the recipe endpoints. The parent router is expected
// to wrap them in RequireAuth; every operation is scoped to the caller.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listRecipes)
	router.Post("/", handler.createRecipe)
	router.Get("/{id}", handler.getRecipe)
	router.Put("/{id}", handler.updateRecipe)
	router.Patch("/{id}", handler.updateRecipe)
	router.Delete("/{id}", handler.deleteRecipe)
}

// recipeListItem is the list projection: everything but the owner.
type recipeListItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	TimeMinutes int       `json:"time_minutes"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Tags        []tag.Tag `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

func (handler *Handler) listRecipes(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	recipes, total, err := handler.service.List(request.Context(), ownerID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items := make([]recipeListItem, 0, len(recipes))
	for _, r := range recipes {
		items = append(items, recipeListItem{
			ID:          r.ID,
			Title:       r.Title,
			TimeMinutes: r.TimeMinutes,
			Price:       r.Price,
			Description: r.Description,
			Link:        r.Link,
			Tags:        r.Tags,
			CreatedAt:   r.CreatedAt,
		})
	}

	respond.Paginated(writer, request, items, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

type createRecipeRequest struct {
	Title       string   `json:"title"`
	TimeMinutes int      `json:"time_minutes"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
	Tags        []string `json:"tags"`
}

func (handler *Handler) createRecipe(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRecipeRequest
	if err := requestutil.DecodeJSONAllowUnknown(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	r, err := handler.service.Create(request.Context(), ownerID, CreateInput{
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Description: input.Description,
		Link:        input.Link,
		Tags:        input.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, request, r)
}

func (handler *Handler) getRecipe(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipeID, err := requestutil.ID(request, "Recipe")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	r, err := handler.service.Get(request.Context(), ownerID, recipeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, request, r)
}

// updateRecipeRequest is shared by PUT and PATCH: absent fields are left
// unchanged either way, and "tags": [] explicitly detaches every tag. The
// decoder drops unknown keys, so a client-sent "owner" is silently ignored
// and the stored owner never changes.
type updateRecipeRequest struct {
	Title       *string   `json:"title"`
	TimeMinutes *int      `json:"time_minutes"`
	Price       *float64  `json:"price"`
	Description *string   `json:"description"`
	Link        *string   `json:"link"`
	Tags        *[]string `json:"tags"`
}

func (handler *Handler) updateRecipe(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipeID, err := requestutil.ID(request, "Recipe")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRecipeRequest
	if err := requestutil.DecodeJSONAllowUnknown(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	r, err := handler.service.Update(request.Context(), ownerID, recipeID, UpdateInput{
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Description: input.Description,
		Link:        input.Link,
		Tags:        input.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, request, r)
}

func (handler *Handler) deleteRecipe(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	recipeID, err := requestutil.ID(request, "Recipe")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), ownerID, recipeID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer, request)
}
