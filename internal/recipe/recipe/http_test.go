package recipe_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savora/savora/internal/platform/middleware"
	"github.com/savora/savora/internal/platform/sec"
	"github.com/savora/savora/internal/recipe/recipe"
)

// stubVerifier maps "token-<userID>" to claims for that user.
type stubVerifier struct{}

func (stubVerifier) VerifyToken(tokenString string) (*sec.AuthClaims, error) {
	userID, found := strings.CutPrefix(tokenString, "token-")
	if !found {
		return nil, errors.New("invalid token")
	}
	return &sec.AuthClaims{UserID: userID, Email: userID + "@savora.app"}, nil
}

// newTestRouter mounts the recipe handler behind the same auth chain the
// real server uses.
func newTestRouter(repo recipe.Repository) http.Handler {
	service := recipe.NewService(repo, &fakeReconciler{}, slog.New(slog.DiscardHandler))
	handler := recipe.NewHandler(service)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(stubVerifier{}))
	router.Route("/recipe/recipes", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		handler.RegisterRoutes(r)
	})
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func createViaAPI(t *testing.T, router http.Handler, token string) string {
	t.Helper()

	response := doJSON(t, router, "POST", "/recipe/recipes", token,
		`{"title":"Miso Ramen","time_minutes":25,"price":12.5,"description":"Rich broth.","tags":["Dinner"]}`)
	require.Equal(t, http.StatusCreated, response.Code)

	var envelope struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.ID)
	return envelope.Data.ID
}

func TestRecipeEndpoints_RequireAuth(t *testing.T) {
	router := newTestRouter(newFakeRepository())

	for _, tt := range []struct{ method, path string }{
		{"GET", "/recipe/recipes"},
		{"POST", "/recipe/recipes"},
		{"GET", "/recipe/recipes/0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"},
		{"DELETE", "/recipe/recipes/0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"},
	} {
		t.Run(tt.method+"_"+tt.path, func(t *testing.T) {
			response := doJSON(t, router, tt.method, tt.path, "", "")
			assert.Equal(t, http.StatusUnauthorized, response.Code)
		})
	}
}

func TestRecipeEndpoints_CrossOwnerIs404(t *testing.T) {
	router := newTestRouter(newFakeRepository())

	recipeID := createViaAPI(t, router, "token-owner-1")
	path := "/recipe/recipes/" + recipeID

	// The owner sees it.
	response := doJSON(t, router, "GET", path, "token-owner-1", "")
	assert.Equal(t, http.StatusOK, response.Code)

	// Everyone else gets 404 — never 403 — on every verb.
	for _, tt := range []struct{ method, body string }{
		{"GET", ""},
		{"PUT", `{"title":"Stolen"}`},
		{"PATCH", `{"title":"Stolen"}`},
		{"DELETE", ""},
	} {
		t.Run(tt.method, func(t *testing.T) {
			response := doJSON(t, router, tt.method, path, "token-owner-2", tt.body)
			assert.Equal(t, http.StatusNotFound, response.Code)
			assert.Contains(t, response.Body.String(), "NOT_FOUND")
		})
	}
}

func TestRecipeEndpoints_MalformedIDIs404(t *testing.T) {
	router := newTestRouter(newFakeRepository())

	response := doJSON(t, router, "GET", "/recipe/recipes/not-a-uuid", "token-owner-1", "")
	assert.Equal(t, http.StatusNotFound, response.Code)
}

func TestRecipeEndpoints_PutIsPartialTolerant(t *testing.T) {
	router := newTestRouter(newFakeRepository())
	recipeID := createViaAPI(t, router, "token-owner-1")

	// PUT with a single field behaves like PATCH.
	response := doJSON(t, router, "PUT", "/recipe/recipes/"+recipeID, "token-owner-1",
		`{"title":"Tonkotsu Ramen"}`)
	require.Equal(t, http.StatusOK, response.Code)

	var envelope struct {
		Data struct {
			Title       string  `json:"title"`
			TimeMinutes int     `json:"time_minutes"`
			Price       float64 `json:"price"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &envelope))
	assert.Equal(t, "Tonkotsu Ramen", envelope.Data.Title)
	assert.Equal(t, 25, envelope.Data.TimeMinutes)
	assert.Equal(t, 12.5, envelope.Data.Price)
}

func TestRecipeEndpoints_EmptyTagsDetach(t *testing.T) {
	router := newTestRouter(newFakeRepository())
	recipeID := createViaAPI(t, router, "token-owner-1")

	response := doJSON(t, router, "PATCH", "/recipe/recipes/"+recipeID, "token-owner-1",
		`{"tags":[]}`)
	require.Equal(t, http.StatusOK, response.Code)

	var envelope struct {
		Data struct {
			Title string            `json:"title"`
			Tags  []json.RawMessage `json:"tags"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Tags)
	assert.Equal(t, "Miso Ramen", envelope.Data.Title)
}

func TestRecipeEndpoints_OwnerKeySilentlyIgnored(t *testing.T) {
	router := newTestRouter(newFakeRepository())
	recipeID := createViaAPI(t, router, "token-owner-1")

	// An owner key in the payload is dropped; the rest of the update applies.
	response := doJSON(t, router, "PATCH", "/recipe/recipes/"+recipeID, "token-owner-1",
		`{"owner":"owner-2","title":"Renamed"}`)
	require.Equal(t, http.StatusOK, response.Code)

	var envelope struct {
		Data struct {
			Owner string `json:"owner"`
			Title string `json:"title"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &envelope))
	assert.Equal(t, "owner-1", envelope.Data.Owner)
	assert.Equal(t, "Renamed", envelope.Data.Title)

	// The recipe still belongs to owner-1; owner-2 never gained access.
	response = doJSON(t, router, "GET", "/recipe/recipes/"+recipeID, "token-owner-1", "")
	assert.Equal(t, http.StatusOK, response.Code)
	response = doJSON(t, router, "GET", "/recipe/recipes/"+recipeID, "token-owner-2", "")
	assert.Equal(t, http.StatusNotFound, response.Code)
}

func TestRecipeEndpoints_ListIsScoped(t *testing.T) {
	router := newTestRouter(newFakeRepository())

	createViaAPI(t, router, "token-owner-1")
	createViaAPI(t, router, "token-owner-2")

	response := doJSON(t, router, "GET", "/recipe/recipes", "token-owner-1", "")
	require.Equal(t, http.StatusOK, response.Code)

	var envelope struct {
		Data []struct {
			Title       string  `json:"title"`
			Description string  `json:"description"`
			Owner       *string `json:"owner"`
		} `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, 1, envelope.Meta.Total)

	// List items carry the description but never the owner.
	assert.Equal(t, "Rich broth.", envelope.Data[0].Description)
	assert.Nil(t, envelope.Data[0].Owner)
}

func TestRecipeEndpoints_Delete(t *testing.T) {
	router := newTestRouter(newFakeRepository())
	recipeID := createViaAPI(t, router, "token-owner-1")

	response := doJSON(t, router, "DELETE", "/recipe/recipes/"+recipeID, "token-owner-1", "")
	assert.Equal(t, http.StatusNoContent, response.Code)

	response = doJSON(t, router, "GET", "/recipe/recipes/"+recipeID, "token-owner-1", "")
	assert.Equal(t, http.StatusNotFound, response.Code)
}
