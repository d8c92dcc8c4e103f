package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/api"
	"github.com/platewise/backend/internal/router"
	"github.com/platewise/backend/internal/service"
	"github.com/platewise/backend/internal/testdb"
)

// testEnv is a full HTTP stack on an in-memory database, with the S3 and
// redis integrations left unconfigured and the generation upstream
// replaceable per test.
type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	auth   *service.AuthService
}

func newTestEnv(t *testing.T, drafter api.RecipeDrafter, generator service.RecipeGenerator) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.OpenSQLite(t)
	auth := service.NewAuthService(db, "test-secret")
	recipes := service.NewRecipeService(db)
	mealplan := service.NewMealPlanService(db)
	profile := service.NewProfileService(db)
	planner := service.NewPlannerService(recipes, mealplan, generator)

	engine := router.SetupRouter(db, router.Handlers{
		Auth:     api.NewAuthHandler(auth),
		Recipe:   api.NewRecipeHandler(recipes, nil, auth),
		MealPlan: api.NewMealPlanHandler(mealplan, auth),
		Profile:  api.NewProfileHandler(profile, auth),
		AI:       api.NewAIHandler(drafter, planner, profile, auth, nil),
	})

	return &testEnv{db: db, router: engine, auth: auth}
}

// registerUser creates an account through the real endpoint and returns its
// bearer token and id.
func (e *testEnv) registerUser(t *testing.T, email string) (string, uuid.UUID) {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	claims, err := e.auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	return resp.Token, claims.UserID
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}
