package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"profhub/internal/config"
	"profhub/internal/database"
	"profhub/internal/pkg/logger"
	"profhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type professionalBody struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	PhoneNumber   string  `json:"phone_number"`
	Description   string  `json:"description"`
	CategoryIDs   []int64 `json:"category_ids"`
	AverageRating float64 `json:"average_rating"`
	Categories    []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"categories"`
}

type suite struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
}

func setup(t *testing.T) *suite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(
		fmt.Sprintf("file:router_test_%s?mode=memory&cache=shared", name),
		database.Options{Log: logger.Nop(), LogLevel: gormlogger.Silent},
	)
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	cfg := &config.Config{
		AppEnv:     "test",
		JWTSecret:  "router-test-secret",
		JWTTTL:     time.Hour,
		CookieName: "session",
	}

	return &suite{t: t, router: New(cfg, db, logger.Nop()), db: db}
}

func (s *suite) do(method, path string, body any, token string) (*httptest.ResponseRecorder, testResponse) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp testResponse
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

// registerAndLogin returns the new user's id and a bearer token.
func (s *suite) registerAndLogin(name, email string) (int64, string) {
	s.t.Helper()

	w, resp := s.do(http.MethodPost, "/api/v1/users", map[string]string{
		"name": name, "email": email, "password": "password123",
	}, "")
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var reg struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	require.NoError(s.t, json.Unmarshal(resp.Data, &reg))

	w, resp = s.do(http.MethodPost, "/api/v1/users/login", map[string]string{
		"email": email, "password": "password123",
	}, "")
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(resp.Data, &login))
	require.NotEmpty(s.t, login.Token)

	return reg.User.ID, login.Token
}

func (s *suite) createCategory(token, name string) int64 {
	s.t.Helper()

	w, resp := s.do(http.MethodPost, "/api/v1/categories", map[string]string{"name": name}, token)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var c struct {
		ID int64 `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(resp.Data, &c))
	return c.ID
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealth(t *testing.T) {
	s := setup(t)

	w, resp := s.do(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuthFlow(t *testing.T) {
	s := setup(t)
	_, token := s.registerAndLogin("Ann", "ann@example.com")

	w, _ := s.do(http.MethodPost, "/api/v1/users", map[string]string{
		"name": "Ann", "email": "ann@example.com", "password": "password123",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, resp := s.do(http.MethodGet, "/api/v1/users/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), "ann@example.com")
	assert.NotContains(t, string(resp.Data), "password")

	w, _ = s.do(http.MethodGet, "/api/v1/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp = s.do(http.MethodPost, "/api/v1/users/login", map[string]string{
		"email": "ann@example.com", "password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	s := setup(t)
	s.registerAndLogin("Bob", "bob@example.com")

	body, _ := json.Marshal(map[string]string{"email": "bob@example.com", "password": "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.AddCookie(session)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfessionalLifecycle(t *testing.T) {
	s := setup(t)
	userID, token := s.registerAndLogin("Pat Plumber", "pat@example.com")

	c1 := s.createCategory(token, "Plumbing")
	c2 := s.createCategory(token, "Heating")
	c3 := s.createCategory(token, "Electrical")

	// create
	w, resp := s.do(http.MethodPost, "/api/v1/professionals", map[string]any{
		"phone_number": "+1 555 0100",
		"description":  "Pipes and boilers",
		"categories":   []int64{c1, c2},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[professionalBody](t, resp.Data)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, "Pat Plumber", created.Name)
	assert.ElementsMatch(t, []int64{c1, c2}, created.CategoryIDs)
	assert.NotContains(t, string(resp.Data), "password")

	path := fmt.Sprintf("/api/v1/professionals/%d", created.ID)

	// a second profile for the same user conflicts
	w, resp = s.do(http.MethodPost, "/api/v1/professionals", map[string]any{
		"phone_number": "1", "description": "again",
	}, token)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", resp.Error.Code)

	// read back with categories
	w, resp = s.do(http.MethodGet, path+"/categories", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[professionalBody](t, resp.Data)
	require.Len(t, got.Categories, 2)
	assert.Equal(t, "Plumbing", got.Categories[0].Name)

	// replace categories
	w, resp = s.do(http.MethodPatch, path, map[string]any{"categories": []int64{c2, c3}}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got = decode[professionalBody](t, resp.Data)
	ids := []int64{}
	for _, c := range got.Categories {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []int64{c2, c3}, ids)

	// scalar patch leaves categories untouched
	w, resp = s.do(http.MethodPatch, path, map[string]any{"description": "Only boilers now"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[professionalBody](t, resp.Data)
	assert.Equal(t, "Only boilers now", got.Description)
	assert.Len(t, got.Categories, 2)

	// list
	w, resp = s.do(http.MethodGet, "/api/v1/professionals", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]professionalBody](t, resp.Data), 1)

	// delete
	w, _ = s.do(http.MethodDelete, path, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)

	var assoc int64
	require.NoError(t, s.db.Table("professionals_categories").Count(&assoc).Error)
	assert.Zero(t, assoc)
}

func TestProfessionalErrors(t *testing.T) {
	s := setup(t)
	_, token := s.registerAndLogin("Pat", "pat@example.com")
	_, other := s.registerAndLogin("Olga", "olga@example.com")

	w, resp := s.do(http.MethodPost, "/api/v1/professionals", map[string]any{
		"phone_number": "+1", "description": "x", "categories": []int64{999},
	}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "REFERENTIAL_ERROR", resp.Error.Code)

	w, resp = s.do(http.MethodPost, "/api/v1/professionals", map[string]any{"description": "x"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/professionals", map[string]any{"phone_number": "1", "description": "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp = s.do(http.MethodPost, "/api/v1/professionals", map[string]any{"phone_number": "1", "description": "x"}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	p := decode[professionalBody](t, resp.Data)
	path := fmt.Sprintf("/api/v1/professionals/%d", p.ID)

	w, _ = s.do(http.MethodPatch, path, map[string]any{"description": "hijacked"}, other)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodPatch, "/api/v1/professionals/424242", map[string]any{"description": "x"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/professionals/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewsAndRanking(t *testing.T) {
	s := setup(t)
	_, proA := s.registerAndLogin("Alice", "alice@example.com")
	_, proB := s.registerAndLogin("Bruno", "bruno@example.com")
	_, proC := s.registerAndLogin("Carla", "carla@example.com")
	_, client := s.registerAndLogin("Client", "client@example.com")

	ids := make([]int64, 0, 3)
	for _, token := range []string{proA, proB, proC} {
		w, resp := s.do(http.MethodPost, "/api/v1/professionals", map[string]any{
			"phone_number": "+1 555", "description": "Handy",
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		ids = append(ids, decode[professionalBody](t, resp.Data).ID)
	}

	review := func(token string, id int64, rating int) int {
		w, _ := s.do(http.MethodPost, fmt.Sprintf("/api/v1/professionals/%d/reviews", id),
			map[string]any{"rating": rating, "comment": "ok"}, token)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, review(client, ids[0], 3))
	assert.Equal(t, http.StatusCreated, review(client, ids[1], 5))
	assert.Equal(t, http.StatusCreated, review(proC, ids[0], 5))

	assert.Equal(t, http.StatusConflict, review(client, ids[0], 4))
	assert.Equal(t, http.StatusForbidden, review(proA, ids[0], 5))
	assert.Equal(t, http.StatusBadRequest, review(client, ids[2], 6))
	assert.Equal(t, http.StatusNotFound, review(client, 999, 4))

	w, resp := s.do(http.MethodGet, fmt.Sprintf("/api/v1/professionals/%d/reviews", ids[0]), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, resp.Data), 2)

	for _, path := range []string{"/api/v1/professionals/ranking", "/api/v1/professionals?sort=rating"} {
		w, resp = s.do(http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		ranked := decode[[]professionalBody](t, resp.Data)
		require.Len(t, ranked, 3)

		assert.Equal(t, ids[1], ranked[0].ID)
		assert.InDelta(t, 5.0, ranked[0].AverageRating, 1e-9)
		assert.Equal(t, ids[0], ranked[1].ID)
		assert.InDelta(t, 4.0, ranked[1].AverageRating, 1e-9)
		assert.Equal(t, ids[2], ranked[2].ID)
		assert.Zero(t, ranked[2].AverageRating)
	}
}

func TestCategoryEndpoints(t *testing.T) {
	s := setup(t)
	_, token := s.registerAndLogin("Admin", "admin@example.com")

	id := s.createCategory(token, "Gardening")

	w, _ := s.do(http.MethodPost, "/api/v1/categories", map[string]string{"name": "Gardening"}, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, resp := s.do(http.MethodGet, "/api/v1/categories", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, resp.Data), 1)

	w, _ = s.do(http.MethodGet, fmt.Sprintf("/api/v1/categories/%d", id), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d", id), nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, fmt.Sprintf("/api/v1/categories/%d", id), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
