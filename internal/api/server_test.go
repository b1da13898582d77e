package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastelog/tastelog/internal/draft"
	"github.com/tastelog/tastelog/internal/journal"
	"github.com/tastelog/tastelog/internal/kvstore"
	"github.com/tastelog/tastelog/internal/observability"
	"github.com/tastelog/tastelog/internal/recordstore"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	kv := kvstore.NewMemoryKV()
	t.Cleanup(func() { kv.Close() })

	log := observability.NewLogger("test", io.Discard, slog.LevelError)
	store := recordstore.New(kv, log)
	require.NoError(t, store.Initialize(context.Background()))

	return NewServer(journal.New(store), store, draft.NewHolder(), log)
}

// do performs a request and decodes the JSON response body into out.
func do(t *testing.T, s *Server, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		blob, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(blob)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	if out != nil && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func createItem(t *testing.T, s *Server, title, category string, rating float64) int64 {
	t.Helper()
	var resp struct {
		ID int64 `json:"id"`
	}
	w := do(t, s, http.MethodPost, "/items", map[string]any{
		"title":    title,
		"category": category,
		"rating":   rating,
	}, &resp)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return resp.ID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	var resp map[string]any
	w := do(t, s, http.MethodGet, "/healthz", nil, &resp)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, true, resp["ready"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCreateAndGetItem(t *testing.T) {
	s := newTestServer(t)

	id := createItem(t, s, "Apple Pie", "sweets", 4.5)

	var got struct {
		ID       int64    `json:"id"`
		Title    string   `json:"title"`
		Category string   `json:"category"`
		Rating   float64  `json:"rating"`
		Tries    []string `json:"tries"`
	}
	w := do(t, s, http.MethodGet, fmt.Sprintf("/items/%d", id), nil, &got)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Apple Pie", got.Title)
	assert.Equal(t, "Sweets", got.Category, "category must be normalized")
	assert.Equal(t, 4.5, got.Rating)
	assert.Empty(t, got.Tries)
}

func TestCreateItem_Validation(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/items", map[string]any{"title": "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/items", map[string]any{"title": "X", "rating": 7}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateItem_WithFirstTry(t *testing.T) {
	s := newTestServer(t)

	var resp struct {
		ID int64 `json:"id"`
	}
	w := do(t, s, http.MethodPost, "/items", map[string]any{
		"title":    "Oysters",
		"category": "Seafood",
		"firstTry": "2024-03-15",
	}, &resp)
	require.Equal(t, http.StatusCreated, w.Code)

	var tries struct {
		Tries     []string `json:"tries"`
		LastTried *string  `json:"lastTried"`
	}
	w = do(t, s, http.MethodGet, fmt.Sprintf("/items/%d/tries", resp.ID), nil, &tries)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, tries.Tries, 1)
	assert.Equal(t, "2024-03-15T12:00:00Z", tries.Tries[0])
	require.NotNil(t, tries.LastTried)
	assert.Equal(t, "2024-03-15T12:00:00Z", *tries.LastTried)
}

func TestGetItem_NotFound(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/items/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodGet, "/items/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryItems(t *testing.T) {
	s := newTestServer(t)

	createItem(t, s, "Apple Pie", "Fruits", 4)
	createItem(t, s, "Apple Juice", "Beverages", 3)
	createItem(t, s, "Banana Bread", "Fruits", 5)

	var resp struct {
		Items []struct {
			Title string `json:"title"`
		} `json:"items"`
	}
	w := do(t, s, http.MethodGet, "/items?search=apple&category=Fruits", nil, &resp)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Apple Pie", resp.Items[0].Title)

	resp.Items = nil
	w = do(t, s, http.MethodGet, "/items?sort=title", nil, &resp)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "Apple Juice", resp.Items[0].Title)
}

func TestUpdateItem(t *testing.T) {
	s := newTestServer(t)
	id := createItem(t, s, "Cod", "Seafood", 3)

	w := do(t, s, http.MethodPut, fmt.Sprintf("/items/%d", id), map[string]any{"rating": 5}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Rating float64 `json:"rating"`
		Title  string  `json:"title"`
	}
	do(t, s, http.MethodGet, fmt.Sprintf("/items/%d", id), nil, &got)
	assert.Equal(t, 5.0, got.Rating)
	assert.Equal(t, "Cod", got.Title)

	w = do(t, s, http.MethodPut, "/items/999", map[string]any{"rating": 1}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteItem_Cascades(t *testing.T) {
	s := newTestServer(t)
	id := createItem(t, s, "Ramen", "Other", 4)

	w := do(t, s, http.MethodPost, fmt.Sprintf("/items/%d/tries", id), nil, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, s, http.MethodDelete, fmt.Sprintf("/items/%d", id), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodGet, fmt.Sprintf("/items/%d", id), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodDelete, fmt.Sprintf("/items/%d", id), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogTry_CustomDate(t *testing.T) {
	s := newTestServer(t)
	id := createItem(t, s, "Tea", "Beverages", 4)

	w := do(t, s, http.MethodPost, fmt.Sprintf("/items/%d/tries", id),
		map[string]any{"date": "2024-03-15T23:59:00Z"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var tries struct {
		Tries []string `json:"tries"`
	}
	do(t, s, http.MethodGet, fmt.Sprintf("/items/%d/tries", id), nil, &tries)
	require.Len(t, tries.Tries, 1)
	assert.Equal(t, "2024-03-15T12:00:00Z", tries.Tries[0])
}

func TestLogTry_MissingItem(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPost, "/items/42/tries", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecentAndStreak(t *testing.T) {
	s := newTestServer(t)
	id := createItem(t, s, "Espresso", "Beverages", 5)

	do(t, s, http.MethodPost, fmt.Sprintf("/items/%d/tries", id), nil, nil)

	var recent struct {
		Events []struct {
			Title string `json:"title"`
		} `json:"events"`
	}
	w := do(t, s, http.MethodGet, "/tries/recent?limit=5", nil, &recent)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, recent.Events, 1)
	assert.Equal(t, "Espresso", recent.Events[0].Title)

	var streak struct {
		Streak int `json:"streak"`
	}
	w = do(t, s, http.MethodGet, "/streak", nil, &streak)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, streak.Streak)
}

func TestStockPhotos(t *testing.T) {
	s := newTestServer(t)

	var resp struct {
		Photos []struct {
			ID string `json:"id"`
		} `json:"photos"`
	}
	w := do(t, s, http.MethodGet, "/photos/stock?search=berry", nil, &resp)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Photos, 1)
	assert.Equal(t, "strawberry", resp.Photos[0].ID)
}

func TestDraftFlow(t *testing.T) {
	s := newTestServer(t)

	var state struct {
		Title            string `json:"title"`
		SelectedCategory string `json:"selectedCategory"`
		HasPhoto         bool   `json:"hasPhoto"`
	}
	w := do(t, s, http.MethodPut, "/draft", map[string]any{
		"title":    "Kombucha",
		"category": "beverages",
		"photo":    map[string]any{"kind": "stock", "id": "tea"},
	}, &state)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Kombucha", state.Title)
	assert.Equal(t, "Beverages", state.SelectedCategory)
	assert.True(t, state.HasPhoto)

	w = do(t, s, http.MethodPost, "/draft/reset", nil, &state)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, state.Title)
	assert.Equal(t, "Other", state.SelectedCategory)
	assert.False(t, state.HasPhoto)
}

func TestStatsAndClear(t *testing.T) {
	s := newTestServer(t)
	id := createItem(t, s, "Gnocchi", "Pastas", 4)
	do(t, s, http.MethodPost, fmt.Sprintf("/items/%d/tries", id), nil, nil)

	var stats struct {
		Items  int `json:"items"`
		Events int `json:"events"`
	}
	w := do(t, s, http.MethodGet, "/stats", nil, &stats)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, stats.Items)
	assert.Equal(t, 1, stats.Events)

	w = do(t, s, http.MethodPost, "/admin/clear", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	do(t, s, http.MethodGet, "/stats", nil, &stats)
	assert.Zero(t, stats.Items)
	assert.Zero(t, stats.Events)
}
