package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rezkam/taskmate/internal/api"
	"github.com/rezkam/taskmate/internal/application/tasks"
	"github.com/rezkam/taskmate/internal/infrastructure/http/handler"
	"github.com/rezkam/taskmate/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := sqlite.NewStore(context.Background(), sqlite.DBConfig{
		DSN:         filepath.Join(t.TempDir(), "handler.db"),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return handler.NewRouter(tasks.NewService(store, tasks.Config{}))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func listTasks(t *testing.T, h http.Handler) []api.Task {
	t.Helper()
	w := do(t, h, http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)
	var out []api.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var out api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestListTasks_EmptyIsArray(t *testing.T) {
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateThenGet_AppliesDefaults(t *testing.T) {
	h := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/tasks", `{"id":"1","title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/tasks/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got api.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "Umum", got.Category)
	assert.Equal(t, "Low", got.Priority)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, 0, got.Progress)
	assert.Nil(t, got.Deadline)
	assert.NotNil(t, got.UpdatedAt)
}

func TestCreate_NormalizesDeadline(t *testing.T) {
	h := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/tasks", `{"id":"1","title":"Essay","deadline":"2025-10-07T17:00:00.000Z"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	tasks := listTasks(t, h)
	require.Len(t, tasks, 1)
	assert.Equal(t, "2025-10-07", *tasks[0].Deadline)
}

func TestCreate_ValidationLeavesStoreUnchanged(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"missing title", `{"id":"1"}`, "title"},
		{"missing id", `{"title":"x"}`, "id"},
		{"bad priority", `{"id":"1","title":"x","priority":"Urgent"}`, "priority"},
		{"bad progress", `{"id":"1","title":"x","progress":101}`, "progress"},
		{"bad deadline", `{"id":"1","title":"x","deadline":"tomorrow"}`, "deadline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/tasks", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			body := errorBody(t, w)
			require.Len(t, body.Error.Details, 1)
			assert.Equal(t, tt.wantField, body.Error.Details[0].Field)
		})
	}

	assert.Empty(t, listTasks(t, h))
}

func TestCreate_InvalidJSON(t *testing.T) {
	h := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/tasks", `{"id":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", errorBody(t, w).Error.Code)
}

func TestCreate_DuplicateIDIsStoreError(t *testing.T) {
	h := newTestRouter(t)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/tasks", `{"id":"1","title":"a"}`).Code)
	w := do(t, h, http.MethodPost, "/tasks", `{"id":"1","title":"b"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUpdate_StatusShowsInList(t *testing.T) {
	h := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/tasks", `{"id":"1","title":"a"}`).Code)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/tasks", `{"id":"2","title":"b"}`).Code)

	w := do(t, h, http.MethodPut, "/tasks/1", `{"status":"done"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	tasks := listTasks(t, h)
	require.Len(t, tasks, 2)
	assert.Equal(t, "1", tasks[0].ID, "most recently updated first")
	assert.Equal(t, "done", tasks[0].Status)
	assert.Equal(t, "a", tasks[0].Title)
}

func TestUpdate_NullClearsNullableFields(t *testing.T) {
	h := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/tasks",
		`{"id":"1","title":"a","description":"d","deadline":"2025-12-01"}`).Code)

	w := do(t, h, http.MethodPut, "/tasks/1", `{"description":null,"deadline":null}`)
	require.Equal(t, http.StatusOK, w.Code)

	tasks := listTasks(t, h)
	require.Len(t, tasks, 1)
	assert.Nil(t, tasks[0].Description)
	assert.Nil(t, tasks[0].Deadline)
}

func TestUpdate_Errors(t *testing.T) {
	h := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/tasks", `{"id":"1","title":"a"}`).Code)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{"empty patch", "/tasks/1", `{}`, http.StatusBadRequest},
		{"unknown keys only", "/tasks/1", `{"color":"red"}`, http.StatusBadRequest},
		{"null title", "/tasks/1", `{"title":null}`, http.StatusBadRequest},
		{"blank title", "/tasks/1", `{"title":"  "}`, http.StatusBadRequest},
		{"wrong type", "/tasks/1", `{"progress":"half"}`, http.StatusBadRequest},
		{"bad status", "/tasks/1", `{"status":"archived"}`, http.StatusBadRequest},
		{"missing task", "/tasks/missing-id", `{"status":"done"}`, http.StatusNotFound},
		{"not an object", "/tasks/1", `[1,2]`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}

	w := do(t, h, http.MethodPut, "/tasks/1", `{}`)
	assert.Equal(t, "no changes", errorBody(t, w).Error.Message)
}

func TestDelete(t *testing.T) {
	h := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/tasks", `{"id":"1","title":"a"}`).Code)

	w := do(t, h, http.MethodDelete, "/tasks/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/tasks/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/tasks/missing-id", "").Code)
}

func TestCategories(t *testing.T) {
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"key":"Umum","color":"#334155"}]`, w.Body.String())

	w = do(t, h, http.MethodPost, "/categories", `{"key":"Kuliah","color":"#2563eb"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = do(t, h, http.MethodPost, "/categories", `{"key":"kuliah"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, h, http.MethodPost, "/categories", `{"key":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/categories", "")
	var categories []api.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 2)
	assert.Equal(t, "Kuliah", categories[1].Key)
}

func TestCreate_CanonicalizesRegisteredCategory(t *testing.T) {
	h := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/categories", `{"key":"Kuliah"}`).Code)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/tasks", `{"id":"1","title":"a","category":"KULIAH"}`).Code)

	tasks := listTasks(t, h)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Kuliah", tasks[0].Category)
}
