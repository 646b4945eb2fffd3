package userservice

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/user-service/internal/config"
	"github.com/magabrotheeeer/user-service/internal/models"
	"github.com/magabrotheeeer/user-service/internal/storage"
)

type testServer struct {
	t      *testing.T
	router chi.Router
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	st, err := storage.New("sqlite://", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return &testServer{
		t:      t,
		router: NewRouter(&config.Config{}, logger, st),
	}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) list(path string) []models.UserResponse {
	s.t.Helper()

	w := s.do(http.MethodGet, path, "")
	require.Equal(s.t, http.StatusOK, w.Code)

	var users []models.UserResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &users))
	require.NotNil(s.t, users, "list must be a JSON array, got %s", w.Body.String())
	return users
}

func (s *testServer) create(name, birthdate string) models.UserResponse {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/users", `{"name":"`+name+`","birthdate":"`+birthdate+`"}`)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var user models.UserResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &user))
	return user
}

func TestCreateUser(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/users", `{"name":"Test User","birthdate":"2024-10-28"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Test User","birthdate":"2024-10-28","active":true}`, w.Body.String())
}

func TestCreateUser_Invalid(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{
		`{"name":"Test User"}`,
		`{"birthdate":"2024-10-28"}`,
		`{"name":"Test User","birthdate":"28/10/2024"}`,
		`{"name":"Test User","birthdate":"2024-10-28","active":false}`,
		`not json`,
	} {
		w := s.do(http.MethodPost, "/api/users", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), `"error"`, body)
	}

	assert.Empty(t, s.list("/api/users/active"))
}

func TestListActiveUsers(t *testing.T) {
	s := newTestServer(t)

	s.create("Active User", "2020-05-15")

	active := s.list("/api/users/active")
	require.Len(t, active, 1)
	assert.Equal(t, "Active User", active[0].Name)
	assert.Empty(t, s.list("/api/users/inactive"))
}

func TestUpdateUserState(t *testing.T) {
	s := newTestServer(t)

	s.create("User to Deactivate", "1986-09-14")

	w := s.do(http.MethodPut, "/api/users/1/state", `{"active":false}`)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	assert.Empty(t, s.list("/api/users/active"))
	inactive := s.list("/api/users/inactive")
	require.Len(t, inactive, 1)
	assert.False(t, inactive[0].Active)

	w = s.do(http.MethodPut, "/api/users/1/state", `{"active":true}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Len(t, s.list("/api/users/active"), 1)
	assert.Empty(t, s.list("/api/users/inactive"))
}

func TestUpdateUserState_Invalid(t *testing.T) {
	s := newTestServer(t)
	s.create("Ada", "1990-01-01")

	w := s.do(http.MethodPut, "/api/users/1/state", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/users/42/state", `{"active":false}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":"Error","error":"User not found"}`, w.Body.String())

	w = s.do(http.MethodPut, "/api/users/abc/state", `{"active":false}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Len(t, s.list("/api/users/active"), 1)
}

func TestDeleteUser(t *testing.T) {
	s := newTestServer(t)

	s.create("User to Delete", "1944-10-02")

	w := s.do(http.MethodDelete, "/api/users/1", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	assert.Empty(t, s.list("/api/users/active"))
	assert.Empty(t, s.list("/api/users/inactive"))

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/users/1", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPut, "/api/users/1/state", `{"active":true}`).Code)
}

func TestDeleteInactiveUser(t *testing.T) {
	s := newTestServer(t)

	s.create("Ada", "1990-01-01")
	require.Equal(t, http.StatusNoContent, s.do(http.MethodPut, "/api/users/1/state", `{"active":false}`).Code)
	require.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/users/1", "").Code)

	assert.Empty(t, s.list("/api/users/inactive"))
}

func TestUserAppearsOnce(t *testing.T) {
	s := newTestServer(t)

	first := s.create("Ada", "1815-12-10")
	second := s.create("Grace", "1906-12-09")
	assert.Equal(t, first.ID+1, second.ID)

	active := s.list("/api/users/active")
	require.Len(t, active, 2)
	assert.Equal(t, first, active[0])
	assert.Equal(t, second, active[1])
}

func TestAuxiliaryEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())

	s.create("Ada", "1990-01-01")

	w = s.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user_service_http_requests_total")

	w = s.do(http.MethodGet, "/docs/doc.json", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/users/{id}/state")
}
