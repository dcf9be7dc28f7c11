package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"blueprint/internal/auth/repository"
	"blueprint/internal/auth/service"

	"github.com/gofiber/fiber/v3"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.New(db)
	require.NoError(t, repo.Init(context.Background()))

	h := NewAuthHandler(repo, service.NewSessionManager())
	app := fiber.New()
	app.Post("/signup", h.Signup)
	app.Post("/login", h.Login)
	app.Post("/logout", h.Logout)
	app.Get("/me", h.Me)
	app.Get("/internal/sessions/:token", h.ResolveSessionInternal)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body, token string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out), string(data))
	}
	return resp.StatusCode, out
}

func TestSignupLoginLogout(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/signup",
		`{"email":"Ann@Example.com","password":"secret1","confirmPassword":"secret1"}`, "")
	require.Equal(t, http.StatusCreated, status, body)
	assert.NotEmpty(t, body["token"])

	status, body = do(t, app, http.MethodPost, "/login", `{"email":"ann@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, status, body)
	token := body["token"].(string)

	status, body = do(t, app, http.MethodGet, "/me", "", token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ann@example.com", body["email"])

	status, body = do(t, app, http.MethodGet, "/internal/sessions/"+token, "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ann@example.com", body["email"])
	assert.NotEmpty(t, body["userId"])

	status, _ = do(t, app, http.MethodPost, "/logout", "", token)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, app, http.MethodGet, "/me", "", token)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = do(t, app, http.MethodGet, "/internal/sessions/"+token, "", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSignupValidation(t *testing.T) {
	app := newTestApp(t)

	cases := map[string]string{
		`{"email":"not-an-email","password":"secret1","confirmPassword":"secret1"}`: "Please enter a valid email address.",
		`{"email":"a@b.co","password":"123","confirmPassword":"123"}`:              "Password must be at least 6 characters.",
		`{"email":"a@b.co","password":"secret1","confirmPassword":"secret2"}`:      "Passwords do not match.",
	}
	for payload, msg := range cases {
		status, body := do(t, app, http.MethodPost, "/signup", payload, "")
		assert.Equal(t, http.StatusBadRequest, status, payload)
		assert.Equal(t, msg, body["error"], payload)
	}

	status, _ := do(t, app, http.MethodPost, "/signup", "", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSignupDuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	payload := `{"email":"dup@example.com","password":"secret1","confirmPassword":"secret1"}`

	status, _ := do(t, app, http.MethodPost, "/signup", payload, "")
	require.Equal(t, http.StatusCreated, status)

	status, body := do(t, app, http.MethodPost, "/signup", strings.Replace(payload, "dup@", "DUP@", 1), "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "This email is already in use. Please try logging in.", body["error"])
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)
	do(t, app, http.MethodPost, "/signup", `{"email":"x@example.com","password":"secret1","confirmPassword":"secret1"}`, "")

	status, _ := do(t, app, http.MethodPost, "/login", `{"email":"x@example.com","password":"wrong12"}`, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = do(t, app, http.MethodPost, "/login", `{"email":"nobody@example.com","password":"secret1"}`, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}
