package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/jotterlabs/jotter/internal/blog/service"
	"github.com/jotterlabs/jotter/internal/blog/store"
	"github.com/jotterlabs/jotter/internal/blog/store/drivers/sqlite"
	"github.com/jotterlabs/jotter/pkg/cryptox"
	"github.com/jotterlabs/jotter/pkg/idx"
	"github.com/jotterlabs/jotter/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.GenerateSignerEdDSA("test-key")
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := jwtx.NewVerifierEdDSA(keys, "test-issuer")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(keys, verifier, "test", st, logger)
	router.AuthService = &service.AuthService{
		Store:     st,
		Signer:    signer,
		Issuer:    "test-issuer",
		AccessTTL: time.Hour,
	}
	router.AccountService = &service.AccountService{Store: st}
	router.ProfileService = &service.ProfileService{Store: st}
	router.PostService = &service.PostService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, st
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, srv.URL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// fieldErrors pulls the "errors" object out of a validation response.
func fieldErrors(t *testing.T, body map[string]any) map[string]any {
	t.Helper()

	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok, "response has no errors object: %v", body)
	return errs
}

func registerOverHTTP(t *testing.T, srv *httptest.Server, username, email string) string {
	t.Helper()

	resp := doRequest(t, srv, http.MethodPost, "/v1/auth/register", "", map[string]any{
		"username":         username,
		"email":            email,
		"password":         "SecurePass123!",
		"password_confirm": "SecurePass123!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeJSON(t, resp)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("invalid fields return the field-keyed envelope", func(t *testing.T) {
		resp := doRequest(t, srv, http.MethodPost, "/v1/auth/register", "", map[string]any{
			"username":         "x",
			"email":            "not-an-email",
			"password":         "short",
			"password_confirm": "short",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		errs := fieldErrors(t, decodeJSON(t, resp))
		require.Contains(t, errs, "username")
		require.Contains(t, errs, "email")
		require.Contains(t, errs, "password")
	})

	t.Run("valid registration returns 201 with a token", func(t *testing.T) {
		resp := doRequest(t, srv, http.MethodPost, "/v1/auth/register", "", map[string]any{
			"username":         "alice",
			"email":            "alice@example.com",
			"password":         "SecurePass123!",
			"password_confirm": "SecurePass123!",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeJSON(t, resp)
		require.NotEmpty(t, body["access_token"])
		require.Equal(t, "Bearer", body["token_type"])
		require.Equal(t, "alice", body["username"])
	})

	t.Run("duplicate registration keys errors by field", func(t *testing.T) {
		resp := doRequest(t, srv, http.MethodPost, "/v1/auth/register", "", map[string]any{
			"username":         "alice",
			"email":            "alice@example.com",
			"password":         "SecurePass123!",
			"password_confirm": "SecurePass123!",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		errs := fieldErrors(t, decodeJSON(t, resp))
		require.Contains(t, errs, "username")
		require.Contains(t, errs, "email")
	})
}

func TestLoginEndpoint(t *testing.T) {
	srv, st := newTestServer(t)
	registerOverHTTP(t, srv, "carol", "carol@example.com")

	t.Run("wrong password returns the invalid_credentials envelope", func(t *testing.T) {
		resp := doRequest(t, srv, http.MethodPost, "/v1/auth/login", "", map[string]any{
			"email":    "carol@example.com",
			"password": "WrongPass123!",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body := decodeJSON(t, resp)
		require.Equal(t, "invalid_credentials", body["error"])
	})

	t.Run("valid credentials return 200 with a token", func(t *testing.T) {
		resp := doRequest(t, srv, http.MethodPost, "/v1/auth/login", "", map[string]any{
			"email":    "carol@example.com",
			"password": "SecurePass123!",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeJSON(t, resp)
		require.NotEmpty(t, body["access_token"])
	})

	t.Run("disabled account returns the account_disabled envelope", func(t *testing.T) {
		ctx := context.Background()
		account, err := st.Accounts().GetAccountByEmail(ctx, "carol@example.com")
		require.NoError(t, err)
		require.NoError(t, st.Accounts().SetActive(ctx, account.ID, false))

		resp := doRequest(t, srv, http.MethodPost, "/v1/auth/login", "", map[string]any{
			"email":    "carol@example.com",
			"password": "SecurePass123!",
		})
		require.Equal(t, http.StatusForbidden, resp.StatusCode)

		body := decodeJSON(t, resp)
		require.Equal(t, "account_disabled", body["error"])
	})
}

func TestBearerMiddleware(t *testing.T) {
	srv, _ := newTestServer(t)
	token := registerOverHTTP(t, srv, "dave", "dave@example.com")

	t.Run("missing bearer token is 401", func(t *testing.T) {
		resp := doRequest(t, srv, http.MethodGet, "/v1/my-posts", "", nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		resp := doRequest(t, srv, http.MethodGet, "/v1/my-posts", "not-a-jwt", nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token passes through", func(t *testing.T) {
		resp := doRequest(t, srv, http.MethodGet, "/v1/my-posts", token, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestPostEndpointsOwnership(t *testing.T) {
	srv, _ := newTestServer(t)
	aliceToken := registerOverHTTP(t, srv, "alice", "alice@example.com")
	bobToken := registerOverHTTP(t, srv, "bob", "bob@example.com")

	resp := doRequest(t, srv, http.MethodPost, "/v1/posts", aliceToken, map[string]any{
		"title":        "Alice writes",
		"content":      "A post created over the wire.",
		"is_published": false,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeJSON(t, resp)
	postID, _ := created["id"].(string)
	require.NotEmpty(t, postID)

	t.Run("author can fetch the post", func(t *testing.T) {
		resp := doRequest(t, srv, http.MethodGet, "/v1/posts/"+postID, aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeJSON(t, resp)
		require.Equal(t, "Alice writes", body["title"])
	})

	t.Run("someone else's post is the not_found envelope", func(t *testing.T) {
		resp := doRequest(t, srv, http.MethodGet, "/v1/posts/"+postID, bobToken, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeJSON(t, resp)
		require.Equal(t, "not_found", body["error"])
	})

	t.Run("nonexistent post is the same not_found envelope", func(t *testing.T) {
		resp := doRequest(t, srv, http.MethodGet, "/v1/posts/"+idx.New().String(), aliceToken, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeJSON(t, resp)
		require.Equal(t, "not_found", body["error"])
	})

	t.Run("short title returns the field-keyed envelope", func(t *testing.T) {
		resp := doRequest(t, srv, http.MethodPost, "/v1/posts", aliceToken, map[string]any{
			"title":        "nah",
			"content":      "Long enough content here.",
			"is_published": true,
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		errs := fieldErrors(t, decodeJSON(t, resp))
		require.Contains(t, errs, "title")
	})
}
