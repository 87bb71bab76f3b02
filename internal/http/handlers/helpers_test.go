package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/kaiwenlim/fintrack-be/internal/auth"
	"github.com/kaiwenlim/fintrack-be/internal/middleware"
	"github.com/kaiwenlim/fintrack-be/internal/models"
	"github.com/kaiwenlim/fintrack-be/internal/storage/memory"
)

// envelope mirrors respond.Envelope with a raw data payload so each test can
// decode it into the shape it expects.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Totals  *models.Totals  `json:"totals"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	log := logrus.New()
	log.SetOutput(io.Discard)
	tokens := auth.NewTokenManager("test-secret", "fintrack-test", time.Hour)

	router := mux.NewRouter()
	NewAuthHandler(store, tokens, log).Register(router)
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.Auth(tokens, store))
	NewExpenseHandler(store, log).Register(protected)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

// doJSON issues a request with an optional JSON body and bearer token,
// returning the status and decoded envelope.
func doJSON(t *testing.T, method, url, token string, payload any) (int, envelope) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

// registerAndLogin creates a user through the API and returns a valid token.
func registerAndLogin(t *testing.T, baseURL, name, email, password string) string {
	t.Helper()

	status, _ := doJSON(t, http.MethodPost, baseURL+"/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, status)

	status, env := doJSON(t, http.MethodPost, baseURL+"/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}
