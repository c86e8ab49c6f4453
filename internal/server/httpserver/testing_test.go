package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/logging"
	"github.com/dmitrijs2005/postboard/internal/server/auth"
	sc "github.com/dmitrijs2005/postboard/internal/server/config"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/postboard/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type testAPI struct {
	handler http.Handler
	repos   *repomanager.InMemoryRepositoryManager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	rm := repomanager.NewInMemoryRepositoryManager()
	return &testAPI{handler: buildHandler(t, rm), repos: rm}
}

func buildHandler(t *testing.T, rm repomanager.RepositoryManager) http.Handler {
	t.Helper()
	tokens, err := auth.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	us := services.NewUserService(nil, rm, tokens, bcrypt.MinCost)
	ps := services.NewPostService(nil, rm)
	ms := services.NewMediaService(&sc.Config{}, ps)

	return NewHandlers(logging.Nop{}, us, ps, ms, prometheus.NewRegistry()).Router()
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, a.handler, method, path, token, body)
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequestWithContext(context.Background(), method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// doRaw sends body verbatim, for payloads that are not valid JSON.
func (a *testAPI) doRaw(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequestWithContext(context.Background(), method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *testAPI) register(t *testing.T, name, email, password string) api.AuthResponse {
	t.Helper()
	rec := a.do(t, http.MethodPost, api.PathRegister, "", api.RegisterRequest{Name: name, Email: email, Password: password})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[api.AuthResponse](t, rec)
}

func (a *testAPI) createPost(t *testing.T, token, text string) api.Post {
	t.Helper()
	rec := a.do(t, http.MethodPost, api.PathPosts, token, api.PostRequest{Text: text})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[api.Post](t, rec)
}

func (a *testAPI) listPosts(t *testing.T) []api.Post {
	t.Helper()
	rec := a.do(t, http.MethodGet, api.PathPosts, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return decode[[]api.Post](t, rec)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(v))
	return &buf
}
