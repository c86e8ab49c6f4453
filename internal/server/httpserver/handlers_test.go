package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/dbx"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/posts"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	a := newTestAPI(t)

	resp := a.register(t, "Ann", " Ann@X.com ", "secret123")
	assert.Equal(t, "ann@x.com", resp.Email)
	assert.False(t, resp.ID.IsZero())

	tests := []struct {
		name string
		body any
		code int
	}{
		{"duplicate email differing in case", api.RegisterRequest{Name: "A2", Email: "ANN@x.com", Password: "pw123456"}, http.StatusBadRequest},
		{"missing name", api.RegisterRequest{Email: "n@x.com", Password: "pw"}, http.StatusBadRequest},
		{"bad email", api.RegisterRequest{Name: "n", Email: "nope", Password: "pw"}, http.StatusBadRequest},
		{"email without domain", api.RegisterRequest{Name: "n", Email: "n@", Password: "pw"}, http.StatusBadRequest},
		{"email with spaces", api.RegisterRequest{Name: "n", Email: "a b@x.com", Password: "pw"}, http.StatusBadRequest},
		{"missing password", api.RegisterRequest{Name: "n", Email: "n@x.com"}, http.StatusBadRequest},
		{"password too long", api.RegisterRequest{Name: "n", Email: "n@x.com", Password: strings.Repeat("p", 73)}, http.StatusBadRequest},
		{"not json", "just a string", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(t, http.MethodPost, api.PathRegister, "", tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestLogin(t *testing.T) {
	a := newTestAPI(t)
	ann := a.register(t, "Ann", "ann@x.com", "secret123")

	rec := a.do(t, http.MethodPost, api.PathLogin, "", api.LoginRequest{Email: "ANN@x.com", Password: "secret123"})
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[api.AuthResponse](t, rec)
	assert.Equal(t, ann.ID, got.ID)
	assert.NotEmpty(t, got.Token)

	wrong := a.do(t, http.MethodPost, api.PathLogin, "", api.LoginRequest{Email: "ann@x.com", Password: "nope"})
	unknown := a.do(t, http.MethodPost, api.PathLogin, "", api.LoginRequest{Email: "ghost@x.com", Password: "secret123"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())

	rec = a.do(t, http.MethodPost, api.PathLogin, "", api.LoginRequest{Email: "ann@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPosts_CreateAndList(t *testing.T) {
	a := newTestAPI(t)
	ann := a.register(t, "Ann", "ann@x.com", "secret123")

	first := a.createPost(t, ann.Token, "first")
	second := a.createPost(t, ann.Token, "second")

	list := a.listPosts(t)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, "Ann", list[0].User.Name)

	rec := a.do(t, http.MethodPost, api.PathPosts, ann.Token, api.PostRequest{Text: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = a.do(t, http.MethodPost, api.PathPosts, ann.Token, api.PostRequest{Text: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPosts_UpdateStatusOrder(t *testing.T) {
	a := newTestAPI(t)
	ann := a.register(t, "Ann", "ann@x.com", "secret123")
	b := a.register(t, "B", "b@x.com", "secret456")
	post := a.createPost(t, ann.Token, "original")
	path := api.PathPosts + "/" + post.ID

	tests := []struct {
		name  string
		path  string
		token string
		text  string
		code  int
	}{
		{"not a uuid", api.PathPosts + "/123", b.Token, "x", http.StatusNotFound},
		{"missing post as non-owner", api.PathPosts + "/" + common.NewUserID().String(), b.Token, "x", http.StatusNotFound},
		{"foreign post", path, b.Token, "x", http.StatusForbidden},
		{"foreign post with empty text", path, b.Token, "", http.StatusForbidden},
		{"owner with empty text", path, ann.Token, "", http.StatusBadRequest},
		{"no token", path, "", "x", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(t, http.MethodPut, tt.path, tt.token, api.PostRequest{Text: tt.text})
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		cases := []struct {
			name  string
			path  string
			token string
			code  int
		}{
			{"missing post", api.PathPosts + "/" + common.NewUserID().String(), ann.Token, http.StatusNotFound},
			{"foreign post", path, b.Token, http.StatusForbidden},
			{"own post", path, ann.Token, http.StatusBadRequest},
		}
		for _, c := range cases {
			rec := a.doRaw(t, http.MethodPut, c.path, c.token, "{not json")
			assert.Equal(t, c.code, rec.Code, c.name+": "+rec.Body.String())
		}
	})

	assert.Equal(t, "original", a.listPosts(t)[0].Text)

	rec := a.do(t, http.MethodPut, path, ann.Token, api.PostRequest{Text: "edited"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[api.Post](t, rec)
	assert.Equal(t, "edited", updated.Text)
	assert.Equal(t, ann.ID, updated.User.ID)
}

func TestPosts_DeleteAndLikeMissing(t *testing.T) {
	a := newTestAPI(t)
	ann := a.register(t, "Ann", "ann@x.com", "secret123")
	missing := api.PathPosts + "/" + common.NewUserID().String()

	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodDelete, missing, ann.Token, nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodPut, missing+"/like", ann.Token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodPut, missing+"/like", "", nil).Code)
}

func TestImages_DisabledWithoutBucket(t *testing.T) {
	a := newTestAPI(t)
	ann := a.register(t, "Ann", "ann@x.com", "secret123")
	post := a.createPost(t, ann.Token, "pic")

	rec := a.do(t, http.MethodPost, api.PathPosts+"/"+post.ID+"/image", ann.Token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	rec = a.do(t, http.MethodGet, api.PathPosts+"/"+post.ID+"/image", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type failingPosts struct{ posts.Repository }

func (failingPosts) List(context.Context) ([]*models.Post, error) {
	return nil, errors.New("pq: relation \"posts\" does not exist")
}

type failingManager struct {
	*repomanager.InMemoryRepositoryManager
}

func (m failingManager) Posts(dbx.DBTX) posts.Repository { return failingPosts{} }

func TestInternalErrorsAreOpaque(t *testing.T) {
	h := buildHandler(t, failingManager{repomanager.NewInMemoryRepositoryManager()})

	rec := doRequest(t, h, http.MethodGet, api.PathPosts, "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decode[api.Message](t, rec).Message)
	assert.NotContains(t, rec.Body.String(), "relation")
}

func TestHealthMetricsAndUnknownRoutes(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, api.PathHealth, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[api.Health](t, rec).Status)

	a.listPosts(t)

	rec = a.do(t, http.MethodGet, api.PathMetrics, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `postboard_http_requests_total{method="GET",route="/api/posts",status="200"}`)

	rec = a.do(t, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = a.do(t, http.MethodPatch, api.PathPosts, "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
