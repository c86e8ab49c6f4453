package services

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/postboard/internal/client/client"
	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/logging"
	"github.com/dmitrijs2005/postboard/internal/server/auth"
	sc "github.com/dmitrijs2005/postboard/internal/server/config"
	"github.com/dmitrijs2005/postboard/internal/server/httpserver"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/repomanager"
	server "github.com/dmitrijs2005/postboard/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func startServer(t *testing.T) string {
	url, _ := startServerWithRepos(t)
	return url
}

func startServerWithRepos(t *testing.T) (string, *repomanager.InMemoryRepositoryManager) {
	t.Helper()
	tokens, err := auth.NewTokenService("e2e-secret", time.Hour)
	require.NoError(t, err)

	rm := repomanager.NewInMemoryRepositoryManager()
	us := server.NewUserService(nil, rm, tokens, bcrypt.MinCost)
	ps := server.NewPostService(nil, rm)
	ms := server.NewMediaService(&sc.Config{}, ps)
	h := httpserver.NewHandlers(logging.Nop{}, us, ps, ms, prometheus.NewRegistry()).Router()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts.URL, rm
}

type clientSide struct {
	auth AuthService
	feed FeedService
	db   *sql.DB
}

func newClientSide(t *testing.T, url string, db string) clientSide {
	t.Helper()
	conn, err := client.InitDatabase(context.Background(), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	sess := NewSession()
	c, err := client.NewHTTPClient(url, 5*time.Second, sess.Token)
	require.NoError(t, err)
	a := NewAuthService(c, conn, sess)
	return clientSide{auth: a, feed: NewFeedService(c, a, nil), db: conn}
}

func TestEndToEnd_SessionLifecycle(t *testing.T) {
	url := startServer(t)
	ctx := context.Background()
	annDB := t.TempDir() + "/ann.db"

	ann := newClientSide(t, url, annDB)
	_, err := ann.auth.Register(ctx, "Ann", "ann@x.com", []byte("secret123"))
	require.NoError(t, err)

	post, err := ann.feed.Create(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "Ann", post.User.Name)
	assert.Empty(t, post.Likes)

	// a second process restores Ann's session from disk
	again := newClientSide(t, url, annDB)
	p, err := again.auth.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "ann@x.com", p.Email)

	bob := newClientSide(t, url, t.TempDir()+"/bob.db")
	_, err = bob.auth.Register(ctx, "Bob", "bob@x.com", []byte("hunter22"))
	require.NoError(t, err)

	liked, err := bob.feed.ToggleLike(ctx, post.ID)
	require.NoError(t, err)
	bobUser, _ := bob.auth.CurrentUser()
	assert.Equal(t, []common.UserID{bobUser.ID}, liked.Likes)

	require.ErrorIs(t, bob.feed.Delete(ctx, post.ID), common.ErrorForbidden)

	require.NoError(t, again.feed.Delete(ctx, post.ID))
	posts, err := bob.feed.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	// logout is local: the next write is refused before any request
	require.NoError(t, again.auth.Logout(ctx))
	_, err = again.feed.Create(ctx, "after logout")
	require.ErrorIs(t, err, client.ErrNotLoggedIn)

	restored, err := newClientSide(t, url, annDB).auth.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, restored, "logout removed the stored session")
}

func TestEndToEnd_RestoreWithForeignTokenLogsOut(t *testing.T) {
	url := startServer(t)
	ctx := context.Background()
	db := t.TempDir() + "/s.db"

	// session issued by another server instance; its user is unknown here
	other := newClientSide(t, startServer(t), db)
	_, err := other.auth.Register(ctx, "Ann", "ann@x.com", []byte("secret123"))
	require.NoError(t, err)

	cs := newClientSide(t, url, db)
	p, err := cs.auth.Restore(ctx)
	require.ErrorIs(t, err, ErrSessionDiscarded)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Nil(t, p)
	_, ok := cs.auth.CurrentUser()
	assert.False(t, ok)
}

func TestEndToEnd_RemovedAccountEndsSession(t *testing.T) {
	url, rm := startServerWithRepos(t)
	ctx := context.Background()

	ann := newClientSide(t, url, t.TempDir()+"/ann.db")
	p, err := ann.auth.Register(ctx, "Ann", "ann@x.com", []byte("secret123"))
	require.NoError(t, err)
	require.NotEmpty(t, storedSession(t, ann.db))

	rm.UserStore().Delete(ctx, p.ID)

	_, err = ann.feed.Create(ctx, "anyone there?")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	_, ok := ann.auth.CurrentUser()
	assert.False(t, ok)
	assert.Empty(t, storedSession(t, ann.db))

	// nothing left to restore
	restored, err := ann.auth.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, restored)
}
