package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedFixture struct {
	users *UserService
	posts *PostService
	ann   *models.User
	bob   *models.User
}

func newFeedFixture(t *testing.T) *feedFixture {
	t.Helper()
	rm := repomanager.NewInMemoryRepositoryManager()
	us := newUserService(t, rm)
	return &feedFixture{
		users: us,
		posts: NewPostService(nil, rm),
		ann:   mustRegister(t, us, "ann", "ann@example.com"),
		bob:   mustRegister(t, us, "bob", "bob@example.com"),
	}
}

func TestPostService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(t)

	first, err := f.posts.Create(ctx, f.ann, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", first.Text)
	assert.Equal(t, f.ann.ID, first.UserID)
	assert.Equal(t, "ann", first.UserName)
	assert.Empty(t, first.Likes)

	second, err := f.posts.Create(ctx, f.bob, "second")
	require.NoError(t, err)

	list, err := f.posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, first.ID, list[1].ID)

	_, err = f.posts.Create(ctx, f.ann, "   ")
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = f.posts.Create(ctx, f.ann, strings.Repeat("x", MaxPostLength+1))
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestPostService_Get(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(t)

	_, err := f.posts.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = f.posts.Get(ctx, common.NewUserID().String())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostService_UpdateOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(t)
	p, err := f.posts.Create(ctx, f.ann, "original")
	require.NoError(t, err)

	_, err = f.posts.Update(ctx, f.bob.ID, p.ID, "hijack")
	assert.ErrorIs(t, err, common.ErrorForbidden)

	got, err := f.posts.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Text, "forbidden edit leaves the post unchanged")

	_, err = f.posts.Update(ctx, f.bob.ID, common.NewUserID().String(), "x")
	assert.ErrorIs(t, err, common.ErrorNotFound, "not-found is checked before ownership")

	_, err = f.posts.Update(ctx, f.ann.ID, p.ID, "")
	assert.ErrorIs(t, err, common.ErrorValidation)

	updated, err := f.posts.Update(ctx, f.ann.ID, p.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
	assert.Equal(t, f.ann.ID, updated.UserID, "owner never changes")
}

func TestPostService_DeleteOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(t)
	p, err := f.posts.Create(ctx, f.ann, "bye")
	require.NoError(t, err)

	assert.ErrorIs(t, f.posts.Delete(ctx, f.bob.ID, p.ID), common.ErrorForbidden)
	_, err = f.posts.Get(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, f.posts.Delete(ctx, f.ann.ID, p.ID))
	assert.ErrorIs(t, f.posts.Delete(ctx, f.ann.ID, p.ID), common.ErrorNotFound)
}

func TestPostService_ToggleLike(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(t)
	p, err := f.posts.Create(ctx, f.ann, "like me")
	require.NoError(t, err)

	got, err := f.posts.ToggleLike(ctx, f.bob.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []common.UserID{f.bob.ID}, got.Likes)

	got, err = f.posts.ToggleLike(ctx, f.ann.ID, p.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []common.UserID{f.bob.ID, f.ann.ID}, got.Likes)

	got, err = f.posts.ToggleLike(ctx, f.bob.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []common.UserID{f.ann.ID}, got.Likes)

	_, err = f.posts.ToggleLike(ctx, f.bob.ID, "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = f.posts.ToggleLike(ctx, f.bob.ID, common.NewUserID().String())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostService_ConcurrentLikesFromDistinctUsers(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(t)
	p, err := f.posts.Create(ctx, f.ann, "popular")
	require.NoError(t, err)

	const n = 40
	ids := make([]common.UserID, n)
	for i := range ids {
		ids[i] = common.NewUserID()
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id common.UserID) {
			defer wg.Done()
			_, err := f.posts.ToggleLike(ctx, id, p.ID)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	got, err := f.posts.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, ids, got.Likes)
}

func TestPostService_StoreFailuresAreInternal(t *testing.T) {
	ctx := context.Background()
	s := NewPostService(nil, brokenRepoMgr{})
	author := &models.User{ID: common.NewUserID(), Name: "ann"}
	id := common.NewUserID().String()

	_, err := s.Create(ctx, author, "x")
	assert.ErrorIs(t, err, common.ErrorInternal)
	_, err = s.List(ctx)
	assert.ErrorIs(t, err, common.ErrorInternal)
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, common.ErrorInternal)
	_, err = s.ToggleLike(ctx, author.ID, id)
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.ErrorIs(t, s.AttachImage(ctx, author.ID, id, "k"), common.ErrorInternal)
}
