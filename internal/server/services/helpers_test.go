package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/dbx"
	"github.com/dmitrijs2005/postboard/internal/server/auth"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/posts"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var errBoom = errors.New("boom")

func newTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	ts, err := auth.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	return ts
}

func newUserService(t *testing.T, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	return NewUserService(nil, rm, newTokens(t), bcrypt.MinCost)
}

func mustRegister(t *testing.T, s *UserService, name, email string) *models.User {
	t.Helper()
	u, err := s.Register(context.Background(), name, email, []byte("pw-"+name))
	require.NoError(t, err)
	return u
}

// brokenRepoMgr fails every repository call with errBoom.
type brokenRepoMgr struct{ repomanager.RepositoryManager }

func (brokenRepoMgr) Users(dbx.DBTX) users.Repository { return brokenUsers{} }
func (brokenRepoMgr) Posts(dbx.DBTX) posts.Repository { return brokenPosts{} }

type brokenUsers struct{}

func (brokenUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, errBoom }
func (brokenUsers) GetByEmail(context.Context, string) (*models.User, error)    { return nil, errBoom }
func (brokenUsers) GetByID(context.Context, common.UserID) (*models.User, error) {
	return nil, errBoom
}

type brokenPosts struct{}

func (brokenPosts) Create(context.Context, *models.Post) (*models.Post, error) { return nil, errBoom }
func (brokenPosts) GetByID(context.Context, string) (*models.Post, error)      { return nil, errBoom }
func (brokenPosts) List(context.Context) ([]*models.Post, error)               { return nil, errBoom }
func (brokenPosts) UpdateText(context.Context, string, common.UserID, string) error {
	return errBoom
}
func (brokenPosts) Delete(context.Context, string, common.UserID) error { return errBoom }
func (brokenPosts) SetImageKey(context.Context, string, common.UserID, string) error {
	return errBoom
}
func (brokenPosts) ToggleLike(context.Context, string, common.UserID) ([]common.UserID, error) {
	return nil, errBoom
}
