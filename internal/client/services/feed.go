package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/client/client"
	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/filex"
	"github.com/dmitrijs2005/postboard/internal/netx"
)

// MaxImageBytes caps files accepted by AttachImage.
const MaxImageBytes = 5 << 20

// FeedService wraps the post endpoints. Operations that need a login fail
// with client.ErrNotLoggedIn before reaching the network. A 401 from the
// server ends the session: it is logged out in memory and on disk.
type FeedService interface {
	List(ctx context.Context) ([]api.Post, error)
	Create(ctx context.Context, text string) (*api.Post, error)
	Update(ctx context.Context, id, text string) (*api.Post, error)
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string) (*api.Post, error)
	AttachImage(ctx context.Context, id, path string) (string, error)
	ImageURL(ctx context.Context, id string) (string, error)
}

type feedService struct {
	client client.Client
	auth   AuthService
	upload *http.Client
}

// NewFeedService returns a FeedService bound to the session owned by auth.
// upload is used for the presigned PUT to object storage; nil means
// http.DefaultClient.
func NewFeedService(c client.Client, auth AuthService, upload *http.Client) FeedService {
	return &feedService{client: c, auth: auth, upload: upload}
}

func (s *feedService) requireLogin() error {
	if _, ok := s.auth.CurrentUser(); !ok {
		return client.ErrNotLoggedIn
	}
	return nil
}

// checkSession logs out when the server no longer accepts the token.
func (s *feedService) checkSession(ctx context.Context, err error) error {
	if !errors.Is(err, common.ErrorUnauthorized) {
		return err
	}
	if lerr := s.auth.Logout(ctx); lerr != nil {
		return errors.Join(fmt.Errorf("%w: %w", ErrSessionDiscarded, err), lerr)
	}
	return fmt.Errorf("%w: %w", ErrSessionDiscarded, err)
}

func (s *feedService) List(ctx context.Context) ([]api.Post, error) {
	return s.client.ListPosts(ctx)
}

func (s *feedService) Create(ctx context.Context, text string) (*api.Post, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	p, err := s.client.CreatePost(ctx, text)
	if err != nil {
		return nil, s.checkSession(ctx, err)
	}
	return p, nil
}

func (s *feedService) Update(ctx context.Context, id, text string) (*api.Post, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	p, err := s.client.UpdatePost(ctx, id, text)
	if err != nil {
		return nil, s.checkSession(ctx, err)
	}
	return p, nil
}

func (s *feedService) Delete(ctx context.Context, id string) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	if err := s.client.DeletePost(ctx, id); err != nil {
		return s.checkSession(ctx, err)
	}
	return nil
}

func (s *feedService) ToggleLike(ctx context.Context, id string) (*api.Post, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	p, err := s.client.ToggleLike(ctx, id)
	if err != nil {
		return nil, s.checkSession(ctx, err)
	}
	return p, nil
}

// AttachImage reads an image file, obtains an upload URL for the post and
// PUTs the bytes there. It returns the storage key.
func (s *feedService) AttachImage(ctx context.Context, id, path string) (string, error) {
	if err := s.requireLogin(); err != nil {
		return "", err
	}

	data, contentType, err := filex.ReadImage(path, MaxImageBytes)
	if err != nil {
		return "", err
	}

	up, err := s.client.RequestImageUpload(ctx, id)
	if err != nil {
		return "", s.checkSession(ctx, err)
	}

	if err := netx.PutPresigned(ctx, s.upload, up.UploadURL, contentType, data); err != nil {
		return "", fmt.Errorf("image upload: %w", err)
	}
	return up.Key, nil
}

func (s *feedService) ImageURL(ctx context.Context, id string) (string, error) {
	return s.client.ImageURL(ctx, id)
}
