package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/server/auth"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// MaxPostLength bounds post text, in runes.
const MaxPostLength = 2000

// PostService implements the feed. Mutations check existence before
// ownership, so a missing post is always common.ErrorNotFound even for a
// non-owner.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m}
}

// Create stores a post owned by author.
func (s *PostService) Create(ctx context.Context, author *models.User, text string) (*models.Post, error) {
	text, err := cleanText(text)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:       uuid.NewString(),
		UserID:   author.ID,
		UserName: author.Name,
		Text:     text,
	}

	post, err = s.repomanager.Posts(s.db).Create(ctx, post)
	if err != nil {
		return nil, internal(err)
	}
	return post, nil
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.repomanager.Posts(s.db).List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return posts, nil
}

// Get returns one post. Ids that are not UUIDs cannot exist and are
// reported as not found.
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	if !validPostID(id) {
		return nil, common.ErrorNotFound
	}
	post, err := s.repomanager.Posts(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, internal(err)
	}
	return post, nil
}

// GetOwned returns the post when requester owns it: common.ErrorNotFound
// first, then common.ErrorForbidden.
func (s *PostService) GetOwned(ctx context.Context, requester common.UserID, id string) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(post.UserID, requester); err != nil {
		return nil, err
	}
	return post, nil
}

// Update replaces the text of requester's own post.
func (s *PostService) Update(ctx context.Context, requester common.UserID, id, text string) (*models.Post, error) {
	if _, err := s.GetOwned(ctx, requester, id); err != nil {
		return nil, err
	}

	text, err := cleanText(text)
	if err != nil {
		return nil, err
	}

	if err := s.repomanager.Posts(s.db).UpdateText(ctx, id, requester, text); err != nil {
		return nil, notFoundOrInternal(err)
	}
	return s.Get(ctx, id)
}

// Delete removes requester's own post.
func (s *PostService) Delete(ctx context.Context, requester common.UserID, id string) error {
	if _, err := s.GetOwned(ctx, requester, id); err != nil {
		return err
	}
	if err := s.repomanager.Posts(s.db).Delete(ctx, id, requester); err != nil {
		return notFoundOrInternal(err)
	}
	return nil
}

// ToggleLike adds requester to the post's like-set or removes them if
// already present, and returns the post as it is afterwards. Any
// authenticated user may like any post, including their own.
func (s *PostService) ToggleLike(ctx context.Context, requester common.UserID, id string) (*models.Post, error) {
	if !validPostID(id) {
		return nil, common.ErrorNotFound
	}

	likes, err := s.repomanager.Posts(s.db).ToggleLike(ctx, id, requester)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}

	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Likes = likes
	return post, nil
}

// AttachImage records key as the image of requester's own post.
func (s *PostService) AttachImage(ctx context.Context, requester common.UserID, id, key string) error {
	if err := s.repomanager.Posts(s.db).SetImageKey(ctx, id, requester, key); err != nil {
		return notFoundOrInternal(err)
	}
	return nil
}

func cleanText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" || len([]rune(text)) > MaxPostLength {
		return "", common.ErrorValidation
	}
	return text, nil
}

// validPostID accepts only the canonical 36-character form.
func validPostID(id string) bool {
	return len(id) == 36 && uuid.Validate(id) == nil
}

func notFoundOrInternal(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return internal(err)
}

func internal(err error) error {
	return fmt.Errorf("%w: %v", common.ErrorInternal, err)
}
