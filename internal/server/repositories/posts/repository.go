// Package posts stores feed entries together with their like-sets.
package posts

import (
	"context"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/server/models"
)

// Repository persists posts.
//
// The owner-scoped mutations (UpdateText, Delete, SetImageKey) only touch a
// row whose id and owner both match and report common.ErrorNotFound
// otherwise. ToggleLike flips membership of userID in the like-set as one
// atomic statement and returns the resulting set.
type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	UpdateText(ctx context.Context, id string, owner common.UserID, text string) error
	Delete(ctx context.Context, id string, owner common.UserID) error
	SetImageKey(ctx context.Context, id string, owner common.UserID, key string) error
	ToggleLike(ctx context.Context, id string, userID common.UserID) ([]common.UserID, error)
}
