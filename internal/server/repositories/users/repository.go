// Package users stores identity records.
package users

import (
	"context"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/server/models"
)

// Repository persists users. Emails are expected to be normalized by the
// caller. Create fails with common.ErrDuplicateEmail on a taken email; the
// lookups fail with common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id common.UserID) (*models.User, error)
}
