// Package services contains server-side business logic. This file implements
// UserService, the credential store: registration, password checks and
// issuing session tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/cryptox"
	"github.com/dmitrijs2005/postboard/internal/server/auth"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/repomanager"
)

// Session is the result of a successful sign-up or login.
type Session struct {
	Token string
	User  *models.User
}

// UserService provides authentication-related operations:
//   - Register: create users with a hashed password
//   - Authenticate: check an email/password pair
//   - SignUp / Login: the above plus a fresh token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	bcryptCost  int
}

// NewUserService constructs a UserService. db may be nil when m is the
// in-memory manager.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenService, bcryptCost int) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		bcryptCost:  bcryptCost,
	}
}

// Register stores a new identity. The email is normalized before the
// uniqueness check, which is left to the store's unique index.
func (s *UserService) Register(ctx context.Context, name, email string, password []byte) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = common.NormalizeEmail(email)
	if name == "" || email == "" || len(password) == 0 || len(password) > cryptox.MaxPasswordLength {
		return nil, common.ErrorValidation
	}

	hash, err := cryptox.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user := &models.User{
		ID:           common.NewUserID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	repo := s.repomanager.Users(s.db)
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: error creating user: %v", common.ErrorInternal, err)
	}
	return user, nil
}

// Authenticate returns the user owning email when password matches.
// An unknown email and a wrong password both yield
// common.ErrInvalidCredentials after one bcrypt comparison each.
func (s *UserService) Authenticate(ctx context.Context, email string, password []byte) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		user = nil
	}

	var hash []byte
	if user != nil {
		hash = user.PasswordHash
	}

	if err := cryptox.ComparePassword(hash, password); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return user, nil
}

// FindByID resolves an identity; common.ErrorNotFound when it is gone.
func (s *UserService) FindByID(ctx context.Context, id common.UserID) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return user, nil
}

// VerifyToken checks token and resolves the identity it names. A token
// whose user no longer exists is reported as common.ErrorUnauthorized.
func (s *UserService) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	user, err := s.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) SignUp(ctx context.Context, name, email string, password []byte) (*Session, error) {
	user, err := s.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return s.newSession(user)
}

func (s *UserService) Login(ctx context.Context, email string, password []byte) (*Session, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.newSession(user)
}

func (s *UserService) newSession(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return &Session{Token: token, User: user}, nil
}
