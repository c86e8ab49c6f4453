// Package services contains application services for the postboard CLI.
// This file defines the session manager: register, login, logout and the
// startup restore of a session persisted in the local SQLite file.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/client/client"
	"github.com/dmitrijs2005/postboard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/dbx"
)

// Metadata keys of the durable session.
const (
	keyToken     = "token"
	keyUserID    = "user_id"
	keyUserName  = "user_name"
	keyUserEmail = "user_email"
)

var sessionKeys = []string{keyToken, keyUserID, keyUserName, keyUserEmail}

// ErrSessionDiscarded wraps the reason a stored session was dropped by
// Restore.
var ErrSessionDiscarded = errors.New("stored session discarded")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Restore: revalidate a stored session with the server; clear it on any failure.
//   - Register / Login: authenticate against the server and persist the session.
//   - Logout: forget the session locally. The server is not contacted.
//     FeedService calls it when the server answers 401 mid-session.
//   - CurrentUser: the logged-in profile, if any.
//   - Ping: check server liveness.
type AuthService interface {
	Restore(ctx context.Context) (*api.Profile, error)
	Register(ctx context.Context, name, email string, password []byte) (*api.Profile, error)
	Login(ctx context.Context, email string, password []byte) (*api.Profile, error)
	Logout(ctx context.Context) error
	CurrentUser() (api.Profile, bool)
	Ping(ctx context.Context) error
}

type authService struct {
	client  client.Client
	db      *sql.DB
	session *Session
}

// NewAuthService binds the session manager to its API client, the local
// database and the Session the client's transport reads tokens from.
func NewAuthService(c client.Client, db *sql.DB, session *Session) AuthService {
	return &authService{client: c, db: db, session: session}
}

func (a *authService) metadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Restore loads the stored token and asks the server who it belongs to.
// The profile the server returns replaces the stored one. It returns
// (nil, nil) when nothing is stored. When the server rejects the
// token, or cannot be reached, the session is logged out and the error
// wraps ErrSessionDiscarded.
func (a *authService) Restore(ctx context.Context) (*api.Profile, error) {
	token, ok, err := a.metadataRepo(a.db).Get(ctx, keyToken)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok || token == "" {
		return nil, nil
	}

	p, err := a.client.Profile(ctx, token)
	if err != nil {
		if lerr := a.Logout(ctx); lerr != nil {
			return nil, errors.Join(fmt.Errorf("%w: %w", ErrSessionDiscarded, err), lerr)
		}
		return nil, fmt.Errorf("%w: %w", ErrSessionDiscarded, err)
	}

	if err := a.persist(ctx, &api.AuthResponse{Profile: *p, Token: token}); err != nil {
		return nil, err
	}
	return p, nil
}

func (a *authService) Register(ctx context.Context, name, email string, password []byte) (*api.Profile, error) {
	resp, err := a.client.Register(ctx, api.RegisterRequest{Name: name, Email: email, Password: string(password)})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := a.persist(ctx, resp); err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*api.Profile, error) {
	resp, err := a.client.Login(ctx, api.LoginRequest{Email: email, Password: string(password)})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := a.persist(ctx, resp); err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}

// persist writes the session keys in one transaction, then swaps the
// in-memory session.
func (a *authService) persist(ctx context.Context, resp *api.AuthResponse) error {
	if resp.Token == "" {
		return fmt.Errorf("%w: empty token in auth response", common.ErrorInternal)
	}

	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.metadataRepo(tx)
		values := map[string]string{
			keyToken:     resp.Token,
			keyUserID:    resp.ID.String(),
			keyUserName:  resp.Name,
			keyUserEmail: resp.Email,
		}
		for _, k := range sessionKeys {
			if err := repo.Set(ctx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	a.session.set(resp.Token, resp.Profile)
	return nil
}

// Logout clears the in-memory session first so no further request carries
// the token, then removes the durable copy.
func (a *authService) Logout(ctx context.Context) error {
	a.session.clear()

	if err := a.metadataRepo(a.db).Delete(ctx, sessionKeys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (a *authService) CurrentUser() (api.Profile, bool) {
	return a.session.Profile()
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
