package client

import (
	"context"

	"github.com/dmitrijs2005/postboard/internal/api"
)

// Client is the API surface used by the CLI services.
type Client interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	// Profile fetches the identity of token, or of the current session
	// when token is empty.
	Profile(ctx context.Context, token string) (*api.Profile, error)

	ListPosts(ctx context.Context) ([]api.Post, error)
	CreatePost(ctx context.Context, text string) (*api.Post, error)
	UpdatePost(ctx context.Context, id, text string) (*api.Post, error)
	DeletePost(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string) (*api.Post, error)
	RequestImageUpload(ctx context.Context, id string) (*api.ImageUpload, error)
	ImageURL(ctx context.Context, id string) (string, error)

	Ping(ctx context.Context) error
}
