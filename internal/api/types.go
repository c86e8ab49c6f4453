// Package api holds the JSON wire types shared by the HTTP server and the
// CLI client.
package api

import (
	"time"

	"github.com/dmitrijs2005/postboard/internal/common"
)

// Route paths.
const (
	PathRegister = "/api/users/register"
	PathLogin    = "/api/users/login"
	PathProfile  = "/api/users/profile"
	PathPosts    = "/api/posts"
	PathHealth   = "/healthz"
	PathMetrics  = "/metrics"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PostRequest is the body of create and edit.
type PostRequest struct {
	Text string `json:"text"`
}

// Profile is the public part of a user identity.
type Profile struct {
	ID    common.UserID `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
}

// AuthResponse answers register and login.
type AuthResponse struct {
	Profile
	Token string `json:"token"`
}

// Author is the populated owner of a post.
type Author struct {
	ID   common.UserID `json:"id"`
	Name string        `json:"name"`
}

type Post struct {
	ID        string          `json:"id"`
	Text      string          `json:"text"`
	User      Author          `json:"user"`
	Likes     []common.UserID `json:"likes"`
	ImageKey  string          `json:"imageKey,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type ImageUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
}

type ImageLink struct {
	URL string `json:"url"`
}

// Message is used for plain confirmations and for every error body.
type Message struct {
	Message string `json:"message"`
}

type Health struct {
	Status string `json:"status"`
}
