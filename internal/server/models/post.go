package models

import (
	"time"

	"github.com/dmitrijs2005/postboard/internal/common"
)

// Post is a feed entry. UserID is set once at creation and never changes.
// Likes is a set: no id appears twice.
type Post struct {
	ID        string
	UserID    common.UserID
	UserName  string
	Text      string
	Likes     []common.UserID
	ImageKey  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LikedBy reports whether id is in the like-set.
func (p *Post) LikedBy(id common.UserID) bool {
	return common.ContainsUserID(p.Likes, id)
}
