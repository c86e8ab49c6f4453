package posts

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/server/models"
)

type memoryPost struct {
	post models.Post
	seq  uint64
}

// MemoryRepository keeps posts in process memory. Every operation holds the
// lock for its whole read-modify-write, which makes ToggleLike atomic.
type MemoryRepository struct {
	mu    sync.Mutex
	seq   uint64
	posts map[string]*memoryPost
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		posts: make(map[string]*memoryPost),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) Create(_ context.Context, post *models.Post) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	post.CreatedAt, post.UpdatedAt = now, now
	post.Likes = []common.UserID{}

	r.seq++
	r.posts[post.ID] = &memoryPost{post: *post, seq: r.seq}
	return post, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mp, ok := r.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clonePost(&mp.post), nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*memoryPost, 0, len(r.posts))
	for _, mp := range r.posts {
		all = append(all, mp)
	}
	slices.SortFunc(all, func(a, b *memoryPost) int {
		if c := b.post.CreatedAt.Compare(a.post.CreatedAt); c != 0 {
			return c
		}
		return int(b.seq) - int(a.seq)
	})

	result := make([]*models.Post, 0, len(all))
	for _, mp := range all {
		result = append(result, clonePost(&mp.post))
	}
	return result, nil
}

func (r *MemoryRepository) UpdateText(_ context.Context, id string, owner common.UserID, text string) error {
	return r.mutateOwned(id, owner, func(p *models.Post) {
		p.Text = text
	})
}

func (r *MemoryRepository) Delete(_ context.Context, id string, owner common.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mp, ok := r.posts[id]
	if !ok || !mp.post.UserID.Equal(owner) {
		return common.ErrorNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *MemoryRepository) SetImageKey(_ context.Context, id string, owner common.UserID, key string) error {
	return r.mutateOwned(id, owner, func(p *models.Post) {
		p.ImageKey = key
	})
}

func (r *MemoryRepository) ToggleLike(_ context.Context, id string, userID common.UserID) ([]common.UserID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mp, ok := r.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	p := &mp.post
	if i := slices.IndexFunc(p.Likes, userID.Equal); i >= 0 {
		p.Likes = slices.Delete(slices.Clone(p.Likes), i, i+1)
	} else {
		p.Likes = append(slices.Clone(p.Likes), userID)
	}
	return slices.Clone(p.Likes), nil
}

func (r *MemoryRepository) mutateOwned(id string, owner common.UserID, fn func(p *models.Post)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mp, ok := r.posts[id]
	if !ok || !mp.post.UserID.Equal(owner) {
		return common.ErrorNotFound
	}
	fn(&mp.post)
	mp.post.UpdatedAt = r.now()
	return nil
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Likes = slices.Clone(p.Likes)
	if c.Likes == nil {
		c.Likes = []common.UserID{}
	}
	return &c
}
