package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/dbx"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/jackc/pgx/v5/pgtype"
)

const selectPost = `SELECT p.id, p.user_id, u.name, p.text, p.likes, p.image_key, p.created_at, p.updated_at
		 FROM posts p
		 JOIN users u ON u.id = p.user_id`

// PostgresRepository is cheap to build and is created per call by the
// repository manager; its pgtype.Map is not shared between goroutines.
type PostgresRepository struct {
	db    dbx.DBTX
	types *pgtype.Map
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, types: pgtype.NewMap()}
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {

	query :=
		`INSERT INTO posts (id, user_id, text)
		 VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, post.ID, post.UserID, post.Text).
		Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	post.Likes = []common.UserID{}
	return post, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := selectPost + `
		 WHERE p.id = $1
		 `

	post, err := r.scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Post, error) {
	query := selectPost + `
		 ORDER BY p.created_at DESC, p.id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Post, 0)
	for rows.Next() {
		post, err := r.scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateText(ctx context.Context, id string, owner common.UserID, text string) error {
	query :=
		`UPDATE posts SET text = $3, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 `
	return dbx.ExecOne(ctx, r.db, query, id, owner, text)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string, owner common.UserID) error {
	query :=
		`DELETE FROM posts
		 WHERE id = $1 AND user_id = $2
		 `
	return dbx.ExecOne(ctx, r.db, query, id, owner)
}

func (r *PostgresRepository) SetImageKey(ctx context.Context, id string, owner common.UserID, key string) error {
	query :=
		`UPDATE posts SET image_key = $3, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 `
	return dbx.ExecOne(ctx, r.db, query, id, owner, key)
}

// ToggleLike is a single-row read-modify-write: the row lock taken by the
// UPDATE serializes concurrent toggles on the same post.
func (r *PostgresRepository) ToggleLike(ctx context.Context, id string, userID common.UserID) ([]common.UserID, error) {
	query :=
		`UPDATE posts SET likes = CASE
		     WHEN $2::uuid = ANY(likes) THEN array_remove(likes, $2::uuid)
		     ELSE array_append(likes, $2::uuid)
		 END
		 WHERE id = $1
		 RETURNING likes
		 `

	var raw []string
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(r.types.SQLScanner(&raw))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return parseLikes(raw)
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) scanPost(row scanner) (*models.Post, error) {
	post := &models.Post{}
	var likes []string
	err := row.Scan(&post.ID, &post.UserID, &post.UserName, &post.Text,
		r.types.SQLScanner(&likes), &post.ImageKey, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if post.Likes, err = parseLikes(likes); err != nil {
		return nil, err
	}
	return post, nil
}

func parseLikes(raw []string) ([]common.UserID, error) {
	likes := make([]common.UserID, 0, len(raw))
	for _, s := range raw {
		id, err := common.ParseUserID(s)
		if err != nil {
			return nil, err
		}
		likes = append(likes, id)
	}
	return likes, nil
}
