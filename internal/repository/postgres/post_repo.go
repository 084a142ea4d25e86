package postgres

import (
	"context"
	"errors"

	"peer-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) domain.PostRepository {
	return &postRepo{db: db}
}

const postSelect = `
	SELECT p.id, p.user_id, p.content, p.image_url, p.post_type, p.created_at, p.updated_at,
		u.id, u.username,
		COUNT(pl.user_id) AS likes_count,
		BOOL_OR(pl.user_id = $1) AS liked_by_user
	FROM posts p
	JOIN users u ON u.id = p.user_id
	LEFT JOIN post_likes pl ON pl.post_id = p.id`

const postGroup = ` GROUP BY p.id, p.user_id, p.content, p.image_url, p.post_type, p.created_at, p.updated_at, u.id, u.username`

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `INSERT INTO posts (user_id, content, image_url, post_type, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRow(ctx, query,
		post.UserID, post.Content, post.ImageURL, post.PostType, post.CreatedAt, post.UpdatedAt,
	).Scan(&post.ID)
}

func (r *postRepo) GetByID(ctx context.Context, id, viewerID int64) (*domain.Post, error) {
	query := postSelect + ` WHERE p.id = $2` + postGroup
	post, err := scanPost(r.db.QueryRow(ctx, query, viewerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

func (r *postRepo) Fetch(ctx context.Context, viewerID int64) ([]domain.Post, error) {
	query := postSelect + postGroup + ` ORDER BY p.created_at DESC`
	return r.fetch(ctx, query, viewerID)
}

func (r *postRepo) FetchByUser(ctx context.Context, userID, viewerID int64) ([]domain.Post, error) {
	query := postSelect + ` WHERE p.user_id = $2` + postGroup + ` ORDER BY p.created_at DESC`
	return r.fetch(ctx, query, viewerID, userID)
}

func (r *postRepo) fetch(ctx context.Context, query string, args ...interface{}) ([]domain.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	var likedByUser *bool // BOOL_OR over zero rows is NULL
	err := row.Scan(
		&p.ID, &p.UserID, &p.Content, &p.ImageURL, &p.PostType, &p.CreatedAt, &p.UpdatedAt,
		&p.User.ID, &p.User.Username,
		&p.LikesCount, &likedByUser,
	)
	if err != nil {
		return nil, err
	}
	p.User.Name = p.User.Username
	if likedByUser != nil {
		p.LikedByUser = *likedByUser
	}
	return &p, nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ToggleLike inserts the (post, user) pair or removes it when present, then
// returns the fresh count. The unique constraint on post_likes makes rapid
// repeated toggles safe: each request lands on exactly one of the branches.
func (r *postRepo) ToggleLike(ctx context.Context, postID, userID int64) (int64, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return 0, false, err
	}

	liked := false
	if tag.RowsAffected() == 0 {
		// Nothing to remove: this toggle is a like.
		if _, err := tx.Exec(ctx,
			`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			postID, userID); err != nil {
			return 0, false, err
		}
		liked = true
	}

	var count int64
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID).Scan(&count); err != nil {
		return 0, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, false, err
	}
	return count, liked, nil
}
