package domain

import (
	"context"
	"time"
)

type Post struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Content     string     `json:"content"`
	ImageURL    *string    `json:"image_url"`
	PostType    string     `json:"post_type"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	User        PublicUser `json:"user"`
	LikesCount  int64      `json:"likes_count"`
	LikedByUser bool       `json:"liked_by_user"`
}

const (
	PostTypeText  = "text"
	PostTypePhoto = "photo"
)

type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id, viewerID int64) (*Post, error)
	// Fetch returns all posts in reverse-chronological order with
	// likes_count and liked_by_user computed for viewerID.
	Fetch(ctx context.Context, viewerID int64) ([]Post, error)
	FetchByUser(ctx context.Context, userID, viewerID int64) ([]Post, error)
	Delete(ctx context.Context, id int64) error

	// ToggleLike flips the (post, user) like pair and reports the new state.
	ToggleLike(ctx context.Context, postID, userID int64) (likesCount int64, liked bool, err error)
}

type PostUsecase interface {
	CreatePost(ctx context.Context, userID int64, content string, imageURL *string) (*Post, error)
	ListPosts(ctx context.Context, viewerID int64) ([]Post, error)
	ListUserPosts(ctx context.Context, userID, viewerID int64) ([]Post, error)
	DeletePost(ctx context.Context, userID, postID int64) error
	ToggleLike(ctx context.Context, userID, postID int64) (likesCount int64, liked bool, err error)
	// UploadPostImage stores an image and returns its server-assigned URL.
	UploadPostImage(ctx context.Context, userID int64, filename string, data []byte) (string, error)
}
