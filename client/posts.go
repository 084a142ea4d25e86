package client

import (
	"context"
	"fmt"
	"net/http"
)

type postsResponse struct {
	Success bool   `json:"success"`
	Posts   []Post `json:"posts"`
}

func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var out postsResponse
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

func (c *Client) ListUserPosts(ctx context.Context, userID int64) ([]Post, error) {
	var out postsResponse
	path := fmt.Sprintf("/api/posts/user/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

// CreatePost publishes a text post, optionally referencing an image URL
// previously returned by UploadPostPhoto. Raw image bytes are never sent
// through this call.
func (c *Client) CreatePost(ctx context.Context, content string, imageURL *string) (*Post, error) {
	body := map[string]interface{}{"content": content}
	if imageURL != nil {
		body["image_url"] = *imageURL
	}

	var out struct {
		Post Post `json:"post"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/posts", body, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

// UploadPostPhoto stores the image and returns the URL to attach via
// CreatePost.
func (c *Client) UploadPostPhoto(ctx context.Context, filename string, data []byte) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.doMultipart(ctx, "/api/posts/photo", "photo", filename, data, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

type LikeResult struct {
	LikesCount  int64 `json:"likes_count"`
	LikedByUser bool  `json:"liked_by_user"`
}

// ToggleLike flips the caller's like on the post and returns the new
// count and state.
func (c *Client) ToggleLike(ctx context.Context, postID int64) (*LikeResult, error) {
	var out LikeResult
	path := fmt.Sprintf("/api/posts/%d/like", postID)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePost(ctx context.Context, postID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), nil, nil)
}
