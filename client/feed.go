package client

import (
	"context"
	"fmt"
	"net/http"
)

// Feed returns all posts in reverse-chronological order.
func (c *Client) Feed(ctx context.Context) ([]Post, error) {
	var out postsResponse
	if err := c.do(ctx, http.MethodGet, "/feed", nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

// UserFeed returns one user's posts.
func (c *Client) UserFeed(ctx context.Context, userID int64) ([]Post, error) {
	var out postsResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/feed/user/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}
