package client

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	var out struct {
		Jobs []Job `json:"jobs"`
	}
	if err := c.do(ctx, http.MethodGet, "/jobs", nil, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

func (c *Client) GetJob(ctx context.Context, id int64) (*Job, error) {
	var out struct {
		Job Job `json:"job"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/jobs/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Job, nil
}

func (c *Client) ApplyToJob(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/jobs/%d/apply", id), nil, nil)
}

func (c *Client) WithdrawApplication(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/jobs/%d/apply", id), nil, nil)
}

// ToggleSaveJob flips the saved flag and returns the new state.
func (c *Client) ToggleSaveJob(ctx context.Context, id int64) (bool, error) {
	var out struct {
		Saved bool `json:"saved"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/jobs/%d/save", id), nil, &out); err != nil {
		return false, err
	}
	return out.Saved, nil
}
