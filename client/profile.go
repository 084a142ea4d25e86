package client

import (
	"context"
	"fmt"
	"net/http"
)

type ProfileResponse struct {
	Profile Profile `json:"profile"`
	User    User    `json:"user"`
}

func (c *Client) GetProfile(ctx context.Context) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ProfileUpdate struct {
	FullName *string `json:"full_name,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Location *string `json:"location,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, "/api/profile", upd, nil)
}

// UploadProfilePhoto sends the image as multipart form data and returns
// the stored photo with its server-assigned URL.
func (c *Client) UploadProfilePhoto(ctx context.Context, filename string, data []byte) (*Photo, error) {
	var out struct {
		Photo Photo `json:"photo"`
	}
	if err := c.doMultipart(ctx, "/api/profile/photo", "photo", filename, data, &out); err != nil {
		return nil, err
	}
	return &out.Photo, nil
}

func (c *Client) RemoveProfilePhoto(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/profile/photo", nil, nil)
}

type ExperienceInput struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	Description string  `json:"description"`
}

func (c *Client) AddExperience(ctx context.Context, in ExperienceInput) (*Experience, error) {
	var out struct {
		Experience Experience `json:"experience"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/profile/experience", in, &out); err != nil {
		return nil, err
	}
	return &out.Experience, nil
}

func (c *Client) UpdateExperience(ctx context.Context, id int64, in ExperienceInput) (*Experience, error) {
	var out struct {
		Experience Experience `json:"experience"`
	}
	path := fmt.Sprintf("/api/profile/experience/%d", id)
	if err := c.do(ctx, http.MethodPut, path, in, &out); err != nil {
		return nil, err
	}
	return &out.Experience, nil
}

func (c *Client) RemoveExperience(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/profile/experience/%d", id), nil, nil)
}

type AchievementInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        *string `json:"date,omitempty"`
}

func (c *Client) AddAchievement(ctx context.Context, in AchievementInput) (*Achievement, error) {
	var out struct {
		Achievement Achievement `json:"achievement"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/profile/achievements", in, &out); err != nil {
		return nil, err
	}
	return &out.Achievement, nil
}

func (c *Client) UpdateAchievement(ctx context.Context, id int64, in AchievementInput) (*Achievement, error) {
	var out struct {
		Achievement Achievement `json:"achievement"`
	}
	path := fmt.Sprintf("/api/profile/achievements/%d", id)
	if err := c.do(ctx, http.MethodPut, path, in, &out); err != nil {
		return nil, err
	}
	return &out.Achievement, nil
}

func (c *Client) RemoveAchievement(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/profile/achievements/%d", id), nil, nil)
}
