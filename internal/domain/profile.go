package domain

import (
	"context"
	"time"
)

type Profile struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	FullName  string    `json:"full_name"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Experience   []Experience   `json:"experience"`
	Achievements []Achievement  `json:"achievements"`
	Photos       []ProfilePhoto `json:"photos"`
}

// Experience is an owned sub-entity of Profile, addressable by its own id.
// A nil EndDate means "current position".
type Experience struct {
	ID          int64   `json:"id"`
	ProfileID   int64   `json:"-"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
}

type Achievement struct {
	ID          int64   `json:"id"`
	ProfileID   int64   `json:"-"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        *string `json:"date"`
}

type ProfilePhoto struct {
	ID         int64     `json:"id"`
	ProfileID  int64     `json:"-"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"-"`
}

// ProfileUpdate carries a partial update: nil fields are left untouched.
type ProfileUpdate struct {
	FullName *string
	Bio      *string
	Location *string
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, userID int64, upd ProfileUpdate) error

	AddExperience(ctx context.Context, exp *Experience) error
	UpdateExperience(ctx context.Context, exp *Experience) error
	DeleteExperience(ctx context.Context, profileID, expID int64) error

	AddAchievement(ctx context.Context, a *Achievement) error
	UpdateAchievement(ctx context.Context, a *Achievement) error
	DeleteAchievement(ctx context.Context, profileID, achID int64) error

	ReplacePhoto(ctx context.Context, photo *ProfilePhoto) error
	DeletePhotos(ctx context.Context, profileID int64) ([]ProfilePhoto, error)
}

type ProfileUsecase interface {
	// GetProfile returns the profile for userID, creating an empty one on
	// first access (the original backend behaves the same way).
	GetProfile(ctx context.Context, userID int64) (*Profile, *User, error)
	UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) error

	AddExperience(ctx context.Context, userID int64, exp *Experience) error
	UpdateExperience(ctx context.Context, userID int64, exp *Experience) error
	RemoveExperience(ctx context.Context, userID, expID int64) error

	AddAchievement(ctx context.Context, userID int64, a *Achievement) error
	UpdateAchievement(ctx context.Context, userID int64, a *Achievement) error
	RemoveAchievement(ctx context.Context, userID, achID int64) error

	// UploadPhoto stores the image bytes and replaces any existing profile
	// photo with the server-assigned URL.
	UploadPhoto(ctx context.Context, userID int64, filename string, data []byte) (*ProfilePhoto, error)
	// SetPhotoURL handles the legacy JSON {photo_url: dataURL} path by
	// decoding the payload and storing it like a regular upload.
	SetPhotoURL(ctx context.Context, userID int64, dataURL string) (*ProfilePhoto, error)
	RemovePhoto(ctx context.Context, userID int64) error
}
