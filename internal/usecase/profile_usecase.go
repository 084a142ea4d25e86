package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"peer-backend/internal/domain"
	"peer-backend/pkg/apperror"
	"peer-backend/pkg/security"
	"peer-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// experienceInput mirrors the required fields the edit form enforces.
type experienceInput struct {
	Title     string `validate:"required"`
	Company   string `validate:"required"`
	StartDate string `validate:"required"`
}

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	userRepo    domain.UserRepository
	store       storage.Store
	validate    *validator.Validate
}

func NewProfileUsecase(profileRepo domain.ProfileRepository, userRepo domain.UserRepository, store storage.Store, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		store:       store,
		validate:    validate,
	}
}

func (u *profileUsecase) GetProfile(ctx context.Context, userID int64) (*domain.Profile, *domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, apperror.NotFound("User not found")
		}
		return nil, nil, apperror.Internal(err)
	}

	profile, err := u.getOrCreate(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return profile, user, nil
}

// getOrCreate backfills an empty profile on first access, seeded with the
// username as full name, matching the original backend.
func (u *profileUsecase) getOrCreate(ctx context.Context, user *domain.User) (*domain.Profile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, user.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	profile = &domain.Profile{
		UserID:       user.ID,
		FullName:     user.Username,
		CreatedAt:    now,
		UpdatedAt:    now,
		Experience:   []domain.Experience{},
		Achievements: []domain.Achievement{},
		Photos:       []domain.ProfilePhoto{},
	}
	if err := u.profileRepo.Create(ctx, profile); err != nil {
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

func (u *profileUsecase) UpdateProfile(ctx context.Context, userID int64, upd domain.ProfileUpdate) error {
	if _, _, err := u.GetProfile(ctx, userID); err != nil {
		return err
	}
	if err := u.profileRepo.Update(ctx, userID, upd); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) AddExperience(ctx context.Context, userID int64, exp *domain.Experience) error {
	if err := u.validate.Struct(experienceInput{
		Title:     exp.Title,
		Company:   exp.Company,
		StartDate: exp.StartDate,
	}); err != nil {
		return apperror.BadRequest("Title, company and start date are required")
	}

	profile, _, err := u.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	exp.ProfileID = profile.ID

	if err := u.profileRepo.AddExperience(ctx, exp); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) UpdateExperience(ctx context.Context, userID int64, exp *domain.Experience) error {
	if err := u.validate.Struct(experienceInput{
		Title:     exp.Title,
		Company:   exp.Company,
		StartDate: exp.StartDate,
	}); err != nil {
		return apperror.BadRequest("Title, company and start date are required")
	}

	profile, _, err := u.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	exp.ProfileID = profile.ID

	if err := u.profileRepo.UpdateExperience(ctx, exp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Experience not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) RemoveExperience(ctx context.Context, userID, expID int64) error {
	profile, _, err := u.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.profileRepo.DeleteExperience(ctx, profile.ID, expID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Experience not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) AddAchievement(ctx context.Context, userID int64, a *domain.Achievement) error {
	if strings.TrimSpace(a.Title) == "" {
		return apperror.BadRequest("Title is required")
	}

	profile, _, err := u.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	a.ProfileID = profile.ID

	if err := u.profileRepo.AddAchievement(ctx, a); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) UpdateAchievement(ctx context.Context, userID int64, a *domain.Achievement) error {
	if strings.TrimSpace(a.Title) == "" {
		return apperror.BadRequest("Title is required")
	}

	profile, _, err := u.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	a.ProfileID = profile.ID

	if err := u.profileRepo.UpdateAchievement(ctx, a); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Achievement not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) RemoveAchievement(ctx context.Context, userID, achID int64) error {
	profile, _, err := u.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.profileRepo.DeleteAchievement(ctx, profile.ID, achID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Achievement not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) UploadPhoto(ctx context.Context, userID int64, filename string, data []byte) (*domain.ProfilePhoto, error) {
	detected := http.DetectContentType(data)
	if result := security.ValidateImage(filename, data, detected); !result.Valid {
		return nil, apperror.BadRequest(result.Error)
	}

	profile, _, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Stored photos are normalized to JPEG at a bounded size.
	compressed, err := storage.CompressImage(data, 1200, 80)
	if err != nil {
		return nil, apperror.BadRequest("Invalid image data")
	}

	key := fmt.Sprintf("profile_photos/%d_%s.jpg", userID, uuid.NewString())
	url, err := u.store.Put(ctx, key, compressed, "image/jpeg")
	if err != nil {
		return nil, apperror.Internal(err)
	}

	photo := &domain.ProfilePhoto{
		ProfileID:  profile.ID,
		URL:        url,
		UploadedAt: time.Now(),
	}
	if err := u.profileRepo.ReplacePhoto(ctx, photo); err != nil {
		return nil, apperror.Internal(err)
	}
	return photo, nil
}

// SetPhotoURL accepts the legacy base64 data-URL body and funnels it through
// the same storage path as a multipart upload. Raw base64 is never persisted.
func (u *profileUsecase) SetPhotoURL(ctx context.Context, userID int64, dataURL string) (*domain.ProfilePhoto, error) {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return nil, apperror.BadRequest("Invalid photo format. Expected base64 data URL")
	}
	comma := strings.IndexByte(dataURL, ',')
	if comma < 0 {
		return nil, apperror.BadRequest("Invalid photo format. Expected base64 data URL")
	}

	data, err := base64.StdEncoding.DecodeString(dataURL[comma+1:])
	if err != nil {
		return nil, apperror.BadRequest("Invalid image data")
	}

	// Filename is synthesized so the validator sees a sane extension; the
	// actual format check runs on the decoded bytes.
	ext := ".jpg"
	switch {
	case strings.HasPrefix(dataURL, "data:image/png"):
		ext = ".png"
	case strings.HasPrefix(dataURL, "data:image/gif"):
		ext = ".gif"
	}
	return u.UploadPhoto(ctx, userID, "inline"+ext, data)
}

func (u *profileUsecase) RemovePhoto(ctx context.Context, userID int64) error {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Profile not found")
		}
		return apperror.Internal(err)
	}

	photos, err := u.profileRepo.DeletePhotos(ctx, profile.ID)
	if err != nil {
		return apperror.Internal(err)
	}

	// Object removal is best effort; the DB row is the source of truth.
	for _, p := range photos {
		if key := photoKeyFromURL(p.URL); key != "" {
			_ = u.store.Delete(ctx, key)
		}
	}
	return nil
}

// photoKeyFromURL recovers the storage key from a public URL. Keys always
// start with the profile_photos/ prefix regardless of backend.
func photoKeyFromURL(url string) string {
	if idx := strings.Index(url, "profile_photos/"); idx >= 0 {
		return url[idx:]
	}
	return ""
}
