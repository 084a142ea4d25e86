package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"peer-backend/internal/domain"
	"peer-backend/pkg/apperror"
	"peer-backend/pkg/security"
	"peer-backend/pkg/storage"

	"github.com/google/uuid"
)

type postUsecase struct {
	postRepo domain.PostRepository
	userRepo domain.UserRepository
	store    storage.Store
}

func NewPostUsecase(postRepo domain.PostRepository, userRepo domain.UserRepository, store storage.Store) domain.PostUsecase {
	return &postUsecase{postRepo: postRepo, userRepo: userRepo, store: store}
}

func (u *postUsecase) CreatePost(ctx context.Context, userID int64, content string, imageURL *string) (*domain.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.BadRequest("Content is required")
	}
	if imageURL != nil && strings.HasPrefix(*imageURL, "data:") {
		// Base64 payloads are rejected; images go through the upload
		// endpoint and arrive here as a server-assigned URL.
		return nil, apperror.BadRequest("Inline image data is not supported; upload the photo first")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	postType := domain.PostTypeText
	if imageURL != nil && *imageURL != "" {
		postType = domain.PostTypePhoto
	}

	post := &domain.Post{
		UserID:    userID,
		Content:   content,
		ImageURL:  imageURL,
		PostType:  postType,
		CreatedAt: time.Now(),
		User:      user.Public(),
	}
	if err := u.postRepo.Create(ctx, post); err != nil {
		return nil, apperror.Internal(err)
	}
	return post, nil
}

func (u *postUsecase) ListPosts(ctx context.Context, viewerID int64) ([]domain.Post, error) {
	posts, err := u.postRepo.Fetch(ctx, viewerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return posts, nil
}

func (u *postUsecase) ListUserPosts(ctx context.Context, userID, viewerID int64) ([]domain.Post, error) {
	posts, err := u.postRepo.FetchByUser(ctx, userID, viewerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return posts, nil
}

// DeletePost removes a post after an ownership check on user id, never on
// display name.
func (u *postUsecase) DeletePost(ctx context.Context, userID, postID int64) error {
	post, err := u.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Post not found")
		}
		return apperror.Internal(err)
	}
	if post.UserID != userID {
		return apperror.Forbidden("You can only delete your own posts")
	}

	if err := u.postRepo.Delete(ctx, postID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *postUsecase) ToggleLike(ctx context.Context, userID, postID int64) (int64, bool, error) {
	if _, err := u.postRepo.GetByID(ctx, postID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, false, apperror.NotFound("Post not found")
		}
		return 0, false, apperror.Internal(err)
	}

	count, liked, err := u.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return 0, false, apperror.Internal(err)
	}
	return count, liked, nil
}

func (u *postUsecase) UploadPostImage(ctx context.Context, userID int64, filename string, data []byte) (string, error) {
	detected := http.DetectContentType(data)
	if result := security.ValidateImage(filename, data, detected); !result.Valid {
		return "", apperror.BadRequest(result.Error)
	}

	compressed, err := storage.CompressImage(data, 1200, 80)
	if err != nil {
		return "", apperror.BadRequest("Invalid image data")
	}

	key := fmt.Sprintf("post_photos/%d_%s.jpg", userID, uuid.NewString())
	url, err := u.store.Put(ctx, key, compressed, "image/jpeg")
	if err != nil {
		return "", apperror.Internal(err)
	}
	return url, nil
}
