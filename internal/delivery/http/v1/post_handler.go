package v1

import (
	"io"
	"net/http"

	"peer-backend/config"
	"peer-backend/internal/domain"
	"peer-backend/pkg/apperror"
	"peer-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUC domain.PostUsecase
	config *config.Config
}

// NewPostHandler registers the post CRUD routes plus the feed aliases the
// web client reads from.
func NewPostHandler(protected *gin.RouterGroup, feed *gin.RouterGroup, postUC domain.PostUsecase, cfg *config.Config, uploadLimit gin.HandlerFunc) {
	handler := &PostHandler{postUC: postUC, config: cfg}

	posts := protected.Group("/posts")
	{
		posts.GET("", handler.List)
		posts.POST("", handler.Create)
		posts.GET("/user/:id", handler.ListByUser)
		posts.POST("/photo", uploadLimit, handler.UploadPhoto)
		posts.POST("/:id/like", handler.ToggleLike)
		posts.DELETE("/:id", handler.Delete)
	}

	feed.GET("", handler.List)
	feed.GET("/user/:id", handler.ListByUser)
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.postUC.ListPosts(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

func (h *PostHandler) ListByUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	posts, err := h.postUC.ListUserPosts(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

type createPostRequest struct {
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Content is required"))
		return
	}

	post, err := h.postUC.CreatePost(c.Request.Context(), currentUserID(c), req.Content, req.ImageURL)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Post created successfully",
		"post":    post,
	})
}

// UploadPhoto is the single image-attach primitive: it stores the bytes
// and returns the URL the client then passes to Create.
func (h *PostHandler) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		c.Error(apperror.BadRequest("No photo provided"))
		return
	}
	if file.Size > h.config.MaxPhotoBytes {
		if events := security.DefaultLogger(); events != nil {
			events.LogUploadRejected(c.ClientIP(), requestID(c), file.Filename, "too_large")
		}
		c.Error(apperror.BadRequest("File too large. Maximum size is 5MB"))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.config.MaxPhotoBytes+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	if int64(len(data)) > h.config.MaxPhotoBytes {
		c.Error(apperror.BadRequest("File too large. Maximum size is 5MB"))
		return
	}

	url, err := h.postUC.UploadPostImage(c.Request.Context(), currentUserID(c), file.Filename, data)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "url": url})
}

func (h *PostHandler) ToggleLike(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	count, liked, err := h.postUC.ToggleLike(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"likes_count":   count,
		"liked_by_user": liked,
	})
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.postUC.DeletePost(c.Request.Context(), currentUserID(c), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post deleted successfully",
	})
}
