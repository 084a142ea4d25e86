package v1

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"peer-backend/config"
	"peer-backend/internal/domain"
	"peer-backend/pkg/apperror"
	"peer-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
	config    *config.Config
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase, cfg *config.Config, uploadLimit gin.HandlerFunc) {
	handler := &ProfileHandler{profileUC: profileUC, config: cfg}

	profile := protected.Group("/profile")
	{
		profile.GET("", handler.Get)
		profile.PUT("", handler.Update)

		profile.POST("/photo", uploadLimit, handler.UploadPhoto)
		profile.DELETE("/photo", handler.RemovePhoto)

		profile.POST("/experience", handler.AddExperience)
		profile.PUT("/experience/:id", handler.UpdateExperience)
		profile.DELETE("/experience/:id", handler.RemoveExperience)

		profile.POST("/achievements", handler.AddAchievement)
		profile.PUT("/achievements/:id", handler.UpdateAchievement)
		profile.DELETE("/achievements/:id", handler.RemoveAchievement)
	}
}

// Get returns the caller's profile, creating an empty one on first access.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, user, err := h.profileUC.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

type profileUpdateRequest struct {
	FullName *string `json:"full_name"`
	Bio      *string `json:"bio"`
	Location *string `json:"location"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	upd := domain.ProfileUpdate{
		FullName: req.FullName,
		Bio:      req.Bio,
		Location: req.Location,
	}
	if err := h.profileUC.UpdateProfile(c.Request.Context(), currentUserID(c), upd); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

type photoURLRequest struct {
	PhotoURL string `json:"photo_url" binding:"required"`
}

// UploadPhoto takes either a multipart `photo` field or the legacy JSON
// body with a base64 data URL. Either way the stored result is a
// server-assigned URL.
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req photoURLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest("No photo provided"))
			return
		}
		photo, err := h.profileUC.SetPhotoURL(ctx, userID, req.PhotoURL)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Profile photo updated successfully",
			"photo":   photo,
		})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.Error(apperror.BadRequest("No photo provided"))
		return
	}
	if file.Size > h.config.MaxPhotoBytes {
		h.rejectUpload(c, file.Filename, "too_large")
		c.Error(apperror.BadRequest("File too large. Maximum size is 5MB"))
		return
	}
	if err := security.ValidateImageExtension(file.Filename); err != nil {
		h.rejectUpload(c, file.Filename, "bad_extension")
		c.Error(apperror.BadRequest(err.Error()))
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
		h.rejectUpload(c, file.Filename, "too_large")
		c.Error(apperror.BadRequest("File too large. Maximum size is 5MB"))
		return
	}

	photo, err := h.profileUC.UploadPhoto(ctx, userID, file.Filename, data)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Profile photo updated successfully",
		"photo":   photo,
	})
}

func (h *ProfileHandler) rejectUpload(c *gin.Context, filename, reason string) {
	if events := security.DefaultLogger(); events != nil {
		events.LogUploadRejected(c.ClientIP(), requestID(c), filename, reason)
	}
}

func (h *ProfileHandler) RemovePhoto(c *gin.Context) {
	if err := h.profileUC.RemovePhoto(c.Request.Context(), currentUserID(c)); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile photo removed successfully"})
}

type experienceRequest struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	exp := &domain.Experience{
		Title:       req.Title,
		Company:     req.Company,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	}
	if err := h.profileUC.AddExperience(c.Request.Context(), currentUserID(c), exp); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Experience added successfully",
		"experience": exp,
	})
}

func (h *ProfileHandler) UpdateExperience(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	exp := &domain.Experience{
		ID:          id,
		Title:       req.Title,
		Company:     req.Company,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	}
	if err := h.profileUC.UpdateExperience(c.Request.Context(), currentUserID(c), exp); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Experience updated successfully",
		"experience": exp,
	})
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.profileUC.RemoveExperience(c.Request.Context(), currentUserID(c), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Experience removed successfully"})
}

type achievementRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        *string `json:"date"`
}

func (h *ProfileHandler) AddAchievement(c *gin.Context) {
	var req achievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	a := &domain.Achievement{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
	}
	if err := h.profileUC.AddAchievement(c.Request.Context(), currentUserID(c), a); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Achievement added successfully",
		"achievement": a,
	})
}

func (h *ProfileHandler) UpdateAchievement(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req achievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	a := &domain.Achievement{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
	}
	if err := h.profileUC.UpdateAchievement(c.Request.Context(), currentUserID(c), a); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Achievement updated successfully",
		"achievement": a,
	})
}

func (h *ProfileHandler) RemoveAchievement(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.profileUC.RemoveAchievement(c.Request.Context(), currentUserID(c), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Achievement removed successfully"})
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("Invalid id")
	}
	return id, nil
}
