package v1

import (
	"fmt"
	"net/http"
	"time"

	"peer-backend/internal/delivery/http/middleware"
	"peer-backend/internal/delivery/http/response"
	"peer-backend/internal/domain"
	"peer-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	jobUC domain.JobUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &AdminHandler{jobUC: jobUC}

	admin := protected.Group("/admin")
	{
		admin.GET("/applications/export", handler.ExportApplications)
		admin.POST("/jobs", handler.CreateJob)
	}
}

type jobCreateRequest struct {
	Title        string   `json:"title" binding:"required"`
	Company      string   `json:"company" binding:"required"`
	Location     string   `json:"location"`
	Salary       string   `json:"salary"`
	JobType      string   `json:"type"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

// CreateJob godoc
// @Summary      Post a new job listing
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        job  body      jobCreateRequest  true  "Job listing"
// @Success      201  {object}  response.Response
// @Router       /admin/jobs [post]
func (h *AdminHandler) CreateJob(c *gin.Context) {
	var req jobCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Title and company are required"))
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.Error(apperror.Unauthorized("Token is missing!"))
		return
	}

	job := &domain.Job{
		UserID:       userID,
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Salary:       req.Salary,
		JobType:      req.JobType,
		Description:  req.Description,
		Requirements: req.Requirements,
	}

	created, err := h.jobUC.CreateJob(c.Request.Context(), job)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created successfully", gin.H{"job": created})
}

// ExportApplications godoc
// @Summary      Export job applications to Excel
// @Tags         admin
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Router       /admin/applications/export [get]
func (h *AdminHandler) ExportApplications(c *gin.Context) {
	data, err := h.jobUC.ExportApplications(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	filename := fmt.Sprintf("applications_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
