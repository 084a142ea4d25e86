package v1

import (
	"net/http"

	"peer-backend/config"
	"peer-backend/internal/delivery/http/middleware"
	"peer-backend/internal/delivery/http/response"
	"peer-backend/internal/domain"
	"peer-backend/pkg/auth"
	"peer-backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC    domain.AuthUsecase
	ProfileUC domain.ProfileUsecase
	PostUC    domain.PostUsecase
	JobUC     domain.JobUsecase
	MessageUC domain.MessageUsecase

	Issuer  *auth.Issuer
	Tracker *security.LoginTracker
	Config  *config.Config

	// UploadsDir is served under /uploads when the local storage backend
	// is active; empty with S3.
	UploadsDir string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// CORS must run before anything that can short-circuit the request.
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.GlobalRateLimit(deps.Config))
	r.Use(middleware.CSRFMiddleware())
	r.Use(middleware.ErrorHandler())

	if deps.UploadsDir != "" {
		r.Static("/uploads", deps.UploadsDir)
	}

	authRequired := middleware.AuthMiddleware(deps.Issuer)
	loginLimit := middleware.LoginRateLimit(deps.Config)
	signupLimit := middleware.SignupRateLimit(deps.Config)
	uploadLimit := middleware.UploadRateLimit(deps.Config)

	// The web client talks to these paths directly; shapes match what it
	// already parses.
	api := r.Group("/api")
	apiProtected := api.Group("")
	apiProtected.Use(authRequired)
	{
		NewAuthHandler(api, apiProtected, deps.AuthUC, deps.Tracker, deps.Config, loginLimit, signupLimit)
		NewProfileHandler(apiProtected, deps.ProfileUC, deps.Config, uploadLimit)

		feed := r.Group("/feed")
		feed.Use(authRequired)
		NewPostHandler(apiProtected, feed, deps.PostUC, deps.Config, uploadLimit)
	}

	jobs := r.Group("")
	jobs.Use(authRequired)
	NewJobHandler(jobs, deps.JobUC)
	NewMessageHandler(jobs, deps.MessageUC)

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1Protected := v1.Group("")
	v1Protected.Use(authRequired)
	NewAdminHandler(v1Protected, deps.JobUC)

	return r
}

// currentUserID reads the authenticated user id set by the auth middleware.
// Routes registered behind it can rely on the value being present.
func currentUserID(c *gin.Context) int64 {
	id, _ := middleware.UserID(c)
	return id
}

func requestID(c *gin.Context) string {
	v, _ := c.Get("RequestID")
	s, _ := v.(string)
	return s
}
