package v1

import (
	"errors"
	"net/http"

	"peer-backend/config"
	"peer-backend/internal/domain"
	"peer-backend/pkg/apperror"
	"peer-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC  domain.AuthUsecase
	tracker *security.LoginTracker
	events  *security.EventLogger
	config  *config.Config
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, tracker *security.LoginTracker, cfg *config.Config, loginLimit, signupLimit gin.HandlerFunc) {
	handler := &AuthHandler{
		authUC:  authUC,
		tracker: tracker,
		events:  security.DefaultLogger(),
		config:  cfg,
	}

	public.POST("/signup", signupLimit, handler.Signup)
	public.POST("/login", loginLimit, handler.Login)

	protected.GET("/me", handler.Me)
}

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest accepts the identifier in either field; the original form
// posts it as email even when it holds a username.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

// Signup godoc
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        signup  body      SignupRequest  true  "Account details"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  response.Response
// @Router       /api/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Username, email and password are required"))
		return
	}

	if _, err := h.authUC.Signup(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		c.Error(err)
		return
	}

	if h.events != nil {
		h.events.LogSignup(security.MaskEmail(req.Email), c.ClientIP(), requestID(c))
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created"})
}

// Login godoc
// @Summary      Authenticate and receive a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  response.Response
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Email and password are required"))
		return
	}

	login := req.Email
	if login == "" {
		login = req.Username
	}
	if login == "" {
		c.Error(apperror.BadRequest("Email and password are required"))
		return
	}

	ctx := c.Request.Context()
	ip := c.ClientIP()

	if h.tracker != nil {
		blocked, err := h.tracker.IsBlocked(ctx, login, ip)
		if err == nil && blocked {
			if h.events != nil {
				h.events.LogLoginBlocked(security.MaskEmail(login), ip, requestID(c), h.config.FailedLoginBlockMinutes)
			}
			c.Error(apperror.New(http.StatusTooManyRequests, "Too many failed attempts. Please try again later.", nil))
			return
		}
	}

	token, user, err := h.authUC.Login(ctx, login, req.Password)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusUnauthorized {
			if h.tracker != nil {
				_, _, _ = h.tracker.RecordFailedAttempt(ctx, login, ip, c.GetHeader("User-Agent"), requestID(c))
			}
			if h.events != nil {
				h.events.LogLoginFailed(security.MaskEmail(login), ip, c.GetHeader("User-Agent"), requestID(c), "bad_credentials")
			}
		}
		c.Error(err)
		return
	}

	if h.tracker != nil {
		_ = h.tracker.ClearAttempts(ctx, login, ip)
	}
	if h.events != nil {
		h.events.LogLoginSuccess(security.MaskEmail(user.Email), ip, requestID(c))
	}

	// Cookie fallback for clients that cannot attach the header.
	maxAge := h.config.TokenTTLHours * 3600
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", token, maxAge, "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID := currentUserID(c)

	user, err := h.authUC.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}
