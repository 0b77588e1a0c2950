package auth

import (
	"errors"
	"net/http"
	"time"

	"profhub/internal/pkg/response"
	"profhub/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type CookieConfig struct {
	Name   string
	Secure bool
}

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	cookie  CookieConfig
}

func NewHandler(service *Service, cookie CookieConfig) *Handler {
	return &Handler{service: service, cookie: cookie}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	users := v1.Group("/users")
	{
		users.POST("", h.Register)
		users.POST("/login", h.Login)
		users.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/users/me", h.GetMe)
}

// Register creates an account. The password is stored as a bcrypt hash.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid input", errs)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user": toPublic(user.ID, user.Name, user.Email, user.IsActive),
	})
}

// Login returns a token in the body and also sets it as the session cookie.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, ErrUserInactive):
			response.Error(c, http.StatusForbidden, "USER_INACTIVE", "Account is disabled")
		default:
			response.Internal(c, err)
		}
		return
	}

	maxAge := int(time.Until(res.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, res.Token, maxAge, "/", "", h.cookie.Secure, true)

	response.Success(c, http.StatusOK, gin.H{
		"user":       toPublic(res.User.ID, res.User.Name, res.User.Email, res.User.IsActive),
		"token":      res.Token,
		"expires_at": res.ExpiresAt.UTC(),
	})
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.GetMe(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": toPublic(user.ID, user.Name, user.Email, user.IsActive),
	})
}

func toPublic(id int64, name, email string, active bool) UserPublic {
	return UserPublic{ID: id, Name: name, Email: email, IsActive: active}
}
