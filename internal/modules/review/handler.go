package review

import (
	"net/http"
	"strconv"

	"profhub/internal/pkg/response"
	"profhub/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	// Public routes (no auth required)
	if public != nil {
		public.GET("/professionals/:id/reviews", h.GetByProfessional)
	}

	// Protected routes (auth required)
	if protected != nil {
		protected.POST("/professionals/:id/reviews", h.Create)
	}
}

func (h *Handler) Create(c *gin.Context) {
	professionalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || professionalID <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidID, "Invalid professional ID")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid input", errs)
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
		return
	}

	rv, err := h.svc.Create(c.Request.Context(), userID, professionalID, req)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid input")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Professional not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "You cannot review your own profile")
		case ErrConflict:
			response.Error(c, http.StatusConflict, response.CodeConflict, "Only one review per user per professional")
		default:
			response.Internal(c, err)
		}
		return
	}

	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) GetByProfessional(c *gin.Context) {
	professionalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || professionalID <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidID, "Invalid professional ID")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, err := h.svc.GetByProfessional(c.Request.Context(), professionalID, limit, offset)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, response.CodeInvalidRequest, "Invalid input")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Professional not found")
		default:
			response.Internal(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, items)
}
