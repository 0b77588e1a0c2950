package category

import (
	"errors"
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
	if public != nil {
		public.GET("/categories", h.List)
		public.GET("/categories/:id", h.Get)
	}

	if protected != nil {
		protected.POST("/categories", h.Create)
		protected.DELETE("/categories/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidID, "Invalid category ID")
		return
	}

	cat, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid input", errs)
		return
	}

	cat, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cat)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidID, "Invalid category ID")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid input")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Category not found")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, response.CodeConflict, "Category name already exists")
	default:
		response.Internal(c, err)
	}
}
