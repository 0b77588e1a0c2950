package professional

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

// RegisterRoutes wires the read endpoints on public and the mutations on
// protected. owner, when non-nil, guards PATCH and DELETE.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup, owner gin.HandlerFunc) {
	if public != nil {
		public.GET("/professionals", h.List)
		public.GET("/professionals/ranking", h.Ranking)
		public.GET("/professionals/:id", h.Get)
		public.GET("/professionals/:id/categories", h.GetWithCategories)
	}

	if protected != nil {
		guard := []gin.HandlerFunc{}
		if owner != nil {
			guard = append(guard, owner)
		}
		protected.POST("/professionals", h.Create)
		protected.PATCH("/professionals/:id", append(guard, h.Update)...)
		protected.DELETE("/professionals/:id", append(guard, h.Delete)...)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid input", errs)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p)
}

// List returns every professional. With ?sort=rating the result is the
// rating ranking instead.
func (h *Handler) List(c *gin.Context) {
	if c.Query("sort") == "rating" {
		h.Ranking(c)
		return
	}

	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Ranking(c *gin.Context) {
	items, err := h.svc.Ranking(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) GetWithCategories(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.svc.GetWithCategories(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid input", errs)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidID, "Invalid professional ID")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, validationMessage(err))
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Professional not found")
	case errors.Is(err, ErrReferential):
		response.Error(c, http.StatusUnprocessableEntity, response.CodeReferential, "Unknown user or category")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, response.CodeConflict, "User already has a professional profile")
	default:
		response.Internal(c, err)
	}
}

// validationMessage surfaces the repository's reason when there is one.
func validationMessage(err error) string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			if !errors.Is(e, ErrInvalidRequest) {
				return e.Error()
			}
		}
	}
	return "Invalid input"
}
