package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"profhub/internal/domain"
	"profhub/internal/pkg/response"
	"profhub/internal/repository"

	"github.com/gin-gonic/gin"
)

type ProfessionalFinder interface {
	FindOne(ctx context.Context, id int64) (*domain.Professional, error)
}

// OwnershipChecker restricts mutations of a professional to its owning user.
type OwnershipChecker struct {
	professionals ProfessionalFinder
}

func NewOwnershipChecker(professionals ProfessionalFinder) *OwnershipChecker {
	return &OwnershipChecker{professionals: professionals}
}

// CheckProfessionalOwnership expects the professional id in URL param "id".
func (oc *OwnershipChecker) CheckProfessionalOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
			return
		}

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			response.Abort(c, http.StatusBadRequest, response.CodeInvalidID, "Invalid professional ID")
			return
		}

		p, err := oc.professionals.FindOne(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.Abort(c, http.StatusNotFound, response.CodeNotFound, "Professional not found")
				return
			}
			_ = c.Error(err)
			response.Abort(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load professional")
			return
		}

		if p.UserID != userID {
			response.Abort(c, http.StatusForbidden, response.CodeForbidden, "You don't own this profile")
			return
		}

		c.Next()
	}
}
