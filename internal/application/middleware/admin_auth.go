package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/interfaces/http/response"
)

// AdminMiddleware ensures the authenticated account is a back-office admin.
// It runs after Authenticate, which has already set school_id.
func AdminMiddleware(schoolRepo repository.SchoolRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr, exists := c.Get("school_id")
		if !exists {
			response.Unauthorized(c, "Missing authentication")
			c.Abort()
			return
		}

		schoolID, err := uuid.Parse(idStr.(string))
		if err != nil {
			response.Unauthorized(c, "Invalid account ID in token")
			c.Abort()
			return
		}

		school, err := schoolRepo.GetByID(c.Request.Context(), schoolID)
		if err != nil {
			response.Unauthorized(c, "Account not found")
			c.Abort()
			return
		}

		if !school.IsAdmin() {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Set("admin_id", schoolID)
		c.Next()
	}
}
