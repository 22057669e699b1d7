package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tenniscourt/internal/domain"
	"tenniscourt/internal/repository"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError writes the envelope for a domain or repository error.
// Unknown errors become 500 and are attached to the gin context for the
// error logger.
func FromError(c *gin.Context, err error) {
	var tu *domain.TimeUnavailableError
	var rm *domain.RoleMismatchError

	switch {
	case errors.As(err, &tu):
		ErrorWithDetails(c, http.StatusConflict, "TIME_UNAVAILABLE", err.Error(), gin.H{
			"resource":    tu.Resource,
			"resource_id": tu.ResourceID,
			"start":       tu.Interval.Start,
			"end":         tu.Interval.End(),
		})
	case errors.As(err, &rm):
		ErrorWithDetails(c, http.StatusUnprocessableEntity, "ROLE_MISMATCH", err.Error(), gin.H{
			"side":      rm.Side,
			"person_id": rm.PersonID,
			"required":  rm.Required.String(),
		})
	case errors.Is(err, domain.ErrNotImplemented):
		Error(c, http.StatusNotImplemented, "NOT_IMPLEMENTED", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrInvalidInterval), errors.Is(err, domain.ErrInvalidPerson):
		Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, domain.ErrDuplicateCourt), errors.Is(err, repository.ErrConflict):
		Error(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		_ = c.Error(err)
		log.Printf("unhandled error path=%s error=%v", c.FullPath(), err)
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
