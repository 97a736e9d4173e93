package response

import (
	"errors"
	"log"
	"net/http"

	"anoa.com/ecoinsight/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	str, ok := userIDStr.(string)
	if !ok {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code >= http.StatusInternalServerError {
		log.Printf("[Internal Error] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}

	// Raw internal errors never leak to the client.
	message := err.Error()
	var appErr *apperror.AppError
	if code == http.StatusInternalServerError && !errors.As(err, &appErr) {
		message = "server error, please try again later"
	}

	c.JSON(code, gin.H{
		"error":   message,
		"message": message,
		"kind":    apperror.KindOf(err),
	})
}
