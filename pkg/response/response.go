// Package response writes the {success, message, ...payload} envelope.
package response

import (
	"buddyboost/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// JSON writes a successful envelope; payload keys sit next to "success".
func JSON(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Fail aborts the request with a failure envelope.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// Error renders err using its apperr kind. fallback is shown for internal
// failures so no store detail reaches the client.
func Error(c *gin.Context, err error, fallback string) {
	kind := apperr.KindOf(err)
	Fail(c, apperr.HTTPStatus(kind), apperr.MessageOf(err, fallback))
}
