package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"scribe/server/seedwork/apperror"
)

// Logger is a middleware that logs the request details
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		// Process request
		c.Next()

		// After request
		latency := time.Since(start)
		statusCode := c.Writer.Status()

		logMsg := fmt.Sprintf("[GIN] %s | %s | %s | %s | Status: %d | %s | %s\n",
			time.Now().Format(time.RFC3339),
			method,
			path,
			c.ClientIP(),
			statusCode,
			latency.String(),
			c.GetString("error"))

		gin.DefaultWriter.Write([]byte(logMsg))

		// Log errors if any
		if len(c.Errors) > 0 {
			gin.DefaultErrorWriter.Write([]byte(c.Errors.String()))
		}

		// If we have a slow request, log it differently
		if latency > time.Second*5 {
			gin.DefaultWriter.Write([]byte("SLOW REQUEST: " + path + " took " + latency.String() + "\n"))
		}
	}
}

// CORS middleware to handle Cross-Origin Resource Sharing
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// ErrorHandler translates the last handler error into the §7 response
// contract: {"error": code, "message": ..., optional extra fields}. Typed
// apperror.Error values drive the status code and code string; anything
// else falls back to a generic 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if appErr, ok := apperror.As(err); ok {
			body := gin.H{
				"error":   appErr.Code,
				"message": appErr.Message,
			}
			for k, v := range appErr.Details {
				body[k] = v
			}
			c.JSON(appErr.HTTPStatus(), body)
			return
		}

		c.JSON(500, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
	}
}
