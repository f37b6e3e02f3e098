// Package httperr defines the structured error body returned by the API.
package httperr

import "github.com/gin-gonic/gin"

// Response is the error body: status echoes the HTTP status code, errors
// carries per-field detail for validation failures.
type Response struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Write aborts the request with a structured error body.
func Write(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{Status: status, Message: message})
}

// WriteFields aborts the request with a structured error body carrying
// per-field errors.
func WriteFields(c *gin.Context, status int, message string, fields map[string]string) {
	c.AbortWithStatusJSON(status, Response{Status: status, Message: message, Errors: fields})
}
