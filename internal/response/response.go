package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the standardized API response body. Success responses
// carry message and data; error responses carry error and optionally
// field-level details.
type Envelope struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message,omitempty"`
	Data      any      `json:"data,omitempty"`
	Error     string   `json:"error,omitempty"`
	Details   []string `json:"details,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	TotalPages  int `json:"total_pages"`
}

// NewPagination computes page metadata from the effective page, page
// size and total match count.
func NewPagination(page, perPage, total int) Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
	}
}

// Success sends a successful JSON response.
func Success(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: timestamp(),
	})
}

// Fail sends an error response with a client-safe message.
func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Envelope{
		Success:   false,
		Error:     message,
		Timestamp: timestamp(),
	})
}

// FailWithDetails sends an error response carrying field-level
// validation details.
func FailWithDetails(c *gin.Context, statusCode int, message string, details []string) {
	c.JSON(statusCode, Envelope{
		Success:   false,
		Error:     message,
		Details:   details,
		Timestamp: timestamp(),
	})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Envelope{
		Success:   false,
		Error:     message,
		Timestamp: timestamp(),
	})
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
