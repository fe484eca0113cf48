package models

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ApiResponse is the envelope every endpoint answers with. Data carries the
// payload, Meta is present on paginated lists only, and RequestedEntity
// echoes the method+route so log lines and toasts can name what was asked
// for without re-deriving it client-side.
type ApiResponse struct {
	Message         string           `json:"message"`
	Data            any              `json:"data,omitempty"`
	Error           bool             `json:"error,omitempty"`
	Meta            *Pagination      `json:"meta"`
	Rate            *RateLimitStatus `json:"rate_limit,omitempty"`
	RequestedEntity string           `json:"requested_entity,omitempty"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// RateLimitStatus is the caller's remaining budget in the current window,
// filled in by the rate-limiter middleware.
type RateLimitStatus struct {
	Limit          int       `json:"limit"`
	Remaining      int       `json:"remaining"`
	ResetAt        time.Time `json:"reset_at"`
	ResetInSeconds int       `json:"reset_in_seconds"`
}

// RateLimitContextKey is where the rate-limiter middleware parks the status
// for the response helpers to pick up.
const RateLimitContextKey = "rate_limit_status"

func rateLimitFromContext(c *gin.Context) *RateLimitStatus {
	if c == nil {
		return nil
	}
	if v, exists := c.Get(RateLimitContextKey); exists {
		if rl, ok := v.(*RateLimitStatus); ok {
			return rl
		}
	}
	return nil
}

func requestedEntity(c *gin.Context) string {
	return c.Request.Method + " " + c.FullPath()
}

// SuccessResponse wraps a single payload.
func SuccessResponse(c *gin.Context, message string, data any) ApiResponse {
	return ApiResponse{
		Message:         message,
		Data:            data,
		Rate:            rateLimitFromContext(c),
		RequestedEntity: requestedEntity(c),
	}
}

// PaginatedResponse wraps one page of a list.
func PaginatedResponse(c *gin.Context, message string, data any, meta *Pagination) ApiResponse {
	return ApiResponse{
		Message:         message,
		Data:            data,
		Meta:            meta,
		Rate:            rateLimitFromContext(c),
		RequestedEntity: requestedEntity(c),
	}
}

// ErrorResponse wraps a failure; Error is the flag clients branch on.
func ErrorResponse(c *gin.Context, message string) ApiResponse {
	return ApiResponse{
		Message:         message,
		Error:           true,
		Rate:            rateLimitFromContext(c),
		RequestedEntity: requestedEntity(c),
	}
}
