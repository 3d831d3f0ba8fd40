package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestInfo summarizes the request. URL is the matched route template
// (e.g. /api/confirmation/:token), so path parameters and the query string
// are never echoed; it is empty for unmatched routes.
type RequestInfo struct {
	IP     string `json:"ip"`
	Method string `json:"method"`
	URL    string `json:"url"`
}

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Request   RequestInfo `json:"request"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

func requestInfo(ctx *gin.Context) RequestInfo {
	ip := ctx.GetString("real_ip")
	if ip == "" {
		ip = ctx.ClientIP()
	}
	return RequestInfo{IP: ip, Method: ctx.Request.Method, URL: ctx.FullPath()}
}

// Success writes a success envelope and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Request:   requestInfo(ctx),
		Data:      data,
		Meta:      meta,
	}
	ctx.JSON(status, resp)
	return resp
}

// Error writes an error envelope and aborts the handler chain.
func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Request:   requestInfo(ctx),
		Error:     err,
	}
	ctx.AbortWithStatusJSON(status, resp)
	return resp
}
