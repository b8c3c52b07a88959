package utils

import "github.com/gin-gonic/gin"

// JSONResponse defines the uniform structure for API responses.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, 200, 0, "success", data)
}

// Created returns a standard success response with a 201 status.
func Created(ctx *gin.Context, data interface{}) {
	Respond(ctx, 201, 0, "success", data)
}

// NoContent completes the request with an empty 204 response.
func NoContent(ctx *gin.Context) {
	ctx.Status(204)
}

// Error logs the rejection and returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	if status >= 500 {
		Sugar.Errorw(message, "status", status, "code", code, "path", ctx.FullPath())
	} else {
		Sugar.Warnw(message, "status", status, "code", code, "path", ctx.FullPath())
	}
	Respond(ctx, status, code, message, nil)
}
