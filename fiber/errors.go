package fiber

import (
	"errors"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
)

// ErrorCode represents an error code.
type ErrorCode string

const (
	ErrorCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrorCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrorCodeBadRequest ErrorCode = "BAD_REQUEST"
)

// AppError is the JSON body of every error answered by the preview server.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Stack      string    `json:"stack,omitempty"`
	StatusCode int       `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new application error.
func NewAppError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// AsAppError converts err to an AppError. Fiber errors keep their status
// code; anything else is an internal error.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := ErrorCodeInternal
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			code = ErrorCodeNotFound
		case fiber.StatusBadRequest:
			code = ErrorCodeBadRequest
		}
		return NewAppError(code, fiberErr.Message, fiberErr.Code)
	}
	return NewAppError(ErrorCodeInternal, err.Error(), fiber.StatusInternalServerError)
}

// ErrorHandler creates a Fiber error handler answering AppError JSON.
func ErrorHandler(devMode bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		appErr := AsAppError(err)
		if appErr.StatusCode >= fiber.StatusInternalServerError {
			log.Printf("dsfr: %s %s: %v", c.Method(), c.Path(), err)
		}
		if !devMode {
			appErr = &AppError{Code: appErr.Code, Message: appErr.Message, StatusCode: appErr.StatusCode}
		}
		return c.Status(appErr.StatusCode).JSON(appErr)
	}
}

// NotFoundHandler creates a 404 handler.
func NotFoundHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return NewAppError(ErrorCodeNotFound, "Page not found: "+c.Path(), fiber.StatusNotFound)
	}
}

// PanicHandler turns a panic in a later handler into an internal AppError.
func PanicHandler(devMode bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				appErr := NewAppError(ErrorCodeInternal, fmt.Sprint(r), fiber.StatusInternalServerError)
				if devMode {
					appErr.Stack = string(debug.Stack())
				}
				err = appErr
			}
		}()
		return c.Next()
	}
}
