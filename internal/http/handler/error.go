package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docshare/internal/http/middleware"
	"docshare/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND")
// - message: human-readable safe message
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

type serviceError struct {
	target  error
	status  int
	code    string
	message string
}

// serviceErrors is checked in order; the first errors.Is match wins.
var serviceErrors = []serviceError{
	{service.ErrDuplicateIdentity, fiber.StatusConflict, "DUPLICATE_IDENTITY", ""},
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password"},
	{service.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required"},
	{service.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "not allowed"},
	{service.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT", ""},
	{service.ErrInvalidVisibility, fiber.StatusBadRequest, "INVALID_VISIBILITY", "visibility must be private or public"},
	{service.ErrReaderNil, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required"},
	{service.ErrIDRequired, fiber.StatusBadRequest, "INVALID_ID", "id is required"},
	{service.ErrUnsupportedFileType, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE", "file type is not allowed"},
	{service.ErrStorageWrite, fiber.StatusInternalServerError, "STORAGE_ERROR", "could not store file"},
	{service.ErrDocumentNotFound, fiber.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found"},
	{service.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "document not found"},
}

// writeServiceError translates a service error into the response envelope.
// An empty message in the table means the error text is safe to show, which
// holds for errors carrying validation or conflict detail. Anything unmapped
// is a 500 and the cause is handed to the request logger.
func writeServiceError(c *fiber.Ctx, err error) error {
	for _, se := range serviceErrors {
		if !errors.Is(err, se.target) {
			continue
		}
		if se.status >= fiber.StatusInternalServerError {
			c.Locals(middleware.ErrorLocalKey, err)
		}
		msg := se.message
		if msg == "" {
			msg = err.Error()
		}
		return writeError(c, se.status, se.code, msg)
	}

	c.Locals(middleware.ErrorLocalKey, err)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "authentication required")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
