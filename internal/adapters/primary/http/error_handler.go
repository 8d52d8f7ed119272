package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	mw "github.com/tcpl/ticket-dashboard-backend/internal/adapters/primary/http/middleware"
	apperrors "github.com/tcpl/ticket-dashboard-backend/internal/core/errors"
)

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	return mw.GetRequestID(ctx)
}

// ErrorResponse is the standard JSON error response format
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse includes field-level validation errors
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler with the given logger
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle processes an error and writes the appropriate HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	requestID := GetRequestID(r.Context())

	// Check for AppError first (our custom error type)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		h.logError(r, appErr.StatusCode, appErr.Err, requestID)
		h.writeErrorResponse(w, appErr.StatusCode, ErrorResponse{
			Error:   appErr.Message,
			Code:    appErr.Code,
			Details: appErr.Details,
		})
		return
	}

	// Check for ValidationErrors
	var validationErrs *apperrors.ValidationErrors
	if errors.As(err, &validationErrs) {
		h.logError(r, http.StatusUnprocessableEntity, err, requestID)
		h.writeValidationErrorResponse(w, validationErrs)
		return
	}

	// Map known domain errors to HTTP responses
	statusCode, response := h.mapDomainError(err)
	h.logError(r, statusCode, err, requestID)
	h.writeErrorResponse(w, statusCode, response)
}

// mapDomainError converts domain errors to HTTP status codes and responses
func (h *ErrorHandler) mapDomainError(err error) (int, ErrorResponse) {
	switch {
	// Session lifecycle
	case errors.Is(err, apperrors.ErrSessionNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error: "Session not found. Upload a workbook to start one.",
			Code:  "SESSION_NOT_FOUND",
		}
	case errors.Is(err, apperrors.ErrSessionExpired):
		return http.StatusNotFound, ErrorResponse{
			Error: "Session expired. Upload the workbook again.",
			Code:  "SESSION_EXPIRED",
		}

	// Workbook intake
	case errors.Is(err, apperrors.ErrNoUploadedFile):
		return http.StatusBadRequest, ErrorResponse{
			Error: "No workbook file in request",
			Code:  "NO_FILE",
		}
	case errors.Is(err, apperrors.ErrUnsupportedFormat):
		return http.StatusBadRequest, ErrorResponse{
			Error: "Unsupported workbook format; upload an .xlsx file",
			Code:  "UNSUPPORTED_FORMAT",
		}
	case errors.Is(err, apperrors.ErrWorkbookEmpty):
		return http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "WORKBOOK_EMPTY",
		}
	case errors.Is(err, apperrors.ErrWorkbookUnreadable):
		return http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "WORKBOOK_UNREADABLE",
		}
	case errors.Is(err, apperrors.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: "Uploaded workbook exceeds the size limit",
			Code:  "PAYLOAD_TOO_LARGE",
		}

	// Export
	case errors.Is(err, apperrors.ErrNothingToExport):
		return http.StatusNotFound, ErrorResponse{
			Error: "The current filters match no rows; nothing to export",
			Code:  "NOTHING_TO_EXPORT",
		}

	// Rate limiting
	case errors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests, ErrorResponse{
			Error: "Too many requests. Please try again later.",
			Code:  "RATE_LIMITED",
		}

	// Default to internal server error
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: "An unexpected error occurred",
			Code:  "INTERNAL_ERROR",
		}
	}
}

// logError logs the error with appropriate context
func (h *ErrorHandler) logError(r *http.Request, statusCode int, err error, requestID string) {
	logAttrs := []any{
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"status_code", statusCode,
		"error", err.Error(),
	}

	switch {
	case statusCode >= 500:
		h.logger.Error("server error", logAttrs...)
	case statusCode >= 400:
		h.logger.Warn("client error", logAttrs...)
	default:
		h.logger.Info("request error", logAttrs...)
	}
}

// writeErrorResponse writes a JSON error response
func (h *ErrorHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, response ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

// writeValidationErrorResponse writes a validation error response
func (h *ErrorHandler) writeValidationErrorResponse(w http.ResponseWriter, errs *apperrors.ValidationErrors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(ValidationErrorResponse{
		Error:  "Validation failed",
		Code:   "VALIDATION_ERROR",
		Fields: errs.Errors,
	})
}
