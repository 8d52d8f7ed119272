package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tcpl/ticket-dashboard-backend/internal/adapters/primary/validation"
	apperrors "github.com/tcpl/ticket-dashboard-backend/internal/core/errors"
	"github.com/tcpl/ticket-dashboard-backend/internal/core/ports"
	"github.com/tcpl/ticket-dashboard-backend/internal/infrastructure/logging"
)

// uploadFieldName is the multipart form field carrying the workbook.
const uploadFieldName = "file"

// SessionHandler handles HTTP requests for session lifecycle
type SessionHandler struct {
	sessionService   ports.SessionService
	dashboardHandler *DashboardHandler
	errorHandler     *ErrorHandler
	logger           *slog.Logger
	maxUploadBytes   int64
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	sessionService ports.SessionService,
	dashboardHandler *DashboardHandler,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
	maxUploadBytes int64,
) *SessionHandler {
	return &SessionHandler{
		sessionService:   sessionService,
		dashboardHandler: dashboardHandler,
		errorHandler:     errorHandler,
		logger:           logger.With("handler", "session"),
		maxUploadBytes:   maxUploadBytes,
	}
}

// RegisterRoutes sets up the routing for all session endpoints, nesting the
// pipeline routes under /{sessionID}.
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleCreateSession)
	r.Route("/{sessionID}", func(r chi.Router) {
		r.Use(sessionContext)

		r.Get("/", h.HandleGetSession)
		r.Delete("/", h.HandleDeleteSession)

		if h.dashboardHandler != nil {
			h.dashboardHandler.RegisterRoutes(r)
		}
	})
}

// sessionContext tags the request context with the session id so every log
// line emitted while serving the request carries it.
func sessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithSessionID(r.Context(), chi.URLParam(r, "sessionID"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// HandleCreateSession handles POST /sessions: a multipart workbook upload
// that becomes a new session's dataset.
func (h *SessionHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.errorHandler.Handle(w, r, apperrors.ErrUploadTooLarge)
			return
		}
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Malformed multipart request"))
		return
	}

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.ErrNoUploadedFile)
		return
	}
	defer file.Close()

	v := validation.NewValidator()
	v.FileExtension(uploadFieldName, header.Filename, []string{".xlsx"})
	if v.HasErrors() {
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	session, err := h.sessionService.Create(r.Context(), ports.CreateSessionParams{
		Filename: header.Filename,
		Content:  file,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteCreated(w, toSessionDTO(session))
}

// HandleGetSession handles GET /sessions/{sessionID}
func (h *SessionHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.sessionService.Get(r.Context(), sessionID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toSessionDTO(session))
}

// HandleDeleteSession handles DELETE /sessions/{sessionID}
func (h *SessionHandler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.sessionService.Delete(r.Context(), sessionID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteNoContent(w)
}
