package services

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/tcpl/ticket-dashboard-backend/internal/core/domain"
	"github.com/tcpl/ticket-dashboard-backend/internal/core/ports"
)

// SessionService implements the session lifecycle: decode an uploaded
// workbook into an immutable Dataset and hand it to the store.
type SessionService struct {
	sessions ports.SessionRepository
	reader   ports.DatasetReader
	logger   *slog.Logger
}

var _ ports.SessionService = (*SessionService)(nil)

// NewSessionService creates a new session service
func NewSessionService(
	sessions ports.SessionRepository,
	reader ports.DatasetReader,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		sessions: sessions,
		reader:   reader,
		logger:   logger.With("service", "session"),
	}
}

// Create decodes the workbook and stores a new session around it. The
// dataset either decodes fully or the session is not created at all; a
// decode failure surfaces as a domain error naming the cause.
func (s *SessionService) Create(ctx context.Context, params ports.CreateSessionParams) (*domain.Session, error) {
	dataset, err := s.reader.Read(params.Content)
	if err != nil {
		return nil, err
	}

	id := params.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	session := domain.NewSession(id, params.Filename, dataset)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "session created",
		"session_id", session.ID,
		"filename", session.Filename,
		"rows", dataset.Len(),
		"columns", len(dataset.Columns),
	)
	return session, nil
}

// Get retrieves a session by id.
func (s *SessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

// Delete discards a session and its dataset.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "session deleted", "session_id", id)
	return nil
}

// LoadDefault loads the fallback workbook from disk into the reserved
// default session. A missing file is not an error: the service just runs
// without a default dataset until someone uploads one.
func (s *SessionService) LoadDefault(ctx context.Context, path string) (*domain.Session, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WarnContext(ctx, "no default workbook found, waiting for uploads", "path", path)
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	return s.Create(ctx, ports.CreateSessionParams{
		Filename:  path,
		Content:   file,
		SessionID: domain.DefaultSessionID,
	})
}
