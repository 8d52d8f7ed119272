package ports

import (
	"context"
	"io"

	"github.com/tcpl/ticket-dashboard-backend/internal/core/domain"
)

// SessionRepository defines the port for session storage. Implementations
// own the LastAccess bookkeeping: Get must touch the session.
type SessionRepository interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// DatasetReader decodes a workbook stream into a Dataset. The first sheet
// is read, its first row taken as column headers.
type DatasetReader interface {
	Read(r io.Reader) (*domain.Dataset, error)
}

// DatasetWriter encodes a filtered view back into a workbook: the view's
// rows, the original columns, one sheet, header row first.
type DatasetWriter interface {
	Write(w io.Writer, view *domain.FilteredView) error
}
