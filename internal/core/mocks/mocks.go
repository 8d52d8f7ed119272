package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/tcpl/ticket-dashboard-backend/internal/core/domain"
	"github.com/tcpl/ticket-dashboard-backend/internal/core/ports"
)

// MockSessionRepository is a mock implementation of ports.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

func (m *MockSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockDatasetReader is a mock implementation of ports.DatasetReader
type MockDatasetReader struct {
	mock.Mock
}

func NewMockDatasetReader() *MockDatasetReader {
	return &MockDatasetReader{}
}

func (m *MockDatasetReader) Read(r io.Reader) (*domain.Dataset, error) {
	args := m.Called(r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dataset), args.Error(1)
}

// MockDatasetWriter is a mock implementation of ports.DatasetWriter
type MockDatasetWriter struct {
	mock.Mock
}

func NewMockDatasetWriter() *MockDatasetWriter {
	return &MockDatasetWriter{}
}

func (m *MockDatasetWriter) Write(w io.Writer, view *domain.FilteredView) error {
	args := m.Called(w, view)
	return args.Error(0)
}

// MockSessionService is a mock implementation of ports.SessionService
type MockSessionService struct {
	mock.Mock
}

func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

func (m *MockSessionService) Create(ctx context.Context, params ports.CreateSessionParams) (*domain.Session, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDashboardService is a mock implementation of ports.DashboardService
type MockDashboardService struct {
	mock.Mock
}

func NewMockDashboardService() *MockDashboardService {
	return &MockDashboardService{}
}

func (m *MockDashboardService) Dashboard(ctx context.Context, sessionID string, query ports.FilterQuery) (*ports.DashboardResult, error) {
	args := m.Called(ctx, sessionID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.DashboardResult), args.Error(1)
}

func (m *MockDashboardService) Tickets(ctx context.Context, sessionID string, query ports.FilterQuery, page ports.TicketPageParams) (*ports.TicketPage, error) {
	args := m.Called(ctx, sessionID, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.TicketPage), args.Error(1)
}

func (m *MockDashboardService) Export(ctx context.Context, sessionID string, query ports.FilterQuery, w io.Writer) error {
	args := m.Called(ctx, sessionID, query, w)
	return args.Error(0)
}
