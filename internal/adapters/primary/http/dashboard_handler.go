package http

import (
	"bytes"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tcpl/ticket-dashboard-backend/internal/adapters/primary/validation"
	"github.com/tcpl/ticket-dashboard-backend/internal/core/domain"
	"github.com/tcpl/ticket-dashboard-backend/internal/core/ports"
)

const (
	defaultRowsPerPage = 50
	maxRowsPerPage     = 100

	exportFileName = "filtered_tickets.xlsx"
	exportMIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DashboardHandler handles HTTP requests for the filter/aggregate pipeline
type DashboardHandler struct {
	dashboardService ports.DashboardService
	errorHandler     *ErrorHandler
	logger           *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	dashboardService ports.DashboardService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		errorHandler:     errorHandler,
		logger:           logger.With("handler", "dashboard"),
	}
}

// RegisterRoutes sets up the routing for the pipeline endpoints. Nested
// under /sessions/{sessionID} by the session handler.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.HandleDashboard)
	r.Get("/tickets", h.HandleListTickets)
	r.Get("/export", h.HandleExport)
}

// parseFilterQuery extracts the filter selection from query parameters.
// The categorical parameters are repeatable; dates use the YYYY-MM-DD form.
func parseFilterQuery(r *http.Request) (ports.FilterQuery, error) {
	params := r.URL.Query()

	v := validation.NewValidator()
	v.Date("from", params.Get("from"), domain.DateOnly)
	v.Date("to", params.Get("to"), domain.DateOnly)
	if v.HasErrors() {
		return ports.FilterQuery{}, v.Errors()
	}

	query := ports.FilterQuery{
		Priorities:         params["priority"],
		TicketTypes:        params["ticketType"],
		ResolutionStatuses: params["resolutionStatus"],
	}
	if raw := params.Get("from"); raw != "" {
		from, _ := time.Parse(domain.DateOnly, raw)
		query.From = &from
	}
	if raw := params.Get("to"); raw != "" {
		to, _ := time.Parse(domain.DateOnly, raw)
		query.To = &to
	}
	return query, nil
}

// parsePageParams extracts pagination and ordering for the ticket table.
func parsePageParams(r *http.Request) (ports.TicketPageParams, error) {
	params := r.URL.Query()

	v := validation.NewValidator()
	v.IntRange("limit", params.Get("limit"), 1, maxRowsPerPage)
	v.IntRange("offset", params.Get("offset"), 0, math.MaxInt)
	v.OneOf("order", params.Get("order"), []string{"asc", "desc"})
	if v.HasErrors() {
		return ports.TicketPageParams{}, v.Errors()
	}

	page := ports.TicketPageParams{Limit: defaultRowsPerPage}
	if raw := params.Get("limit"); raw != "" {
		page.Limit, _ = strconv.Atoi(raw)
	}
	if raw := params.Get("offset"); raw != "" {
		page.Offset, _ = strconv.Atoi(raw)
	}
	page.Ascending = params.Get("order") == "asc"
	return page, nil
}

// HandleDashboard handles GET /sessions/{sessionID}/dashboard
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	query, err := parseFilterQuery(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	result, err := h.dashboardService.Dashboard(r.Context(), sessionID, query)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toDashboardDTO(result))
}

// HandleListTickets handles GET /sessions/{sessionID}/tickets
func (h *DashboardHandler) HandleListTickets(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	query, err := parseFilterQuery(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	page, err := parsePageParams(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	result, err := h.dashboardService.Tickets(r.Context(), sessionID, query, page)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	type ticketTableResponse struct {
		Columns    []string            `json:"columns"`
		Data       []map[string]string `json:"data"`
		Pagination PaginationMetadata  `json:"pagination"`
	}
	WriteJSON(w, http.StatusOK, ticketTableResponse{
		Columns: result.Columns,
		Data:    result.Rows,
		Pagination: PaginationMetadata{
			Limit:      result.Limit,
			Offset:     result.Offset,
			TotalCount: int64(result.Total),
			HasMore:    result.Offset+len(result.Rows) < result.Total,
		},
	})
}

// HandleExport handles GET /sessions/{sessionID}/export: the filtered view
// as a downloadable workbook. The workbook is built in memory first so an
// error can still produce a clean JSON response.
func (h *DashboardHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	query, err := parseFilterQuery(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var workbook bytes.Buffer
	if err := h.dashboardService.Export(r.Context(), sessionID, query, &workbook); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	w.Header().Set("Content-Type", exportMIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(workbook.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook.Bytes())
}
