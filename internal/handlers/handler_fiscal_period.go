package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/neacisu/geniuserp-ledger/internal/apperrors"
	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	portssvc "github.com/neacisu/geniuserp-ledger/internal/core/ports/services"
	"github.com/neacisu/geniuserp-ledger/internal/dto"
	"github.com/neacisu/geniuserp-ledger/internal/middleware"

	"github.com/gin-gonic/gin"
)

// fiscalPeriodHandler handles HTTP requests related to fiscal periods.
type fiscalPeriodHandler struct {
	periodService portssvc.FiscalPeriodSvcFacade
}

// newFiscalPeriodHandler creates a new fiscalPeriodHandler.
func newFiscalPeriodHandler(ps portssvc.FiscalPeriodSvcFacade) *fiscalPeriodHandler {
	return &fiscalPeriodHandler{
		periodService: ps,
	}
}

// registerFiscalPeriodRoutes registers all fiscal-period routes under a company scope.
func registerFiscalPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.FiscalPeriodSvcFacade) {
	h := newFiscalPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.GET("", h.listPeriods)
		periods.GET("/:year/:month", h.getPeriodStatus)
		periods.POST("/:year/:month/close", h.closePeriod)
		periods.POST("/:year/:month/reopen", h.reopenPeriod)
	}
}

// parseYearMonth extracts and validates the year and month path params.
func parseYearMonth(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year: " + c.Param("year")})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month: " + c.Param("month")})
		return 0, 0, false
	}
	return year, month, true
}

// closePeriod godoc
// @Summary Close a fiscal period
// @Description Transitions a period to soft_close or hard_close, locking it against postings. Creates the period row if it was never touched before.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   year path int true "Fiscal year"
// @Param   month path int true "Month (1-12)"
// @Param   request body dto.ClosePeriodRequest true "Close mode"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Missing actor identity"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Router /companies/{companyID}/periods/{year}/{month}/close [post]
func (h *fiscalPeriodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for close period request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity"})
		return
	}

	logger = logger.With(
		slog.String("company_id", companyID),
		slog.Int("year", year),
		slog.Int("month", month),
		slog.String("actor_id", actorID),
	)
	logger.Info("Received request to close period", slog.String("mode", req.Mode))

	period, err := h.periodService.ClosePeriod(c.Request.Context(), companyID, year, month, domain.PeriodStatus(req.Mode), actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Close rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Close transition not allowed", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to close period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close period"})
		}
		return
	}

	logger.Info("Period closed successfully", slog.String("status", string(period.Status)))
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// reopenPeriod godoc
// @Summary Reopen a closed fiscal period
// @Description Transitions a soft or hard closed period back to open. A reason is mandatory and is kept on the audit trail.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   year path int true "Fiscal year"
// @Param   month path int true "Month (1-12)"
// @Param   request body dto.ReopenPeriodRequest true "Reopening reason"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input or missing reason"
// @Failure 401 {object} map[string]string "Missing actor identity"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period not closed"
// @Failure 500 {object} map[string]string "Failed to reopen period"
// @Router /companies/{companyID}/periods/{year}/{month}/reopen [post]
func (h *fiscalPeriodHandler) reopenPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	var req dto.ReopenPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reopen period request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity"})
		return
	}

	logger = logger.With(
		slog.String("company_id", companyID),
		slog.Int("year", year),
		slog.Int("month", month),
		slog.String("actor_id", actorID),
	)
	logger.Info("Received request to reopen period")

	period, err := h.periodService.ReopenPeriod(c.Request.Context(), companyID, year, month, actorID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrReopenReasonRequired), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Reopen rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Period not found for reopen")
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Reopen transition not allowed", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reopen period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reopen period"})
		}
		return
	}

	logger.Info("Period reopened successfully")
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// getPeriodStatus godoc
// @Summary Get the status of a fiscal period
// @Description Reports open/soft_close/hard_close for (company, year, month). A period that was never touched reports open.
// @Tags periods
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   year path int true "Fiscal year"
// @Param   month path int true "Month (1-12)"
// @Success 200 {object} dto.PeriodStatusResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to read period status"
// @Router /companies/{companyID}/periods/{year}/{month} [get]
func (h *fiscalPeriodHandler) getPeriodStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	status, err := h.periodService.GetPeriodStatus(c.Request.Context(), companyID, year, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to read period status", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read period status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.PeriodStatusResponse{
		CompanyID: companyID,
		Year:      year,
		Month:     month,
		Status:    string(status),
		IsClosed:  status.IsClosed(),
	})
}

// listPeriods godoc
// @Summary List fiscal periods
// @Description Retrieves all period rows of a company for one year, ordered by month. Months with no row were never touched and are implicitly open.
// @Tags periods
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   year query int true "Fiscal year"
// @Success 200 {array} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Router /companies/{companyID}/periods [get]
func (h *fiscalPeriodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing year query parameter"})
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), companyID, year)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list periods", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list periods"})
		}
		return
	}

	responses := make([]dto.PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = dto.ToPeriodResponse(&periods[i])
	}
	c.JSON(http.StatusOK, responses)
}
