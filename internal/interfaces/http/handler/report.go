package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stockledger/backend/internal/application/reporting"
)

// ReportHandler exposes the read-only report queries
type ReportHandler struct {
	BaseHandler
	reports *reporting.Service
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *reporting.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// parsePeriod reads from/to query params as dates. The default period is
// the current month.
func parsePeriod(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Second)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// Inclusive end of day
		to = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}
	return from, to, nil
}

// TrialBalance handles GET /reports/trial-balance
func (h *ReportHandler) TrialBalance(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Tenant context is required")
		return
	}

	report, err := h.reports.TrialBalance(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// GeneralLedger handles GET /reports/general-ledger/:accountID
func (h *ReportHandler) GeneralLedger(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Tenant context is required")
		return
	}
	accountID, err := uuid.Parse(c.Param("accountID"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	from, to, err := parsePeriod(c)
	if err != nil {
		h.BadRequest(c, "Invalid period, expected YYYY-MM-DD")
		return
	}

	report, err := h.reports.GeneralLedger(c.Request.Context(), tenantID, accountID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// CustomerStatement handles GET /reports/customer-statement/:customerID
func (h *ReportHandler) CustomerStatement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Tenant context is required")
		return
	}
	customerID, err := uuid.Parse(c.Param("customerID"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}
	from, to, err := parsePeriod(c)
	if err != nil {
		h.BadRequest(c, "Invalid period, expected YYYY-MM-DD")
		return
	}

	report, err := h.reports.CustomerStatement(c.Request.Context(), tenantID, customerID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// IncomeStatement handles GET /reports/income-statement
func (h *ReportHandler) IncomeStatement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Tenant context is required")
		return
	}
	from, to, err := parsePeriod(c)
	if err != nil {
		h.BadRequest(c, "Invalid period, expected YYYY-MM-DD")
		return
	}

	report, err := h.reports.IncomeStatement(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// ValuationSummary handles GET /reports/valuation-summary
func (h *ReportHandler) ValuationSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Tenant context is required")
		return
	}

	report, err := h.reports.ValuationSummary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
