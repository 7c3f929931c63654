package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/http/middleware"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/service"
)

func (h *Handler) statsCategories(c *gin.Context) {
	rows, err := h.reports.CategoryBreakdown(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) statsStatus(c *gin.Context) {
	rows, err := h.reports.StatusBreakdown(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) statsBinTypes(c *gin.Context) {
	rows, err := h.reports.BinTypeBreakdown(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) statsRevenue(c *gin.Context) {
	rows, err := h.reports.RevenueByCategory(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) statsDaily(c *gin.Context) {
	rows, err := h.reports.DepositDailyTotals(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) statsMonthly(c *gin.Context) {
	rows, err := h.reports.DepositMonthlyTotals(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) statsRequestDaily(c *gin.Context) {
	rows, err := h.reports.RequestDailyTotals(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) summaryInput(c *gin.Context) (service.SummaryInput, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return service.SummaryInput{}, false
	}
	return service.SummaryInput{
		Requester: model.CreatorRefFromID(principal.UserID),
		UserID:    c.Query("userId"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Category:  c.Query("category"),
	}, true
}

func (h *Handler) userSummary(c *gin.Context) {
	input, ok := h.summaryInput(c)
	if !ok {
		return
	}
	report, err := h.reports.UserSummary(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) exportSummaryExcel(c *gin.Context) {
	input, ok := h.summaryInput(c)
	if !ok {
		return
	}
	report, err := h.reports.UserSummary(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	content, err := h.excel.Generate(*report)
	if err != nil {
		h.handleError(c, err)
		return
	}
	fileName := fmt.Sprintf("waste-summary-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

func (h *Handler) exportSummaryPDF(c *gin.Context) {
	input, ok := h.summaryInput(c)
	if !ok {
		return
	}
	report, err := h.reports.UserSummary(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	content, err := h.pdf.Generate(*report)
	if err != nil {
		h.handleError(c, err)
		return
	}
	fileName := fmt.Sprintf("waste-summary-%s.pdf", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, "application/pdf", content)
}

func (h *Handler) trend(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}
	report, err := h.reports.Trend(c.Request.Context(), service.TrendInput{
		Requester: model.CreatorRefFromID(principal.UserID),
		UserID:    c.Query("userId"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Category:  c.Query("category"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) binFillLevels(c *gin.Context) {
	report, err := h.reports.BinFillLevels(c.Request.Context(), service.BinFillInput{
		UserID:   c.Query("userId"),
		Category: c.Query("category"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
