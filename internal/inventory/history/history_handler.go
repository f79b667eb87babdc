package history

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	custom_error "github.com/hopeIsCo0l/AnuTest/pkg/errors"
	"github.com/hopeIsCo0l/AnuTest/pkg/roles"
	"github.com/hopeIsCo0l/AnuTest/pkg/security"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	service *HistoryService
	now     func() time.Time
}

func NewHistoryHandler(s *HistoryService) *HistoryHandler {
	return &HistoryHandler{service: s, now: time.Now}
}

func (h *HistoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/transactions", security.Authorize(roles.Staff), h.GetTransactions)
	router.DELETE("/transactions", security.Authorize(roles.Admin), h.ClearHistory)
	router.GET("/transactions/export", security.Authorize(roles.Staff), h.Export)
	router.POST("/transactions/export/sheets", security.Authorize(roles.Admin), h.ExportToSheets)
}

func (h *HistoryHandler) GetTransactions(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.service.List(filter))
}

func (h *HistoryHandler) ClearHistory(c *gin.Context) {
	if err := h.service.ClearHistory(security.ActorName(c)); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to clear history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction history cleared"})
}

func (h *HistoryHandler) Export(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	transactions := h.service.List(filter).Transactions
	day := h.now().UTC().Format("2006-01-02")

	var buf bytes.Buffer
	var err error
	var contentType, filename string

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		contentType = "text/csv; charset=utf-8"
		filename = fmt.Sprintf("anuinv_transactions_%s.csv", day)
		err = WriteCSV(&buf, transactions)
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = fmt.Sprintf("anuinv_transactions_%s.xlsx", day)
		err = WriteXLSX(&buf, transactions)
	case "html":
		contentType = "application/msword"
		filename = fmt.Sprintf("anuinv_report_%s.doc", day)
		err = WriteHTML(&buf, transactions, h.now())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported export format, use csv, xlsx or html"})
		return
	}

	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to export transactions", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *HistoryHandler) ExportToSheets(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	rows, err := h.service.PushToSheets(c.Request.Context(), filter)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to export to Google Sheets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated_rows": rows})
}

func (h *HistoryHandler) bindFilter(c *gin.Context) (Filter, bool) {
	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return Filter{}, false
	}
	filter, err := query.toFilter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return Filter{}, false
	}
	return filter, true
}
