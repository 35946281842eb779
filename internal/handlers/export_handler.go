package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"goparts-service/internal/models"
	"goparts-service/internal/services"
)

// exportBatchLimit caps how many quotes one export pulls
const exportBatchLimit = 1000

// ExportHandler produces XLSX exports of the quote book
type ExportHandler struct {
	quotes services.QuoteService
	logger *logrus.Entry
}

// NewExportHandler creates a new export handler
func NewExportHandler(quotes services.QuoteService, logger *logrus.Logger) *ExportHandler {
	return &ExportHandler{
		quotes: quotes,
		logger: logger.WithField("handler", "export"),
	}
}

// ExportQuotes streams the quote book as an XLSX workbook. Accepts the same
// status filter as the quote list.
func (h *ExportHandler) ExportQuotes(c *gin.Context) {
	filters := models.QuoteListFilters{Page: 1, Limit: exportBatchLimit}
	if raw := c.Query("status"); raw != "" && raw != "all" {
		status := models.QuoteStatus(raw)
		if !models.IsValidQuoteStatus(status) {
			respondError(c, http.StatusBadRequest, "INVALID_FILTER", "Invalid status filter")
			return
		}
		filters.Status = &status
	}

	quotes, _, err := h.quotes.ListQuotes(c.Request.Context(), filters)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load quotes for export")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export quotes")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Quotes"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Quote Number", "Customer", "Status", "Quote Date", "Expiry Date",
		"Expired", "Bid Items Total", "Shipping Method", "Shipping Cost",
		"Agent Fees", "Local Shipping Fees", "Subtotal", "GST", "Grand Total",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	now := time.Now()
	for row, quote := range quotes {
		customerName := ""
		if quote.Customer != nil {
			customerName = quote.Customer.Name
		}
		shipping := services.SelectedShippingCost(quote.SeaShippingCost, quote.AirShippingCost, quote.SelectedShipping)

		values := []interface{}{
			quote.QuoteNumber,
			customerName,
			quote.Status.DisplayName(),
			quote.QuoteDate.Format("2006-01-02"),
			quote.ExpiryDate.Format("2006-01-02"),
			quote.IsExpired(now),
			quote.TotalBidItemsCost.String(),
			string(quote.SelectedShipping),
			shipping.String(),
			quote.AgentFees.String(),
			quote.LocalShippingFees.String(),
			quote.SubtotalAmount.String(),
			quote.GSTAmount.String(),
			quote.GrandTotalAmount.String(),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("quotes-%s.xlsx", now.Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := f.Write(c.Writer); err != nil {
		h.logger.WithError(err).Error("Failed to write XLSX export")
	}
}
