package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/thierryazur06/site-api/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InquiryHandler serves the back office views of contacts and quote requests.
type InquiryHandler struct {
	inquiries *service.InquiryService
}

func NewInquiryHandler(inquiries *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries}
}

type DevisRepliedRequest struct {
	Replied *bool `json:"replied" binding:"required"`
}

func (h *InquiryHandler) Stats(c *gin.Context) {
	stats, err := h.inquiries.Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *InquiryHandler) Activities(c *gin.Context) {
	feed, err := h.inquiries.RecentActivities()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(feed))
}

func (h *InquiryHandler) ListContacts(c *gin.Context) {
	contacts, err := h.inquiries.ListContacts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(contacts))
}

// ListDevis accepts ?replied=true|1|false|0. Other values list everything.
func (h *InquiryHandler) ListDevis(c *gin.Context) {
	devis, err := h.inquiries.ListDevis(parseRepliedFilter(c.Query("replied")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(devis))
}

func (h *InquiryHandler) SetDevisReplied(c *gin.Context) {
	var req DevisRepliedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "replied is required")
		return
	}
	if err := h.inquiries.SetDevisReplied(c.GetUint("devisID"), *req.Replied); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *InquiryHandler) ExportContacts(c *gin.Context) {
	contacts, err := h.inquiries.ListContacts()
	if err != nil {
		respondError(c, err)
		return
	}
	rows := make([][]interface{}, 0, len(contacts))
	for _, ct := range contacts {
		rows = append(rows, []interface{}{
			ct.ID, excelDate(ct.CreatedAt),
			sanitizeForExcel(ct.LastName), sanitizeForExcel(ct.FirstName), sanitizeForExcel(ct.Email),
			sanitizeForExcel(ct.Subject), sanitizeForExcel(ct.Message),
		})
	}
	headers := []interface{}{"ID", "Date", "Nom", "Prénom", "Email", "Objet", "Message"}
	writeXLSX(c, "Contacts", "contacts", headers, rows)
}

func (h *InquiryHandler) ExportDevis(c *gin.Context) {
	devis, err := h.inquiries.ListDevis(parseRepliedFilter(c.Query("replied")))
	if err != nil {
		respondError(c, err)
		return
	}
	rows := make([][]interface{}, 0, len(devis))
	for _, d := range devis {
		rows = append(rows, []interface{}{
			d.ID, excelDate(d.CreatedAt),
			sanitizeForExcel(d.LastName), sanitizeForExcel(d.FirstName), sanitizeForExcel(d.Email),
			sanitizeForExcel(d.Subject), sanitizeForExcel(d.Message), yesNo(d.Replied),
		})
	}
	headers := []interface{}{"ID", "Date", "Nom", "Prénom", "Email", "Objet", "Message", "Répondu"}
	writeXLSX(c, "Devis", "devis", headers, rows)
}

func parseRepliedFilter(v string) *bool {
	var replied bool
	switch v {
	case "true", "1":
		replied = true
	case "false", "0":
		replied = false
	default:
		return nil
	}
	return &replied
}

// writeXLSX streams a single sheet workbook as an attachment.
func writeXLSX(c *gin.Context, sheet, filename string, headers []interface{}, rows [][]interface{}) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		respondError(c, fmt.Errorf("rename sheet: %w", err))
		return
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		respondError(c, fmt.Errorf("create stream writer: %w", err))
		return
	}
	if err := sw.SetRow("A1", headers); err != nil {
		respondError(c, fmt.Errorf("write headers: %w", err))
		return
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			respondError(c, fmt.Errorf("write row %d: %w", i+2, err))
			return
		}
	}
	if err := sw.Flush(); err != nil {
		respondError(c, fmt.Errorf("flush sheet: %w", err))
		return
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s-%s.xlsx\"", filename, time.Now().Format("2006-01-02")))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		zap.L().Error("failed to write xlsx response", zap.String("sheet", sheet), zap.Error(err))
	}
}

// sanitizeForExcel defuses cells that a spreadsheet would read as a formula.
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

func excelDate(t time.Time) string {
	return t.Local().Format("02/01/2006 15:04")
}

func yesNo(b bool) string {
	if b {
		return "Oui"
	}
	return "Non"
}

