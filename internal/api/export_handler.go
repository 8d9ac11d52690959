package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func sendWorkbook(c *gin.Context, payload []byte, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, payload)
}

func (h *Handler) exportCategories(c *gin.Context) {
	payload, filename, err := h.reportService.ExportCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	sendWorkbook(c, payload, filename)
}

func (h *Handler) exportProducts(c *gin.Context) {
	payload, filename, err := h.reportService.ExportProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	sendWorkbook(c, payload, filename)
}

func (h *Handler) exportUsers(c *gin.Context) {
	payload, filename, err := h.reportService.ExportUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	sendWorkbook(c, payload, filename)
}

func (h *Handler) exportSummary(c *gin.Context) {
	payload, filename, err := h.reportService.ExportSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	sendWorkbook(c, payload, filename)
}
