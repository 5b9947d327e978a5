package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"licencewatch/internal/export"
	"licencewatch/internal/port"
)

const (
	defaultExportLimit = 1000
	maxExportLimit     = 50000
)

// ExportHandler handles licence export endpoints.
type ExportHandler struct {
	store port.LicenceStore
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(store port.LicenceStore) *ExportHandler {
	return &ExportHandler{store: store}
}

// Export handles GET /api/v1/licences/export
//
// Streams the most recent licence records as ?format=csv (default) or
// ?format=xlsx. ?limit caps the row count.
func (h *ExportHandler) Export(c *gin.Context) {
	limit := defaultExportLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxExportLimit {
			RespondError(c, http.StatusBadRequest, "INVALID_LIMIT",
				fmt.Sprintf("limit must be between 1 and %d", maxExportLimit))
			return
		}
		limit = n
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	recs, err := h.store.ListRecent(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	stamp := time.Now().Format("20060102")
	if format == "xlsx" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=licences_%s.xlsx", stamp))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := export.WriteWorkbook(c.Writer, recs); err != nil {
			log.Printf("export: write xlsx: %v", err)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=licences_%s.csv", stamp))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	if _, err := c.Writer.Write(export.BOM); err != nil {
		log.Printf("export: write bom: %v", err)
		return
	}
	w := export.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		log.Printf("export: write header: %v", err)
		return
	}
	if err := w.WriteRecords(recs); err != nil {
		log.Printf("export: write rows: %v", err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("export: flush csv: %v", err)
	}
}
