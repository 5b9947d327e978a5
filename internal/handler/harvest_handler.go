package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"licencewatch/internal/domain"
	"licencewatch/internal/service"
)

// harvestTimeout bounds a manually triggered run, matching the scheduler.
const harvestTimeout = 15 * time.Minute

// HarvestHandler handles harvest trigger and run-report endpoints.
type HarvestHandler struct {
	svc *service.HarvestService
}

// NewHarvestHandler creates a new HarvestHandler.
func NewHarvestHandler(svc *service.HarvestService) *HarvestHandler {
	return &HarvestHandler{svc: svc}
}

// Trigger handles POST /api/v1/harvest
//
// The run executes in the background; the response only acknowledges that it
// started. An optional ?variant=MA|PI query restricts the run to one bulletin
// kind.
func (h *HarvestHandler) Trigger(c *gin.Context) {
	raw := c.Query("variant")
	if raw == "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), harvestTimeout)
			defer cancel()
			if err := h.svc.RunAll(ctx); err != nil {
				log.Printf("harvest: manual run failed: %v", err)
			}
		}()
		RespondAccepted(c, gin.H{"status": "started", "variants": domain.Variants})
		return
	}

	variant, ok := domain.ParseVariant(raw)
	if !ok {
		RespondError(c, http.StatusBadRequest, "INVALID_VARIANT", "variant must be MA or PI")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), harvestTimeout)
		defer cancel()
		if _, err := h.svc.HarvestVariant(ctx, variant); err != nil {
			log.Printf("harvest: manual %s run failed: %v", variant, err)
		}
	}()
	RespondAccepted(c, gin.H{"status": "started", "variants": []domain.Variant{variant}})
}

// LatestRuns handles GET /api/v1/runs/latest
//
// Returns the most recent batch report per variant since the process started.
// Variants that have not run yet are omitted.
func (h *HarvestHandler) LatestRuns(c *gin.Context) {
	reports := make(map[domain.Variant]*domain.BatchReport)
	for _, v := range domain.Variants {
		if r := h.svc.LatestReport(v); r != nil {
			reports[v] = r
		}
	}
	RespondOK(c, reports)
}
