package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thepsychonaut421/financio-recon/internal/adapters/export"
	"github.com/thepsychonaut421/financio-recon/internal/api/dto"
	"github.com/thepsychonaut421/financio-recon/internal/application/service"
	"github.com/thepsychonaut421/financio-recon/internal/domain/recon"
)

// ReconcileHandler runs reconciliation passes over inline payloads.
type ReconcileHandler struct {
	svc    *service.ReconcileService
	logger *slog.Logger
}

// NewReconcileHandler creates a reconcile handler.
func NewReconcileHandler(svc *service.ReconcileService, logger *slog.Logger) *ReconcileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileHandler{svc: svc, logger: logger}
}

// Reconcile handles POST /api/v1/reconcile.
func (h *ReconcileHandler) Reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	transactions, invoices, err := req.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	result, err := h.svc.Reconcile(c.Request.Context(), transactions, invoices)
	if err != nil {
		// Malformed transactions are a caller error, everything else
		// is ours.
		if errors.Is(err, recon.ErrPrecondition) {
			c.JSON(http.StatusBadRequest, dto.ValidationError(err.Error()))
			return
		}
		h.logger.Error("reconciliation failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, export.BuildReport(result.RunID, result.StartedAt, result.Results))
}
