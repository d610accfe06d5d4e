package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thepsychonaut421/financio-recon/internal/api/dto"
	"github.com/thepsychonaut421/financio-recon/internal/infrastructure/storage"
)

// RunsHandler serves historical run summaries.
type RunsHandler struct {
	repo storage.Repository
}

// NewRunsHandler creates a runs handler.
func NewRunsHandler(repo storage.Repository) *RunsHandler {
	return &RunsHandler{repo: repo}
}

// List handles GET /api/v1/runs.
func (h *RunsHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	runs, err := h.repo.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	responses := make([]dto.RunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, dto.FromRunRecord(run))
	}
	c.JSON(http.StatusOK, responses)
}

// Get handles GET /api/v1/runs/:id.
func (h *RunsHandler) Get(c *gin.Context) {
	run, err := h.repo.GetRun(c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, dto.NotFoundError("run"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.JSON(http.StatusOK, dto.FromRunRecord(run))
}
