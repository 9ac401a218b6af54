package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/export"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/alexanderramin/studyplan/internal/scheduler"
	"github.com/gin-gonic/gin"
)

// PlanHandler serves the plan endpoints from the catalog in repo.
type PlanHandler struct {
	repo repository.ModuleRepo
}

func NewPlanHandler(repo repository.ModuleRepo) *PlanHandler {
	return &PlanHandler{repo: repo}
}

func (h *PlanHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *PlanHandler) Modules(c *gin.Context) {
	mods, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	ids := make([]string, len(mods))
	for i, m := range mods {
		ids[i] = m.ID()
	}
	c.JSON(http.StatusOK, contract.ModuleList{Modules: ids})
}

func (h *PlanHandler) Generate(c *gin.Context) {
	var req contract.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	catalog, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	resp, err := scheduler.Plan(catalog, req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, resp)
	case errors.Is(err, scheduler.ErrRangeTooShort),
		errors.Is(err, scheduler.ErrNothingToSchedule),
		errors.Is(err, scheduler.ErrInvalidDates):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

func (h *PlanHandler) Download(c *gin.Context) {
	var req contract.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if _, err := domain.ParseDate(req.StartDate); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("invalid start_date %q", req.StartDate))
		return
	}

	data, err := export.Workbook(req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.AttachmentName(req.StartDate, req.Pace)))
	c.Data(http.StatusOK, export.ContentType, data)
}

// respondError writes the {"error": msg} body the client surfaces verbatim.
func respondError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, contract.ErrorBody{Error: err.Error()})
}
