package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	apierrors "github.com/yukikurage/ocean-hazard-api/internal/errors"
	"github.com/yukikurage/ocean-hazard-api/internal/models"
	"github.com/yukikurage/ocean-hazard-api/internal/services"
)

// AdminHandler serves the authority triage dashboard.
type AdminHandler struct {
	triageService *services.TriageService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(triageService *services.TriageService) *AdminHandler {
	return &AdminHandler{
		triageService: triageService,
	}
}

// ListReports materializes pending reports and returns the triage queue.
func (h *AdminHandler) ListReports(c *gin.Context) {
	reports, err := h.triageService.ListReports()
	if err != nil {
		respondTriageError(c, err)
		return
	}

	respondList(c, "reports", reports)
}

// GetReport returns one projected report.
func (h *AdminHandler) GetReport(c *gin.Context) {
	report, err := h.triageService.GetReport(c.Param("id"))
	if err != nil {
		respondTriageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// UpdateStatus sets the status. A non-empty assignedTo turns the call into
// an assignment, which always lands in in_progress. A missing report is
// reported before an invalid status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status     models.ReportStatus `json:"status"`
		AssignedTo string              `json:"assignedTo"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidData(c, err)
		return
	}

	var (
		report *models.AdminReport
		err    error
	)
	if strings.TrimSpace(req.AssignedTo) != "" {
		report, err = h.triageService.Assign(c.Param("id"), req.AssignedTo)
	} else {
		report, err = h.triageService.SetStatus(c.Param("id"), req.Status)
	}
	if err != nil {
		respondTriageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// AssignReport assigns a team member.
func (h *AdminHandler) AssignReport(c *gin.Context) {
	type AssignRequest struct {
		AssignedTo string `json:"assignedTo"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidData(c, err)
		return
	}

	report, err := h.triageService.Assign(c.Param("id"), req.AssignedTo)
	if err != nil {
		respondTriageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// UpdatePriority overrides the classified priority.
func (h *AdminHandler) UpdatePriority(c *gin.Context) {
	type UpdatePriorityRequest struct {
		Priority models.ReportPriority `json:"priority"`
	}

	var req UpdatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidData(c, err)
		return
	}

	report, err := h.triageService.SetPriority(c.Param("id"), req.Priority)
	if err != nil {
		respondTriageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// UpdateNotes replaces the notes of a report.
func (h *AdminHandler) UpdateNotes(c *gin.Context) {
	type UpdateNotesRequest struct {
		Notes *string `json:"notes" binding:"required"`
	}

	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidData(c, err)
		return
	}

	report, err := h.triageService.SetNotes(c.Param("id"), *req.Notes)
	if err != nil {
		respondTriageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// Statistics summarizes the triage queue.
func (h *AdminHandler) Statistics(c *gin.Context) {
	stats, err := h.triageService.Statistics()
	if err != nil {
		respondTriageError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func respondTriageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReportNotFound):
		apierrors.NotFound(c, "Report not found")
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrAssigneeRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Error().Err(err).Msg("Triage request failed")
		apierrors.InternalError(c, "Internal server error")
	}
}
