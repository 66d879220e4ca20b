package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	apierrors "github.com/yukikurage/ocean-hazard-api/internal/errors"
	"github.com/yukikurage/ocean-hazard-api/internal/middleware"
	"github.com/yukikurage/ocean-hazard-api/internal/services"
)

// HazardReportHandler serves the citizen submission endpoints.
type HazardReportHandler struct {
	reportService *services.ReportService
}

// NewHazardReportHandler creates a new HazardReportHandler.
func NewHazardReportHandler(reportService *services.ReportService) *HazardReportHandler {
	return &HazardReportHandler{
		reportService: reportService,
	}
}

// CreateHazardReportRequest is the submission body. Coordinates are pointers
// so that an explicit 0 is distinguishable from a missing field.
type CreateHazardReportRequest struct {
	Description string   `json:"description" binding:"required"`
	Latitude    *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" binding:"required,min=-180,max=180"`
	UserID      string   `json:"userId"`
	ImageURL    string   `json:"imageUrl"`
	AudioURL    string   `json:"audioUrl"`
	Location    string   `json:"location"`
}

// CreateHazardReport appends a citizen report. The submitter comes from the
// body and falls back to the signed-in session.
func (h *HazardReportHandler) CreateHazardReport(c *gin.Context) {
	var req CreateHazardReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidData(c, err)
		return
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = middleware.SessionUserID(c)
	}
	if userID == "" {
		apierrors.Unauthorized(c, "User ID required")
		return
	}

	report, err := h.reportService.CreateHazardReport(services.CreateReportInput{
		Description: req.Description,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		ImageURL:    req.ImageURL,
		AudioURL:    req.AudioURL,
		Location:    req.Location,
	}, userID)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report": report})
}

// ListHazardReports returns every report, newest first. ?page and ?limit
// narrow the response to one page.
func (h *HazardReportHandler) ListHazardReports(c *gin.Context) {
	reports, err := h.reportService.ListHazardReports()
	if err != nil {
		respondReportError(c, err)
		return
	}

	respondList(c, "reports", reports)
}

// GetHazardReport returns a single report.
func (h *HazardReportHandler) GetHazardReport(c *gin.Context) {
	report, err := h.reportService.GetHazardReport(c.Param("id"))
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// ListUserHazardReports returns the reports of one submitter.
func (h *HazardReportHandler) ListUserHazardReports(c *gin.Context) {
	reports, err := h.reportService.ListHazardReportsByUser(c.Param("userId"))
	if err != nil {
		respondReportError(c, err)
		return
	}

	respondList(c, "reports", reports)
}

// NearbyHazardReports filters reports by distance from ?lat&lng.
func (h *HazardReportHandler) NearbyHazardReports(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		apierrors.BadRequest(c, "lat and lng query parameters are required")
		return
	}

	var radius float64
	if raw := c.Query("radiusKm"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apierrors.BadRequest(c, "radiusKm must be a number")
			return
		}
		radius = r
	}

	reports, err := h.reportService.NearbyHazardReports(lat, lng, radius)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func respondReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserIDRequired):
		apierrors.Unauthorized(c, "User ID required")
	case errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrInvalidCoordinates),
		errors.Is(err, services.ErrInvalidRadius):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrHazardReportMissing):
		apierrors.NotFound(c, "Report not found")
	default:
		log.Error().Err(err).Msg("Hazard report request failed")
		apierrors.InternalError(c, "Internal server error")
	}
}
