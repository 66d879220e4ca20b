package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/ocean-hazard-api/internal/dto"
	apierrors "github.com/yukikurage/ocean-hazard-api/internal/errors"
	"github.com/yukikurage/ocean-hazard-api/internal/models"
	"github.com/yukikurage/ocean-hazard-api/internal/services"
)

// TeamHandler serves the authority team directory.
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// ListMembers returns the whole team.
func (h *TeamHandler) ListMembers(c *gin.Context) {
	members, err := h.teamService.ListMembers()
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dto.ToTeamMemberDTOs(members)})
}

// CreateMember adds a team member.
func (h *TeamHandler) CreateMember(c *gin.Context) {
	type CreateMemberRequest struct {
		Name     string           `json:"name" binding:"required"`
		Email    string           `json:"email" binding:"required,email"`
		Role     models.TeamRole  `json:"role" binding:"required"`
		IsOnline bool             `json:"isOnline"`
		Location *models.GeoPoint `json:"location"`
	}

	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidData(c, err)
		return
	}

	member, err := h.teamService.CreateMember(services.CreateMemberInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		IsOnline: req.IsOnline,
		Location: req.Location,
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": dto.ToTeamMemberDTO(*member)})
}

// UpdateMemberStatus records presence and, optionally, position.
func (h *TeamHandler) UpdateMemberStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		IsOnline *bool            `json:"isOnline" binding:"required"`
		Location *models.GeoPoint `json:"location"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidData(c, err)
		return
	}

	member, err := h.teamService.UpdateMemberStatus(c.Param("id"), *req.IsOnline, req.Location)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToTeamMemberDTO(*member)})
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrMemberNameRequired),
		errors.Is(err, services.ErrMemberEmailInvalid):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Error().Err(err).Msg("Team request failed")
		apierrors.InternalError(c, "Internal server error")
	}
}
