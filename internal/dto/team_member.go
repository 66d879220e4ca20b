package dto

import (
	"time"

	"github.com/yukikurage/ocean-hazard-api/internal/models"
)

// TeamMemberDTO represents an authority team member in API responses
type TeamMemberDTO struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Role         models.TeamRole  `json:"role"`
	IsOnline     bool             `json:"isOnline"`
	Location     *models.GeoPoint `json:"location,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	LastActiveAt time.Time        `json:"lastActiveAt"`
}

func ToTeamMemberDTO(m models.TeamMember) TeamMemberDTO {
	return TeamMemberDTO{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Role:         m.Role,
		IsOnline:     m.IsOnline,
		Location:     m.Location(),
		CreatedAt:    m.CreatedAt,
		LastActiveAt: m.LastActiveAt,
	}
}

func ToTeamMemberDTOs(members []models.TeamMember) []TeamMemberDTO {
	out := make([]TeamMemberDTO, 0, len(members))
	for _, m := range members {
		out = append(out, ToTeamMemberDTO(m))
	}
	return out
}
