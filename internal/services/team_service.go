package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/ocean-hazard-api/internal/dto"
	"github.com/yukikurage/ocean-hazard-api/internal/models"
	"github.com/yukikurage/ocean-hazard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMemberNotFound     = errors.New("team member not found")
	ErrInvalidRole        = errors.New("role must be one of admin, supervisor, field_officer")
	ErrMemberNameRequired = errors.New("name is required")
	ErrMemberEmailInvalid = errors.New("email is required")
)

// TeamService manages the authority team directory.
type TeamService struct {
	teamRepo    repository.TeamMemberRepository
	broadcaster Broadcaster
	now         func() time.Time

	mu sync.Mutex
}

// NewTeamService creates a new TeamService
func NewTeamService(teamRepo repository.TeamMemberRepository, broadcaster Broadcaster) *TeamService {
	if broadcaster == nil {
		broadcaster = nopBroadcaster{}
	}
	return &TeamService{
		teamRepo:    teamRepo,
		broadcaster: broadcaster,
		now:         utcNow,
	}
}

// CreateMemberInput describes a new team member.
type CreateMemberInput struct {
	Name     string
	Email    string
	Role     models.TeamRole
	IsOnline bool
	Location *models.GeoPoint
}

// ListMembers returns every team member in insertion order.
func (s *TeamService) ListMembers() ([]models.TeamMember, error) {
	members, err := s.teamRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}

// GetMember returns a single team member.
func (s *TeamService) GetMember(id string) (*models.TeamMember, error) {
	member, err := s.teamRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find team member: %w", err)
	}
	return member, nil
}

// UpdateMemberStatus sets the online flag and refreshes lastActiveAt. A nil
// location keeps the previously known position.
func (s *TeamService) UpdateMemberStatus(id string, isOnline bool, location *models.GeoPoint) (*models.TeamMember, error) {
	member, err := s.updateStatusLocked(id, isOnline, location)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(newEvent(EventTeamUpdated, dto.ToTeamMemberDTO(*member), member.LastActiveAt))
	return member, nil
}

func (s *TeamService) updateStatusLocked(id string, isOnline bool, location *models.GeoPoint) (*models.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	member, err := s.GetMember(id)
	if err != nil {
		return nil, err
	}

	member.IsOnline = isOnline
	member.SetLocation(location)
	member.LastActiveAt = s.now()

	if err := s.teamRepo.Update(member); err != nil {
		return nil, fmt.Errorf("failed to update team member: %w", err)
	}
	return member, nil
}

// CreateMember adds a team member with a fresh admin-prefixed ID.
func (s *TeamService) CreateMember(input CreateMemberInput) (*models.TeamMember, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, ErrMemberNameRequired
	}
	if email == "" {
		return nil, ErrMemberEmailInvalid
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	now := s.now()
	member := &models.TeamMember{
		ID:           "admin-" + uuid.New().String(),
		Name:         name,
		Email:        email,
		Role:         input.Role,
		IsOnline:     input.IsOnline,
		CreatedAt:    now,
		LastActiveAt: now,
	}
	member.SetLocation(input.Location)

	if err := s.teamRepo.Create(member); err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}

	s.broadcaster.Broadcast(newEvent(EventTeamUpdated, dto.ToTeamMemberDTO(*member), now))
	return member, nil
}
