package repository

import (
	"github.com/yukikurage/ocean-hazard-api/internal/models"
	"gorm.io/gorm"
)

// GormTeamMemberRepository is a GORM implementation of TeamMemberRepository
type GormTeamMemberRepository struct {
	db *gorm.DB
}

// NewTeamMemberRepository creates a new TeamMemberRepository
func NewTeamMemberRepository(db *gorm.DB) TeamMemberRepository {
	return &GormTeamMemberRepository{db: db}
}

func (r *GormTeamMemberRepository) Create(member *models.TeamMember) error {
	return r.db.Create(member).Error
}

func (r *GormTeamMemberRepository) FindByID(id string) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.Where("id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// List returns members in the order they joined.
func (r *GormTeamMemberRepository) List() ([]models.TeamMember, error) {
	members := []models.TeamMember{}
	if err := r.db.Order("created_at ASC, id ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *GormTeamMemberRepository) Update(member *models.TeamMember) error {
	return r.db.Save(member).Error
}

func (r *GormTeamMemberRepository) CountOnline() (int64, error) {
	var count int64
	err := r.db.Model(&models.TeamMember{}).
		Where("is_online = ?", true).
		Count(&count).Error
	return count, err
}
