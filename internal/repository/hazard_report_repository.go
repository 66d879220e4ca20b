package repository

import (
	"github.com/yukikurage/ocean-hazard-api/internal/models"
	"gorm.io/gorm"
)

// Newest first; equal timestamps fall back to ID so the order is stable.
const newestFirst = "created_at DESC, id ASC"

// GormHazardReportRepository is a GORM implementation of HazardReportRepository
type GormHazardReportRepository struct {
	db *gorm.DB
}

// NewHazardReportRepository creates a new HazardReportRepository
func NewHazardReportRepository(db *gorm.DB) HazardReportRepository {
	return &GormHazardReportRepository{db: db}
}

func (r *GormHazardReportRepository) Create(report *models.HazardReport) error {
	return r.db.Create(report).Error
}

func (r *GormHazardReportRepository) FindByID(id string) (*models.HazardReport, error) {
	var report models.HazardReport
	if err := r.db.Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *GormHazardReportRepository) List() ([]models.HazardReport, error) {
	reports := []models.HazardReport{}
	if err := r.db.Order(newestFirst).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *GormHazardReportRepository) ListByUser(userID string) ([]models.HazardReport, error) {
	reports := []models.HazardReport{}
	if err := r.db.Where("user_id = ?", userID).Order(newestFirst).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
