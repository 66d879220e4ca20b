package repository

import (
	"github.com/yukikurage/ocean-hazard-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAdminReportRepository is a GORM implementation of AdminReportRepository
type GormAdminReportRepository struct {
	db *gorm.DB
}

// NewAdminReportRepository creates a new AdminReportRepository
func NewAdminReportRepository(db *gorm.DB) AdminReportRepository {
	return &GormAdminReportRepository{db: db}
}

func (r *GormAdminReportRepository) IDs() (map[string]struct{}, error) {
	var ids []string
	if err := r.db.Model(&models.AdminReport{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// InsertMissing relies on the primary key to drop rows that were
// materialized concurrently by another process sharing the database.
func (r *GormAdminReportRepository) InsertMissing(reports []models.AdminReport) (int64, error) {
	if len(reports) == 0 {
		return 0, nil
	}

	result := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&reports)
	return result.RowsAffected, result.Error
}

func (r *GormAdminReportRepository) FindByID(id string) (*models.AdminReport, error) {
	var report models.AdminReport
	if err := r.db.Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *GormAdminReportRepository) List() ([]models.AdminReport, error) {
	reports := []models.AdminReport{}
	if err := r.db.Order(newestFirst).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// Update writes only the triage columns; the copied base fields are immutable.
func (r *GormAdminReportRepository) Update(report *models.AdminReport) error {
	return r.db.Model(&models.AdminReport{}).
		Where("id = ?", report.ID).
		Select("status", "priority", "assigned_to", "notes", "updated_at").
		Updates(report).Error
}

func (r *GormAdminReportRepository) CountByStatus() (map[models.ReportStatus]int64, error) {
	type row struct {
		Status models.ReportStatus
		Count  int64
	}
	var rows []row
	if err := r.db.Model(&models.AdminReport{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.ReportStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

func (r *GormAdminReportRepository) CountByPriority(priority models.ReportPriority) (int64, error) {
	var count int64
	err := r.db.Model(&models.AdminReport{}).
		Where("priority = ?", priority).
		Count(&count).Error
	return count, err
}
