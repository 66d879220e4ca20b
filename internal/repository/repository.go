package repository

import (
	"github.com/yukikurage/ocean-hazard-api/internal/models"
)

// UserRepository defines the interface for citizen account data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// HazardReportRepository is the append-only base report log. There is
// deliberately no Update or Delete.
type HazardReportRepository interface {
	// Create stores a new report
	Create(report *models.HazardReport) error

	// FindByID finds a report by ID
	FindByID(id string) (*models.HazardReport, error)

	// List returns every report, newest first
	List() ([]models.HazardReport, error)

	// ListByUser returns the reports submitted by userID, newest first
	ListByUser(userID string) ([]models.HazardReport, error)
}

// AdminReportRepository stores the triage projection.
type AdminReportRepository interface {
	// IDs returns the set of report IDs that already have a projection
	IDs() (map[string]struct{}, error)

	// InsertMissing inserts reports whose ID is not yet present and returns
	// how many rows were actually written
	InsertMissing(reports []models.AdminReport) (int64, error)

	// FindByID finds a projected report by ID
	FindByID(id string) (*models.AdminReport, error)

	// List returns every projected report, newest first
	List() ([]models.AdminReport, error)

	// Update persists triage fields of an existing report
	Update(report *models.AdminReport) error

	// CountByStatus counts projected reports per status
	CountByStatus() (map[models.ReportStatus]int64, error)

	// CountByPriority counts projected reports with the given priority
	CountByPriority(priority models.ReportPriority) (int64, error)
}

// TeamMemberRepository defines the interface for authority team data access
type TeamMemberRepository interface {
	Create(member *models.TeamMember) error
	FindByID(id string) (*models.TeamMember, error)
	List() ([]models.TeamMember, error)
	Update(member *models.TeamMember) error
	CountOnline() (int64, error)
}
