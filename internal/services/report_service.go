package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/ocean-hazard-api/internal/constants"
	"github.com/yukikurage/ocean-hazard-api/internal/geo"
	"github.com/yukikurage/ocean-hazard-api/internal/models"
	"github.com/yukikurage/ocean-hazard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidCoordinates  = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")
	ErrUserIDRequired      = errors.New("user ID required")
	ErrHazardReportMissing = errors.New("hazard report not found")
	ErrInvalidRadius       = errors.New("radius must be positive")
)

// ReportService owns the append-only hazard report log.
type ReportService struct {
	reportRepo  repository.HazardReportRepository
	broadcaster Broadcaster
	notifier    ReportNotifier
	now         func() time.Time

	// mu guards lastCreatedAt so timestamps never go backwards relative to
	// insertion order, even if the wall clock does.
	mu            sync.Mutex
	lastCreatedAt time.Time
}

// NewReportService creates a new ReportService. Nil broadcaster or notifier
// disable the corresponding side effect.
func NewReportService(reportRepo repository.HazardReportRepository, broadcaster Broadcaster, notifier ReportNotifier) *ReportService {
	if broadcaster == nil {
		broadcaster = nopBroadcaster{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &ReportService{
		reportRepo:  reportRepo,
		broadcaster: broadcaster,
		notifier:    notifier,
		now:         utcNow,
	}
}

// CreateReportInput represents a citizen submission.
type CreateReportInput struct {
	Description string
	Latitude    float64
	Longitude   float64
	ImageURL    string
	AudioURL    string
	Location    string
}

// NearbyReport is a report annotated with its distance from the query point.
type NearbyReport struct {
	models.HazardReport
	DistanceKm float64 `json:"distanceKm"`
}

// CreateHazardReport validates and appends a report for userID. userID is a
// weak reference and is not checked against the user table.
func (s *ReportService) CreateHazardReport(input CreateReportInput, userID string) (*models.HazardReport, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if !geo.ValidCoordinates(input.Latitude, input.Longitude) {
		return nil, ErrInvalidCoordinates
	}

	report := &models.HazardReport{
		ID:          uuid.New().String(),
		UserID:      userID,
		Description: input.Description,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		ImageURL:    optional(input.ImageURL),
		AudioURL:    optional(input.AudioURL),
		Location:    optional(input.Location),
	}

	if err := s.insert(report); err != nil {
		return nil, fmt.Errorf("failed to create hazard report: %w", err)
	}

	s.broadcaster.Broadcast(newEvent(EventReportCreated, report, report.CreatedAt))
	s.notifier.NotifyReportCreated(*report)

	return report, nil
}

func (s *ReportService) insert(report *models.HazardReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := s.now()
	if createdAt.Before(s.lastCreatedAt) {
		createdAt = s.lastCreatedAt
	}
	report.CreatedAt = createdAt

	if err := s.reportRepo.Create(report); err != nil {
		return err
	}
	s.lastCreatedAt = createdAt
	return nil
}

// GetHazardReport returns a single base report.
func (s *ReportService) GetHazardReport(id string) (*models.HazardReport, error) {
	report, err := s.reportRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHazardReportMissing
		}
		return nil, fmt.Errorf("failed to find hazard report: %w", err)
	}
	return report, nil
}

// ListHazardReports returns all reports, newest first.
func (s *ReportService) ListHazardReports() ([]models.HazardReport, error) {
	reports, err := s.reportRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list hazard reports: %w", err)
	}
	return reports, nil
}

// ListHazardReportsByUser returns reports submitted by userID, newest first.
func (s *ReportService) ListHazardReportsByUser(userID string) ([]models.HazardReport, error) {
	reports, err := s.reportRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hazard reports: %w", err)
	}
	return reports, nil
}

// NearbyHazardReports returns reports within radiusKm of the point, newest
// first. A zero radius falls back to the default.
func (s *ReportService) NearbyHazardReports(lat, lng, radiusKm float64) ([]NearbyReport, error) {
	if !geo.ValidCoordinates(lat, lng) {
		return nil, ErrInvalidCoordinates
	}
	if radiusKm == 0 {
		radiusKm = constants.DefaultNearbyRadiusKm
	}
	if radiusKm < 0 {
		return nil, ErrInvalidRadius
	}
	if radiusKm > constants.MaxNearbyRadiusKm {
		radiusKm = constants.MaxNearbyRadiusKm
	}

	reports, err := s.ListHazardReports()
	if err != nil {
		return nil, err
	}

	// reports are already newest first
	nearby := []NearbyReport{}
	for _, r := range reports {
		d := geo.DistanceKm(lat, lng, r.Latitude, r.Longitude)
		if d <= radiusKm {
			nearby = append(nearby, NearbyReport{HazardReport: r, DistanceKm: d})
		}
	}
	return nearby, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
