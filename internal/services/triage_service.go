package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yukikurage/ocean-hazard-api/internal/dto"
	"github.com/yukikurage/ocean-hazard-api/internal/models"
	"github.com/yukikurage/ocean-hazard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound   = errors.New("report not found")
	ErrInvalidStatus    = errors.New("status must be one of incoming, in_progress, resolved")
	ErrInvalidPriority  = errors.New("priority must be one of low, medium, high, critical")
	ErrAssigneeRequired = errors.New("assignedTo is required")
)

// TriageService maintains the admin projection of hazard reports and applies
// triage transitions to it.
//
// Status transitions are deliberately permissive: SetStatus may move a
// report between any two states and Assign always lands in in_progress,
// reopening resolved reports.
type TriageService struct {
	reportRepo  repository.HazardReportRepository
	adminRepo   repository.AdminReportRepository
	teamRepo    repository.TeamMemberRepository
	classify    func(string) models.ReportPriority
	broadcaster Broadcaster
	now         func() time.Time

	// mu serializes materialization and read-modify-write mutations so a
	// report is projected at most once and concurrent edits do not interleave.
	mu sync.Mutex
}

// NewTriageService creates a new TriageService
func NewTriageService(
	reportRepo repository.HazardReportRepository,
	adminRepo repository.AdminReportRepository,
	teamRepo repository.TeamMemberRepository,
	broadcaster Broadcaster,
) *TriageService {
	if broadcaster == nil {
		broadcaster = nopBroadcaster{}
	}
	return &TriageService{
		reportRepo:  reportRepo,
		adminRepo:   adminRepo,
		teamRepo:    teamRepo,
		classify:    ClassifyPriority,
		broadcaster: broadcaster,
		now:         utcNow,
	}
}

// Reconcile materializes an AdminReport for every base report that does not
// have one yet and returns how many were created. Running it again without
// new base reports creates nothing.
func (s *TriageService) Reconcile() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reconcileLocked()
}

func (s *TriageService) reconcileLocked() (int64, error) {
	base, err := s.reportRepo.List()
	if err != nil {
		return 0, fmt.Errorf("failed to list hazard reports: %w", err)
	}

	existing, err := s.adminRepo.IDs()
	if err != nil {
		return 0, fmt.Errorf("failed to list projected reports: %w", err)
	}

	now := s.now()
	var missing []models.AdminReport
	for _, r := range base {
		if _, ok := existing[r.ID]; ok {
			continue
		}
		missing = append(missing, s.materialize(r, now))
		// guard against duplicate IDs within one batch
		existing[r.ID] = struct{}{}
	}

	created, err := s.adminRepo.InsertMissing(missing)
	if err != nil {
		return 0, fmt.Errorf("failed to materialize reports: %w", err)
	}

	if created > 0 {
		log.Debug().Int64("count", created).Msg("Materialized admin reports")
	}
	return created, nil
}

func (s *TriageService) materialize(r models.HazardReport, now time.Time) models.AdminReport {
	return models.AdminReport{
		ID:          r.ID,
		UserID:      r.UserID,
		Description: r.Description,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		ImageURL:    r.ImageURL,
		AudioURL:    r.AudioURL,
		Location:    r.Location,
		Status:      models.ReportStatusIncoming,
		Priority:    s.classify(r.Description),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   now,
	}
}

// ListReports reconciles the projection and returns every admin report,
// newest first.
func (s *TriageService) ListReports() ([]models.AdminReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.reconcileLocked(); err != nil {
		return nil, err
	}

	reports, err := s.adminRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list admin reports: %w", err)
	}
	return reports, nil
}

// GetReport returns a projected report without materializing anything.
func (s *TriageService) GetReport(id string) (*models.AdminReport, error) {
	report, err := s.adminRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return report, nil
}

// Assign sets the assignee and forces the report into in_progress,
// whatever its current state.
func (s *TriageService) Assign(id, memberID string) (*models.AdminReport, error) {
	memberID = strings.TrimSpace(memberID)
	return s.mutate(id, func(r *models.AdminReport) error {
		if memberID == "" {
			return ErrAssigneeRequired
		}
		r.AssignedTo = &memberID
		r.Status = models.ReportStatusInProgress
		return nil
	})
}

// SetStatus overwrites the status. The assignee is left untouched.
func (s *TriageService) SetStatus(id string, status models.ReportStatus) (*models.AdminReport, error) {
	return s.mutate(id, func(r *models.AdminReport) error {
		if !status.Valid() {
			return ErrInvalidStatus
		}
		r.Status = status
		return nil
	})
}

// SetPriority overrides the classified priority.
func (s *TriageService) SetPriority(id string, priority models.ReportPriority) (*models.AdminReport, error) {
	return s.mutate(id, func(r *models.AdminReport) error {
		if !priority.Valid() {
			return ErrInvalidPriority
		}
		r.Priority = priority
		return nil
	})
}

// SetNotes replaces the notes. An empty string clears them.
func (s *TriageService) SetNotes(id, notes string) (*models.AdminReport, error) {
	return s.mutate(id, func(r *models.AdminReport) error {
		r.Notes = optional(notes)
		return nil
	})
}

// mutate applies a triage change and announces it on the feed. A missing
// report wins over an invalid value. The event is published after the lock
// is released.
func (s *TriageService) mutate(id string, apply func(r *models.AdminReport) error) (*models.AdminReport, error) {
	report, err := s.applyLocked(id, apply)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(newEvent(EventReportUpdated, report, report.UpdatedAt))
	return report, nil
}

func (s *TriageService) applyLocked(id string, apply func(r *models.AdminReport) error) (*models.AdminReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.adminRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}

	if err := apply(report); err != nil {
		return nil, err
	}
	report.UpdatedAt = s.now()

	if err := s.adminRepo.Update(report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return report, nil
}

// Statistics reconciles the projection and summarizes the triage queue.
func (s *TriageService) Statistics() (*dto.StatisticsDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.reconcileLocked(); err != nil {
		return nil, err
	}

	byStatus, err := s.adminRepo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	critical, err := s.adminRepo.CountByPriority(models.PriorityCritical)
	if err != nil {
		return nil, fmt.Errorf("failed to count critical reports: %w", err)
	}
	online, err := s.teamRepo.CountOnline()
	if err != nil {
		return nil, fmt.Errorf("failed to count online team members: %w", err)
	}

	stats := &dto.StatisticsDTO{
		Incoming:   byStatus[models.ReportStatusIncoming],
		InProgress: byStatus[models.ReportStatusInProgress],
		Resolved:   byStatus[models.ReportStatusResolved],
		Critical:   critical,
		OnlineTeam: online,
	}
	for _, n := range byStatus {
		stats.Total += n
	}
	return stats, nil
}
