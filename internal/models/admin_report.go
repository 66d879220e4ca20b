package models

import (
	"time"
)

type ReportStatus string

const (
	ReportStatusIncoming   ReportStatus = "incoming"
	ReportStatusInProgress ReportStatus = "in_progress"
	ReportStatusResolved   ReportStatus = "resolved"
)

// Valid reports whether s is one of the triage states.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusIncoming, ReportStatusInProgress, ReportStatusResolved:
		return true
	}
	return false
}

type ReportPriority string

const (
	PriorityLow      ReportPriority = "low"
	PriorityMedium   ReportPriority = "medium"
	PriorityHigh     ReportPriority = "high"
	PriorityCritical ReportPriority = "critical"
)

func (p ReportPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// AdminReport is the triage projection of a HazardReport. It shares the
// base report's ID, so a report can be materialized at most once.
type AdminReport struct {
	ID          string         `gorm:"type:varchar(64);primarykey" json:"id"`
	UserID      string         `gorm:"type:varchar(64);not null" json:"userId"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Latitude    float64        `gorm:"not null" json:"latitude"`
	Longitude   float64        `gorm:"not null" json:"longitude"`
	ImageURL    *string        `gorm:"type:text" json:"imageUrl,omitempty"`
	AudioURL    *string        `gorm:"type:text" json:"audioUrl,omitempty"`
	Location    *string        `gorm:"type:varchar(255)" json:"location,omitempty"`
	Status      ReportStatus   `gorm:"type:varchar(20);not null;default:'incoming';index" json:"status"`
	Priority    ReportPriority `gorm:"type:varchar(20);not null;default:'low';index" json:"priority"`
	AssignedTo  *string        `gorm:"type:varchar(64)" json:"assignedTo,omitempty"`
	Notes       *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime:false;index" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime:false" json:"updatedAt"`
}
