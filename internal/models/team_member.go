package models

import "time"

type TeamRole string

const (
	RoleAdmin        TeamRole = "admin"
	RoleSupervisor   TeamRole = "supervisor"
	RoleFieldOfficer TeamRole = "field_officer"
)

func (r TeamRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleFieldOfficer:
		return true
	}
	return false
}

// TeamMember is an authority user who triages reports.
type TeamMember struct {
	ID           string    `gorm:"type:varchar(64);primarykey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null"`
	Role         TeamRole  `gorm:"type:varchar(20);not null"`
	IsOnline     bool      `gorm:"not null;default:false"`
	LocationLat  *float64
	LocationLng  *float64
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	LastActiveAt time.Time
}

// GeoPoint is a lat/lng pair as exchanged with the dashboard.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location returns the last known position, if any.
func (m *TeamMember) Location() *GeoPoint {
	if m.LocationLat == nil || m.LocationLng == nil {
		return nil
	}
	return &GeoPoint{Lat: *m.LocationLat, Lng: *m.LocationLng}
}

// SetLocation replaces the stored position. A nil point leaves it unchanged.
func (m *TeamMember) SetLocation(p *GeoPoint) {
	if p == nil {
		return
	}
	lat, lng := p.Lat, p.Lng
	m.LocationLat = &lat
	m.LocationLng = &lng
}
