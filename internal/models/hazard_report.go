package models

import "time"

// HazardReport is an append-only citizen observation. Rows are never updated
// or deleted once written.
type HazardReport struct {
	ID          string    `gorm:"type:varchar(64);primarykey" json:"id"`
	UserID      string    `gorm:"type:varchar(64);index;not null" json:"userId"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Latitude    float64   `gorm:"not null" json:"latitude"`
	Longitude   float64   `gorm:"not null" json:"longitude"`
	ImageURL    *string   `gorm:"type:text" json:"imageUrl,omitempty"`
	AudioURL    *string   `gorm:"type:text" json:"audioUrl,omitempty"`
	Location    *string   `gorm:"type:varchar(255)" json:"location,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}
