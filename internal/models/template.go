package models

import "time"

// TemplateRecord is the stored form of a user-imported song-form template.
// The structural document is kept as a JSON blob; the planner parses it
// into its own template type on load.
type TemplateRecord struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:255"`
	Version   int
	Bars      int
	Document  string `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
