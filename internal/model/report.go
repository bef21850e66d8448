package model

import "time"

// Report lifecycle statuses, as exposed verbatim by the polling API.
const (
	ReportRunning  = "Running"
	ReportComplete = "Complete"
	ReportFailed   = "Failed"
)

// Report tracks one requested uptime report and its generated CSV artifact.
type Report struct {
	ReportID  string `gorm:"primaryKey;size:64"`
	Status    string `gorm:"size:16;not null"`
	CSVPath   string `gorm:"size:512"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
