package model

// BusinessHour is one weekly opening interval for a store.
//
// DayOfWeek uses the dataset's Monday-based numbering (0=Monday .. 6=Sunday).
// Start/end are local wall-clock times in "HH:MM:SS" form; an end at or
// before the start denotes an overnight interval spilling into the next
// calendar day. A store may carry several rows for the same day (split
// shifts).
type BusinessHour struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	StoreID        string `gorm:"index;size:64;not null"`
	DayOfWeek      int    `gorm:"not null"`
	StartTimeLocal string `gorm:"size:16;not null"`
	EndTimeLocal   string `gorm:"size:16;not null"`
}
