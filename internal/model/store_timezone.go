package model

// StoreTimezone assigns an IANA zone identifier to a store. Stores without a
// row fall back to the configured default zone.
type StoreTimezone struct {
	StoreID     string `gorm:"primaryKey;size:64"`
	TimezoneStr string `gorm:"size:64;not null"`
}
