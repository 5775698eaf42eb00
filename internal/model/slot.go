package model

import "time"

// Slot is a key/value row used by the SQL-backed store.
type Slot struct {
	SlotKey   string    `gorm:"primaryKey;size:255" json:"key"`
	Value     []byte    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Slot) TableName() string {
	return "slots"
}
