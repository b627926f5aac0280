package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AvailabilitySlot is one entry of a classroom's weekly availability.
type AvailabilitySlot struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// Availability is stored as a JSONB array.
type Availability []AvailabilitySlot

func (a Availability) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *Availability) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("availability: unexpected type %T", src)
	}
	return json.Unmarshal(b, a)
}

// Profile is a classroom record eligible for matching.
type Profile struct {
	ID           int          `json:"id" db:"id"`
	AccountID    int          `json:"account_id" db:"account_id"`
	Name         string       `json:"name" db:"name"`
	Location     *string      `json:"location" db:"location"`
	Latitude     *float64     `json:"latitude" db:"latitude"`
	Longitude    *float64     `json:"longitude" db:"longitude"`
	ClassSize    *int         `json:"class_size" db:"class_size"`
	Availability Availability `json:"availability" db:"availability"`
	Interests    []string     `json:"interests" db:"interests"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}
