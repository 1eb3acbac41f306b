package models

import "time"

// Slot is one bookable time unit within a day, e.g. "Slot 1" 07:00-08:30.
type Slot struct {
	ID        int    `db:"id" json:"id"`
	SlotName  string `db:"slot_name" json:"slot_name"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
}

// SlotWithDate pins a slot to one calendar day inside a scheduling window.
// Built per request by cross-producing the date range with the slot catalogue.
type SlotWithDate struct {
	Date      time.Time `json:"date"`
	SlotID    int       `json:"slot_id"`
	SlotName  string    `json:"slot_name"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}
