package models

// Room type and status values as stored in the rooms catalogue.
const (
	RoomTypeStandard = "STANDARD"
	RoomTypeExam     = "EXAM"

	RoomStatusAvailable   = "AVAILABLE"
	RoomStatusMaintenance = "MAINTENANCE"
)

// Room represents a physical room record.
type Room struct {
	ID       int    `db:"id" json:"id"`
	RoomName string `db:"room_name" json:"room_name"`
	Capacity int    `db:"capacity" json:"capacity"`
	RoomType string `db:"room_type" json:"room_type"`
	Status   string `db:"status" json:"status"`
	Active   bool   `db:"active" json:"active"`
}
