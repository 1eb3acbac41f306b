package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/models"
)

// RoomRepository reads the room catalogue.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository constructs the repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// ListExamRooms returns the pool of exam-capable rooms: exam type, available
// status, active flag. Ordered by name then id so room consumption is
// deterministic across scheduling runs.
func (r *RoomRepository) ListExamRooms(ctx context.Context) ([]models.Room, error) {
	const query = `SELECT id, room_name, capacity, room_type, status, active
        FROM rooms
        WHERE room_type = $1 AND status = $2 AND active = TRUE
        ORDER BY room_name, id`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query, models.RoomTypeExam, models.RoomStatusAvailable); err != nil {
		return nil, fmt.Errorf("list exam rooms: %w", err)
	}
	return rooms, nil
}
