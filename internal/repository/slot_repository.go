package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/models"
)

// SlotRepository reads the slot catalogue.
type SlotRepository struct {
	db *sqlx.DB
}

// NewSlotRepository constructs the repository.
func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// ListSlots returns all defined time slots ordered by id.
func (r *SlotRepository) ListSlots(ctx context.Context) ([]models.Slot, error) {
	const query = `SELECT id, slot_name, start_time, end_time FROM slots ORDER BY id`
	var slots []models.Slot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}
