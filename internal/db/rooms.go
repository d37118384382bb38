package db

import (
	"context"
	"database/sql"
	"time"

	"dayroom/internal/model"
)

// CreateRoom inserts a room and returns its id.
func (db *DB) CreateRoom(ctx context.Context, room *model.Room) (int64, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO rooms (name, description, is_active) VALUES (?, ?, ?)`,
		room.Name, room.Description, room.IsActive,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetRoom returns a room by id.
func (db *DB) GetRoom(ctx context.Context, id int64) (*model.Room, error) {
	var r model.Room
	err := db.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(description, ''), is_active, created_at, updated_at
		FROM rooms WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Name, &r.Description, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListActiveRooms returns all active rooms ordered by name.
func (db *DB) ListActiveRooms(ctx context.Context) ([]model.Room, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, COALESCE(description, ''), is_active, created_at, updated_at
		FROM rooms WHERE is_active = 1 ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []model.Room
	for rows.Next() {
		var r model.Room
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// SetRoomActive toggles a room's availability for new bookings.
func (db *DB) SetRoomActive(ctx context.Context, id int64, active bool) error {
	res, err := db.ExecContext(ctx,
		`UPDATE rooms SET is_active = ?, updated_at = ? WHERE id = ?`,
		active, time.Now(), id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
