package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/burrowhq/burrow/internal/model"
)

type RoomStore struct {
	db *sql.DB
}

func NewRoomStore(db *sql.DB) *RoomStore {
	return &RoomStore{db: db}
}

const roomCols = `id, user_id, display_name, room_type, decor, layout, floor, created_at, updated_at`

func scanRoom(scanner interface{ Scan(...any) error }) (*model.Room, error) {
	var r model.Room
	var decor string
	var layout sql.NullString

	err := scanner.Scan(
		&r.ID, &r.UserID, &r.DisplayName, &r.RoomType,
		&decor, &layout, &r.Floor, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Decor, err = decodeStringMap(decor)
	if err != nil {
		return nil, fmt.Errorf("decode decor: %w", err)
	}
	if layout.Valid && layout.String != "" {
		var l model.Layout
		if err := json.Unmarshal([]byte(layout.String), &l); err != nil {
			return nil, fmt.Errorf("decode layout: %w", err)
		}
		r.Layout = &l
	}
	return &r, nil
}

func (s *RoomStore) List(userID string) ([]model.Room, error) {
	rows, err := s.db.Query(
		`SELECT `+roomCols+` FROM rooms WHERE user_id = ? ORDER BY rowid ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []model.Room
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, *r)
	}
	return rooms, rows.Err()
}

func (s *RoomStore) GetByID(userID, roomID string) (*model.Room, error) {
	row := s.db.QueryRow(
		`SELECT `+roomCols+` FROM rooms WHERE id = ? AND user_id = ?`,
		roomID, userID,
	)
	r, err := scanRoom(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	return r, nil
}

// GetHouseRoom returns the room tagged room_type "house". When no room
// carries the tag it falls back to the first room; nil only when the user
// has no rooms at all.
func (s *RoomStore) GetHouseRoom(userID string) (*model.Room, error) {
	row := s.db.QueryRow(
		`SELECT `+roomCols+` FROM rooms WHERE user_id = ? AND room_type = ? ORDER BY rowid ASC LIMIT 1`,
		userID, model.RoomTypeHouse,
	)
	r, err := scanRoom(row)
	if err == nil {
		return r, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("get house room: %w", err)
	}

	row = s.db.QueryRow(
		`SELECT `+roomCols+` FROM rooms WHERE user_id = ? ORDER BY rowid ASC LIMIT 1`,
		userID,
	)
	r, err = scanRoom(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get first room: %w", err)
	}
	return r, nil
}

func (s *RoomStore) Create(userID, displayName, roomType string, decor map[string]string, layout *model.Layout, floor int) (*model.Room, error) {
	id := uuid.NewString()

	decorJSON, err := encodeStringMap(decor)
	if err != nil {
		return nil, fmt.Errorf("encode decor: %w", err)
	}
	var layoutJSON sql.NullString
	if layout != nil {
		b, err := json.Marshal(layout)
		if err != nil {
			return nil, fmt.Errorf("encode layout: %w", err)
		}
		layoutJSON = sql.NullString{String: string(b), Valid: true}
	}

	_, err = s.db.Exec(
		`INSERT INTO rooms (id, user_id, display_name, room_type, decor, layout, floor) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, userID, displayName, roomType, decorJSON, layoutJSON, floor,
	)
	if err != nil {
		return nil, fmt.Errorf("insert room: %w", err)
	}
	return s.GetByID(userID, id)
}

// Delete removes the room and its tasks, tasks first so an interrupted
// delete never leaves a room pointing at live task rows.
func (s *RoomStore) Delete(userID, roomID string) error {
	_, err := s.db.Exec(
		`DELETE FROM tasks WHERE room_id IN (SELECT id FROM rooms WHERE id = ? AND user_id = ?)`,
		roomID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete room tasks: %w", err)
	}
	_, err = s.db.Exec(`DELETE FROM rooms WHERE id = ? AND user_id = ?`, roomID, userID)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}

func (s *RoomStore) DeleteAllForUser(userID string) error {
	_, err := s.db.Exec(`DELETE FROM rooms WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete rooms for user: %w", err)
	}
	return nil
}

func encodeStringMap(m map[string]string) (string, error) {
	if m == nil {
		m = map[string]string{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeStringMap(s string) (map[string]string, error) {
	if s == "" {
		return map[string]string{}, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, err
	}
	return m, nil
}
