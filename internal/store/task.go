package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/burrowhq/burrow/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

const taskCols = `t.id, t.room_id, t.task_name, t.task_complete, t.recurrence, t.task_time, t.task_timer_enabled, t.last_completed_at, t.created_at, t.updated_at`

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var lastCompleted string

	err := scanner.Scan(
		&t.ID, &t.RoomID, &t.Name, &t.Completed, &t.Recurrence,
		&t.TimerMinutes, &t.TimerEnabled, &lastCompleted,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Empty string means never completed, matching the document convention.
	if lastCompleted != "" {
		ts, err := time.Parse(time.RFC3339Nano, lastCompleted)
		if err != nil {
			return nil, fmt.Errorf("parse last_completed_at: %w", err)
		}
		t.LastCompletedAt = &ts
	}
	return &t, nil
}

func formatLastCompleted(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.UTC().Format(time.RFC3339Nano)
}

func (s *TaskStore) List(userID, roomID string) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM tasks t
		 JOIN rooms r ON r.id = t.room_id
		 WHERE r.user_id = ? AND t.room_id = ?
		 ORDER BY t.rowid ASC`,
		userID, roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) GetByID(userID, roomID, taskID string) (*model.Task, error) {
	row := s.db.QueryRow(
		`SELECT `+taskCols+` FROM tasks t
		 JOIN rooms r ON r.id = t.room_id
		 WHERE t.id = ? AND t.room_id = ? AND r.user_id = ?`,
		taskID, roomID, userID,
	)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// FindByName returns the first task in the room whose name matches exactly,
// nil when none does. With duplicate names the earliest-created wins.
func (s *TaskStore) FindByName(userID, roomID, name string) (*model.Task, error) {
	row := s.db.QueryRow(
		`SELECT `+taskCols+` FROM tasks t
		 JOIN rooms r ON r.id = t.room_id
		 WHERE r.user_id = ? AND t.room_id = ? AND t.task_name = ?
		 ORDER BY t.rowid ASC LIMIT 1`,
		userID, roomID, name,
	)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find task by name: %w", err)
	}
	return t, nil
}

func (s *TaskStore) Create(userID, roomID, name, recurrence string, timerMinutes int, timerEnabled bool) (*model.Task, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO tasks (id, room_id, task_name, task_complete, recurrence, task_time, task_timer_enabled, last_completed_at)
		 SELECT ?, id, ?, 0, ?, ?, ?, '' FROM rooms WHERE id = ? AND user_id = ?`,
		id, name, recurrence, timerMinutes, timerEnabled, roomID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	t, err := s.GetByID(userID, roomID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("insert task: room %s: %w", roomID, sql.ErrNoRows)
	}
	return t, nil
}

// Save overwrites the task's mutable fields. Saving a task that no longer
// exists is a hard failure (wrapped sql.ErrNoRows), not an upsert.
func (s *TaskStore) Save(userID, roomID string, t model.Task) error {
	res, err := s.db.Exec(
		`UPDATE tasks SET task_name = ?, task_complete = ?, recurrence = ?, task_time = ?, task_timer_enabled = ?, last_completed_at = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND room_id = ?
		   AND room_id IN (SELECT id FROM rooms WHERE user_id = ?)`,
		t.Name, t.Completed, t.Recurrence, t.TimerMinutes, t.TimerEnabled,
		formatLastCompleted(t.LastCompletedAt), t.ID, roomID, userID,
	)
	if err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save task rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("save task %s: %w", t.ID, sql.ErrNoRows)
	}
	return nil
}

func (s *TaskStore) Delete(userID, roomID, taskID string) error {
	_, err := s.db.Exec(
		`DELETE FROM tasks WHERE id = ? AND room_id = ?
		   AND room_id IN (SELECT id FROM rooms WHERE user_id = ?)`,
		taskID, roomID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *TaskStore) DeleteAllForUser(userID string) error {
	_, err := s.db.Exec(
		`DELETE FROM tasks WHERE room_id IN (SELECT id FROM rooms WHERE user_id = ?)`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete tasks for user: %w", err)
	}
	return nil
}
