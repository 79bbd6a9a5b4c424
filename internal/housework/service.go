package housework

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/burrowhq/burrow/internal/model"
	"github.com/burrowhq/burrow/internal/task"
)

var (
	// ErrNotFound is returned when an operation targets a user, room, or
	// task that does not exist (or no longer exists).
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for malformed input to a mutating
	// operation, before any persistence call is attempted.
	ErrInvalidInput = errors.New("invalid input")
)

// RoomStore is the room side of the persistence adapter.
type RoomStore interface {
	List(userID string) ([]model.Room, error)
	GetByID(userID, roomID string) (*model.Room, error)
	GetHouseRoom(userID string) (*model.Room, error)
	Create(userID, displayName, roomType string, decor map[string]string, layout *model.Layout, floor int) (*model.Room, error)
	Delete(userID, roomID string) error
	DeleteAllForUser(userID string) error
}

// TaskStore is the task side of the persistence adapter.
type TaskStore interface {
	List(userID, roomID string) ([]model.Task, error)
	GetByID(userID, roomID, taskID string) (*model.Task, error)
	FindByName(userID, roomID, name string) (*model.Task, error)
	Create(userID, roomID, name, recurrence string, timerMinutes int, timerEnabled bool) (*model.Task, error)
	Save(userID, roomID string, t model.Task) error
	Delete(userID, roomID, taskID string) error
	DeleteAllForUser(userID string) error
}

// UserStore is the user-record side of the persistence adapter.
type UserStore interface {
	Create(id, displayName string, avatar map[string]string, coins int) (*model.User, error)
	GetByID(id string) (*model.User, error)
	UpdateProfile(id, displayName string, avatar map[string]string, coins int) (*model.User, error)
	Delete(id string) error
}

// Service implements the chore-tracking operations on top of the
// persistence adapter. Identity is always an explicit userID parameter;
// there is no ambient current user.
type Service struct {
	users  UserStore
	rooms  RoomStore
	tasks  TaskStore
	now    func() time.Time
	logger *slog.Logger
}

func New(users UserStore, rooms RoomStore, tasks TaskStore, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		rooms:  rooms,
		tasks:  tasks,
		now:    time.Now,
		logger: logger,
	}
}

// HouseholdProgress aggregates completion across every room the user owns.
type HouseholdProgress struct {
	TotalTasks        int          `json:"totalTasks"`
	CompletedTasks    int          `json:"completedTasks"`
	CompletionPercent int          `json:"completionPercent"`
	Tasks             []model.Task `json:"tasks"`
}

// TaskInput is the caller-supplied portion of a new task.
type TaskInput struct {
	Name         string `json:"task_name"`
	Recurrence   string `json:"recurrence"`
	TimerMinutes int    `json:"task_time"`
	TimerEnabled bool   `json:"task_timer_enabled"`
}

// TaskEdit renames or re-periods an existing task.
type TaskEdit struct {
	ID         string `json:"id"`
	Name       string `json:"task_name"`
	Recurrence string `json:"recurrence"`
}

// RoomEdits is the batch form the edit screen saves in one shot.
type RoomEdits struct {
	Deleted []string    `json:"deleted"`
	Added   []TaskInput `json:"added"`
	Updated []TaskEdit  `json:"updated"`
}

// RoomInput is the caller-supplied portion of a new room.
type RoomInput struct {
	DisplayName string            `json:"display_name"`
	RoomType    string            `json:"room_type"`
	Decor       map[string]string `json:"decor"`
	Layout      *model.Layout     `json:"layout"`
	Floor       int               `json:"floor"`
}

func (s *Service) Rooms(userID string) ([]model.Room, error) {
	return s.rooms.List(userID)
}

// HouseRoom returns the user's entry room, nil when the user has no rooms.
func (s *Service) HouseRoom(userID string) (*model.Room, error) {
	return s.rooms.GetHouseRoom(userID)
}

func (s *Service) CreateRoom(userID string, in RoomInput) (*model.Room, error) {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if in.DisplayName == "" {
		return nil, fmt.Errorf("%w: room name is required", ErrInvalidInput)
	}
	if in.RoomType == "" {
		return nil, fmt.Errorf("%w: room type is required", ErrInvalidInput)
	}
	return s.rooms.Create(userID, in.DisplayName, in.RoomType, in.Decor, in.Layout, in.Floor)
}

func (s *Service) DeleteRoom(userID, roomID string) error {
	room, err := s.rooms.GetByID(userID, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return fmt.Errorf("room %s: %w", roomID, ErrNotFound)
	}
	return s.rooms.Delete(userID, roomID)
}

// RoomProgress lists the room's tasks with the reset policy applied and
// summarizes completion. Any task whose completed flag was cleared by the
// policy is written back before the summary is computed, so a reset-due
// task counts as incomplete everywhere, including in the backing store.
func (s *Service) RoomProgress(userID, roomID string) (task.Progress, error) {
	room, err := s.rooms.GetByID(userID, roomID)
	if err != nil {
		return task.Progress{}, err
	}
	if room == nil {
		return task.Progress{}, fmt.Errorf("room %s: %w", roomID, ErrNotFound)
	}

	tasks, err := s.tasks.List(userID, roomID)
	if err != nil {
		return task.Progress{}, err
	}
	if err := s.flushResets(userID, roomID, tasks); err != nil {
		return task.Progress{}, err
	}
	return task.Summarize(tasks), nil
}

// HouseholdProgress aggregates every room, applying the same reset-on-read
// policy. A failure in any room fails the whole aggregation; a partial
// count would just be a misleadingly low percentage.
func (s *Service) HouseholdProgress(userID string) (HouseholdProgress, error) {
	rooms, err := s.rooms.List(userID)
	if err != nil {
		return HouseholdProgress{}, err
	}

	all := []model.Task{}
	for _, room := range rooms {
		tasks, err := s.tasks.List(userID, room.ID)
		if err != nil {
			return HouseholdProgress{}, fmt.Errorf("room %s: %w", room.ID, err)
		}
		if err := s.flushResets(userID, room.ID, tasks); err != nil {
			return HouseholdProgress{}, fmt.Errorf("room %s: %w", room.ID, err)
		}
		all = append(all, tasks...)
	}

	p := task.Summarize(all)
	return HouseholdProgress{
		TotalTasks:        p.TotalTasks,
		CompletedTasks:    p.CompletedCount,
		CompletionPercent: p.ProgressPercent,
		Tasks:             all,
	}, nil
}

// flushResets evaluates the reset policy over tasks in place and persists
// every task whose flag actually changed. Evaluation and persistence are
// separate phases so the correcting write is visible here, not buried in a
// fetch.
func (s *Service) flushResets(userID, roomID string, tasks []model.Task) error {
	now := s.now()
	for i := range tasks {
		if !task.ResetIfNeeded(&tasks[i], now) {
			continue
		}
		if err := s.tasks.Save(userID, roomID, tasks[i]); err != nil {
			return fmt.Errorf("flush reset for task %s: %w", tasks[i].ID, err)
		}
		s.logger.Debug("task reset", "user_id", userID, "room_id", roomID, "task_id", tasks[i].ID)
	}
	return nil
}

func (s *Service) AddTask(userID, roomID string, in TaskInput) (*model.Task, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("%w: task name is required", ErrInvalidInput)
	}
	if in.Recurrence == "" {
		in.Recurrence = model.RecurrenceDaily
	}
	if !task.ValidRecurrence(in.Recurrence) {
		return nil, fmt.Errorf("%w: unknown recurrence %q", ErrInvalidInput, in.Recurrence)
	}

	room, err := s.rooms.GetByID(userID, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("room %s: %w", roomID, ErrNotFound)
	}
	return s.tasks.Create(userID, roomID, in.Name, in.Recurrence, in.TimerMinutes, in.TimerEnabled)
}

func (s *Service) EditTask(userID, roomID string, edit TaskEdit) (*model.Task, error) {
	edit.Name = strings.TrimSpace(edit.Name)
	if edit.Name == "" {
		return nil, fmt.Errorf("%w: task name is required", ErrInvalidInput)
	}
	if !task.ValidRecurrence(edit.Recurrence) {
		return nil, fmt.Errorf("%w: unknown recurrence %q", ErrInvalidInput, edit.Recurrence)
	}

	t, err := s.tasks.GetByID(userID, roomID, edit.ID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("task %s: %w", edit.ID, ErrNotFound)
	}

	t.Name = edit.Name
	t.Recurrence = edit.Recurrence
	if err := s.tasks.Save(userID, roomID, *t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) RemoveTask(userID, roomID, taskID string) error {
	t, err := s.tasks.GetByID(userID, roomID, taskID)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	return s.tasks.Delete(userID, roomID, taskID)
}

// CompleteTask marks the task done as of now and persists it. This is the
// only operation that advances the completion timestamp.
func (s *Service) CompleteTask(userID, roomID, taskID string) (*model.Task, error) {
	t, err := s.tasks.GetByID(userID, roomID, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}

	task.Complete(t, s.now())
	if err := s.tasks.Save(userID, roomID, *t); err != nil {
		return nil, err
	}
	return t, nil
}

// ReopenTask clears the completed flag without touching the completion
// timestamp, the same shape a recurrence reset takes.
func (s *Service) ReopenTask(userID, roomID, taskID string) (*model.Task, error) {
	t, err := s.tasks.GetByID(userID, roomID, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}

	t.Completed = false
	if err := s.tasks.Save(userID, roomID, *t); err != nil {
		return nil, err
	}
	return t, nil
}

// FindTask looks a task up by exact name, nil when absent.
func (s *Service) FindTask(userID, roomID, name string) (*model.Task, error) {
	return s.tasks.FindByName(userID, roomID, name)
}

// ApplyRoomEdits commits the edit screen's save-all batch: deletions first,
// then additions, then renames, mirroring the order the original save flow
// used. Additions and renames go through the same validation as the
// single-task operations.
func (s *Service) ApplyRoomEdits(userID, roomID string, edits RoomEdits) error {
	room, err := s.rooms.GetByID(userID, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return fmt.Errorf("room %s: %w", roomID, ErrNotFound)
	}

	for _, id := range edits.Deleted {
		if err := s.tasks.Delete(userID, roomID, id); err != nil {
			return err
		}
	}
	for _, in := range edits.Added {
		if _, err := s.AddTask(userID, roomID, in); err != nil {
			return err
		}
	}
	for _, edit := range edits.Updated {
		if _, err := s.EditTask(userID, roomID, edit); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) Profile(userID string) (*model.User, error) {
	return s.users.GetByID(userID)
}

func (s *Service) UpdateProfile(userID, displayName string, avatar map[string]string, coins int) (*model.User, error) {
	u, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return s.users.UpdateProfile(userID, displayName, avatar, coins)
}

// DeleteAccount removes everything the user owns: every task, then every
// room, then the user record. Children go first so an interrupted cascade
// never leaves orphaned tasks behind a surviving room.
func (s *Service) DeleteAccount(userID string) error {
	if err := s.tasks.DeleteAllForUser(userID); err != nil {
		return fmt.Errorf("delete account tasks: %w", err)
	}
	if err := s.rooms.DeleteAllForUser(userID); err != nil {
		return fmt.Errorf("delete account rooms: %w", err)
	}
	if err := s.users.Delete(userID); err != nil {
		return fmt.Errorf("delete account user: %w", err)
	}
	s.logger.Info("account deleted", "user_id", userID)
	return nil
}
