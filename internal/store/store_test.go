package store

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/burrowhq/burrow/internal/database"
	"github.com/burrowhq/burrow/internal/model"
)

func setupTestDB(t *testing.T) (*UserStore, *RoomStore, *TaskStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserStore(db), NewRoomStore(db), NewTaskStore(db)
}

func seedUser(t *testing.T, us *UserStore) *model.User {
	t.Helper()
	u, err := us.Create("", "Test Household", map[string]string{"hair": "shortHair"}, 100)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestUserCRUD(t *testing.T) {
	us, _, _ := setupTestDB(t)

	u, err := us.Create("firebase-uid-1", "Casa", map[string]string{"top": "shirt"}, 100)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID != "firebase-uid-1" {
		t.Errorf("id = %q, want the provided id", u.ID)
	}
	if u.Coins != 100 {
		t.Errorf("coins = %d, want 100", u.Coins)
	}
	if u.Avatar["top"] != "shirt" {
		t.Errorf("avatar = %v, want top=shirt", u.Avatar)
	}

	updated, err := us.UpdateProfile(u.ID, "Casa Nueva", map[string]string{"top": "hoodie"}, 150)
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.DisplayName != "Casa Nueva" || updated.Coins != 150 {
		t.Errorf("updated = %q/%d, want Casa Nueva/150", updated.DisplayName, updated.Coins)
	}

	if err := us.Delete(u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	got, err := us.GetByID(u.ID)
	if err != nil {
		t.Fatalf("get deleted user: %v", err)
	}
	if got != nil {
		t.Error("expected nil for deleted user")
	}
}

func TestUserGeneratedID(t *testing.T) {
	us, _, _ := setupTestDB(t)

	u, err := us.Create("", "Anon", nil, 0)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == "" {
		t.Error("expected a generated id")
	}
}

func TestRoomCRUD(t *testing.T) {
	us, rs, _ := setupTestDB(t)
	user := seedUser(t, us)

	layout := &model.Layout{X: 1, Y: 0, Width: 4, Height: 5}
	room, err := rs.Create(user.ID, "Bedroom", model.RoomTypeBedroom, map[string]string{"pref_bed": "bed"}, layout, 0)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if room.DisplayName != "Bedroom" || room.RoomType != model.RoomTypeBedroom {
		t.Errorf("room = %q/%q", room.DisplayName, room.RoomType)
	}
	if room.Decor["pref_bed"] != "bed" {
		t.Errorf("decor = %v, want pref_bed=bed", room.Decor)
	}
	if room.Layout == nil || room.Layout.Width != 4 || room.Layout.Height != 5 {
		t.Errorf("layout = %+v, want 4x5", room.Layout)
	}

	rooms, err := rs.List(user.ID)
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(rooms))
	}

	if err := rs.Delete(user.ID, room.ID); err != nil {
		t.Fatalf("delete room: %v", err)
	}
	got, err := rs.GetByID(user.ID, room.ID)
	if err != nil {
		t.Fatalf("get deleted room: %v", err)
	}
	if got != nil {
		t.Error("expected nil for deleted room")
	}
}

func TestRoomWithoutLayout(t *testing.T) {
	us, rs, _ := setupTestDB(t)
	user := seedUser(t, us)

	room, err := rs.Create(user.ID, "Front Yard", model.RoomTypeHouse, map[string]string{"home": "house"}, nil, 0)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if room.Layout != nil {
		t.Errorf("layout = %+v, want nil", room.Layout)
	}
}

func TestGetHouseRoom(t *testing.T) {
	us, rs, _ := setupTestDB(t)
	user := seedUser(t, us)

	// No rooms at all
	got, err := rs.GetHouseRoom(user.ID)
	if err != nil {
		t.Fatalf("get house room: %v", err)
	}
	if got != nil {
		t.Error("expected nil with zero rooms")
	}

	// Fallback to the first room when none is tagged house
	bedroom, err := rs.Create(user.ID, "Bedroom", model.RoomTypeBedroom, nil, nil, 0)
	if err != nil {
		t.Fatalf("create bedroom: %v", err)
	}
	got, err = rs.GetHouseRoom(user.ID)
	if err != nil {
		t.Fatalf("get house room: %v", err)
	}
	if got == nil || got.ID != bedroom.ID {
		t.Errorf("fallback room = %+v, want the bedroom", got)
	}

	// The tagged room wins once it exists
	house, err := rs.Create(user.ID, "Front Yard", model.RoomTypeHouse, nil, nil, 0)
	if err != nil {
		t.Fatalf("create house room: %v", err)
	}
	got, err = rs.GetHouseRoom(user.ID)
	if err != nil {
		t.Fatalf("get house room: %v", err)
	}
	if got == nil || got.ID != house.ID {
		t.Errorf("house room = %+v, want the tagged room", got)
	}
}

func TestTaskCRUD(t *testing.T) {
	us, rs, ts := setupTestDB(t)
	user := seedUser(t, us)
	room, err := rs.Create(user.ID, "Bathroom", model.RoomTypeBathroom, nil, nil, 0)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	task, err := ts.Create(user.ID, room.ID, "Clean Sink", model.RecurrenceDaily, 10, true)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.Completed {
		t.Error("new task should start incomplete")
	}
	if task.LastCompletedAt != nil {
		t.Error("new task should have no completion timestamp")
	}
	if task.TimerMinutes != 10 || !task.TimerEnabled {
		t.Errorf("timer = %d/%v, want 10/true", task.TimerMinutes, task.TimerEnabled)
	}

	now := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
	task.Completed = true
	task.LastCompletedAt = &now
	task.Name = "Clean Sink and Counter"
	if err := ts.Save(user.ID, room.ID, *task); err != nil {
		t.Fatalf("save task: %v", err)
	}

	got, err := ts.GetByID(user.ID, room.ID, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if !got.Completed || got.Name != "Clean Sink and Counter" {
		t.Errorf("saved task = %+v", got)
	}
	if got.LastCompletedAt == nil || !got.LastCompletedAt.Equal(now) {
		t.Errorf("last completed = %v, want %v", got.LastCompletedAt, now)
	}

	if err := ts.Delete(user.ID, room.ID, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	got, err = ts.GetByID(user.ID, room.ID, task.ID)
	if err != nil {
		t.Fatalf("get deleted task: %v", err)
	}
	if got != nil {
		t.Error("expected nil for deleted task")
	}
}

func TestSaveMissingTaskFails(t *testing.T) {
	us, rs, ts := setupTestDB(t)
	user := seedUser(t, us)
	room, _ := rs.Create(user.ID, "Bathroom", model.RoomTypeBathroom, nil, nil, 0)

	err := ts.Save(user.ID, room.ID, model.Task{ID: "gone", Name: "Ghost", Recurrence: model.RecurrenceDaily})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("save missing task err = %v, want sql.ErrNoRows", err)
	}
}

func TestFindByNameFirstMatch(t *testing.T) {
	us, rs, ts := setupTestDB(t)
	user := seedUser(t, us)
	room, _ := rs.Create(user.ID, "Bedroom", model.RoomTypeBedroom, nil, nil, 0)

	first, err := ts.Create(user.ID, room.ID, "Vacuum", model.RecurrenceDaily, 0, false)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := ts.Create(user.ID, room.ID, "Vacuum", model.RecurrenceWeekly, 0, false); err != nil {
		t.Fatalf("create duplicate: %v", err)
	}

	got, err := ts.FindByName(user.ID, room.ID, "Vacuum")
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if got == nil || got.ID != first.ID {
		t.Errorf("find returned %+v, want the earliest-created task", got)
	}

	got, err = ts.FindByName(user.ID, room.ID, "Mop")
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if got != nil {
		t.Error("expected nil for an unknown name")
	}
}

func TestTasksScopedToOwner(t *testing.T) {
	us, rs, ts := setupTestDB(t)
	owner := seedUser(t, us)
	intruder, err := us.Create("", "Other", nil, 0)
	if err != nil {
		t.Fatalf("create second user: %v", err)
	}

	room, _ := rs.Create(owner.ID, "Bedroom", model.RoomTypeBedroom, nil, nil, 0)
	task, err := ts.Create(owner.ID, room.ID, "Make Bed", model.RecurrenceDaily, 0, false)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := ts.GetByID(intruder.ID, room.ID, task.ID)
	if err != nil {
		t.Fatalf("cross-user get: %v", err)
	}
	if got != nil {
		t.Error("task visible to a different user")
	}

	if err := ts.Save(intruder.ID, room.ID, *task); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("cross-user save err = %v, want sql.ErrNoRows", err)
	}

	if _, err := ts.Create(intruder.ID, room.ID, "Sneaky", model.RecurrenceDaily, 0, false); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("cross-user create err = %v, want sql.ErrNoRows", err)
	}
}

func TestRoomDeleteRemovesTasks(t *testing.T) {
	us, rs, ts := setupTestDB(t)
	user := seedUser(t, us)
	room, _ := rs.Create(user.ID, "Bathroom", model.RoomTypeBathroom, nil, nil, 0)
	if _, err := ts.Create(user.ID, room.ID, "Scrub Toilet", model.RecurrenceWeekly, 0, false); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := rs.Delete(user.ID, room.ID); err != nil {
		t.Fatalf("delete room: %v", err)
	}
	tasks, err := ts.List(user.ID, room.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no tasks after room delete, got %d", len(tasks))
	}
}
