package model

import "time"

// Recurrence values accepted by the task picker. Monthly is selectable but
// the reset policy currently never fires for it; see task.ShouldReset.
const (
	RecurrenceDaily      = "daily"
	RecurrenceEvery2Days = "every_2_days"
	RecurrenceWeekly     = "weekly"
	RecurrenceMonthly    = "monthly"
)

type Task struct {
	ID              string     `json:"id"`
	RoomID          string     `json:"room_id"`
	Name            string     `json:"task_name"`
	Completed       bool       `json:"task_complete"`
	Recurrence      string     `json:"recurrence"`
	TimerMinutes    int        `json:"task_time"`
	TimerEnabled    bool       `json:"task_timer_enabled"`
	LastCompletedAt *time.Time `json:"last_completed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
