package task

import (
	"math"

	"github.com/burrowhq/burrow/internal/model"
)

// Progress summarizes completion across a set of tasks. RemainingTasks
// preserves the relative order of the input.
type Progress struct {
	Tasks           []model.Task `json:"tasks"`
	RemainingTasks  []model.Task `json:"remainingTasks"`
	TotalTasks      int          `json:"totalTasks"`
	CompletedCount  int          `json:"completedCount"`
	ProgressPercent int          `json:"progressPercent"`
}

// Summarize computes completion counts and the rounded percentage for a set
// of tasks. An empty set yields 0%, not a division by zero.
func Summarize(tasks []model.Task) Progress {
	p := Progress{
		Tasks:          tasks,
		RemainingTasks: []model.Task{},
		TotalTasks:     len(tasks),
	}

	for _, t := range tasks {
		if t.Completed {
			p.CompletedCount++
		} else {
			p.RemainingTasks = append(p.RemainingTasks, t)
		}
	}

	if p.TotalTasks > 0 {
		p.ProgressPercent = int(math.Round(100 * float64(p.CompletedCount) / float64(p.TotalTasks)))
	}
	return p
}
