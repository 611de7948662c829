package views

import (
	"cmp"
	"slices"

	"github.com/dmitrijs2005/pocketkeeper/internal/models"
)

// DeriveTaskStatus recomputes a task's status from its subtasks. Archived
// tasks stay archived and a task without subtasks keeps its status.
func DeriveTaskStatus(current models.TaskStatus, subtasks []models.SubTask) models.TaskStatus {
	if current == models.TaskArchived || len(subtasks) == 0 {
		return current
	}

	done := 0
	for _, st := range subtasks {
		if st.Completed {
			done++
		}
	}

	switch done {
	case 0:
		return models.TaskNotStarted
	case len(subtasks):
		return models.TaskCompleted
	default:
		return models.TaskInProgress
	}
}

// StatusAll disables status filtering in SortTasks.
const StatusAll models.TaskStatus = "all"

// SortTasks keeps tasks with the given status (or all of them) and orders
// them by status, then priority, then manual order.
func SortTasks(tasks []models.Task, status models.TaskStatus) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if status == "" || status == StatusAll || t.Status == status {
			out = append(out, t)
		}
	}

	slices.SortStableFunc(out, func(a, b models.Task) int {
		return cmp.Or(
			cmp.Compare(a.Status.Rank(), b.Status.Rank()),
			cmp.Compare(a.Priority.Rank(), b.Priority.Rank()),
			cmp.Compare(a.Order, b.Order),
		)
	})
	return out
}

type TaskStats struct {
	Total    int
	ByStatus map[models.TaskStatus]int
	// Progress is the completed share in percent.
	Progress float64
}

func TaskStatistics(tasks []models.Task) TaskStats {
	st := TaskStats{
		Total:    len(tasks),
		ByStatus: make(map[models.TaskStatus]int, len(models.TaskStatuses)),
	}
	for _, s := range models.TaskStatuses {
		st.ByStatus[s] = 0
	}
	for _, t := range tasks {
		st.ByStatus[t.Status]++
	}
	if st.Total > 0 {
		st.Progress = float64(st.ByStatus[models.TaskCompleted]) / float64(st.Total) * 100
	}
	return st
}
