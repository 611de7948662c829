package views

import (
	"testing"

	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/stretchr/testify/assert"
)

func subtasks(done, total int) []models.SubTask {
	out := make([]models.SubTask, total)
	for i := range out {
		out[i] = models.SubTask{ID: string(rune('a' + i)), Completed: i < done}
	}
	return out
}

func TestDeriveTaskStatus(t *testing.T) {
	tests := []struct {
		name    string
		current models.TaskStatus
		subs    []models.SubTask
		want    models.TaskStatus
	}{
		{"none done", models.TaskInProgress, subtasks(0, 3), models.TaskNotStarted},
		{"one done", models.TaskNotStarted, subtasks(1, 3), models.TaskInProgress},
		{"two done", models.TaskCompleted, subtasks(2, 3), models.TaskInProgress},
		{"all done", models.TaskInProgress, subtasks(3, 3), models.TaskCompleted},
		{"archived sticky", models.TaskArchived, subtasks(3, 3), models.TaskArchived},
		{"no subtasks keeps status", models.TaskInProgress, nil, models.TaskInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTaskStatus(tt.current, tt.subs))
		})
	}
}

func task(id string, status models.TaskStatus, p models.Priority, order int) models.Task {
	return models.Task{BaseRecord: models.BaseRecord{ID: id}, Status: status, Priority: p, Order: order}
}

func taskIDs(ts []models.Task) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func TestSortTasks(t *testing.T) {
	ts := []models.Task{
		task("done", models.TaskCompleted, models.PriorityHigh, 0),
		task("low", models.TaskNotStarted, models.PriorityLow, 1),
		task("high2", models.TaskNotStarted, models.PriorityHigh, 5),
		task("high1", models.TaskNotStarted, models.PriorityHigh, 2),
		task("wip", models.TaskInProgress, models.PriorityLow, 3),
	}

	assert.Equal(t, []string{"high1", "high2", "low", "wip", "done"}, taskIDs(SortTasks(ts, StatusAll)))
	assert.Equal(t, []string{"high1", "high2", "low"}, taskIDs(SortTasks(ts, models.TaskNotStarted)))
	assert.Empty(t, SortTasks(ts, models.TaskArchived))
}

func TestTaskStatistics(t *testing.T) {
	ts := []models.Task{
		task("1", models.TaskCompleted, models.PriorityHigh, 0),
		task("2", models.TaskCompleted, models.PriorityHigh, 1),
		task("3", models.TaskInProgress, models.PriorityHigh, 2),
		task("4", models.TaskArchived, models.PriorityHigh, 3),
	}

	st := TaskStatistics(ts)
	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 2, st.ByStatus[models.TaskCompleted])
	assert.Equal(t, 0, st.ByStatus[models.TaskNotStarted])
	assert.InDelta(t, 50.0, st.Progress, 1e-9)

	assert.Zero(t, TaskStatistics(nil).Progress)
}
