package models

type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskArchived   TaskStatus = "archived"
)

// TaskStatuses lists statuses in list order.
var TaskStatuses = []TaskStatus{TaskNotStarted, TaskInProgress, TaskCompleted, TaskArchived}

func (s TaskStatus) Valid() bool { return s.Rank() < len(TaskStatuses) }

// Rank is the list position of s; unknown values sort last.
func (s TaskStatus) Rank() int {
	for i, v := range TaskStatuses {
		if v == s {
			return i
		}
	}
	return len(TaskStatuses)
}

// SubTask is owned by its Task and has no lifecycle of its own.
type SubTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Task struct {
	BaseRecord
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     string     `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Category    string     `json:"category,omitempty"`
	Note        string     `json:"note,omitempty"`
	Subtasks    []SubTask  `json:"subtasks,omitempty"`
	ParentID    string     `json:"parentId,omitempty"`
	Order       int        `json:"order"`
}

func (t Task) WithMeta(m BaseRecord) Task { t.BaseRecord = m; return t }

// CompletedSubtasks counts finished subtasks.
func (t Task) CompletedSubtasks() int {
	n := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			n++
		}
	}
	return n
}
