package models

type BudgetStatus string

const (
	BudgetActive    BudgetStatus = "active"
	BudgetCompleted BudgetStatus = "completed"
	BudgetArchived  BudgetStatus = "archived"
)

func (s BudgetStatus) Valid() bool {
	return s == BudgetActive || s == BudgetCompleted || s == BudgetArchived
}

// Budget is a savings goal. Status moves active → completed only through
// the mark-as-done flow; archived is set by direct assignment.
type Budget struct {
	BaseRecord
	Title         string       `json:"title"`
	Category      string       `json:"category"`
	TargetAmount  float64      `json:"targetAmount"`
	CurrentAmount float64      `json:"currentAmount"`
	TargetDate    string       `json:"targetDate"`
	Priority      Priority     `json:"priority,omitempty"`
	Note          string       `json:"note,omitempty"`
	Status        BudgetStatus `json:"status"`
	CompletedAt   string       `json:"completedAt,omitempty"`
}

func (b Budget) WithMeta(m BaseRecord) Budget { b.BaseRecord = m; return b }

// Remaining is target minus current, never negative.
func (b Budget) Remaining() float64 {
	if r := b.TargetAmount - b.CurrentAmount; r > 0 {
		return r
	}
	return 0
}

// Progress is current/target in percent; 0 when the target is not positive.
func (b Budget) Progress() float64 {
	if b.TargetAmount <= 0 {
		return 0
	}
	return b.CurrentAmount / b.TargetAmount * 100
}
