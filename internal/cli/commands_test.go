package cli

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufioReader(s string) *bufio.Reader { return bufio.NewReader(strings.NewReader(s)) }

func id(out string) string { return strings.TrimSpace(out) }

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return lines[len(lines)-1]
}

func readTasks(t *testing.T, dir string) []models.Task {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, models.CollectionTasks+".json"))
	require.NoError(t, err)
	var tasks []models.Task
	require.NoError(t, json.Unmarshal(data, &tasks))
	return tasks
}

func TestNotes_Flow(t *testing.T) {
	dir := t.TempDir()

	first := id(must(t, dir, "notes", "add", "--title", "Groceries", "--content", "milk, eggs", "--tag", "home"))
	second := id(must(t, dir, "notes", "add", "--title", "Standup", "--category", "work", "--priority", "high"))
	require.NotEqual(t, first, second)

	must(t, dir, "notes", "pin", second)
	out := must(t, dir, "notes", "list")
	assert.Less(t, strings.Index(out, "Standup"), strings.Index(out, "Groceries"), "pinned note comes first")

	must(t, dir, "notes", "tag", "add", first, "errands")
	assert.Equal(t, "errands\nhome\n", must(t, dir, "notes", "tags"))

	out = must(t, dir, "notes", "list", "--search", "EGGS")
	assert.Contains(t, out, "Groceries")
	assert.NotContains(t, out, "Standup")

	must(t, dir, "notes", "edit", first, "--title", "Weekly groceries")
	assert.Contains(t, must(t, dir, "notes", "show", first), "Weekly groceries")

	must(t, dir, "notes", "archive", first)
	assert.NotContains(t, must(t, dir, "notes", "list"), "Weekly groceries")
	assert.Contains(t, must(t, dir, "notes", "list", "--archived"), "Weekly groceries")

	stats := must(t, dir, "notes", "stats")
	assert.Contains(t, stats, "total 2  pinned 1  archived 1")

	must(t, dir, "notes", "delete", first)
	_, err := run(t, "notes", "show", first, "--data-dir", dir)
	require.Error(t, err)
}

func TestNotes_EmptyRejected(t *testing.T) {
	res, err := run(t, "notes", "add", "--data-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, res.err, "Empty Note:")
}

func TestBudgets_ProgressAndCompletion(t *testing.T) {
	dir := t.TempDir()

	out := must(t, dir, "budgets", "add", "--title", "Laptop", "--category", "Tech", "--target", "500", "--date", "2099-01-01")
	assert.Contains(t, out, "Budget Added:")
	budgetID := lastLine(out)

	res, err := run(t, "budgets", "progress", budgetID, "add", "600", "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, res.err, "You can only add up to ₱500.00 to reach your target.")

	res, err = run(t, "budgets", "progress", budgetID, "add", "abc", "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, res.err, "Invalid Amount:")

	res, err = run(t, "budgets", "done", budgetID, "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, res.err, "Cannot Complete Budget:")

	out = must(t, dir, "budgets", "progress", budgetID, "add", "500")
	assert.Contains(t, out, "Successfully added ₱500.00 to your budget progress.")

	out = must(t, dir, "budgets", "done", budgetID)
	assert.Contains(t, out, "Budget Completed:")

	res, err = run(t, "budgets", "done", budgetID, "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, res.err, "Budget Not Active:")
	assert.Equal(t, 1, strings.Count(must(t, dir, "tx", "list"), "Budget goal completed: Laptop"))

	assert.Contains(t, must(t, dir, "budgets", "list", "--history"), "Laptop")
	assert.Contains(t, must(t, dir, "budgets", "list"), "no goals")
	assert.Contains(t, must(t, dir, "tx", "list", "--type", "expense"), "Budget goal completed: Laptop")
}

func TestBudgets_AllocationAndGoals(t *testing.T) {
	dir := t.TempDir()
	must(t, dir, "tx", "add", "--type", "income", "--category", "Salary", "--amount", "1000", "--desc", "June pay")
	must(t, dir, "budgets", "add", "--title", "Trip", "--category", "Travel", "--target", "400", "--current", "100", "--priority", "high")
	must(t, dir, "budgets", "add", "--title", "Bike", "--category", "Sport", "--target", "300", "--priority", "low")

	out := must(t, dir, "budgets", "allocation")
	assert.Contains(t, out, "budgeted  ₱600.00")
	assert.Contains(t, out, "available ₱400.00")
	assert.Contains(t, out, "60.0% allocated")

	goals := must(t, dir, "budgets", "goals")
	assert.Less(t, strings.Index(goals, "Trip"), strings.Index(goals, "Bike"))
}

func TestTransactions_FlowAndCategories(t *testing.T) {
	dir := t.TempDir()

	res, err := run(t, "tx", "add", "--category", "Food", "--amount", "0", "--desc", "x", "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, res.err, "Please enter a valid amount")

	txID := id(must(t, dir, "tx", "add", "--category", "Food", "--amount", "12.5", "--date", "2026-06-01", "--desc", "Lunch"))
	must(t, dir, "tx", "add", "--type", "income", "--category", "Salary", "--amount", "900", "--date", "2026-06-02", "--desc", "Pay")

	day := must(t, dir, "tx", "day", "2026-06-01")
	assert.Contains(t, day, "Lunch")
	assert.NotContains(t, day, "Pay")

	out := must(t, dir, "tx", "list", "--sort", "highest")
	assert.Less(t, strings.Index(out, "Pay"), strings.Index(out, "Lunch"))

	must(t, dir, "tx", "edit", txID, "--amount", "20")
	assert.Contains(t, must(t, dir, "tx", "list", "--search", "lunch"), "-₱20.00")

	overview := must(t, dir, "tx", "overview")
	assert.Contains(t, overview, "balance   ₱880.00")

	catID := id(must(t, dir, "categories", "add", "Food", "--type", "expense"))
	must(t, dir, "categories", "add", "Salary", "--type", "income")
	cats := must(t, dir, "categories", "list", "--type", "income")
	assert.Contains(t, cats, "Salary")
	assert.NotContains(t, cats, "Food")

	must(t, dir, "categories", "delete", catID)
	assert.Contains(t, must(t, dir, "tx", "list"), "Food", "deleting a category leaves transactions alone")

	must(t, dir, "tx", "delete", txID)
	assert.NotContains(t, must(t, dir, "tx", "list"), "Lunch")
}

func TestTasks_SubtasksDriveStatus(t *testing.T) {
	dir := t.TempDir()
	taskID := id(must(t, dir, "tasks", "add", "--title", "Write report"))

	out := must(t, dir, "tasks", "subtask", "add", taskID, "Draft", "outline")
	assert.Contains(t, out, "Draft outline")
	assert.Contains(t, out, "not started")

	tasks := readTasks(t, dir)
	require.Len(t, tasks, 1)
	require.Len(t, tasks[0].Subtasks, 1)
	subID := tasks[0].Subtasks[0].ID

	out = must(t, dir, "tasks", "subtask", "toggle", taskID, subID)
	assert.Contains(t, out, "completed")

	out = must(t, dir, "tasks", "list", "--status", "completed")
	assert.Contains(t, out, "Write report")

	must(t, dir, "tasks", "status", taskID, "archived")
	assert.Contains(t, must(t, dir, "tasks", "stats"), "archived     1")

	res, err := run(t, "tasks", "status", taskID, "done", "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, res.err, `Unknown status "done"`)

	must(t, dir, "tasks", "delete", taskID)
	assert.Contains(t, must(t, dir, "tasks", "list"), "no tasks")
}

func TestCreds_PasswordPromptAndMasking(t *testing.T) {
	dir := t.TempDir()
	stubPasswords(t, "hunter22")

	accID := id(lastLine(must(t, dir, "creds", "add", "--title", "Mail", "--service", "Gmail", "--email", "me@example.com")))

	out := must(t, dir, "creds", "list")
	assert.Contains(t, out, "Gmail")
	assert.NotContains(t, out, "hunter22")

	assert.Contains(t, must(t, dir, "creds", "show", accID, "--reveal"), "hunter22")

	res, err := run(t, "creds", "add", "--service", "x", "--password", "p", "--data-dir", dir)
	require.Error(t, err)
	assert.NotEmpty(t, res.err)

	must(t, dir, "creds", "delete", accID)
	assert.Contains(t, must(t, dir, "creds", "list"), "no accounts")
}

func TestLock_PINLifecycle(t *testing.T) {
	dir := t.TempDir()
	assert.Contains(t, must(t, dir, "lock", "status"), "no lock")

	stubPasswords(t, "1234", "4321")
	res, err := run(t, "lock", "setup", "pin", "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, res.err, "PINs do not match")

	stubPasswords(t, "12a4")
	res, err = run(t, "lock", "setup", "pin", "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, res.err, "Invalid PIN:")

	stubPasswords(t, "123456", "123456")
	assert.Contains(t, must(t, dir, "lock", "setup", "pin"), "PIN Set:")
	assert.Equal(t, "pin\n", must(t, dir, "lock", "status"))

	stubPasswords(t, "000000")
	res, err = run(t, "lock", "verify", "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, res.err, "Incorrect PIN:")

	stubPasswords(t, "123456")
	assert.Contains(t, must(t, dir, "lock", "verify"), "unlocked")

	must(t, dir, "lock", "clear")
	assert.Contains(t, must(t, dir, "lock", "status"), "no lock")
}

func TestOnboarding_AsksForLockMethod(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "pending\n", must(t, dir, "onboarding", "status"))

	res, err := runIn(t, "fingerprint\n", "onboarding", "complete", "--data-dir", dir)
	require.NoError(t, err, res.err)
	assert.Contains(t, res.out, "Fingerprint Enabled:")

	assert.Equal(t, "completed\n", must(t, dir, "onboarding", "status"))
	assert.Equal(t, "fingerprint\n", must(t, dir, "lock", "status"))

	res, err = run(t, "onboarding", "complete", "--lock", "face", "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, res.err, "face")
}

func TestTimer_Commands(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "FOCUS 25:00 paused\n", must(t, dir, "timer", "status"))
	assert.Contains(t, must(t, dir, "timer", "start"), "running")
	assert.Contains(t, must(t, dir, "timer", "pause"), "paused")
	assert.Equal(t, "BREAK 05:00 paused\n", must(t, dir, "timer", "switch", "break"))
	assert.Equal(t, "BREAK 05:00 paused\n", must(t, dir, "timer", "reset"))

	res, err := run(t, "timer", "switch", "nap", "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, res.err, "NAP")
}

func TestWatch_RequiresFileBackend(t *testing.T) {
	dir := t.TempDir()
	res, err := run(t, "watch", "--data-dir", dir, "--backend", "sqlite")
	require.Error(t, err)
	assert.Contains(t, res.err, "watch requires")
}
