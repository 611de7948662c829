package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/dmitrijs2005/pocketkeeper/internal/services"
	"github.com/dmitrijs2005/pocketkeeper/internal/views"
	"github.com/spf13/cobra"
)

func (r *runner) tasksCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "tasks", Aliases: []string{"task"}, Short: "Manage tasks and subtasks"}

	var in services.TaskInput
	var status, priority string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Status = models.TaskStatus(status)
			in.Priority = models.Priority(priority)
			t, err := r.app.Tasks.Add(cmd.Context(), in)
			if err != nil {
				return r.report(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.ID)
			return nil
		},
	}
	af := addCmd.Flags()
	af.StringVarP(&in.Title, "title", "t", "", "task title")
	af.StringVar(&in.Description, "desc", "", "description")
	af.StringVar(&status, "status", "", "not_started|in_progress|completed|archived")
	af.StringVarP(&priority, "priority", "p", "", "high|medium|low")
	af.StringVar(&in.DueDate, "due", "", "due date (YYYY-MM-DD)")
	af.StringSliceVar(&in.Tags, "tag", nil, "tag (repeatable)")
	af.StringVar(&in.Category, "category", "", "category")
	af.StringVar(&in.Note, "note", "", "free text")

	var listStatus string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := r.app.Tasks.List(cmd.Context(), models.TaskStatus(listStatus))
			if err != nil {
				return r.report(cmd, err)
			}
			w := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(w, dimStyle.Render("no tasks"))
			}
			for _, t := range tasks {
				printTask(w, t)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&listStatus, "status", string(views.StatusAll), "all or one status")

	subCmd := &cobra.Command{Use: "subtask", Short: "Edit subtasks"}
	subCmd.AddCommand(
		&cobra.Command{Use: "add <task-id> <title>", Short: "Add a subtask", Args: cobra.MinimumNArgs(2), RunE: r.addSubtask},
		&cobra.Command{Use: "toggle <task-id> <subtask-id>", Short: "Toggle a subtask", Args: cobra.ExactArgs(2), RunE: r.toggleSubtask},
		&cobra.Command{Use: "rm <task-id> <subtask-id>", Short: "Remove a subtask", Args: cobra.ExactArgs(2), RunE: r.removeSubtask},
	)

	cmd.AddCommand(addCmd, listCmd, subCmd)
	cmd.AddCommand(&cobra.Command{Use: "status <id> <status>", Short: "Set task status", Args: cobra.ExactArgs(2), RunE: r.setTaskStatus})
	cmd.AddCommand(&cobra.Command{Use: "delete <id>", Short: "Delete a task", Args: cobra.ExactArgs(1), RunE: r.deleteTask})
	cmd.AddCommand(&cobra.Command{Use: "stats", Short: "Task counts and progress", Args: cobra.NoArgs, RunE: r.taskStats})
	return cmd
}

func printTask(w io.Writer, t models.Task) {
	fmt.Fprintf(w, "%s  %s  %s [%s]", dimStyle.Render(t.ID), titleStyle.Render(t.Title), statusLabel(t.Status), t.Priority)
	if t.DueDate != "" {
		fmt.Fprintf(w, " due %s", t.DueDate)
	}
	if len(t.Subtasks) > 0 {
		fmt.Fprintf(w, " %d/%d", t.CompletedSubtasks(), len(t.Subtasks))
	}
	fmt.Fprintln(w)
	for _, st := range t.Subtasks {
		box := "[ ]"
		if st.Completed {
			box = successStyle.Render("[x]")
		}
		fmt.Fprintf(w, "    %s %s %s\n", box, st.Title, dimStyle.Render(st.ID))
	}
}

func statusLabel(s models.TaskStatus) string {
	label := strings.ReplaceAll(string(s), "_", " ")
	switch s {
	case models.TaskCompleted:
		return successStyle.Render(label)
	case models.TaskInProgress:
		return warningStyle.Render(label)
	case models.TaskArchived:
		return dimStyle.Render(label)
	}
	return label
}

func (r *runner) setTaskStatus(cmd *cobra.Command, args []string) error {
	t, err := r.app.Tasks.SetStatus(cmd.Context(), args[0], models.TaskStatus(args[1]))
	if err != nil {
		return r.report(cmd, err)
	}
	printTask(cmd.OutOrStdout(), t)
	return nil
}

func (r *runner) deleteTask(cmd *cobra.Command, args []string) error {
	if err := r.app.Tasks.Delete(cmd.Context(), args[0]); err != nil {
		return r.report(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
	return nil
}

func (r *runner) taskStats(cmd *cobra.Command, args []string) error {
	st, err := r.app.Tasks.Stats(cmd.Context())
	if err != nil {
		return r.report(cmd, err)
	}
	w := cmd.OutOrStdout()
	printTitle(w, "Tasks")
	fmt.Fprintf(w, "total %d\n", st.Total)
	for _, s := range models.TaskStatuses {
		fmt.Fprintf(w, "  %-12s %d\n", s, st.ByStatus[s])
	}
	fmt.Fprintf(w, "%s %5.1f%% done\n", progressBar(st.Progress, 20), st.Progress)
	return nil
}

func (r *runner) addSubtask(cmd *cobra.Command, args []string) error {
	t, err := r.app.Tasks.AddSubtask(cmd.Context(), args[0], strings.Join(args[1:], " "))
	if err != nil {
		return r.report(cmd, err)
	}
	printTask(cmd.OutOrStdout(), t)
	return nil
}

func (r *runner) toggleSubtask(cmd *cobra.Command, args []string) error {
	t, err := r.app.Tasks.ToggleSubtask(cmd.Context(), args[0], args[1])
	if err != nil {
		return r.report(cmd, err)
	}
	printTask(cmd.OutOrStdout(), t)
	return nil
}

func (r *runner) removeSubtask(cmd *cobra.Command, args []string) error {
	t, err := r.app.Tasks.RemoveSubtask(cmd.Context(), args[0], args[1])
	if err != nil {
		return r.report(cmd, err)
	}
	printTask(cmd.OutOrStdout(), t)
	return nil
}
