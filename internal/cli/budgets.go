package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/dmitrijs2005/pocketkeeper/internal/services"
	"github.com/dmitrijs2005/pocketkeeper/internal/views"
	"github.com/spf13/cobra"
)

func (r *runner) budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "budgets", Aliases: []string{"budget"}, Short: "Manage savings goals"}

	var in services.BudgetInput
	var priority string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a savings goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Priority = models.Priority(priority)
			return r.addBudget(cmd, in)
		},
	}
	af := addCmd.Flags()
	af.StringVarP(&in.Title, "title", "t", "", "goal title")
	af.StringVar(&in.Category, "category", "", "goal category")
	af.Float64Var(&in.TargetAmount, "target", 0, "target amount")
	af.Float64Var(&in.CurrentAmount, "current", 0, "amount already saved")
	af.StringVar(&in.TargetDate, "date", "", "target date (YYYY-MM-DD)")
	af.StringVarP(&priority, "priority", "p", "", "high|medium|low")
	af.StringVar(&in.Note, "note", "", "free text")

	var history bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List active goals, or completed ones with --history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.listBudgets(cmd, history)
		},
	}
	listCmd.Flags().BoolVar(&history, "history", false, "show completed goals")

	cmd.AddCommand(addCmd, listCmd)
	cmd.AddCommand(&cobra.Command{Use: "goals", Short: "Highest priority active goals", Args: cobra.NoArgs, RunE: r.priorityGoals})
	cmd.AddCommand(&cobra.Command{
		Use:       "progress <id> add|subtract <amount>",
		Short:     "Change saved amount",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{string(services.ProgressAdd), string(services.ProgressSubtract)},
		RunE:      r.budgetProgress,
	})
	cmd.AddCommand(&cobra.Command{Use: "done <id>", Short: "Complete a fully funded goal", Args: cobra.ExactArgs(1), RunE: r.budgetDone})
	cmd.AddCommand(&cobra.Command{Use: "archive <id>", Short: "Archive a goal", Args: cobra.ExactArgs(1), RunE: r.archiveBudget})
	cmd.AddCommand(&cobra.Command{Use: "delete <id>", Short: "Delete a goal", Args: cobra.ExactArgs(1), RunE: r.deleteBudget})
	cmd.AddCommand(&cobra.Command{Use: "allocation", Short: "Balance promised to active goals", Args: cobra.NoArgs, RunE: r.allocation})
	return cmd
}

func (r *runner) addBudget(cmd *cobra.Command, in services.BudgetInput) error {
	b, notice, err := r.app.Budgets.Create(cmd.Context(), in)
	if err != nil {
		return r.report(cmd, err)
	}
	printNotice(cmd.OutOrStdout(), notice)
	fmt.Fprintln(cmd.OutOrStdout(), b.ID)
	return nil
}

func (r *runner) listBudgets(cmd *cobra.Command, history bool) error {
	list := r.app.Budgets.Active
	if history {
		list = r.app.Budgets.History
	}
	budgets, err := list(cmd.Context())
	if err != nil {
		return r.report(cmd, err)
	}
	w := cmd.OutOrStdout()
	if len(budgets) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no goals"))
		return nil
	}
	now := time.Now()
	for _, b := range budgets {
		printBudget(w, b, now)
	}
	return nil
}

func printBudget(w io.Writer, b models.Budget, now time.Time) {
	fmt.Fprintf(w, "%s  %s  %s [%s]\n", dimStyle.Render(b.ID), titleStyle.Render(b.Title), b.Category, b.Priority)
	fmt.Fprintf(w, "  %s %5.1f%%  %s / %s\n", progressBar(b.Progress(), 20), b.Progress(), money(b.CurrentAmount), money(b.TargetAmount))

	switch b.Status {
	case models.BudgetCompleted:
		fmt.Fprintf(w, "  %s %s\n", successStyle.Render("completed"), b.CompletedAt)
	case models.BudgetArchived:
		fmt.Fprintf(w, "  %s\n", warningStyle.Render("archived"))
	default:
		if days, ok := views.DaysRemaining(b.TargetDate, now); ok {
			style := dimStyle
			if days < 0 {
				style = errorStyle
			}
			fmt.Fprintf(w, "  %s\n", style.Render(fmt.Sprintf("%d days left", days)))
		}
	}
}

func (r *runner) priorityGoals(cmd *cobra.Command, args []string) error {
	goals, err := r.app.Budgets.PriorityGoals(cmd.Context())
	if err != nil {
		return r.report(cmd, err)
	}
	now := time.Now()
	for _, b := range goals {
		printBudget(cmd.OutOrStdout(), b, now)
	}
	return nil
}

func (r *runner) budgetProgress(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// unparsable amounts fall through as 0 and are rejected by the service
	amount, _ := strconv.ParseFloat(args[2], 64)

	snapshot, err := r.app.Budgets.Get(ctx, args[0])
	if err != nil {
		return r.report(cmd, err)
	}
	b, notice, err := r.app.Budgets.UpdateProgress(ctx, snapshot, services.ProgressOp(args[1]), amount)
	if err != nil {
		return r.report(cmd, err)
	}
	printNotice(cmd.OutOrStdout(), notice)
	printBudget(cmd.OutOrStdout(), b, time.Now())
	return nil
}

func (r *runner) budgetDone(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	snapshot, err := r.app.Budgets.Get(ctx, args[0])
	if err != nil {
		return r.report(cmd, err)
	}
	_, notice, err := r.app.Budgets.MarkDone(ctx, snapshot)
	if err != nil {
		return r.report(cmd, err)
	}
	printNotice(cmd.OutOrStdout(), notice)
	return nil
}

func (r *runner) archiveBudget(cmd *cobra.Command, args []string) error {
	b, err := r.app.Budgets.Update(cmd.Context(), args[0], func(b *models.Budget) {
		b.Status = models.BudgetArchived
	})
	if err != nil {
		return r.report(cmd, err)
	}
	printBudget(cmd.OutOrStdout(), b, time.Now())
	return nil
}

func (r *runner) deleteBudget(cmd *cobra.Command, args []string) error {
	if err := r.app.Budgets.Delete(cmd.Context(), args[0]); err != nil {
		return r.report(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
	return nil
}

func (r *runner) allocation(cmd *cobra.Command, args []string) error {
	a, err := r.app.Budgets.Allocation(cmd.Context())
	if err != nil {
		return r.report(cmd, err)
	}
	printAllocation(cmd.OutOrStdout(), a)
	return nil
}

func printAllocation(w io.Writer, a views.Allocation) {
	printTitle(w, "Balance")
	fmt.Fprintf(w, "income    %s\n", incomeStyle.Render(money(a.TotalIncome)))
	fmt.Fprintf(w, "expenses  %s\n", expenseStyle.Render(money(a.TotalExpenses)))
	fmt.Fprintf(w, "balance   %s\n", money(a.Balance))
	if !a.HasBudgets {
		return
	}
	fmt.Fprintf(w, "budgeted  %s\n", money(a.TotalBudgeted))
	fmt.Fprintf(w, "available %s\n", money(a.AvailableBalance))
	fmt.Fprintf(w, "%s %5.1f%% allocated\n", progressBar(a.AllocationPercentage, 20), a.AllocationPercentage)
}
