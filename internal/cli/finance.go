package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/dmitrijs2005/pocketkeeper/internal/services"
	"github.com/dmitrijs2005/pocketkeeper/internal/views"
	"github.com/spf13/cobra"
)

type txFlags struct {
	typ         string
	category    string
	amount      float64
	date        string
	description string
}

func (f *txFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.typ, "type", string(models.TransactionExpense), "income|expense")
	fs.StringVar(&f.category, "category", "", "category name")
	fs.Float64VarP(&f.amount, "amount", "a", 0, "amount")
	fs.StringVar(&f.date, "date", "", "date (YYYY-MM-DD, default now)")
	fs.StringVarP(&f.description, "desc", "m", "", "description")
}

func (f txFlags) input() services.TransactionInput {
	return services.TransactionInput{
		Type:        models.TransactionType(f.typ),
		Category:    f.category,
		Amount:      f.amount,
		Date:        f.date,
		Description: f.description,
	}
}

func (r *runner) txCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "tx", Aliases: []string{"transactions"}, Short: "Record income and expenses"}

	var add txFlags
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.addTx(cmd, add)
		},
	}
	add.bind(addCmd)

	var edit txFlags
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.editTx(cmd, args[0], edit)
		},
	}
	edit.bind(editCmd)

	var f views.TxFilter
	var typ, sort string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.Type = models.TransactionType(typ)
			f.Sort = views.TxSortOrder(sort)
			return r.listTx(cmd, f)
		},
	}
	listCmd.Flags().StringVarP(&f.Search, "search", "s", "", "search description and category")
	listCmd.Flags().StringVar(&typ, "type", string(views.TxTypeAll), "all|income|expense")
	listCmd.Flags().StringVar(&sort, "sort", string(views.TxNewest), "newest|oldest|highest|lowest")

	cmd.AddCommand(addCmd, editCmd, listCmd)
	cmd.AddCommand(&cobra.Command{Use: "day [YYYY-MM-DD]", Short: "Transactions of one day", Args: cobra.MaximumNArgs(1), RunE: r.txDay})
	cmd.AddCommand(&cobra.Command{Use: "delete <id>", Short: "Delete a transaction", Args: cobra.ExactArgs(1), RunE: r.deleteTx})
	cmd.AddCommand(&cobra.Command{Use: "overview", Short: "Income, expenses and balance", Args: cobra.NoArgs, RunE: r.overview})
	return cmd
}

func (r *runner) addTx(cmd *cobra.Command, f txFlags) error {
	tx, err := r.app.Transactions.Add(cmd.Context(), f.input())
	if err != nil {
		return r.report(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tx.ID)
	return nil
}

// editTx overlays the flags that were given on the stored transaction.
func (r *runner) editTx(cmd *cobra.Command, id string, f txFlags) error {
	ctx := cmd.Context()
	all, err := r.app.Transactions.All(ctx)
	if err != nil {
		return r.report(cmd, err)
	}
	var cur *models.Transaction
	for i := range all {
		if all[i].ID == id {
			cur = &all[i]
			break
		}
	}
	if cur == nil {
		return r.report(cmd, fmt.Errorf("transaction %s: %w", id, common.ErrorNotFound))
	}

	in := services.TransactionInput{
		Type:        cur.Type,
		Category:    cur.Category,
		Amount:      cur.Amount,
		Date:        cur.Date,
		Description: cur.Description,
	}
	fs := cmd.Flags()
	if fs.Changed("type") {
		in.Type = models.TransactionType(f.typ)
	}
	if fs.Changed("category") {
		in.Category = f.category
	}
	if fs.Changed("amount") {
		in.Amount = f.amount
	}
	if fs.Changed("date") {
		in.Date = f.date
	}
	if fs.Changed("desc") {
		in.Description = f.description
	}

	tx, err := r.app.Transactions.Edit(ctx, id, in)
	if err != nil {
		return r.report(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), txLine(tx))
	return nil
}

func txLine(tx models.Transaction) string {
	amount := incomeStyle.Render("+" + money(tx.Amount))
	if tx.Type == models.TransactionExpense {
		amount = expenseStyle.Render("-" + money(tx.Amount))
	}
	date := tx.Date
	if t, ok := views.ParseDate(tx.Date); ok {
		date = t.Local().Format(time.DateOnly)
	}
	return fmt.Sprintf("%s  %s  %s  %s  %s", dimStyle.Render(tx.ID), date, amount, accentStyle.Render(tx.Category), tx.Description)
}

func printTransactions(w io.Writer, txs []models.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no transactions"))
		return
	}
	for _, tx := range txs {
		fmt.Fprintln(w, txLine(tx))
	}
}

func (r *runner) listTx(cmd *cobra.Command, f views.TxFilter) error {
	txs, err := r.app.Transactions.List(cmd.Context(), f)
	if err != nil {
		return r.report(cmd, err)
	}
	printTransactions(cmd.OutOrStdout(), txs)
	return nil
}

func (r *runner) txDay(cmd *cobra.Command, args []string) error {
	day := time.Now()
	if len(args) == 1 {
		d, err := time.ParseInLocation(time.DateOnly, args[0], time.Local)
		if err != nil {
			return r.report(cmd, fmt.Errorf("invalid date %q: %w", args[0], err))
		}
		day = d
	}
	txs, err := r.app.Transactions.OnDay(cmd.Context(), day)
	if err != nil {
		return r.report(cmd, err)
	}
	printTransactions(cmd.OutOrStdout(), txs)
	return nil
}

func (r *runner) deleteTx(cmd *cobra.Command, args []string) error {
	if err := r.app.Transactions.Delete(cmd.Context(), args[0]); err != nil {
		return r.report(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
	return nil
}

func (r *runner) overview(cmd *cobra.Command, args []string) error {
	o := r.app.Overview()
	if err := o.Mount(cmd.Context()); err != nil {
		return r.report(cmd, err)
	}
	defer o.Unmount()

	w := cmd.OutOrStdout()
	printAllocation(w, o.Summary())
	recent := views.FilterTransactions(o.Transactions(), views.TxFilter{Sort: views.TxNewest})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	printTitle(w, "Recent")
	printTransactions(w, recent)
	return nil
}

func (r *runner) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "categories", Short: "Manage transaction categories"}

	var typ, icon string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := r.app.Categories.Add(cmd.Context(), args[0], models.TransactionType(typ), icon)
			if err != nil {
				return r.report(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&typ, "type", string(models.TransactionExpense), "income|expense")
	addCmd.Flags().StringVar(&icon, "icon", "", "icon name")

	var listType string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := r.app.Categories.List(cmd.Context(), models.TransactionType(listType))
			if err != nil {
				return r.report(cmd, err)
			}
			for _, c := range cats {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", dimStyle.Render(c.ID), c.Name, c.Type)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&listType, "type", "", "only income or expense")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.Categories.Delete(cmd.Context(), args[0]); err != nil {
				return r.report(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd, deleteCmd)
	return cmd
}
