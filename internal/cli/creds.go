package cli

import (
	"fmt"

	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/spf13/cobra"
)

func (r *runner) credsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "creds", Aliases: []string{"accounts"}, Short: "Manage saved account logins"}

	var c models.AccountCredential
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Save an account login; the password is prompted for when not given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.addCredential(cmd, c)
		},
	}
	af := addCmd.Flags()
	af.StringVarP(&c.Title, "title", "t", "", "display title")
	af.StringVar(&c.Service, "service", "", "service name")
	af.StringVar(&c.Email, "email", "", "login email")
	af.StringVar(&c.Password, "password", "", "password")

	var reveal bool
	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := r.app.Credentials.Get(cmd.Context(), args[0])
			if err != nil {
				return r.report(cmd, err)
			}
			pw := maskSecret(a.Password)
			if reveal {
				pw = a.Password
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\nservice  %s\nemail    %s\npassword %s\n", titleStyle.Render(a.Title), a.Service, a.Email, pw)
			return nil
		},
	}
	showCmd.Flags().BoolVar(&reveal, "reveal", false, "print the password")

	cmd.AddCommand(addCmd, showCmd)
	cmd.AddCommand(&cobra.Command{Use: "list", Short: "List accounts", Args: cobra.NoArgs, RunE: r.listCredentials})
	cmd.AddCommand(&cobra.Command{Use: "delete <id>", Short: "Delete an account", Args: cobra.ExactArgs(1), RunE: r.deleteCredential})
	return cmd
}

func (r *runner) addCredential(cmd *cobra.Command, c models.AccountCredential) error {
	w := cmd.OutOrStdout()
	if c.Password == "" {
		pw, err := readSecret("Password", w)
		if err != nil {
			return err
		}
		c.Password = string(pw)
		common.WipeByteArray(pw)
	}

	saved, err := r.app.Credentials.Add(cmd.Context(), c)
	if err != nil {
		return r.report(cmd, err)
	}
	fmt.Fprintln(w, saved.ID)
	return nil
}

func (r *runner) listCredentials(cmd *cobra.Command, args []string) error {
	list, err := r.app.Credentials.List(cmd.Context())
	if err != nil {
		return r.report(cmd, err)
	}
	w := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no accounts"))
	}
	for _, a := range list {
		fmt.Fprintf(w, "%s  %s  %s  %s  %s\n", dimStyle.Render(a.ID), titleStyle.Render(a.Title), a.Service, a.Email, maskSecret(a.Password))
	}
	return nil
}

func (r *runner) deleteCredential(cmd *cobra.Command, args []string) error {
	if err := r.app.Credentials.Delete(cmd.Context(), args[0]); err != nil {
		return r.report(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
	return nil
}
