package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pocketkeeper/internal/focus"
	"github.com/spf13/cobra"
)

func (r *runner) timerCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "timer", Aliases: []string{"focus"}, Short: "Focus and break countdown"}

	step := func(use, short string, fn func(*focus.Timer, *cobra.Command) (focus.State, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := fn(r.app.Timer, cmd)
				if err != nil {
					return r.report(cmd, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), timerLine(st))
				return nil
			},
		}
	}

	cmd.AddCommand(
		step("status", "Show the timer", func(t *focus.Timer, c *cobra.Command) (focus.State, error) { return t.Status(c.Context()) }),
		step("start", "Start or resume", func(t *focus.Timer, c *cobra.Command) (focus.State, error) { return t.Start(c.Context()) }),
		step("pause", "Pause", func(t *focus.Timer, c *cobra.Command) (focus.State, error) { return t.Pause(c.Context()) }),
		step("reset", "Refill the current session", func(t *focus.Timer, c *cobra.Command) (focus.State, error) { return t.Reset(c.Context()) }),
	)
	cmd.AddCommand(&cobra.Command{
		Use:       "switch focus|break",
		Short:     "Select a session type",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"focus", "break"},
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := r.app.Timer.Switch(cmd.Context(), focus.Mode(strings.ToUpper(args[0])))
			if err != nil {
				return r.report(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), timerLine(st))
			return nil
		},
	})
	return cmd
}

func timerLine(st focus.State) string {
	clock := fmt.Sprintf("%02d:%02d", st.TimeLeft/60, st.TimeLeft%60)
	state := dimStyle.Render("paused")
	if st.IsRunning {
		state = successStyle.Render("running")
	}
	mode := titleStyle.Render(string(st.Mode))
	if st.Mode == focus.ModeBreak {
		mode = accentStyle.Render(string(st.Mode))
	}
	return fmt.Sprintf("%s %s %s", mode, clock, state)
}
