package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pocketkeeper/internal/appstate"
	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/dmitrijs2005/pocketkeeper/internal/services"
	"github.com/spf13/cobra"
)

func (r *runner) lockCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "lock", Short: "App lock (PIN or fingerprint)"}

	setupCmd := &cobra.Command{Use: "setup", Short: "Choose a lock method"}
	setupCmd.AddCommand(
		&cobra.Command{Use: "pin", Short: "Lock with a 4-6 digit PIN", Args: cobra.NoArgs, RunE: r.setupPIN},
		&cobra.Command{Use: "fingerprint", Short: "Lock with the device fingerprint reader", Args: cobra.NoArgs, RunE: r.setupFingerprint},
	)

	cmd.AddCommand(setupCmd)
	cmd.AddCommand(&cobra.Command{Use: "verify", Short: "Check a PIN", Args: cobra.NoArgs, RunE: r.verifyPIN})
	cmd.AddCommand(&cobra.Command{Use: "status", Short: "Show the lock method", Args: cobra.NoArgs, RunE: r.lockStatus})
	cmd.AddCommand(&cobra.Command{Use: "clear", Short: "Remove the lock", Args: cobra.NoArgs, RunE: r.clearLock})
	return cmd
}

func (r *runner) setupPIN(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	pin, err := readSecret("Enter PIN", w)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pin)
	if err := appstate.ValidatePIN(pin); err != nil {
		return r.report(cmd, err)
	}

	confirm, err := readSecret("Confirm PIN", w)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)
	if !bytes.Equal(pin, confirm) {
		printNotice(cmd.ErrOrStderr(), services.Notice{
			Title: "PIN Mismatch", Message: "PINs do not match. Please try again.", Kind: services.NoticeError,
		})
		return errReported
	}

	if err := r.app.State.SetPIN(cmd.Context(), pin); err != nil {
		return r.report(cmd, err)
	}
	printNotice(w, services.Notice{Title: "PIN Set", Message: "The app is now locked with your PIN.", Kind: services.NoticeSuccess})
	return nil
}

func (r *runner) setupFingerprint(cmd *cobra.Command, args []string) error {
	if err := r.app.State.SetAuthMethod(cmd.Context(), appstate.AuthFingerprint); err != nil {
		return r.report(cmd, err)
	}
	printNotice(cmd.OutOrStdout(), services.Notice{
		Title: "Fingerprint Enabled", Message: "The app will unlock with your fingerprint.", Kind: services.NoticeSuccess,
	})
	return nil
}

func (r *runner) verifyPIN(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	m, err := r.app.State.AuthMethod(ctx)
	if err != nil {
		return r.report(cmd, err)
	}
	if m != appstate.AuthPIN {
		return r.report(cmd, common.ErrorPinNotSet)
	}

	pin, err := readSecret("Enter PIN", cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pin)

	if err := r.app.State.VerifyPIN(ctx, pin); err != nil {
		return r.report(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("unlocked"))
	return nil
}

func (r *runner) lockStatus(cmd *cobra.Command, args []string) error {
	m, err := r.app.State.AuthMethod(cmd.Context())
	if err != nil {
		return r.report(cmd, err)
	}
	if m == appstate.AuthNone {
		fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("no lock"))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), m)
	return nil
}

func (r *runner) clearLock(cmd *cobra.Command, args []string) error {
	if err := r.app.State.ClearPIN(cmd.Context()); err != nil {
		return r.report(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "lock removed")
	return nil
}

func (r *runner) onboardingCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "onboarding", Short: "First-run setup"}

	var lock string
	completeCmd := &cobra.Command{
		Use:   "complete",
		Short: "Finish first-run setup, optionally choosing a lock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.completeOnboarding(cmd, lock)
		},
	}
	completeCmd.Flags().StringVar(&lock, "lock", "", "pin|fingerprint|none (asked when omitted)")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether setup was completed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			done, err := r.app.State.OnboardingCompleted(cmd.Context())
			if err != nil {
				return r.report(cmd, err)
			}
			if done {
				fmt.Fprintln(cmd.OutOrStdout(), "completed")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "pending")
			}
			return nil
		},
	}

	cmd.AddCommand(completeCmd, statusCmd)
	return cmd
}

func (r *runner) completeOnboarding(cmd *cobra.Command, lock string) error {
	if lock == "" {
		answer, err := readLine(bufio.NewReader(cmd.InOrStdin()), "Lock method [pin/fingerprint/none]", cmd.OutOrStdout())
		if err != nil {
			return err
		}
		lock = answer
	}

	switch strings.ToLower(lock) {
	case string(appstate.AuthPIN):
		if err := r.setupPIN(cmd, nil); err != nil {
			return err
		}
	case string(appstate.AuthFingerprint):
		if err := r.setupFingerprint(cmd, nil); err != nil {
			return err
		}
	case "none", "":
	default:
		return r.report(cmd, fmt.Errorf("%w: unknown lock method %q", common.ErrorValidation, lock))
	}

	if err := r.app.State.CompleteOnboarding(cmd.Context()); err != nil {
		return r.report(cmd, err)
	}
	printNotice(cmd.OutOrStdout(), services.Notice{Title: "Welcome", Message: "Setup complete.", Kind: services.NoticeSuccess})
	return nil
}
