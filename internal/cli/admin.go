package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrops-br/storefront/internal/infrastructure/config"
	"github.com/mrops-br/storefront/internal/infrastructure/telemetry"
)

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the admin credential",
		Long:  "Manage the admin credential." + boltLockNote,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "rotate-password <value>",
			Short: "Replace the admin password",
			Args:  cobra.ExactArgs(1),
			RunE:  runRotatePassword,
		},
		&cobra.Command{
			Use:   "bootstrap",
			Short: "Provision the default admin password if none is set",
			Args:  cobra.NoArgs,
			RunE:  runBootstrap,
		},
	)

	return cmd
}

func runRotatePassword(cmd *cobra.Command, args []string) error {
	a, err := openApp(config.LoadConfig(), telemetry.NewNoOpTelemetry(io.Discard))
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.gate.RotateCredential(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "admin password updated")
	return nil
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	a, err := openApp(config.LoadConfig(), telemetry.NewNoOpTelemetry(io.Discard))
	if err != nil {
		return err
	}
	defer a.Close()

	credential, bootstrapped, err := a.gate.EnsureCredential(cmd.Context())
	if err != nil {
		return err
	}

	if bootstrapped {
		fmt.Fprintf(cmd.OutOrStdout(), "ADMIN PASSWORD SET\nYour admin password is: %s\n", credential)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "admin password already set")
	}
	return nil
}
