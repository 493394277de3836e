// Package cli wires the storefront command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// boltLockNote is appended to the help of commands that open the store
const boltLockNote = `

With the bolt driver the database file is locked while the server runs.
Stop ` + "`serve`" + ` first, otherwise the command fails after a second.`

// NewRootCommand builds the storefront command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Single-operator storefront with an admin panel",
		Long: `storefront serves a small shop and its admin panel.

Configuration is read from the environment, and from a .env file in the
working directory when present. See STORAGE_DRIVER, STORAGE_PATH and
ADMIN_DEFAULT_PASSWORD for the catalog store and the admin gate.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCommand(),
		newCatalogCommand(),
		newAdminCommand(),
	)

	return root
}

// Execute runs the command tree with ctx
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
