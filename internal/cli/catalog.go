package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrops-br/storefront/internal/domain"
	"github.com/mrops-br/storefront/internal/infrastructure/catalogio"
	"github.com/mrops-br/storefront/internal/infrastructure/config"
	"github.com/mrops-br/storefront/internal/infrastructure/telemetry"
)

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Export or import the product catalog",
		Long:  "Export or import the product catalog." + boltLockNote,
	}

	cmd.AddCommand(newCatalogExportCommand(), newCatalogImportCommand())
	return cmd
}

func newCatalogExportCommand() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as json, yaml or csv",
		Long: `Write the catalog as json, yaml or csv.

Without --out the catalog goes to stdout. Without --format the format is
taken from the --out extension, falling back to json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCatalogExport(cmd, format, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json, yaml or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newCatalogImportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the catalog with the products in file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogImport(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json, yaml or csv (default from the file extension)")
	return cmd
}

func runCatalogExport(cmd *cobra.Command, format, out string) (err error) {
	if format == "" {
		format = catalogio.FormatJSON
		if out != "" {
			if format, err = catalogio.FormatFromPath(out); err != nil {
				return err
			}
		}
	}

	a, err := openApp(config.LoadConfig(), telemetry.NewNoOpTelemetry(io.Discard))
	if err != nil {
		return err
	}
	defer a.Close()

	products, err := a.catalog.ListProducts(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if out != "" {
		f, ferr := os.Create(out)
		if ferr != nil {
			return fmt.Errorf("failed to create %s: %w", out, ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if err = catalogio.Encode(w, format, products); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if out != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %d products to %s\n", len(products), out)
	}
	return nil
}

func runCatalogImport(cmd *cobra.Command, path, format string) error {
	if format == "" {
		var err error
		if format, err = catalogio.FormatFromPath(path); err != nil {
			return err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	products, err := catalogio.Decode(f, format)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == "" {
			return fmt.Errorf("product %d: %w", i+1, domain.ErrInvalidProductID)
		}
		if err := products[i].Validate(); err != nil {
			return fmt.Errorf("product %d (id %q): %w", i+1, products[i].ID, err)
		}
	}

	a, err := openApp(config.LoadConfig(), telemetry.NewNoOpTelemetry(io.Discard))
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.catalog.ReplaceCatalog(cmd.Context(), products); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d products\n", len(products))
	return nil
}
