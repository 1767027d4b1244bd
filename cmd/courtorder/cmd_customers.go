package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/court-orders/constants"
	"github.com/joseph-ayodele/court-orders/internal/customer"
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Inspect or load the customer register",
}

var customersCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured customer store is reachable",
	Args:  cobra.NoArgs,
	RunE:  runCustomersCheck,
}

var customersImportFlags struct {
	sheet string
}

var customersImportCmd = &cobra.Command{
	Use:   "import <file.csv|file.xlsx>",
	Short: "Load national_id/customer_id rows into the configured SQL store",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomersImport,
}

func init() {
	customersImportCmd.Flags().StringVar(&customersImportFlags.sheet, "sheet", "", "xlsx sheet to read (default first sheet)")
	customersCmd.AddCommand(customersCheckCmd)
	customersCmd.AddCommand(customersImportCmd)
}

func runCustomersCheck(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := customer.Open(cmd.Context(), cfg.CustomerStore, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Ping(cmd.Context()); err != nil {
		return fmt.Errorf("customer store %s: %w", cfg.CustomerStore.Driver, err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "customer store %s: ok\n", cfg.CustomerStore.Driver)
	return err
}

func runCustomersImport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var records []customer.Record
	switch constants.NormalizeExt(filepath.Ext(args[0])) {
	case "xlsx":
		records, err = customer.NewXLSXStore(args[0], customersImportFlags.sheet, logger).Records()
	default:
		records, err = customer.NewCSVStore(args[0], logger).Records()
	}
	if err != nil {
		return err
	}

	store, err := customer.Open(cmd.Context(), cfg.CustomerStore, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	sqlStore, ok := store.(*customer.SQLStore)
	if !ok {
		return fmt.Errorf("import needs a sqlite or postgres store, configured driver is %q", cfg.CustomerStore.Driver)
	}
	if err := sqlStore.EnsureSchema(cmd.Context()); err != nil {
		return err
	}
	n, err := sqlStore.Import(cmd.Context(), records)
	if err != nil {
		return fmt.Errorf("imported %d of %d rows: %w", n, len(records), err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d customers\n", n)
	return err
}
