package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stockguard-io/stockguard/pkg/model"
)

var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Manage alert thresholds",
}

var thresholdsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active thresholds",
	RunE:  runThresholdsShow,
}

var thresholdsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the alert thresholds",
	RunE:  runThresholdsSet,
}

func init() {
	rootCmd.AddCommand(thresholdsCmd)
	thresholdsCmd.AddCommand(thresholdsShowCmd)
	thresholdsCmd.AddCommand(thresholdsSetCmd)

	thresholdsSetCmd.Flags().Int("low-stock", model.DefaultLowStockLimit, "Low-stock limit")
	thresholdsSetCmd.Flags().Int("expiry-months", model.DefaultExpiryHorizonMonths, "Expiry warning horizon in months")
}

func runThresholdsShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, store, err := initService(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	thresholds, err := svc.Thresholds(cmd.Context())
	if err != nil {
		return fmt.Errorf("get thresholds: %w", err)
	}

	fmt.Printf("Active thresholds:\n")
	fmt.Printf("  Low-stock limit: %d\n", thresholds.LowStockLimit)
	fmt.Printf("  Expiry horizon:  %d months\n", thresholds.ExpiryHorizonMonths)
	if !thresholds.UpdatedAt.IsZero() {
		fmt.Printf("  Updated:         %s\n", thresholds.UpdatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

func runThresholdsSet(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lowStock, _ := cmd.Flags().GetInt("low-stock")
	expiryMonths, _ := cmd.Flags().GetInt("expiry-months")

	svc, store, err := initService(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	updated, err := svc.UpdateThresholds(cmd.Context(), model.ThresholdConfig{
		LowStockLimit:       lowStock,
		ExpiryHorizonMonths: expiryMonths,
	})
	if err != nil {
		return fmt.Errorf("set thresholds: %w", err)
	}

	fmt.Printf("Thresholds updated:\n")
	fmt.Printf("  Low-stock limit: %d\n", updated.LowStockLimit)
	fmt.Printf("  Expiry horizon:  %d months\n", updated.ExpiryHorizonMonths)

	return nil
}
