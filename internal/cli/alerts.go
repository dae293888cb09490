package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stockguard-io/stockguard/pkg/model"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show products needing attention",
	RunE:  runAlerts,
}

func init() {
	rootCmd.AddCommand(alertsCmd)
}

func runAlerts(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, store, err := initService(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	set, err := svc.Alerts(cmd.Context())
	if err != nil {
		return fmt.Errorf("build alerts: %w", err)
	}

	if len(set.Alerts) == 0 {
		fmt.Println("No alerts. All products are above their thresholds.")
		return nil
	}

	fmt.Printf("Alerts: %d out of stock, %d low stock, %d expiring soon\n\n",
		set.Counts[model.AlertStockZero],
		set.Counts[model.AlertStockLow],
		set.Counts[model.AlertExpirySoon],
	)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "CODE\tDESCRIPTION\tCATEGORY\tSTOCK\tEXPIRY\tDAYS LEFT\n")
	for _, a := range set.Alerts {
		expiry := "-"
		if a.ExpiryDate != nil {
			expiry = a.ExpiryDate.String()
		}
		days := "-"
		if a.DaysUntilExpiry != nil {
			days = fmt.Sprintf("%d", *a.DaysUntilExpiry)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			a.Code, a.Description, a.Category, a.Stock, expiry, days,
		)
	}
	w.Flush()

	return nil
}
