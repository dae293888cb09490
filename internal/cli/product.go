package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stockguard-io/stockguard/pkg/model"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage the product catalog",
}

var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product to the catalog",
	RunE:  runProductAdd,
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products with their alert status",
	RunE:  runProductList,
}

var productRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductRm,
}

var productImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import products from a YAML catalog file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductImport,
}

var productExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the catalog to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductExport,
}

func init() {
	rootCmd.AddCommand(productCmd)
	productCmd.AddCommand(productAddCmd)
	productCmd.AddCommand(productListCmd)
	productCmd.AddCommand(productRmCmd)
	productCmd.AddCommand(productImportCmd)
	productCmd.AddCommand(productExportCmd)

	productAddCmd.Flags().StringP("code", "c", "", "Unique product code")
	productAddCmd.Flags().StringP("description", "d", "", "Product description")
	productAddCmd.Flags().StringP("unit", "u", "units", "Unit of sale (units, boxes)")
	productAddCmd.Flags().IntP("stock", "s", 0, "Current stock")
	productAddCmd.Flags().Float64P("price", "p", 0, "Sale price")
	productAddCmd.Flags().String("intake", "", "Intake date (YYYY-MM-DD)")
	productAddCmd.Flags().String("expiry", "", "Expiry date (YYYY-MM-DD)")
	_ = productAddCmd.MarkFlagRequired("code")
	_ = productAddCmd.MarkFlagRequired("description")

	productListCmd.Flags().StringP("search", "q", "", "Filter by code or description substring")
}

func runProductAdd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	code, _ := cmd.Flags().GetString("code")
	description, _ := cmd.Flags().GetString("description")
	unit, _ := cmd.Flags().GetString("unit")
	stock, _ := cmd.Flags().GetInt("stock")
	price, _ := cmd.Flags().GetFloat64("price")
	intake, _ := cmd.Flags().GetString("intake")
	expiry, _ := cmd.Flags().GetString("expiry")

	product := &model.Product{
		Code:        code,
		Description: description,
		Unit:        model.UnitOfSale(unit),
		Stock:       stock,
		Price:       price,
	}

	if product.IntakeDate, err = parseDateFlag(intake); err != nil {
		return err
	}
	if product.ExpiryDate, err = parseDateFlag(expiry); err != nil {
		return err
	}

	svc, store, err := initService(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := svc.CreateProduct(cmd.Context(), product); err != nil {
		return fmt.Errorf("add product: %w", err)
	}

	fmt.Printf("Product added:\n")
	fmt.Printf("  ID:          %s\n", product.ID)
	fmt.Printf("  Code:        %s\n", product.Code)
	fmt.Printf("  Description: %s\n", product.Description)
	fmt.Printf("  Unit:        %s\n", product.Unit)
	fmt.Printf("  Stock:       %d\n", product.Stock)
	fmt.Printf("  Price:       %.2f\n", product.Price)
	if product.ExpiryDate != nil {
		fmt.Printf("  Expiry:      %s\n", product.ExpiryDate)
	}

	return nil
}

func runProductList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	search, _ := cmd.Flags().GetString("search")

	svc, store, err := initService(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	products, err := svc.PresentProducts(cmd.Context(), search)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}

	if len(products) == 0 {
		fmt.Println("No products found. Use 'stockguard product add' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "CODE\tDESCRIPTION\tUNIT\tSTOCK\tPRICE\tEXPIRY\tSTATUS\n")
	for _, p := range products {
		expiry := "-"
		if p.ExpiryDate != nil {
			expiry = p.ExpiryDate.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%s\t%s\n",
			p.Code, p.Description, p.Unit, p.Stock, p.Price, expiry, p.Style,
		)
	}
	w.Flush()

	return nil
}

func runProductRm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, store, err := initService(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := svc.DeleteProduct(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("remove product: %w", err)
	}

	fmt.Printf("Product %s removed.\n", args[0])
	return nil
}

func runProductImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, store, err := initService(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	count, err := svc.ImportCatalog(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("import catalog: %w", err)
	}

	fmt.Printf("Imported %d products from %s.\n", count, args[0])
	return nil
}

func runProductExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, store, err := initService(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	count, err := svc.ExportCatalog(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("export catalog: %w", err)
	}

	fmt.Printf("Exported %d products to %s.\n", count, args[0])
	return nil
}

func parseDateFlag(value string) (*model.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := model.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
