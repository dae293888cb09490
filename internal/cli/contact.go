package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stockguard-io/stockguard/pkg/model"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage suppliers and stores",
}

var contactAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a supplier or store",
	RunE:  runContactAdd,
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	RunE:  runContactList,
}

var contactRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactRm,
}

func init() {
	rootCmd.AddCommand(contactCmd)
	contactCmd.AddCommand(contactAddCmd)
	contactCmd.AddCommand(contactListCmd)
	contactCmd.AddCommand(contactRmCmd)

	contactAddCmd.Flags().StringP("name", "n", "", "Contact name")
	contactAddCmd.Flags().StringP("type", "t", "supplier", "Contact type (supplier, store)")
	contactAddCmd.Flags().String("address", "", "Address")
	contactAddCmd.Flags().String("phone", "", "Phone number")
	contactAddCmd.Flags().String("email", "", "Email address")
	_ = contactAddCmd.MarkFlagRequired("name")

	contactListCmd.Flags().StringP("search", "q", "", "Filter by name or email substring")
}

func runContactAdd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	ctype, _ := cmd.Flags().GetString("type")
	address, _ := cmd.Flags().GetString("address")
	phone, _ := cmd.Flags().GetString("phone")
	email, _ := cmd.Flags().GetString("email")

	contact := &model.Contact{
		Name:    name,
		Type:    model.ContactType(ctype),
		Address: address,
		Phone:   phone,
		Email:   email,
	}

	svc, store, err := initService(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := svc.CreateContact(cmd.Context(), contact); err != nil {
		return fmt.Errorf("add contact: %w", err)
	}

	fmt.Printf("Contact added:\n")
	fmt.Printf("  ID:    %s\n", contact.ID)
	fmt.Printf("  Name:  %s\n", contact.Name)
	fmt.Printf("  Type:  %s\n", contact.Type)
	if contact.Email != "" {
		fmt.Printf("  Email: %s\n", contact.Email)
	}

	return nil
}

func runContactList(cmd *cobra.Command, _ []string) error {
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

	contacts, err := svc.ListContacts(cmd.Context(), search)
	if err != nil {
		return fmt.Errorf("list contacts: %w", err)
	}

	if len(contacts) == 0 {
		fmt.Println("No contacts found. Use 'stockguard contact add' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tTYPE\tPHONE\tEMAIL\tADDRESS\n")
	for _, c := range contacts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Name, c.Type, c.Phone, c.Email, c.Address)
	}
	w.Flush()

	return nil
}

func runContactRm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, store, err := initService(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := svc.DeleteContact(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("remove contact: %w", err)
	}

	fmt.Printf("Contact %s removed.\n", args[0])
	return nil
}
