// Command create_driver adds a driver account from the shell. Every page
// requires a login, so the first staff account has to come from here.
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"taxiservice/config"
	"taxiservice/pkg/forms"
	"taxiservice/pkg/logger"
	"taxiservice/pkg/notify"
	"taxiservice/service"
	"taxiservice/storage/postgres"
)

var (
	form  forms.DriverCreation
	staff bool
)

var rootCmd = &cobra.Command{
	Use:   "create_driver",
	Short: "Create a driver account",
	Long: `Create a driver account in the configured Postgres database.

Connection settings come from .env and the environment, the same as the server.
The password may also be given through DRIVER_PASSWORD to keep it out of the
shell history.`,
	Example:      "  create_driver --username admin --license ADM00001 --password 's3cret-pass'",
	RunE:         runCreateDriver,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&form.Username, "username", "", "login name")
	flags.StringVar(&form.Password1, "password", os.Getenv("DRIVER_PASSWORD"), "password")
	flags.StringVar(&form.FirstName, "first-name", "", "first name")
	flags.StringVar(&form.LastName, "last-name", "", "last name")
	flags.StringVar(&form.LicenseNumber, "license", "", "license number, e.g. ADM00001")
	flags.BoolVar(&staff, "staff", true, "allow the driver to manage other drivers")
	_ = rootCmd.MarkFlagRequired("username")
	_ = rootCmd.MarkFlagRequired("license")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCreateDriver(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()

	pg, err := postgres.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	drivers := service.NewDriverService(pg, notify.NewNop(), service.Options{BcryptCost: cfg.BcryptCost}, log)
	create := drivers.Create
	if staff {
		create = drivers.CreateStaff
	}

	form.Password2 = form.Password1
	d, err := create(ctx, form)
	if err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			printFieldErrors(cmd, verr.Fields)
		}
		return err
	}

	cmd.Printf("created driver #%d %s (staff: %t)\n", d.ID, d.Account.Username, d.Account.IsStaff)
	return nil
}

func printFieldErrors(cmd *cobra.Command, errs forms.Errors) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		for _, msg := range errs[f] {
			cmd.PrintErrf("%s: %s\n", f, msg)
		}
	}
}
