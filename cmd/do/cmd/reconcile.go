package cmd

import (
	"fmt"

	"github.com/dealmarket/bff/internal/db"
	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/repository"
	"github.com/dealmarket/bff/internal/service"
	"github.com/spf13/cobra"
)

// ReconcileCmd replays storage upload notifications that never reached the
// webhook, e.g. "do reconcile deals/panier.jpg_1700000000000".
func ReconcileCmd() *cobra.Command {
	var flags dbFlags

	reconcileCmd := &cobra.Command{
		Use:   "reconcile <object-key>...",
		Short: "Mark uploaded objects as UPLOADED in the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Init(flags.driver, flags.connection)
			if err != nil {
				return err
			}
			defer db.Close(database)

			repos := make(map[model.ImageNamespace]repository.ImageRepository, len(model.Namespaces))
			for _, ns := range model.Namespaces {
				table, _ := repository.TableFor(ns)
				repos[ns] = repository.NewImageRepository(database, table)
			}
			reconciler := service.NewImageReconciler(repos)

			var failed int
			for _, key := range args {
				outcome, err := reconciler.Reconcile(cmd.Context(), key)
				if err != nil {
					failed++
					fmt.Printf("%s: %v\n", key, err)
					continue
				}
				fmt.Printf("%s: %s\n", key, outcome)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d keys failed", failed, len(args))
			}
			return nil
		},
	}
	flags.bind(reconcileCmd)

	return reconcileCmd
}
