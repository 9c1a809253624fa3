package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dukkan/internal/adapter/repository"
	"dukkan/internal/adapter/repository/memory"
	domainrepo "dukkan/internal/domain/repository"
	"dukkan/internal/infrastructure/export"
	"dukkan/internal/infrastructure/firebase"
	"dukkan/internal/usecase"
	"dukkan/pkg/config"
	"dukkan/pkg/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seed",
		Short:         "Prepare a dukkan datastore: admin account, default settings, product import",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(adminCmd(), settingsCmd(), productsCmd())
	return root
}

// openStore follows STORAGE_BACKEND like the server does. The returned func closes clients.
func openStore(ctx context.Context) (*domainrepo.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: "console"})

	if cfg.StorageBackend == "memory" {
		logger.Warn("STORAGE_BACKEND=memory, nothing will be persisted")
		return memory.NewStore(), func() {}, nil
	}

	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewFirestoreStore(app.Firestore), func() { app.Close() }, nil
}

func adminCmd() *cobra.Command {
	var input usecase.AdminInput
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create the admin account or promote an existing user by phone",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, closeFn, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			user, created, err := usecase.NewBootstrapUseCase(store.Users, store.Settings).EnsureAdmin(ctx, input)
			if err != nil {
				return err
			}
			verb := "promoted"
			if created {
				verb = "created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s: %s (%s)\n", verb, user.ID, user.Phone)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Name, "name", "Admin", "display name")
	cmd.Flags().StringVar(&input.Phone, "phone", "", "phone number used to log in")
	cmd.Flags().StringVar(&input.Password, "password", "", "password (at least 6 characters)")
	cmd.MarkFlagRequired("phone")
	cmd.MarkFlagRequired("password")
	return cmd
}

func settingsCmd() *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Write default delivery, contact and store settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, closeFn, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := usecase.NewBootstrapUseCase(store.Users, store.Settings).SeedSettings(ctx, overwrite)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d settings\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace values that already exist")
	return cmd
}

func productsCmd() *cobra.Command {
	var path string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Import products from an xlsx sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := export.ReadProducts(f)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%d products parsed\n", len(rows))
				return nil
			}

			ctx := cmd.Context()
			store, closeFn, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			products := usecase.NewProductUseCase(store.Products, store.Categories)
			imported := 0
			for _, row := range rows {
				_, err := products.Create(ctx, usecase.ProductInput{
					Name:        row.Name,
					Description: row.Description,
					Price:       row.Price,
					MinPrice:    row.MinPrice,
					MaxPrice:    row.MaxPrice,
					Stock:       row.Stock,
					SKU:         row.SKU,
					ImageURL:    row.ImageURL,
					Colors:      row.Colors,
					CategoryID:  row.CategoryID,
				})
				if err != nil {
					logger.Warn("Skipping line %d (%s): %v", row.Line, row.Name, err)
					continue
				}
				imported++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d products\n", imported, len(rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "xlsx file to import")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse the sheet without writing")
	cmd.MarkFlagRequired("file")
	return cmd
}
