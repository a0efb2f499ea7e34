package commands

import (
	"github.com/spf13/cobra"

	"github.com/GTDGit/store_api/internal/repository"
	"github.com/GTDGit/store_api/internal/service"
)

// seedCmd loads the sample catalog.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample categories and products",
	Long: `Load the sample catalog: categories, components, computers, all-in-ones
and laptops with their specifications.

Rows are matched by slug, so running seed again leaves existing data untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := connect()
		if err != nil {
			return err
		}
		defer db.Close()

		seeder := service.NewSeedService(repository.NewCategoryRepository(db), repository.NewProductRepository(db))
		report, err := seeder.Seed(cmd.Context())
		if err != nil {
			return err
		}

		cmd.Printf("categories: %d created, %d already present\n", report.CategoriesCreated, report.CategoriesExisted)
		cmd.Printf("products:   %d created, %d already present\n", report.ProductsCreated, report.ProductsExisted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
