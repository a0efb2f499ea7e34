package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/GTDGit/store_api/internal/repository"
	"github.com/GTDGit/store_api/internal/service"
)

var imageDir string

// imagesCmd groups product image maintenance.
var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Manage computer and all-in-one product images",
}

var imagesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "List computer and all-in-one products without an image",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := connect()
		if err != nil {
			return err
		}
		defer db.Close()

		syncer := service.NewImageSyncService(repository.NewProductRepository(db), nil)
		missing, err := syncer.MissingImages(cmd.Context())
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			cmd.Println("all computer products have images")
			return nil
		}
		for _, p := range missing {
			cmd.Printf("%-40s %s\n", p.Slug, p.Name)
		}
		cmd.Printf("%d product(s) without an image\n", len(missing))
		return nil
	},
}

var imagesUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload <slug>.<ext> files from a directory to S3",
	Long: `Upload images for computer and all-in-one products.

For every such product the directory is searched for <slug>.png, .jpg, .jpeg
or .webp. Found files are uploaded to the configured S3 bucket and the
product's image is updated.

Examples:
  storectl images upload --dir ./images`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := connect()
		if err != nil {
			return err
		}
		defer db.Close()

		if !cfg.S3.Enabled() {
			return fmt.Errorf("S3_BUCKET must be set to upload images")
		}
		storage, err := service.NewS3Service(cmd.Context(), &cfg.S3)
		if err != nil {
			return err
		}

		syncer := service.NewImageSyncService(repository.NewProductRepository(db), storage)
		report, err := syncer.UploadFromDir(cmd.Context(), imageDir)
		if err != nil {
			return err
		}

		for _, slug := range report.Uploaded {
			cmd.Printf("uploaded  %s\n", slug)
		}
		for _, slug := range report.Missing {
			cmd.Printf("no file   %s\n", slug)
		}
		failed := make([]string, 0, len(report.Failed))
		for slug := range report.Failed {
			failed = append(failed, slug)
		}
		sort.Strings(failed)
		for _, slug := range failed {
			cmd.Printf("failed    %s: %v\n", slug, report.Failed[slug])
		}
		if len(failed) > 0 {
			return fmt.Errorf("%d upload(s) failed", len(failed))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(imagesCmd)
	imagesCmd.AddCommand(imagesCheckCmd, imagesUploadCmd)

	imagesUploadCmd.Flags().StringVar(&imageDir, "dir", "images", "Directory containing <slug>.<ext> image files")
}
