package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/store_api/internal/models"
)

// imageFileExtensions are tried in order when looking for a product image.
var imageFileExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// imageSyncTypes are the product types that are expected to carry photos.
var imageSyncTypes = []models.ProductType{models.ProductTypeComputer, models.ProductTypeAllInOne}

// ImageCatalog is the product persistence used by image maintenance.
type ImageCatalog interface {
	ListByTypes(ctx context.Context, types []models.ProductType) ([]models.Product, error)
	UpdateImage(ctx context.Context, id int64, image string) error
}

// ImageUploadReport summarises an upload run.
type ImageUploadReport struct {
	Uploaded []string
	Missing  []string
	Failed   map[string]error
}

// ImageSyncService checks and fills in photos of computer-class products.
type ImageSyncService struct {
	products ImageCatalog
	storage  ImageStorage
}

// NewImageSyncService constructs an ImageSyncService. storage may be nil
// when only checks are run.
func NewImageSyncService(products ImageCatalog, storage ImageStorage) *ImageSyncService {
	return &ImageSyncService{products: products, storage: storage}
}

// MissingImages returns computer and all-in-one products without an image,
// ordered by category and name.
func (s *ImageSyncService) MissingImages(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.ListByTypes(ctx, imageSyncTypes)
	if err != nil {
		return nil, err
	}
	missing := []models.Product{}
	for _, p := range products {
		if p.Image == nil || *p.Image == "" {
			missing = append(missing, p)
		}
	}
	return missing, nil
}

// UploadFromDir looks up <slug>.{png,jpg,jpeg,webp} in dir for every
// computer and all-in-one product, uploads the first match and records it
// as the product image. Per-product failures are collected, not fatal.
func (s *ImageSyncService) UploadFromDir(ctx context.Context, dir string) (*ImageUploadReport, error) {
	if s.storage == nil {
		return nil, errors.New("image storage is not configured")
	}
	if info, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("image directory: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("image directory: %s is not a directory", dir)
	}

	products, err := s.products.ListByTypes(ctx, imageSyncTypes)
	if err != nil {
		return nil, err
	}

	report := &ImageUploadReport{Failed: map[string]error{}}
	for _, p := range products {
		path, ext, ok := findImageFile(dir, p.Slug)
		if !ok {
			report.Missing = append(report.Missing, p.Slug)
			continue
		}
		if err := s.uploadOne(ctx, &p, path, ext); err != nil {
			log.Error().Err(err).Str("slug", p.Slug).Msg("Image upload failed")
			report.Failed[p.Slug] = err
			continue
		}
		report.Uploaded = append(report.Uploaded, p.Slug)
	}

	log.Info().
		Int("uploaded", len(report.Uploaded)).
		Int("missing", len(report.Missing)).
		Int("failed", len(report.Failed)).
		Msg("Image upload completed")
	return report, nil
}

func (s *ImageSyncService) uploadOne(ctx context.Context, p *models.Product, path, ext string) error {
	contentType, _ := ImageContentType(ext)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) > MaxImageSize {
		return fmt.Errorf("%s exceeds %d bytes", filepath.Base(path), MaxImageSize)
	}
	url, err := s.storage.UploadProductImage(ctx, p.Slug, contentType, data)
	if err != nil {
		return err
	}
	return s.products.UpdateImage(ctx, p.ID, url)
}

func findImageFile(dir, slug string) (string, string, bool) {
	for _, ext := range imageFileExtensions {
		path := filepath.Join(dir, slug+ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, ext, true
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("Cannot stat image file")
		}
	}
	return "", "", false
}
