package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/store_api/internal/config"
)

// MaxImageSize is the largest accepted product image.
const MaxImageSize = 5 << 20

// ErrUnsupportedImage is returned for image types other than png, jpeg and webp.
var ErrUnsupportedImage = errors.New("UNSUPPORTED_IMAGE")

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// ImageExtension returns the file extension stored for contentType.
func ImageExtension(contentType string) (string, bool) {
	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	return ext, ok
}

// ImageContentType maps a file extension (".png", ".jpeg", ...) to its content type.
func ImageContentType(ext string) (string, bool) {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png", true
	case ".jpg", ".jpeg":
		return "image/jpeg", true
	case ".webp":
		return "image/webp", true
	}
	return "", false
}

// S3Service uploads product images to S3 with SigV4-signed PUT requests.
type S3Service struct {
	bucket      string
	region      string
	endpoint    string
	publicURL   string
	credentials aws.CredentialsProvider
	signer      *v4.Signer
	client      *http.Client
}

// NewS3Service creates a new S3 service. Credentials are resolved through the
// default AWS chain (environment, shared config, instance role).
func NewS3Service(ctx context.Context, cfg *config.S3Config) (*S3Service, error) {
	if cfg == nil || !cfg.Enabled() {
		return nil, fmt.Errorf("S3 bucket is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	return newS3Service(cfg, endpoint, awsCfg.Credentials), nil
}

func newS3Service(cfg *config.S3Config, endpoint string, creds aws.CredentialsProvider) *S3Service {
	return &S3Service{
		bucket:      cfg.Bucket,
		region:      cfg.Region,
		endpoint:    strings.TrimSuffix(endpoint, "/"),
		publicURL:   cfg.PublicURL,
		credentials: creds,
		signer:      v4.NewSigner(),
		client:      &http.Client{Timeout: 60 * time.Second},
	}
}

// maxKeySlug bounds the slug part of an object key so the public URL of the
// object fits products.image (VARCHAR(255)).
const maxKeySlug = 100

// UploadProductImage stores data under products/<slug><ext> and returns the
// public URL of the object.
func (s *S3Service) UploadProductImage(ctx context.Context, slug, contentType string, data []byte) (string, error) {
	if len(data) > MaxImageSize {
		return "", fmt.Errorf("image exceeds %d bytes", MaxImageSize)
	}
	key, err := productImageKey(slug, contentType)
	if err != nil {
		return "", err
	}
	return s.uploadFile(ctx, key, data, contentType)
}

// DeleteProductImage removes the object UploadProductImage stored for slug
// and contentType.
func (s *S3Service) DeleteProductImage(ctx context.Context, slug, contentType string) error {
	key, err := productImageKey(slug, contentType)
	if err != nil {
		return err
	}
	resp, err := s.send(ctx, http.MethodDelete, key, nil, "")
	if err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("S3 delete failed with status %d", resp.StatusCode)
	}
	log.Info().Str("key", key).Msg("Deleted S3 object")
	return nil
}

func productImageKey(slug, contentType string) (string, error) {
	ext, ok := ImageExtension(contentType)
	if !ok {
		return "", ErrUnsupportedImage
	}
	if len(slug) > maxKeySlug {
		slug = strings.TrimRight(slug[:maxKeySlug], "-")
	}
	return fmt.Sprintf("products/%s%s", slug, ext), nil
}

// uploadFile uploads a file to S3 using AWS Signature V4
func (s *S3Service) uploadFile(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	resp, err := s.send(ctx, http.MethodPut, key, data, contentType)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to upload to S3")
		return "", fmt.Errorf("failed to upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Error().
			Str("key", key).
			Int("status", resp.StatusCode).
			Str("response", string(body)).
			Msg("S3 upload failed")
		return "", fmt.Errorf("S3 upload failed with status %d", resp.StatusCode)
	}

	log.Info().Str("key", key).Msg("Successfully uploaded to S3")
	return s.ObjectURL(key), nil
}

// send signs and performs one object request.
func (s *S3Service) send(ctx context.Context, method, key string, data []byte, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.endpoint+"/"+key, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	payloadHash := sha256Hex(data)
	req.ContentLength = int64(len(data))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Amz-Content-Sha256", payloadHash)

	creds, err := s.credentials.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("retrieve AWS credentials: %w", err)
	}
	if err := s.signer.SignHTTP(ctx, creds, req, payloadHash, "s3", s.region, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}
	return s.client.Do(req)
}

// ObjectURL returns the public URL for an S3 object.
func (s *S3Service) ObjectURL(key string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// sha256Hex computes SHA256 hash and returns hex string
func sha256Hex(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
