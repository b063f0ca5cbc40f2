package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// CloudinaryConfig contains the credentials required to talk to Cloudinary.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Cloudinary stores submission artifacts in a Cloudinary media folder.
type Cloudinary struct {
	client *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

// NewCloudinary constructs the remote backend.
func NewCloudinary(cfg CloudinaryConfig, logger zerolog.Logger) (*Cloudinary, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Cloudinary{
		client: client,
		folder: strings.Trim(cfg.Folder, "/"),
		logger: logger.With().Str("component", "cloudinary_storage").Logger(),
	}, nil
}

// Store uploads the file and returns its secure URL.
func (c *Cloudinary) Store(ctx context.Context, name string, reader io.Reader) (string, error) {
	publicID := strings.TrimSuffix(name, filepath.Ext(name))

	result, err := c.client.Upload.Upload(ctx, reader, uploader.UploadParams{
		Folder:       c.folder,
		PublicID:     publicID,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}

	c.logger.Info().Str("public_id", result.PublicID).Msg("file uploaded to cloudinary")

	return result.SecureURL, nil
}

// Delete destroys the asset referenced by a previously returned secure URL.
func (c *Cloudinary) Delete(ctx context.Context, fileURL string) error {
	publicID := publicIDFromURL(fileURL, c.folder)
	if publicID == "" {
		return ErrFileNotFound
	}

	result, err := c.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to destroy asset: %w", err)
	}
	if result.Result == "not found" {
		return ErrFileNotFound
	}

	c.logger.Info().Str("public_id", publicID).Msg("file destroyed on cloudinary")

	return nil
}

// publicIDFromURL recovers the folder-qualified public id from a delivery URL
// of the form .../upload/v<version>/<folder>/<id>.<ext>.
func publicIDFromURL(fileURL, folder string) string {
	name := path.Base(fileURL)
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "" || name == "." {
		return ""
	}
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
