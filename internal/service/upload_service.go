package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studioclass/review-api/internal/dto"
	"github.com/studioclass/review-api/internal/observability"
)

var (
	// ErrUploadTooLarge indicates the payload exceeded the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadTypeNotAllowed indicates the MIME type is not permitted.
	ErrUploadTypeNotAllowed = errors.New("only JPEG, PNG and PDF files are allowed")
)

// FileStorage abstracts where submission artifacts live. Store returns the
// public URL the stored bytes are reachable under.
type FileStorage interface {
	Store(ctx context.Context, name string, reader io.Reader) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

// UploadService validates and persists student artifact uploads.
type UploadService interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (dto.UploadResponse, error)
}

type uploadService struct {
	storage FileStorage
	maxSize int64
	logger  zerolog.Logger
}

// NewUploadService constructs an upload service with the given size cap.
func NewUploadService(storage FileStorage, maxSizeMB int, logger zerolog.Logger) UploadService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &uploadService{
		storage: storage,
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		logger:  logger.With().Str("component", "upload_service").Logger(),
	}
}

func (s *uploadService) Upload(ctx context.Context, file *multipart.FileHeader) (dto.UploadResponse, error) {
	if file == nil {
		return dto.UploadResponse{}, errors.New("file is required")
	}

	if file.Size > s.maxSize {
		observability.UploadsRejected().WithLabelValues("size").Inc()
		return dto.UploadResponse{}, ErrUploadTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return dto.UploadResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return dto.UploadResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		observability.UploadsRejected().WithLabelValues("size").Inc()
		return dto.UploadResponse{}, ErrUploadTooLarge
	}

	mime := mimetype.Detect(buf.Bytes())
	if !isAllowedUploadType(mime.String()) {
		observability.UploadsRejected().WithLabelValues("type").Inc()
		return dto.UploadResponse{}, ErrUploadTypeNotAllowed
	}

	storedName := uuid.NewString() + "-" + sanitizeFileName(file.Filename)
	url, err := s.storage.Store(ctx, storedName, bytes.NewReader(buf.Bytes()))
	if err != nil {
		observability.UploadsRejected().WithLabelValues("storage").Inc()
		return dto.UploadResponse{}, fmt.Errorf("failed to store file: %w", err)
	}

	observability.Uploads().WithLabelValues(mime.String()).Inc()
	s.logger.Info().Str("file_url", url).Int64("size", int64(buf.Len())).Msg("file stored")

	return dto.UploadResponse{
		FileURL:  url,
		FileName: file.Filename,
		Size:     int64(buf.Len()),
	}, nil
}

func isAllowedUploadType(mime string) bool {
	switch strings.ToLower(mime) {
	case "image/jpeg", "image/png", "application/pdf":
		return true
	default:
		return false
	}
}

func sanitizeFileName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.ToLower(base)
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = fmt.Sprintf("upload-%d", time.Now().Unix())
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".bin"
	}

	return base + ext
}
