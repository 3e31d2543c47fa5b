package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/repositories/cloudinary"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

// maxThumbnailBytes bounds how much of a thumbnail is buffered for re-encoding.
const maxThumbnailBytes = 20 << 20

type mediaService struct {
	media     repositories.MediaRepository
	logger    *slog.Logger
	thumbnail utils.ThumbnailOptions
}

// NewMediaService wraps the media delegate. A nil delegate makes every
// upload and download fail with ErrMediaUnavailable.
func NewMediaService(media repositories.MediaRepository, logger *slog.Logger) MediaService {
	return &mediaService{
		media:     media,
		logger:    logger,
		thumbnail: utils.DefaultThumbnailOptions,
	}
}

func (s *mediaService) Upload(ctx context.Context, file *FileUpload, folder string, resourceType repositories.ResourceType) (string, error) {
	if s.media == nil {
		return "", ErrMediaUnavailable
	}

	url, err := s.media.Upload(ctx, repositories.UploadInput{
		Reader:       file.Reader,
		Filename:     file.Filename,
		Folder:       folder,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload media: %w", err)
	}

	s.logger.Info("Media uploaded", "folder", folder, "filename", file.Filename)
	return url, nil
}

func (s *mediaService) UploadThumbnail(ctx context.Context, file *FileUpload) (string, error) {
	if s.media == nil {
		return "", ErrMediaUnavailable
	}

	data, err := io.ReadAll(io.LimitReader(file.Reader, maxThumbnailBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read thumbnail: %w", err)
	}
	if len(data) > maxThumbnailBytes {
		return "", NewValidationError("thumbnail_file", "must be at most 20MB")
	}

	upload := &FileUpload{Reader: bytes.NewReader(data), Filename: file.Filename, Size: int64(len(data))}

	// Anything that does not decode is uploaded as-is.
	if converted, err := utils.ConvertToWebP(data, s.thumbnail); err == nil {
		upload = &FileUpload{
			Reader:   bytes.NewReader(converted),
			Filename: utils.WebPFilename(file.Filename),
			Size:     int64(len(converted)),
		}
	} else {
		s.logger.Debug("Thumbnail kept in original format", "filename", file.Filename, "error", err)
	}

	return s.Upload(ctx, upload, repositories.FolderThumbnails, repositories.ResourceImage)
}

func (s *mediaService) Download(ctx context.Context, rawURL string) (*DownloadResponse, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, NewValidationError("url", "URL missing")
	}
	if s.media == nil {
		return nil, ErrMediaUnavailable
	}

	asset, ok := s.media.ResolveAsset(rawURL)
	if !ok {
		s.logger.Warn("Rejected download of unknown media URL", "url", rawURL)
		return nil, ErrMediaFetchFailed
	}

	signed, err := s.media.SignedURL(ctx, asset)
	if err != nil {
		s.logger.Warn("Failed to sign media URL", "url", rawURL, "error", err)
		return nil, ErrMediaFetchFailed
	}

	download, err := s.media.Fetch(ctx, signed)
	if err != nil {
		s.logger.Warn("Media download failed", "url", rawURL, "error", err)
		return nil, ErrMediaFetchFailed
	}

	return &DownloadResponse{
		Body:          download.Body,
		ContentType:   download.ContentType,
		ContentLength: download.ContentLength,
		Filename:      cloudinary.DownloadFilename(rawURL),
	}, nil
}
