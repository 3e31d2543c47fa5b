package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/asset"
	"github.com/go-resty/resty/v2"

	"github.com/SAP-F-2025/course-service/internal/repositories"
)

const userAgent = "course-service/1.0 (+media-proxy)"

// ErrUpstream is returned when the media host cannot serve a download.
var ErrUpstream = errors.New("media upstream fetch failed")

// CloudinaryConfig holds the credentials for the media delegate.
type CloudinaryConfig struct {
	URL       string
	CloudName string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

type MediaCloudinary struct {
	cld     *cloudinary.Cloudinary
	http    *resty.Client
	timeout time.Duration
	logger  *slog.Logger
}

func NewMediaCloudinary(config CloudinaryConfig, logger *slog.Logger) (repositories.MediaRepository, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if config.URL != "" {
		cld, err = cloudinary.NewFromURL(config.URL)
	} else {
		cld, err = cloudinary.NewFromParams(config.CloudName, config.APIKey, config.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	cld.Config.URL.Analytics = false

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MediaCloudinary{
		cld:     cld,
		http:    newHTTPClient(timeout),
		timeout: timeout,
		logger:  logger,
	}, nil
}

func newHTTPClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5), resty.DomainCheckRedirectPolicy(DeliveryHost))
}

// ===== UPLOAD =====

func (m *MediaCloudinary) Upload(ctx context.Context, in repositories.UploadInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	resourceType := in.ResourceType
	if resourceType == "" {
		resourceType = repositories.ResourceAuto
	}

	resp, err := m.cld.Upload.Upload(ctx, in.Reader, uploader.UploadParams{
		Folder:       in.Folder,
		ResourceType: string(resourceType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", in.Filename, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("failed to upload %s: %s", in.Filename, resp.Error.Message)
	}

	m.logger.Debug("Media uploaded", "folder", in.Folder, "public_id", resp.PublicID, "bytes", resp.Bytes)
	return resp.SecureURL, nil
}

// ===== SIGNED DELIVERY =====

// ResolveAsset accepts only URLs issued for this cloud.
func (m *MediaCloudinary) ResolveAsset(rawURL string) (repositories.MediaAsset, bool) {
	return ParseAssetURL(rawURL, m.cld.Config.Cloud.CloudName)
}

func (m *MediaCloudinary) SignedURL(ctx context.Context, a repositories.MediaAsset) (string, error) {
	publicID := a.PublicID
	if a.Format != "" {
		publicID += "." + a.Format
	}

	var (
		delivery *asset.Asset
		err      error
	)
	switch a.ResourceType {
	case repositories.ResourceVideo:
		delivery, err = m.cld.Video(publicID)
	case repositories.ResourceRaw:
		delivery, err = m.cld.File(publicID)
	default:
		delivery, err = m.cld.Image(publicID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to build asset %s: %w", a.PublicID, err)
	}

	delivery.Config.URL.SignURL = true
	delivery.Config.URL.Secure = true
	delivery.Config.URL.Analytics = false

	signed, err := delivery.String()
	if err != nil {
		return "", fmt.Errorf("failed to sign asset %s: %w", a.PublicID, err)
	}
	return signed, nil
}

// ===== FETCH =====

// Fetch only reaches the delivery host.
func (m *MediaCloudinary) Fetch(ctx context.Context, rawURL string) (*repositories.MediaDownload, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !isDeliveryURL(u) {
		return nil, fmt.Errorf("%w: refusing host outside %s", ErrUpstream, DeliveryHost)
	}
	return fetch(ctx, m.http, rawURL)
}

func fetch(ctx context.Context, client *resty.Client, rawURL string) (*repositories.MediaDownload, error) {
	resp, err := client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	body := resp.RawBody()
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		if body != nil {
			body.Close()
		}
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &repositories.MediaDownload{
		Body:          body,
		ContentType:   contentType,
		ContentLength: resp.RawResponse.ContentLength,
	}, nil
}
