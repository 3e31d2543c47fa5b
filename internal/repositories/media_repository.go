package repositories

import (
	"context"
	"io"
)

// Media folders used by the course service.
const (
	FolderThumbnails  = "eduplatform/thumbnails"
	FolderLessons     = "eduplatform/lessons"
	FolderAssignments = "eduplatform/assignments"
	FolderSubmissions = "eduplatform/submissions"
)

// ResourceType is the delegate's classification of a stored object.
type ResourceType string

const (
	ResourceAuto  ResourceType = "auto"
	ResourceImage ResourceType = "image"
	ResourceVideo ResourceType = "video"
	ResourceRaw   ResourceType = "raw"
)

// MediaAsset identifies an uploaded object inside the media delegate.
type MediaAsset struct {
	PublicID     string
	Format       string
	ResourceType ResourceType
}

// UploadInput describes a single upload.
type UploadInput struct {
	Reader       io.Reader
	Filename     string
	Folder       string
	ResourceType ResourceType
}

// MediaDownload is a streamed upstream response. Callers close Body.
type MediaDownload struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// MediaRepository is the blob-storage delegate.
type MediaRepository interface {
	// Upload stores the stream and returns a durable HTTPS URL.
	Upload(ctx context.Context, in UploadInput) (string, error)
	// ResolveAsset maps a URL previously returned by Upload back to its
	// asset. ok is false for any other URL.
	ResolveAsset(rawURL string) (MediaAsset, bool)
	// SignedURL issues a short-lived signed URL for a stored asset.
	SignedURL(ctx context.Context, asset MediaAsset) (string, error)
	// Fetch streams the object behind a signed URL.
	Fetch(ctx context.Context, url string) (*MediaDownload, error)
}
