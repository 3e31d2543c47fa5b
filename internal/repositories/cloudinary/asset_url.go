package cloudinary

import (
	"net/url"
	"path"
	"strings"

	"github.com/SAP-F-2025/course-service/internal/repositories"
)

// DeliveryHost serves every asset of every cloud.
const DeliveryHost = "res.cloudinary.com"

// ParseAssetURL recovers the delivery asset from a previously issued media
// URL such as https://res.cloudinary.com/<cloud>/raw/upload/v123/folder/file.pdf.
// ok is false unless the URL points at cloudName on the delivery host and
// has an /upload/ segment.
func ParseAssetURL(raw, cloudName string) (repositories.MediaAsset, bool) {
	u, err := url.Parse(raw)
	if err != nil || !isDeliveryURL(u) || cloudName == "" {
		return repositories.MediaAsset{}, false
	}
	p := u.Path
	if !strings.HasPrefix(p, "/"+cloudName+"/") {
		return repositories.MediaAsset{}, false
	}

	resourceType := repositories.ResourceImage
	switch {
	case strings.Contains(p, "/video/"):
		resourceType = repositories.ResourceVideo
	case strings.Contains(p, "/raw/"):
		resourceType = repositories.ResourceRaw
	}

	_, rest, found := strings.Cut(p, "/upload/")
	if !found || rest == "" {
		return repositories.MediaAsset{}, false
	}

	segments := strings.Split(rest, "/")
	if len(segments) > 1 && isVersion(segments[0]) {
		segments = segments[1:]
	}
	publicID := strings.Join(segments, "/")

	a := repositories.MediaAsset{PublicID: publicID, ResourceType: resourceType}
	if i := strings.LastIndex(publicID, "."); i >= 0 && !strings.Contains(publicID[i:], "/") {
		a.PublicID = publicID[:i]
		a.Format = publicID[i+1:]
	}
	return a, true
}

// DownloadFilename is the last path segment of raw, without query string.
func DownloadFilename(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		if name := path.Base(u.Path); name != "/" && name != "." {
			return name
		}
	}
	name := raw
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "download"
	}
	return name
}

func isDeliveryURL(u *url.URL) bool {
	return (u.Scheme == "https" || u.Scheme == "http") &&
		strings.EqualFold(u.Hostname(), DeliveryHost) &&
		u.Port() == "" && u.User == nil
}

func isVersion(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
