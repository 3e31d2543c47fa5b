package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/course-service/internal/repositories"
)

func TestDownload_SignsDelegateURLs(t *testing.T) {
	media := &fakeMedia{}
	svc := NewMediaService(media, slog.New(slog.NewTextHandler(io.Discard, nil)))

	resp, err := svc.Download(context.Background(),
		"https://res.cloudinary.com/demo/raw/upload/v1712345/eduplatform/submissions/report.pdf")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Len(t, media.signed, 1)
	assert.Equal(t, repositories.MediaAsset{
		PublicID:     "eduplatform/submissions/report",
		Format:       "pdf",
		ResourceType: repositories.ResourceRaw,
	}, media.signed[0])
	assert.Equal(t, []string{"https://signed.example/eduplatform/submissions/report"}, media.fetched)
	assert.Equal(t, "report.pdf", resp.Filename)
	assert.Equal(t, "application/pdf", resp.ContentType)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "file-bytes", string(body))
}

func TestDownload_RejectsUnknownURLs(t *testing.T) {
	media := &fakeMedia{}
	svc := NewMediaService(media, slog.New(slog.NewTextHandler(io.Discard, nil)))

	for _, raw := range []string{
		"https://example.com/files/notes.txt",
		"http://169.254.169.254/latest/meta-data/iam",
		"https://res.cloudinary.com/other/raw/upload/v1/notes.txt",
		"not a url",
	} {
		_, err := svc.Download(context.Background(), raw)
		assert.ErrorIs(t, err, ErrMediaFetchFailed, raw)
	}

	assert.Empty(t, media.signed)
	assert.Empty(t, media.fetched)
}

func TestDownload_Failures(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	_, err := NewMediaService(&fakeMedia{}, logger).Download(ctx, "  ")
	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = NewMediaService(&fakeMedia{fetchErr: errors.New("404")}, logger).
		Download(ctx, "https://res.cloudinary.com/demo/raw/upload/v1/eduplatform/submissions/gone.pdf")
	assert.ErrorIs(t, err, ErrMediaFetchFailed)

	_, err = NewMediaService(nil, logger).Download(ctx, "https://example.com/x")
	assert.ErrorIs(t, err, ErrMediaUnavailable)

	_, err = NewMediaService(nil, logger).Upload(ctx, &FileUpload{}, repositories.FolderLessons, repositories.ResourceAuto)
	assert.ErrorIs(t, err, ErrMediaUnavailable)
}
