package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const (
	placeImagesFolder     = "places"
	profilePicturesFolder = "profile_pictures"
	maxImageSize          = 5 << 20 // 5MB
)

var ErrUploadsDisabled = errors.New("image uploads are not configured")

// ImageUploader stores images and returns their public URL.
type ImageUploader interface {
	Upload(ctx context.Context, file io.Reader, folder string) (secureURL, publicID string, err error)
	Destroy(ctx context.Context, publicID string) error
}

type cloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func newCloudinaryUploader(cloudinaryURL string) (*cloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &cloudinaryUploader{cld: cld}, nil
}

// Upload names every asset with a fresh uuid so uploads never overwrite each other.
func (c *cloudinaryUploader) Upload(ctx context.Context, file io.Reader, folder string) (string, string, error) {
	resp, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:    folder,
		PublicID:  uuid.NewString(),
		Overwrite: api.Bool(false),
	})
	if err != nil {
		return "", "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, resp.PublicID, nil
}

func (c *cloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	if _, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete photo from Cloudinary: %w", err)
	}
	return nil
}

// extractPublicIDFromURL recovers the public ID (without extension) from a
// Cloudinary delivery URL.
//
//	https://res.cloudinary.com/demo/image/upload/v1712/profile_pictures/abc.jpg → profile_pictures/abc
func extractPublicIDFromURL(photoURL string) (string, error) {
	parsedURL, err := url.Parse(photoURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	pathParts := strings.Split(parsedURL.Path, "/")
	for i, part := range pathParts {
		if part != "upload" || i+1 >= len(pathParts) {
			continue
		}
		rest := pathParts[i+1:]
		// skip the version segment
		if len(rest) > 1 && strings.HasPrefix(rest[0], "v") && strings.Trim(rest[0][1:], "0123456789") == "" {
			rest = rest[1:]
		}
		id := strings.Join(rest, "/")
		if dot := strings.LastIndex(id, "."); dot > strings.LastIndex(id, "/") {
			id = id[:dot]
		}
		if id != "" {
			return id, nil
		}
	}

	return "", errors.New("failed to extract public ID from URL")
}

// openImage opens the multipart file and checks that it is an image within
// the size limit.
func openImage(fh *multipart.FileHeader) (multipart.File, error) {
	if fh.Size > maxImageSize {
		return nil, fmt.Errorf("image is larger than %d bytes", maxImageSize)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		file.Close()
		return nil, fmt.Errorf("read file: %w", err)
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		file.Close()
		return nil, errors.New("file is not an image")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("rewind file: %w", err)
	}

	return file, nil
}
