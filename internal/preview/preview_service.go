package preview

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/h2non/bimg"

	"renolab/internal/domain"
	"renolab/internal/service/s3"
)

const (
	maxImageSize  = 1024
	jpegQuality   = 85
	previewPrefix = "previews/"
)

// Service generates and caches thumbnails for photos viewed through share
// links. Thumbnails live in S3 under the previews/ prefix keyed by photo id,
// so a photo replaced under the same item gets a fresh cache entry.
type Service struct {
	s3Client s3.Storage
}

func NewService(s3Client s3.Storage) *Service {
	return &Service{s3Client: s3Client}
}

// GetOrGenerateThumb returns cached thumbnail bytes, generating and caching
// them on first request.
func (s *Service) GetOrGenerateThumb(ctx context.Context, photo *domain.ItemPhoto) ([]byte, error) {
	thumbKey := fmt.Sprintf("%s%s.jpg", previewPrefix, photo.ID)

	if cached, err := s.s3Client.GetObject(ctx, thumbKey); err == nil {
		defer cached.Close()
		data, err := io.ReadAll(cached)
		if err != nil {
			return nil, fmt.Errorf("failed to read cached thumbnail: %w", err)
		}
		return data, nil
	}

	log.Printf("[Preview] Generating thumbnail for photo %s", photo.ID)

	original, err := s.s3Client.GetObject(ctx, photo.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get original photo: %w", err)
	}
	defer original.Close()

	data, err := io.ReadAll(original)
	if err != nil {
		return nil, fmt.Errorf("failed to read original photo: %w", err)
	}

	thumb, err := s.resize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to resize photo: %w", err)
	}

	if err := s.s3Client.UploadBytes(ctx, thumbKey, thumb); err != nil {
		// Cache write failure is not fatal, the thumbnail is still served.
		log.Printf("[Preview] Failed to cache thumbnail for photo %s: %v", photo.ID, err)
	}

	return thumb, nil
}

func (s *Service) resize(data []byte) ([]byte, error) {
	image := bimg.NewImage(data)

	size, err := image.Size()
	if err != nil {
		return nil, fmt.Errorf("failed to read image size: %w", err)
	}

	options := bimg.Options{
		Quality: jpegQuality,
		Type:    bimg.JPEG,
	}
	if size.Width > maxImageSize || size.Height > maxImageSize {
		if size.Width >= size.Height {
			options.Width = maxImageSize
		} else {
			options.Height = maxImageSize
		}
	}

	return image.Process(options)
}
