package media

import (
	"context"
	"io"

	"github.com/google/uuid"

	"social-service/internal/shared/apperr"
)

// Storage is the object store the uploads land in; satisfied by
// internal/storage/s3.
type Storage interface {
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) error
	PublicURL(key string) string
}

type Service interface {
	Upload(ctx context.Context, name, contentType string, size int64, r io.Reader) (*UploadResponse, error)
}

type service struct {
	store Storage
}

func NewService(store Storage) Service {
	return &service{store: store}
}

func (s *service) Upload(ctx context.Context, name, contentType string, size int64, r io.Reader) (*UploadResponse, error) {
	ext, err := validateUpload(contentType, size)
	if err != nil {
		return nil, err
	}
	key := "media/" + uuid.NewString() + ext
	if err := s.store.Put(ctx, key, contentType, r, size); err != nil {
		return nil, apperr.Internal(err, "failed to store media")
	}
	return &UploadResponse{FileName: name, URL: s.store.PublicURL(key)}, nil
}

func validateUpload(contentType string, size int64) (string, error) {
	if ext, ok := imageTypes[contentType]; ok {
		if size > MaxImageSize {
			return "", apperr.Validationf("image exceeds %d MB limit", MaxImageSize>>20)
		}
		return ext, nil
	}
	if ext, ok := videoTypes[contentType]; ok {
		if size > MaxVideoSize {
			return "", apperr.Validationf("video exceeds %d MB limit", MaxVideoSize>>20)
		}
		return ext, nil
	}
	return "", apperr.Validationf("unsupported media type %q", contentType)
}
