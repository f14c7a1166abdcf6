package s3

import (
	"context"
	"io"
)

// Object is a fetched S3 object.
type Object interface {
	io.ReadCloser
	ContentLength() int64
	ContentType() string
}

type object struct {
	io.ReadCloser
	contentLength int64
	contentType   string
}

func (o *object) ContentLength() int64 {
	return o.contentLength
}

func (o *object) ContentType() string {
	return o.contentType
}

// Storage is the object-store surface the photo paths need.
type Storage interface {
	SignedURL(ctx context.Context, key string) (string, error)
	GetObject(ctx context.Context, key string) (Object, error)
	UploadBytes(ctx context.Context, key string, data []byte) error
}
