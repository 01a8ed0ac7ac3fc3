package service

import "context"

// AvatarStorage persists uploaded avatar images and returns their public URL.
type AvatarStorage interface {
	Save(ctx context.Context, key, contentType string, data []byte) (url string, err error)
	Delete(ctx context.Context, key string) error
}
