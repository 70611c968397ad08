package domain

import (
	"context"
)

// Image is a picture of a superhero held by the external image store
type Image struct {
	ID          int64
	URL         string
	PublicID    string
	SuperheroID int64
}

type ImageRepository interface {
	// AddSuperheroImage links an uploaded image to a superhero.
	// It does not check that the superhero exists; the foreign key does.
	AddSuperheroImage(ctx context.Context, superheroID int64, url, publicID string) (*Image, error)

	GetImage(ctx context.Context, id int64) (*Image, error)
	ListImagesBySuperhero(ctx context.Context, superheroID int64) ([]*Image, error)

	// DeleteImage removes the image row only; the stored content is left in place
	DeleteImage(ctx context.Context, id int64) error
}

// ImageFile is an uploaded file held in memory
type ImageFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// StoredImage is what the external image store returns for an upload
type StoredImage struct {
	URL      string
	PublicID string
}

// ImageStore is the external binary store for images, addressed by opaque public ids
type ImageStore interface {
	Upload(ctx context.Context, file ImageFile) (*StoredImage, error)
	Delete(ctx context.Context, publicID string) error
}
