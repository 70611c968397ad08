package application

import (
	"context"
	"fmt"

	"github.com/dfryer1193/superheroes/superhero/domain"
	"golang.org/x/sync/errgroup"
)

type ImageService struct {
	images domain.ImageRepository
	store  domain.ImageStore
}

func NewImageService(images domain.ImageRepository, store domain.ImageStore) *ImageService {
	return &ImageService{
		images: images,
		store:  store,
	}
}

// DeleteImage removes the image row and then the stored content.
// A failure to remove the content is returned even though the row is already gone.
func (s *ImageService) DeleteImage(ctx context.Context, id int64) error {
	img, err := s.images.GetImage(ctx, id)
	if err != nil {
		return err
	}

	if err := s.images.DeleteImage(ctx, id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, img.PublicID); err != nil {
		return fmt.Errorf("failed to delete image %s from image store: %w", img.PublicID, err)
	}

	return nil
}

// AddImages uploads every file concurrently, then links the results to the superhero
// one at a time in the order the files were given. A failed upload does not cancel the
// others; every upload runs to completion before the first error is returned.
func (s *ImageService) AddImages(ctx context.Context, superheroID int64, files []domain.ImageFile) ([]*domain.Image, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}

	stored := make([]*domain.StoredImage, len(files))
	var g errgroup.Group
	for i, f := range files {
		g.Go(func() error {
			res, err := upload(ctx, s.store, f)
			if err != nil {
				return err
			}
			stored[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	images := make([]*domain.Image, 0, len(stored))
	for _, st := range stored {
		img, err := s.images.AddSuperheroImage(ctx, superheroID, st.URL, st.PublicID)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return images, nil
}
