package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dfryer1193/superheroes/superhero/domain"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPage  = 0
	DefaultLimit = 5
	MaxLimit     = 100
)

// SuperheroPage is one page of a superhero listing
type SuperheroPage struct {
	Superheroes []*domain.Superhero
	Total       int
}

type SuperheroService struct {
	repo   domain.SuperheroRepository
	images domain.ImageRepository
	store  domain.ImageStore
}

func NewSuperheroService(repo domain.SuperheroRepository, images domain.ImageRepository, store domain.ImageStore) *SuperheroService {
	return &SuperheroService{
		repo:   repo,
		images: images,
		store:  store,
	}
}

// CreateSuperhero stores the superhero, uploads its first image and links the two.
// The superhero row is not rolled back when the upload fails.
func (s *SuperheroService) CreateSuperhero(ctx context.Context, hero *domain.Superhero, file domain.ImageFile) (*domain.Superhero, error) {
	if err := hero.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateSuperhero(ctx, hero); err != nil {
		return nil, err
	}

	stored, err := upload(ctx, s.store, file)
	if err != nil {
		log.Error().Err(err).Int64("superhero_id", hero.ID).Msg("Superhero created without image")
		return nil, err
	}

	img, err := s.images.AddSuperheroImage(ctx, hero.ID, stored.URL, stored.PublicID)
	if err != nil {
		return nil, err
	}

	hero.Images = []*domain.Image{img}
	return hero, nil
}

// GetSuperheroes returns the zero-based page of superheroes and the total count
func (s *SuperheroService) GetSuperheroes(ctx context.Context, page, limit int) (*SuperheroPage, error) {
	heroes, total, err := s.repo.GetSuperheroes(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return &SuperheroPage{
		Superheroes: heroes,
		Total:       total,
	}, nil
}

func (s *SuperheroService) GetSuperheroByID(ctx context.Context, id int64) (*domain.Superhero, error) {
	return s.repo.GetSuperheroByID(ctx, id)
}

// UpdateSuperhero applies a partial update to an existing superhero and returns the stored result
func (s *SuperheroService) UpdateSuperhero(ctx context.Context, id int64, update domain.SuperheroUpdate) (*domain.Superhero, error) {
	if update.IsEmpty() {
		return nil, domain.ErrEmptyUpdate
	}

	if _, err := s.repo.GetSuperheroByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSuperhero(ctx, id, update); err != nil {
		return nil, err
	}

	return s.repo.GetSuperheroByID(ctx, id)
}

// DeleteSuperhero removes every stored image of the superhero on a best-effort basis,
// then deletes the superhero and its image rows whatever the outcome of those removals.
func (s *SuperheroService) DeleteSuperhero(ctx context.Context, id int64) error {
	if _, err := s.repo.GetSuperheroByID(ctx, id); err != nil {
		return err
	}

	images, err := s.images.ListImagesBySuperhero(ctx, id)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, img := range images {
		wg.Add(1)
		go func(img *domain.Image) {
			defer wg.Done()
			if err := s.store.Delete(ctx, img.PublicID); err != nil {
				log.Error().
					Err(err).
					Int64("superhero_id", id).
					Str("public_id", img.PublicID).
					Msg("Failed to delete image from image store")
			}
		}(img)
	}
	wg.Wait()

	return s.repo.DeleteSuperhero(ctx, id)
}

// upload sends one file to the image store; a missing URL counts as a failed upload
func upload(ctx context.Context, store domain.ImageStore, file domain.ImageFile) (*domain.StoredImage, error) {
	stored, err := store.Upload(ctx, file)
	if err != nil {
		if errors.Is(err, domain.ErrUploadFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	if stored == nil || stored.URL == "" {
		return nil, fmt.Errorf("%w: image store returned no url", domain.ErrUploadFailed)
	}

	return stored, nil
}
