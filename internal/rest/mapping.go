package rest

import (
	"github.com/dfryer1193/superheroes/api"
	"github.com/dfryer1193/superheroes/superhero/domain"
)

func toSuperhero(s *domain.Superhero) api.Superhero {
	images := make([]api.Image, 0, len(s.Images))
	for _, img := range s.Images {
		images = append(images, api.Image{ID: img.ID, URL: img.URL})
	}

	return api.Superhero{
		ID:                s.ID,
		Nickname:          s.Nickname,
		RealName:          s.RealName,
		OriginDescription: s.OriginDescription,
		Superpowers:       s.Superpowers,
		CatchPhrase:       s.CatchPhrase,
		Images:            images,
	}
}

func toSuperheroes(heroes []*domain.Superhero) []api.Superhero {
	out := make([]api.Superhero, 0, len(heroes))
	for _, h := range heroes {
		out = append(out, toSuperhero(h))
	}
	return out
}

func toUploadedImages(images []*domain.Image) []api.UploadedImage {
	out := make([]api.UploadedImage, 0, len(images))
	for _, img := range images {
		out = append(out, api.UploadedImage{ID: img.ID, URL: img.URL, PublicID: img.PublicID})
	}
	return out
}

func fromForm(f api.SuperheroForm) *domain.Superhero {
	return &domain.Superhero{
		Nickname:          f.Nickname,
		RealName:          f.RealName,
		OriginDescription: f.OriginDescription,
		Superpowers:       f.Superpowers,
		CatchPhrase:       f.CatchPhrase,
	}
}

func fromPatch(p api.SuperheroPatch) domain.SuperheroUpdate {
	return domain.SuperheroUpdate{
		Nickname:          p.Nickname,
		RealName:          p.RealName,
		OriginDescription: p.OriginDescription,
		Superpowers:       p.Superpowers,
		CatchPhrase:       p.CatchPhrase,
	}
}
