package rest

import (
	"context"

	"github.com/dfryer1193/superheroes/superhero/application"
	"github.com/dfryer1193/superheroes/superhero/domain"
	"github.com/gin-gonic/gin"
)

type SuperheroService interface {
	CreateSuperhero(ctx context.Context, hero *domain.Superhero, file domain.ImageFile) (*domain.Superhero, error)
	GetSuperheroes(ctx context.Context, page, limit int) (*application.SuperheroPage, error)
	GetSuperheroByID(ctx context.Context, id int64) (*domain.Superhero, error)
	UpdateSuperhero(ctx context.Context, id int64, update domain.SuperheroUpdate) (*domain.Superhero, error)
	DeleteSuperhero(ctx context.Context, id int64) error
}

type ImageService interface {
	DeleteImage(ctx context.Context, id int64) error
	AddImages(ctx context.Context, superheroID int64, files []domain.ImageFile) ([]*domain.Image, error)
}

// Pinger reports whether the backing database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	superheroes    SuperheroService
	images         ImageService
	db             Pinger
	maxUploadBytes int64
}

func NewHandlers(superheroes SuperheroService, images ImageService, db Pinger, maxUploadBytes int64) *Handlers {
	return &Handlers{
		superheroes:    superheroes,
		images:         images,
		db:             db,
		maxUploadBytes: maxUploadBytes,
	}
}

// detached returns the request context without its cancellation. Multi-step writes
// that span the database and the image store run to completion after a client disconnects.
func detached(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func NewApi(router *gin.Engine, h *Handlers) {
	router.GET("/health", h.Health)

	superheroes := router.Group("/superheroes")
	{
		superheroes.POST("", h.CreateSuperhero)
		superheroes.GET("", h.GetSuperheroes)
		superheroes.GET("/:id", h.GetSuperhero)
		superheroes.PATCH("/:id", h.UpdateSuperhero)
		superheroes.DELETE("/:id", h.DeleteSuperhero)
		superheroes.PATCH("/images/:id", h.AddImages)
	}

	images := router.Group("/images")
	{
		images.DELETE("/:id", h.DeleteImage)
	}
}
