package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/dfryer1193/superheroes/superhero/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuperheroService_CreateSuperhero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hero, err := env.service.CreateSuperhero(ctx, validHero(), imageFile("hero.png"))
	require.NoError(t, err)

	assert.NotZero(t, hero.ID)
	assert.Equal(t, "Hero", hero.Nickname)
	assert.Equal(t, "John Doe", hero.RealName)
	assert.Equal(t, "...", hero.OriginDescription)
	assert.Equal(t, "Flying", hero.Superpowers)
	assert.Equal(t, "Here I am!", hero.CatchPhrase)
	require.Len(t, hero.Images, 1)
	assert.Equal(t, "https://img.example/hero.png", hero.Images[0].URL)

	stored, err := env.heroes.GetSuperheroByID(ctx, hero.ID)
	require.NoError(t, err)
	require.Len(t, stored.Images, 1)
	assert.Equal(t, hero.Images[0].URL, stored.Images[0].URL)
}

func TestSuperheroService_CreateSuperhero_MissingField(t *testing.T) {
	env := newTestEnv(t)

	hero := validHero()
	hero.CatchPhrase = ""

	_, err := env.service.CreateSuperhero(context.Background(), hero, imageFile("hero.png"))
	assert.ErrorIs(t, err, domain.ErrInvalidSuperhero)
	assert.Empty(t, env.store.uploads)
}

func TestSuperheroService_CreateSuperhero_UploadFailureLeavesSuperhero(t *testing.T) {
	env := newTestEnv(t)
	env.store.uploadErr = func(domain.ImageFile) error { return errStoreDown }
	ctx := context.Background()

	_, err := env.service.CreateSuperhero(ctx, validHero(), imageFile("hero.png"))
	assert.ErrorIs(t, err, domain.ErrUploadFailed)

	page, err := env.service.GetSuperheroes(ctx, 0, 5)
	require.NoError(t, err)
	require.Equal(t, 1, page.Total, "superhero row is kept without an image")
	assert.Empty(t, page.Superheroes[0].Images)
}

func TestSuperheroService_CreateSuperhero_EmptyURL(t *testing.T) {
	env := newTestEnv(t)
	env.store.emptyURL = true

	_, err := env.service.CreateSuperhero(context.Background(), validHero(), imageFile("hero.png"))
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestSuperheroService_GetSuperheroes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		hero := validHero()
		hero.Nickname = fmt.Sprintf("Hero %d", i)
		_, err := env.service.CreateSuperhero(ctx, hero, imageFile(fmt.Sprintf("%d.png", i)))
		require.NoError(t, err)
	}

	page, err := env.service.GetSuperheroes(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 6, page.Total)
	require.Len(t, page.Superheroes, 1)
	assert.Equal(t, "Hero 5", page.Superheroes[0].Nickname)

	page, err = env.service.GetSuperheroes(ctx, 2, 5)
	require.NoError(t, err)
	assert.Empty(t, page.Superheroes)
}

func TestSuperheroService_UpdateSuperhero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hero, err := env.service.CreateSuperhero(ctx, validHero(), imageFile("hero.png"))
	require.NoError(t, err)

	powers := "Flying, invisibility"
	updated, err := env.service.UpdateSuperhero(ctx, hero.ID, domain.SuperheroUpdate{Superpowers: &powers})
	require.NoError(t, err)

	assert.Equal(t, powers, updated.Superpowers)
	assert.Equal(t, hero.Nickname, updated.Nickname)
	assert.Len(t, updated.Images, 1)
}

func TestSuperheroService_UpdateSuperhero_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.UpdateSuperhero(ctx, 1, domain.SuperheroUpdate{})
	assert.ErrorIs(t, err, domain.ErrEmptyUpdate)

	name := "Nobody"
	_, err = env.service.UpdateSuperhero(ctx, 404, domain.SuperheroUpdate{Nickname: &name})
	assert.ErrorIs(t, err, domain.ErrSuperheroNotFound)
}

func TestSuperheroService_DeleteSuperhero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hero, err := env.service.CreateSuperhero(ctx, validHero(), imageFile("hero.png"))
	require.NoError(t, err)
	_, err = env.imageSvc.AddImages(ctx, hero.ID, []domain.ImageFile{imageFile("extra.png")})
	require.NoError(t, err)

	require.NoError(t, env.service.DeleteSuperhero(ctx, hero.ID))

	assert.ElementsMatch(t, []string{"superheroesImages/hero.png", "superheroesImages/extra.png"}, env.store.deleted())

	_, err = env.service.GetSuperheroByID(ctx, hero.ID)
	assert.ErrorIs(t, err, domain.ErrSuperheroNotFound)

	images, err := env.images.ListImagesBySuperhero(ctx, hero.ID)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestSuperheroService_DeleteSuperhero_StoreFailuresAreSwallowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hero, err := env.service.CreateSuperhero(ctx, validHero(), imageFile("hero.png"))
	require.NoError(t, err)
	_, err = env.imageSvc.AddImages(ctx, hero.ID, []domain.ImageFile{imageFile("a.png"), imageFile("b.png")})
	require.NoError(t, err)

	env.store.deleteErr = errStoreDown

	require.NoError(t, env.service.DeleteSuperhero(ctx, hero.ID))
	assert.Len(t, env.store.deleted(), 3, "every image deletion is attempted")

	images, err := env.images.ListImagesBySuperhero(ctx, hero.ID)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestSuperheroService_DeleteSuperhero_NotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.service.DeleteSuperhero(context.Background(), 12)
	assert.ErrorIs(t, err, domain.ErrSuperheroNotFound)
	assert.Empty(t, env.store.deleted())
}
