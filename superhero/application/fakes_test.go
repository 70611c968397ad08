package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dfryer1193/superheroes/shared/db/sqlite"
	"github.com/dfryer1193/superheroes/superhero/domain"
	"github.com/dfryer1193/superheroes/superhero/persistence"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("image store unavailable")

// fakeImageStore records calls and fails on demand
type fakeImageStore struct {
	mu        sync.Mutex
	uploads   []string
	deletes   []string
	uploadErr func(file domain.ImageFile) error
	deleteErr error
	emptyURL  bool
}

func (f *fakeImageStore) Upload(_ context.Context, file domain.ImageFile) (*domain.StoredImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.uploadErr != nil {
		if err := f.uploadErr(file); err != nil {
			return nil, err
		}
	}
	f.uploads = append(f.uploads, file.Filename)

	if f.emptyURL {
		return &domain.StoredImage{PublicID: "superheroesImages/" + file.Filename}, nil
	}
	return &domain.StoredImage{
		URL:      fmt.Sprintf("https://img.example/%s", file.Filename),
		PublicID: "superheroesImages/" + file.Filename,
	}, nil
}

func (f *fakeImageStore) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deletes = append(f.deletes, publicID)
	return f.deleteErr
}

func (f *fakeImageStore) deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deletes...)
}

type testEnv struct {
	heroes   *persistence.SQLSuperheroRepository
	images   *persistence.SQLImageRepository
	store    *fakeImageStore
	service  *SuperheroService
	imageSvc *ImageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database := sqlite.NewSQLiteDB(&sqlite.SQLiteConfig{Path: filepath.Join(t.TempDir(), "heroes.db")})
	require.NoError(t, database.Connect())
	t.Cleanup(func() { database.Close() })

	heroes := persistence.NewSuperheroRepository(database.DB())
	images := persistence.NewImageRepository(database.DB())
	store := &fakeImageStore{}

	return &testEnv{
		heroes:   heroes,
		images:   images,
		store:    store,
		service:  NewSuperheroService(heroes, images, store),
		imageSvc: NewImageService(images, store),
	}
}

func validHero() *domain.Superhero {
	return &domain.Superhero{
		Nickname:          "Hero",
		RealName:          "John Doe",
		OriginDescription: "...",
		Superpowers:       "Flying",
		CatchPhrase:       "Here I am!",
	}
}

func imageFile(name string) domain.ImageFile {
	return domain.ImageFile{Filename: name, ContentType: "image/png", Content: []byte("png:" + name)}
}
