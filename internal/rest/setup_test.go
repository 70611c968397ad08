package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dfryer1193/superheroes/internal/middleware"
	"github.com/dfryer1193/superheroes/shared/db/sqlite"
	"github.com/dfryer1193/superheroes/superhero/application"
	"github.com/dfryer1193/superheroes/superhero/domain"
	"github.com/dfryer1193/superheroes/superhero/persistence"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testMaxUploadBytes = 1 << 10

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type fakeStore struct {
	mu        sync.Mutex
	n         int
	deletes   []string
	uploadErr error
	deleteErr error
	// onUpload runs before each upload returns, outside the lock
	onUpload func()
}

func (f *fakeStore) Upload(_ context.Context, file domain.ImageFile) (*domain.StoredImage, error) {
	if f.onUpload != nil {
		f.onUpload()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.n++
	return &domain.StoredImage{
		URL:      fmt.Sprintf("https://img.example/%d-%s", f.n, file.Filename),
		PublicID: fmt.Sprintf("superheroesImages/%d", f.n),
	}, nil
}

func (f *fakeStore) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deletes = append(f.deletes, publicID)
	return f.deleteErr
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("database is closed") }

type testServer struct {
	router *gin.Engine
	store  *fakeStore
	heroes *persistence.SQLSuperheroRepository
	images *persistence.SQLImageRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database := sqlite.NewSQLiteDB(&sqlite.SQLiteConfig{Path: filepath.Join(t.TempDir(), "heroes.db")})
	require.NoError(t, database.Connect())
	t.Cleanup(func() { database.Close() })

	heroes := persistence.NewSuperheroRepository(database.DB())
	images := persistence.NewImageRepository(database.DB())
	store := &fakeStore{}

	router := gin.New()
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))
	router.Use(middleware.ErrorHandler())
	NewApi(router, NewHandlers(
		application.NewSuperheroService(heroes, images, store),
		application.NewImageService(images, store),
		database,
		testMaxUploadBytes,
	))

	return &testServer{router: router, store: store, heroes: heroes, images: images}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type filePart struct {
	field   string
	name    string
	content []byte
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, files ...filePart) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func jsonRequest(method, target string, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func heroFields() map[string]string {
	return map[string]string{
		"nickname":           "Hero",
		"real_name":          "John Doe",
		"origin_description": "...",
		"superpowers":        "Flying",
		"catch_phrase":       "Here I am!",
	}
}

func pngFile(field, name string) filePart {
	return filePart{field: field, name: name, content: pngHeader}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func (s *testServer) createHero(t *testing.T, nickname string) int64 {
	t.Helper()

	fields := heroFields()
	fields["nickname"] = nickname
	w := s.do(multipartRequest(t, http.MethodPost, "/superheroes", fields, pngFile("image", nickname+".png")))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Superhero struct {
			ID int64 `json:"id"`
		} `json:"superhero"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created.Superhero.ID
}
