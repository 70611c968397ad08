package rest

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dfryer1193/superheroes/api"
	"github.com/dfryer1193/superheroes/internal/httperr"
	"github.com/dfryer1193/superheroes/superhero/domain"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

func (h *Handlers) DeleteImage(c *gin.Context) {
	id, ok := pathID(c, "Invalid image ID")
	if !ok {
		return
	}

	if err := h.images.DeleteImage(detached(c), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, api.Message{Message: "Image deleted successfully"})
}

// AddImages uploads every file of the "images" field and links them to the superhero in :id
func (h *Handlers) AddImages(c *gin.Context) {
	id, ok := pathID(c, "Invalid superhero ID")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		_ = c.Error(httperr.Validation("No files uploaded"))
		return
	}

	headers := form.File["images"]
	files := make([]domain.ImageFile, 0, len(headers))
	for _, header := range headers {
		file, err := readImageFile(header, h.maxUploadBytes)
		if err != nil {
			_ = c.Error(err)
			return
		}
		files = append(files, file)
	}

	images, err := h.images.AddImages(detached(c), id, files)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, api.ImagesUploaded{
		Message: "Images uploaded successfully",
		Images:  toUploadedImages(images),
	})
}

// readImageFile loads an uploaded file into memory and checks that it is an image within the size limit
func readImageFile(header *multipart.FileHeader, maxBytes int64) (domain.ImageFile, error) {
	tooLarge := httperr.New(http.StatusBadRequest, httperr.CodeFileTooLarge,
		fmt.Sprintf("File %s exceeds the %d byte limit", header.Filename, maxBytes))
	if header.Size > maxBytes {
		return domain.ImageFile{}, tooLarge
	}

	f, err := header.Open()
	if err != nil {
		return domain.ImageFile{}, fmt.Errorf("failed to open uploaded file %s: %w", header.Filename, err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return domain.ImageFile{}, fmt.Errorf("failed to read uploaded file %s: %w", header.Filename, err)
	}
	if int64(len(content)) > maxBytes {
		return domain.ImageFile{}, tooLarge
	}

	mtype := mimetype.Detect(content)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return domain.ImageFile{}, httperr.Validation(fmt.Sprintf("File %s is not an image", header.Filename))
	}

	return domain.ImageFile{
		Filename:    header.Filename,
		ContentType: mtype.String(),
		Content:     content,
	}, nil
}
