package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dfryer1193/superheroes/api"
	"github.com/dfryer1193/superheroes/internal/httperr"
	"github.com/dfryer1193/superheroes/superhero/application"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

func (h *Handlers) CreateSuperhero(c *gin.Context) {
	var form api.SuperheroForm
	if err := c.ShouldBindWith(&form, binding.FormMultipart); err != nil {
		logBindError(err)
		_ = c.Error(httperr.Validation("All superhero fields are required"))
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		_ = c.Error(httperr.New(http.StatusBadRequest, httperr.CodeFileMissing, "Image file is required"))
		return
	}

	file, err := readImageFile(header, h.maxUploadBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	hero, err := h.superheroes.CreateSuperhero(detached(c), fromForm(form), file)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, api.SuperheroCreated{
		Message:   "Superhero created",
		Superhero: toSuperhero(hero),
	})
}

// GetSuperheroes lists one page of superheroes. An empty page is reported as not found.
func (h *Handlers) GetSuperheroes(c *gin.Context) {
	page := queryInt(c, "page", application.DefaultPage)
	if page < 0 {
		page = application.DefaultPage
	}
	limit := queryInt(c, "limit", application.DefaultLimit)
	if limit <= 0 {
		limit = application.DefaultLimit
	}
	limit = min(limit, application.MaxLimit)

	result, err := h.superheroes.GetSuperheroes(c.Request.Context(), page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if len(result.Superheroes) == 0 {
		_ = c.Error(httperr.NotFound("Superheroes not found"))
		return
	}

	c.JSON(http.StatusOK, api.SuperheroList{
		Superheroes: toSuperheroes(result.Superheroes),
		Total:       result.Total,
	})
}

func (h *Handlers) GetSuperhero(c *gin.Context) {
	id, ok := pathID(c, "Invalid superhero ID")
	if !ok {
		return
	}

	hero, err := h.superheroes.GetSuperheroByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, toSuperhero(hero))
}

func (h *Handlers) UpdateSuperhero(c *gin.Context) {
	id, ok := pathID(c, "Invalid superhero ID")
	if !ok {
		return
	}

	var patch api.SuperheroPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		_ = c.Error(httperr.Validation("Id or data not provided"))
		return
	}

	hero, err := h.superheroes.UpdateSuperhero(detached(c), id, fromPatch(patch))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, toSuperhero(hero))
}

func (h *Handlers) DeleteSuperhero(c *gin.Context) {
	id, ok := pathID(c, "Invalid superhero ID")
	if !ok {
		return
	}

	if err := h.superheroes.DeleteSuperhero(detached(c), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, api.Message{Message: "Superhero deleted"})
}

// pathID parses the positive integer :id parameter, attaching an INVALID_ID error when it is not one
func pathID(c *gin.Context, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Error(httperr.InvalidID(message))
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}

func logBindError(err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		log.Debug().Err(err).Msg("Failed to bind superhero form")
		return
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	log.Debug().Strs("missing", fields).Msg("Superhero form is incomplete")
}
