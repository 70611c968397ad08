package rest

import (
	"net/http"

	"github.com/dfryer1193/superheroes/internal/httperr"
	"github.com/gin-gonic/gin"
)

func (h *Handlers) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		_ = c.Error(&httperr.Error{
			Status:  http.StatusServiceUnavailable,
			Code:    httperr.CodeInternal,
			Message: "Database unavailable",
			Err:     err,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
