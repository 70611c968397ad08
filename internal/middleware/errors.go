package middleware

import (
	"github.com/dfryer1193/superheroes/internal/httperr"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ErrorHandler renders the last error attached to the context, unless the handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := httperr.From(c.Errors.Last().Err)
		if httpErr.Status >= 500 {
			log.Error().
				Err(httpErr.Unwrap()).
				Str("code", httpErr.Code).
				Str("path", c.Request.URL.Path).
				Msg("Request failed")
		}

		renderError(c, httpErr)
	}
}

func renderError(c *gin.Context, err *httperr.Error) {
	c.JSON(err.Status, gin.H{"error": errorBody{Message: err.Message, Code: err.Code}})
}
