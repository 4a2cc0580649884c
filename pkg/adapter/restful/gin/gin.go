package gin

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/bookshelf/pkg/core/log"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

func Logger() HandlerFunc {
	return gin.Logger()
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// RequestID assigns a random UUID to each incoming request, reporting
// it by the X-Request-ID response header and recording it in the logs,
// so client-side and server-side reports can be correlated.
func RequestID() HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New()
		c.Header("X-Request-ID", id.String())
		log.Info(
			c.Request.Context(), "serving request",
			log.UUID("request-id", id),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)
		c.Next()
	}
}
