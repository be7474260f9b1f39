package cache

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware serves GET responses from the store when fresh and
// captures successful responses on a miss. Attach it only to routes
// without per-request side effects (the slug view counter must never
// sit behind it).
func (s *Store) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if payload, contentType, found := s.Get(path); found {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, contentType, payload)
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")
		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
		}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			s.Set(path, writer.body.Bytes(), c.Writer.Header().Get("Content-Type"))
		}
	}
}
