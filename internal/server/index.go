package server

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// serveIndex returns the root document read fresh from disk. A missing file
// is a packaging problem, so the request just fails.
func (s *Server) serveIndex(c *gin.Context) {
	body, err := os.ReadFile(s.cfg.Index)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError,
			"root document %s not readable; re-run the packaging steps", s.cfg.Index)
		return
	}
	c.Data(http.StatusOK, "text/html", body)
}
