package server

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	errForbidden = errors.New("path escapes served root")
	errNotFile   = errors.New("not a regular file")
)

// serveStatic serves c.Request.URL.Path from the root directory. The file is
// opened per request through os.OpenInRoot, so neither ".." nor symlinks can
// leave the root.
func (s *Server) serveStatic(c *gin.Context) {
	if m := c.Request.Method; m != http.MethodGet && m != http.MethodHead {
		c.Header("Allow", "GET, HEAD")
		c.String(http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name, err := assetName(c.Request.URL.Path)
	if err != nil {
		c.String(http.StatusForbidden, "forbidden")
		return
	}

	f, info, err := s.openAsset(name)
	if err != nil {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	defer f.Close()

	// ServeContent leaves a pre-set Content-Type alone and only sniffs when
	// the header is absent.
	if typ := s.cfg.ContentTypes.Lookup(name); typ != "" {
		c.Header("Content-Type", typ)
	}
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}

// assetName turns a URL path into a slash-separated name relative to the
// root. Any ".." segment is rejected outright rather than cleaned away.
func assetName(urlPath string) (string, error) {
	if strings.ContainsAny(urlPath, "\\\x00") {
		return "", errForbidden
	}
	for _, seg := range strings.Split(urlPath, "/") {
		if seg == ".." {
			return "", errForbidden
		}
	}
	return strings.TrimPrefix(path.Clean("/"+urlPath), "/"), nil
}

func (s *Server) openAsset(name string) (*os.File, fs.FileInfo, error) {
	if name == "" {
		return nil, nil, errNotFile
	}
	f, err := os.OpenInRoot(s.cfg.Root, filepath.FromSlash(name))
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, errNotFile
	}
	return f, info, nil
}
