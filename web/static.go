package web

import (
	"embed"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

//go:embed all:static
var staticFiles embed.FS

// Film-strip icon served inline for /favicon.ico
const faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64"><rect width="64" height="64" rx="12" fill="#e50914"/><rect x="14" y="12" width="36" height="40" rx="4" fill="#141414"/><g fill="#e50914"><rect x="17" y="16" width="4" height="5"/><rect x="17" y="26" width="4" height="5"/><rect x="17" y="36" width="4" height="5"/><rect x="43" y="16" width="4" height="5"/><rect x="43" y="26" width="4" height="5"/><rect x="43" y="36" width="4" height="5"/></g><path d="M27 23v18l13-9z" fill="#fff"/></svg>`

var contentTypes = map[string]string{
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript; charset=utf-8",
	".json":  "application/json",
	".svg":   "image/svg+xml",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".woff2": "font/woff2",
}

// SetupStaticFiles serves the embedded stylesheet and script under /static/
func SetupStaticFiles(s *rweb.Server) {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to get static subdirectory"))
		return
	}

	s.Get("/favicon.ico", func(c rweb.Context) error {
		c.Response().SetHeader("Content-Type", "image/svg+xml")
		c.Response().SetHeader("Cache-Control", "public, max-age=86400")
		return c.Bytes([]byte(faviconSVG))
	})

	s.Get("/static/*", func(c rweb.Context) error {
		name := strings.TrimPrefix(c.Request().Path(), "/static/")
		content, err := readStatic(staticFS, name)
		if err != nil {
			logger.Debug("Static file not served", "path", name, "error", err.Error())
			c.SetStatus(http.StatusNotFound)
			return nil
		}

		if ct, ok := contentTypes[path.Ext(name)]; ok {
			c.Response().SetHeader("Content-Type", ct)
		}
		// App assets change with each build; keep them short lived
		c.Response().SetHeader("Cache-Control", "public, max-age=3600")

		return c.Bytes(content)
	})
}

// readStatic returns the contents of a regular file in fsys.
func readStatic(fsys fs.FS, name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, serr.New("invalid static path", "path", name)
	}

	file, err := fsys.Open(name)
	if err != nil {
		return nil, serr.Wrap(err, "open failed", "path", name)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, serr.Wrap(err, "stat failed", "path", name)
	}
	if stat.IsDir() {
		return nil, serr.New("path is a directory", "path", name)
	}

	return io.ReadAll(file)
}
