package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

// PosterHandler serves movie posters from a directory on disk.
type PosterHandler struct {
	Dir string
}

func NewPosterHandler(dir string) *PosterHandler {
	if dir == "" {
		dir = "Posters"
	}
	return &PosterHandler{Dir: dir}
}

// Serve answers GET /posters/*.  Paths that leave the poster directory are
// rejected.
func (h *PosterHandler) Serve(c echo.Context) error {
	raw, err := pathParam(c, "*")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid path"})
	}
	full, ok := h.resolve(raw)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid path"})
	}
	fi, err := os.Stat(full)
	if err != nil || fi.IsDir() {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "poster not found"})
	}
	return c.File(full)
}

// resolve joins rel onto the poster directory and reports whether the
// result stays inside it.
func (h *PosterHandler) resolve(rel string) (string, bool) {
	rel = strings.ReplaceAll(rel, `\`, "/")
	if rel == "" || strings.HasPrefix(rel, "/") {
		return "", false
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return "", false
		}
	}
	base, err := filepath.Abs(h.Dir)
	if err != nil {
		return "", false
	}
	full := filepath.Join(base, filepath.FromSlash(rel))
	r, err := filepath.Rel(base, full)
	if err != nil || r == "." || strings.HasPrefix(r, "..") {
		return "", false
	}
	return full, true
}
