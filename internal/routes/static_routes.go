package routes

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"kras-kickers/volunteers/internal/common"
)

// RegisterStaticRoutes serves locally stored opportunity images under /static/.
// Nothing is mounted when images live in a bucket.
func RegisterStaticRoutes(r chi.Router, imageDir string, bucketed bool) {
	if bucketed || imageDir == "" {
		return
	}
	fileServer := http.FileServer(http.Dir(imageDir))
	r.Handle("/static/*", http.StripPrefix("/static/", imageTypeMiddleware(fileServer)))
}

// imageTypeMiddleware only serves allowed image extensions and sets their content type.
func imageTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Base(r.URL.Path)
		if sanitized, ok := common.SanitizeImageName(name); !ok || !strings.EqualFold(sanitized, name) {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", common.ImageContentType(name))
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}
