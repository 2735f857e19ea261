package http

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/redmonkez12/ledger-api/internal/httputil"
)

// SPAHandler serves a built single-page app from dir. Paths that do not name
// a file get index.html so client-side history routing works. When dir has
// no index.html every miss is a 404.
func SPAHandler(dir string) http.Handler {
	return spaHandler(os.DirFS(dir))
}

func spaHandler(fsys fs.FS) http.Handler {
	files := http.FileServerFS(fsys)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name != "" {
			if info, err := fs.Stat(fsys, name); err == nil && !info.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}

		if _, err := fs.Stat(fsys, "index.html"); err != nil {
			httputil.RespondErrorWithCode(w, "not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}

		http.ServeFileFS(w, r, fsys, "index.html")
	})
}
