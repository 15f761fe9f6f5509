package api

import (
	"net/http"
	"runtime"

	"github.com/joestump/bookmarks/internal/build"
)

type healthzResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, healthzResponse{
		Status:    "ok",
		Version:   build.Version,
		Commit:    build.Commit,
		GoVersion: runtime.Version(),
	})
}
