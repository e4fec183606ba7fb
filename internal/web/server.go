// Package web is the HTTP surface: photo upload, image records and the
// location-history API.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/intelligrit/geostamp/internal/geotag"
	"github.com/intelligrit/geostamp/internal/store"
)

//go:embed all:static
var staticFS embed.FS

// Server serves the upload UI and API.
type Server struct {
	Store          *store.Store
	Engine         *geotag.Engine
	UploadDir      string
	MaxUploadBytes int64
	Addr           string
}

// Handler builds the route table.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("GET /api/images", s.handleImages)
	mux.HandleFunc("GET /api/images/{id}", s.handleImage)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("POST /api/history/{id}/favorite", s.handleFavorite)
	mux.HandleFunc("DELETE /api/history/{id}", s.handleDeleteHistory)

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating sub filesystem: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticSub)))

	return mux, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	h, err := s.Handler()
	if err != nil {
		return err
	}
	fmt.Printf("Serving at http://%s\n", s.Addr)
	return http.ListenAndServe(s.Addr, h)
}
