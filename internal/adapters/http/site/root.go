// Package site serves the embedded activities frontend.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"
)

// Error constants
var (
	ErrServe = errors.New("site serve failed")
)

// IndexPath is where the root path redirects.
const IndexPath = "/static/index.html"

// Register attaches the frontend routes to mux:
//
//	GET /                   -> 307 to /static/index.html
//	GET /static/index.html  -> the page itself
//	GET /static/...         -> embedded assets
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
	})
	// http.FileServer redirects */index.html to the directory, so the page
	// is served directly.
	mux.HandleFunc("GET "+IndexPath, NewRootHandler().HandleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(FS())))
}

// RootHandler serves the frontend entry page.
type RootHandler struct {
	modTime time.Time
}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{modTime: time.Now()}
}

// HandleIndex handles GET /static/index.html requests.
func (h *RootHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := Index()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, "index.html", h.modTime, bytes.NewReader(page))
}

// Index returns the embedded entry page.
func Index() ([]byte, error) {
	page, err := fs.ReadFile(staticFS, "static/index.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServe, err)
	}
	return page, nil
}
