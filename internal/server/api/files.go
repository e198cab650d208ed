package api

import (
	"net/http"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/storage"
)

const maxUploadBytes = 32 << 20

// StoredFileResponse carries the public URL of an uploaded asset.
type StoredFileResponse struct {
	URL string `json:"url"`
}

// storePoster uploads a movie asset and returns its public URL. When the
// blob store is unconfigured the adapter degrades to an empty URL, which is
// surfaced here as 503 rather than a misleading success.
func (s *Server) storePoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := s.files.Store(ctx, s.config.S3Container, storage.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		s.logger.Error(ctx, "asset upload failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if url == "" {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	s.logger.Info(ctx, "Stored asset", "url", url)
	s.writeJSON(w, http.StatusCreated, StoredFileResponse{URL: url})
}

// deletePoster removes the asset referenced by the route query parameter.
func (s *Server) deletePoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	route := r.URL.Query().Get("route")

	if err := s.files.Delete(ctx, route, s.config.S3Container); err != nil {
		s.logger.Error(ctx, "asset delete failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
