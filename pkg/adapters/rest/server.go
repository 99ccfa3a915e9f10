// Package rest exposes a SequenceStore over HTTP and provides a client
// for consuming such an endpoint.
//
// The wire API mirrors the asset server the rig was designed against:
//
//	GET /timelines                    -> {"timelines": ["<path_id>", ...]}
//	GET /timeline/{path_id}           -> sequence manifest JSON
//	GET /frames/{path_id}/{file}      -> raw PNG bytes
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
	"github.com/miriamsimone/video-generation-pipeline/pkg/ports"
)

// timelinesResponse is the body of GET /timelines.
type timelinesResponse struct {
	Timelines []string `json:"timelines"`
}

// NewHandler builds an http.Handler serving the sequence API over the
// given store.
func NewHandler(store ports.SequenceStore) http.Handler {
	r := chi.NewRouter()

	r.Get("/timelines", func(w http.ResponseWriter, req *http.Request) {
		ids, err := store.ListSequences(req.Context())
		if err != nil {
			http.Error(w, fmt.Sprintf("list sequences: %v", err), http.StatusInternalServerError)
			slog.Error("ListSequences failed", "error", err)
			return
		}
		writeJSON(w, timelinesResponse{Timelines: ids})
	})

	r.Get("/timeline/{pathID}", func(w http.ResponseWriter, req *http.Request) {
		pathID := chi.URLParam(req, "pathID")
		seq, err := store.GetSequence(req.Context(), pathID)
		if errors.Is(err, domain.ErrSequenceNotFound) {
			http.Error(w, "unknown timeline", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, fmt.Sprintf("get sequence: %v", err), http.StatusInternalServerError)
			slog.Error("GetSequence failed", "path_id", pathID, "error", err)
			return
		}
		writeJSON(w, seq)
	})

	r.Get("/frames/{pathID}/{file}", func(w http.ResponseWriter, req *http.Request) {
		pathID := chi.URLParam(req, "pathID")
		file := chi.URLParam(req, "file")
		data, err := store.GetFrame(req.Context(), pathID, file)
		if errors.Is(err, domain.ErrSequenceNotFound) {
			http.Error(w, "unknown frame", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, fmt.Sprintf("get frame: %v", err), http.StatusInternalServerError)
			slog.Error("GetFrame failed", "path_id", pathID, "file", file, "error", err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	})

	return enableCORS(r)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
