package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/osse101/RelicWatch_Go/internal/domain"
)

// HealthResponse is the body of the health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// CatalogResponse summarizes the loaded catalog
type CatalogResponse struct {
	Items  int `json:"items"`
	Sets   int `json:"sets"`
	Relics int `json:"relics"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
	}
}

// HandleHealthz reports that the process is serving
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleReadyz reports ready once the catalog is loaded
func HandleReadyz(catalog CatalogFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if catalog() == nil {
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  StatusUnavailable,
				Message: MsgCatalogLoading,
			})
			return
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleSnapshot returns the latest reward snapshot, or 204 before the first one
func HandleSnapshot(snapshots SnapshotProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snap, ok := snapshots.Latest()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		respondJSON(w, http.StatusOK, snap)
	}
}

// HandleCatalog returns catalog sizes
func HandleCatalog(catalog CatalogFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		c := catalog()
		if c == nil {
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  StatusUnavailable,
				Message: MsgCatalogLoading,
			})
			return
		}
		respondJSON(w, http.StatusOK, catalogResponse(c))
	}
}

func catalogResponse(c *domain.Catalog) CatalogResponse {
	return CatalogResponse{Items: len(c.Items), Sets: len(c.Sets), Relics: len(c.Relics)}
}
